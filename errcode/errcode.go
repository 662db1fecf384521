package errcode

import "errors"

// Code is a stable, wire-facing error identifier.
// It is a string newtype, comparable, allocation-free, and implements error.
type Code string

func (c Code) Error() string { return string(c) }

// Canonical codes (short, stable).
const (
	OK Code = "ok"

	// Command plane
	OutOfRange     Code = "out_of_range"
	UnknownCommand Code = "unknown_command"
	BufferOverflow Code = "buffer_overflow"

	// Output plane
	UnknownServo  Code = "unknown_servo"
	ChannelBusy   Code = "channel_busy"
	NotAttached   Code = "not_attached"
	InvalidParams Code = "invalid_params"
	DriverFault   Code = "driver_fault"

	Error Code = "error" // generic fallback
)

// E keeps a code together with the operation, detail and cause.
type E struct {
	C   Code
	Op  string
	Msg string
	Err error
}

func (e *E) Error() string {
	s := string(e.C)
	if e.Op != "" {
		s = e.Op + ": " + s
	}
	if e.Msg != "" {
		s += ": " + e.Msg
	}
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}
func (e *E) Unwrap() error { return e.Err }
func (e *E) Code() Code    { return e.C }

// Is lets errors.Is(err, errcode.X) match a wrapped *E by code.
func (e *E) Is(target error) bool {
	c, ok := target.(Code)
	return ok && c == e.C
}

// Wrap attaches a code and operation to a driver error. nil stays nil.
func Wrap(c Code, op string, err error) error {
	if err == nil {
		return nil
	}
	return &E{C: c, Op: op, Err: err}
}

// Of extracts a Code from an error, defaulting to Error.
func Of(err error) Code {
	if err == nil {
		return OK
	}
	var c Code
	if errors.As(err, &c) {
		return c
	}
	type coder interface{ Code() Code }
	var x coder
	if errors.As(err, &x) {
		return x.Code()
	}
	return Error
}
