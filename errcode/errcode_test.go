package errcode

import (
	"errors"
	"testing"
)

func TestCodesAreStableStrings(t *testing.T) {
	cases := map[string]Code{
		"ok":              OK,
		"out_of_range":    OutOfRange,
		"unknown_command": UnknownCommand,
		"buffer_overflow": BufferOverflow,
		"unknown_servo":   UnknownServo,
		"channel_busy":    ChannelBusy,
		"not_attached":    NotAttached,
		"invalid_params":  InvalidParams,
		"driver_fault":    DriverFault,
		"error":           Error,
	}
	for want, c := range cases {
		if c.Error() != want {
			t.Fatalf("code %q mismatch: got %q", want, c.Error())
		}
	}
}

func TestOf(t *testing.T) {
	cause := errors.New("pwm slice unavailable")
	wrapped := Wrap(DriverFault, "attach", cause)

	if got := Of(nil); got != OK {
		t.Fatalf("Of(nil) = %q", got)
	}
	if got := Of(ChannelBusy); got != ChannelBusy {
		t.Fatalf("Of(Code) = %q", got)
	}
	if got := Of(wrapped); got != DriverFault {
		t.Fatalf("Of(*E) = %q", got)
	}
	if got := Of(cause); got != Error {
		t.Fatalf("Of(plain) = %q", got)
	}
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("boom")
	err := Wrap(DriverFault, "write", cause)
	if !errors.Is(err, cause) {
		t.Fatalf("expected cause to unwrap")
	}
	if !errors.Is(err, DriverFault) {
		t.Fatalf("expected errors.Is to match code")
	}
	if errors.Is(err, NotAttached) {
		t.Fatalf("unexpected match on a different code")
	}
	if got, want := err.Error(), "write: driver_fault: boom"; got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}
	if Wrap(DriverFault, "write", nil) != nil {
		t.Fatalf("Wrap(nil) should be nil")
	}
}
