package servo

import (
	"time"

	"servoctl-go/errcode"
	"servoctl-go/x/conv"
	"servoctl-go/x/mathx"
)

// Kind classifies an assembled command line.
type Kind uint8

const (
	KindNone    Kind = iota // empty line
	KindHelp                // '?' or 'H...'
	KindStatus              // 'G...'
	KindMove                // <symbol><int>
	KindUnknown             // anything else
)

func (k Kind) String() string {
	switch k {
	case KindHelp:
		return "help"
	case KindStatus:
		return "status"
	case KindMove:
		return "move"
	case KindUnknown:
		return "unknown"
	default:
		return "none"
	}
}

// Command is a parsed line. Servo and Angle are set for KindMove only.
type Command struct {
	Kind  Kind
	Servo int
	Angle int
	Line  string
}

// Parse classifies line. Move arguments use a permissive numeric parse:
// trailing text that is not a number reads as 0, which is then subject to the
// normal range check.
func Parse(reg *Registry, line string) Command {
	cmd := Command{Kind: KindUnknown, Servo: -1, Line: line}
	if line == "" {
		cmd.Kind = KindNone
		return cmd
	}
	switch upper(line[0]) {
	case '?', 'H':
		cmd.Kind = KindHelp
		return cmd
	case 'G':
		cmd.Kind = KindStatus
		return cmd
	}
	if i, ok := reg.Find(line[0]); ok && len(line) > 1 {
		cmd.Kind = KindMove
		cmd.Servo = i
		cmd.Angle = conv.Atoi(line[1:])
	}
	return cmd
}

// StateReader exposes the live angles reported by STATUS.
type StateReader interface {
	Current(i int) int
}

// Move is an accepted request handed to the scheduler.
type Move struct {
	Servo int
	Angle int
}

// Reply is the outcome of one line: the response lines to emit, an optional
// move for the scheduler, and the error class when the line was rejected.
type Reply struct {
	Cmd   Command
	Lines []string
	Move  *Move
	Err   error
}

// Interpreter turns lines into replies. It never touches outputs.
type Interpreter struct {
	reg     *Registry
	state   StateReader
	quantum time.Duration
}

func NewInterpreter(reg *Registry, state StateReader, quantum time.Duration) *Interpreter {
	return &Interpreter{reg: reg, state: state, quantum: quantum}
}

func (in *Interpreter) Interpret(line string) Reply {
	cmd := Parse(in.reg, line)
	r := Reply{Cmd: cmd}
	switch cmd.Kind {
	case KindNone:
	case KindHelp:
		r.Lines = in.help()
	case KindStatus:
		r.Lines = []string{in.status()}
	case KindMove:
		rg := in.reg.Range(cmd.Servo)
		if !mathx.Between(cmd.Angle, rg.Min, rg.Max) {
			r.Err = errcode.OutOfRange
			r.Lines = []string{RangeErrLine(in.reg.Symbol(cmd.Servo), rg)}
			break
		}
		r.Move = &Move{Servo: cmd.Servo, Angle: cmd.Angle}
		r.Lines = []string{OKLine(in.reg.Symbol(cmd.Servo), cmd.Angle, rg)}
	default:
		r.Err = errcode.UnknownCommand
		r.Lines = []string{"ERR:Unknown cmd '" + line + "'"}
	}
	return r
}

func (in *Interpreter) help() []string {
	n := in.reg.Len()
	lines := make([]string, 0, n+1)
	first, last := in.reg.Symbol(0), in.reg.Symbol(n-1)
	lines = append(lines, "HELP: Send SERVOANGLE (e.g., "+string(first)+"90 or "+string(last)+"150). Ranges:")
	for i := 0; i < n; i++ {
		rg := in.reg.Range(i)
		b := make([]byte, 0, 16)
		b = append(b, ' ', in.reg.Symbol(i), ':', ' ')
		b = appendRange(b, rg)
		lines = append(lines, string(b))
	}
	return lines
}

func (in *Interpreter) status() string {
	b := make([]byte, 0, 64)
	b = append(b, "STATUS:"...)
	for i := 0; i < in.reg.Len(); i++ {
		b = append(b, ' ', in.reg.Symbol(i), '=')
		b = conv.AppendInt(b, in.state.Current(i))
	}
	b = append(b, " | SPEED="...)
	b = conv.AppendInt(b, int(in.quantum/time.Millisecond))
	return string(b)
}

// OKLine renders "OK:<S>-><angle> (range <min>-<max>)".
func OKLine(sym byte, angle int, rg Range) string {
	b := make([]byte, 0, 32)
	b = append(b, 'O', 'K', ':', sym, '-', '>')
	b = conv.AppendInt(b, angle)
	b = append(b, " (range "...)
	b = appendRange(b, rg)
	b = append(b, ')')
	return string(b)
}

// RangeErrLine renders "ERR:<S> range <min>-<max>".
func RangeErrLine(sym byte, rg Range) string {
	b := make([]byte, 0, 24)
	b = append(b, 'E', 'R', 'R', ':', sym)
	b = append(b, " range "...)
	b = appendRange(b, rg)
	return string(b)
}

// DoneLine renders "DONE:<S>=<angle>".
func DoneLine(sym byte, angle int) string {
	b := make([]byte, 0, 16)
	b = append(b, "DONE:"...)
	b = append(b, sym, '=')
	b = conv.AppendInt(b, angle)
	return string(b)
}

func appendRange(b []byte, rg Range) []byte {
	b = conv.AppendInt(b, rg.Min)
	b = append(b, '-')
	return conv.AppendInt(b, rg.Max)
}
