package servo

import (
	"strings"
	"testing"
	"time"

	"servoctl-go/errcode"
)

type fixedAngles []int

func (f fixedAngles) Current(i int) int { return f[i] }

func newTestInterpreter() *Interpreter {
	reg := MustRegistry(DefaultActuators)
	return NewInterpreter(reg, fixedAngles{0, 45, 0, 90, 0, 90}, DefaultQuantum)
}

func TestParse(t *testing.T) {
	reg := MustRegistry(DefaultActuators)
	for _, c := range []struct {
		line  string
		kind  Kind
		servo int
		angle int
	}{
		{"", KindNone, -1, 0},
		{"?", KindHelp, -1, 0},
		{"h", KindHelp, -1, 0},
		{"HELP me", KindHelp, -1, 0},
		{"G", KindStatus, -1, 0},
		{"get", KindStatus, -1, 0},
		{"A90", KindMove, 0, 90},
		{"f150", KindMove, 5, 150},
		{"B-5", KindMove, 1, -5},
		{"Cxyz", KindMove, 2, 0},
		{"A", KindUnknown, -1, 0},
		{"Z10", KindUnknown, -1, 0},
		{"90", KindUnknown, -1, 0},
	} {
		cmd := Parse(reg, c.line)
		if cmd.Kind != c.kind || cmd.Servo != c.servo || cmd.Angle != c.angle {
			t.Fatalf("Parse(%q) = %+v, want kind=%s servo=%d angle=%d", c.line, cmd, c.kind, c.servo, c.angle)
		}
	}
}

func TestInterpret_Moves(t *testing.T) {
	in := newTestInterpreter()
	for _, c := range []struct {
		line string
		want string
		err  error
		move bool
	}{
		{"C200", "ERR:C range 0-85", errcode.OutOfRange, false},
		{"C50", "OK:C->50 (range 0-85)", nil, true},
		{"b45", "OK:B->45 (range 45-90)", nil, true},
		{"B44", "ERR:B range 45-90", errcode.OutOfRange, false},
		{"B91", "ERR:B range 45-90", errcode.OutOfRange, false},
		{"D-1", "ERR:D range 90-180", errcode.OutOfRange, false},
		{"Ejunk", "OK:E->0 (range 0-180)", nil, true},
		{"Fjunk", "ERR:F range 90-180", errcode.OutOfRange, false},
		{"A 180", "OK:A->180 (range 0-180)", nil, true},
	} {
		r := in.Interpret(c.line)
		if len(r.Lines) != 1 || r.Lines[0] != c.want {
			t.Fatalf("Interpret(%q) lines = %q, want %q", c.line, r.Lines, c.want)
		}
		if r.Err != c.err {
			t.Fatalf("Interpret(%q) err = %v, want %v", c.line, r.Err, c.err)
		}
		if (r.Move != nil) != c.move {
			t.Fatalf("Interpret(%q) move = %+v", c.line, r.Move)
		}
		if r.Move != nil && r.Move.Angle != r.Cmd.Angle {
			t.Fatalf("Interpret(%q) move angle %d != parsed %d", c.line, r.Move.Angle, r.Cmd.Angle)
		}
	}
}

func TestInterpret_Unknown(t *testing.T) {
	in := newTestInterpreter()
	for _, line := range []string{"A", "Z12", "x?", "7", "!A90"} {
		r := in.Interpret(line)
		want := "ERR:Unknown cmd '" + line + "'"
		if len(r.Lines) != 1 || r.Lines[0] != want {
			t.Fatalf("Interpret(%q) = %q, want %q", line, r.Lines, want)
		}
		if r.Err != errcode.UnknownCommand {
			t.Fatalf("Interpret(%q) err = %v", line, r.Err)
		}
	}
}

func TestInterpret_EmptyIsSilent(t *testing.T) {
	r := newTestInterpreter().Interpret("")
	if len(r.Lines) != 0 || r.Err != nil || r.Move != nil {
		t.Fatalf("empty line produced %+v", r)
	}
}

func TestInterpret_Help(t *testing.T) {
	r := newTestInterpreter().Interpret("?")
	want := []string{
		"HELP: Send SERVOANGLE (e.g., A90 or F150). Ranges:",
		" A: 0-180",
		" B: 45-90",
		" C: 0-85",
		" D: 90-180",
		" E: 0-180",
		" F: 90-180",
	}
	if strings.Join(r.Lines, "\n") != strings.Join(want, "\n") {
		t.Fatalf("help =\n%s", strings.Join(r.Lines, "\n"))
	}
}

func TestInterpret_Status(t *testing.T) {
	reg := MustRegistry(DefaultActuators)
	in := NewInterpreter(reg, fixedAngles{10, 45, 3, 90, 0, 179}, 35*time.Millisecond)
	r := in.Interpret("g")
	want := "STATUS: A=10 B=45 C=3 D=90 E=0 F=179 | SPEED=35"
	if len(r.Lines) != 1 || r.Lines[0] != want {
		t.Fatalf("status = %q, want %q", r.Lines, want)
	}
	if r.Move != nil || r.Err != nil {
		t.Fatalf("status must not request anything: %+v", r)
	}
}

func TestLineRenderers(t *testing.T) {
	if got := DoneLine('C', 50); got != "DONE:C=50" {
		t.Fatalf("DoneLine = %q", got)
	}
	if got := OKLine('A', 0, Range{0, 180}); got != "OK:A->0 (range 0-180)" {
		t.Fatalf("OKLine = %q", got)
	}
	if got := RangeErrLine('D', Range{90, 180}); got != "ERR:D range 90-180" {
		t.Fatalf("RangeErrLine = %q", got)
	}
	if KindMove.String() != "move" || Kind(99).String() != "none" {
		t.Fatalf("Kind.String mismatch")
	}
}
