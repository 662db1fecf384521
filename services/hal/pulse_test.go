package hal

import (
	"errors"
	"testing"

	"servoctl-go/errcode"
)

func TestPulseWidth(t *testing.T) {
	for _, c := range []struct{ angle, us int }{
		{0, 544}, {90, 1472}, {180, 2400}, {-10, 544}, {200, 2400}, {45, 1008},
	} {
		if got := PulseWidth(c.angle); got != c.us {
			t.Fatalf("PulseWidth(%d) = %d, want %d", c.angle, got, c.us)
		}
	}
}

func TestPulseOutput(t *testing.T) {
	var pulses []int
	var fail error
	p := NewPulseOutput(func(us int) error {
		if fail != nil {
			return fail
		}
		pulses = append(pulses, us)
		return nil
	})

	if err := p.Write(90); err != errcode.NotAttached {
		t.Fatalf("write while detached: %v", err)
	}
	if err := p.Attach(); err != nil || !p.Attached() {
		t.Fatalf("Attach: %v", err)
	}
	if len(pulses) != 0 {
		t.Fatalf("first attach should not pulse, got %v", pulses)
	}
	_ = p.Write(90)
	_ = p.Detach()
	_ = p.Attach()
	want := []int{1472, 0, 1472}
	if len(pulses) != len(want) {
		t.Fatalf("pulses = %v, want %v", pulses, want)
	}
	for i := range want {
		if pulses[i] != want[i] {
			t.Fatalf("pulses = %v, want %v", pulses, want)
		}
	}

	fail = errors.New("pwm")
	if err := p.Write(10); err == nil {
		t.Fatalf("expected write error")
	}
	_ = p.Detach()
	fail = nil
	_ = p.Attach()
	if pulses[len(pulses)-1] != 1472 {
		t.Fatalf("failed write must not change the remembered angle: %v", pulses)
	}
}
