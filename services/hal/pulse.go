package hal

import "servoctl-go/errcode"

// PulseFunc drives one PWM channel with the given pulse width in µs.
// Zero must stop the pulse train.
type PulseFunc func(us int) error

// PulseOutput turns a PulseFunc into a ServoOutput. Both platform
// effectors are built on it; only the pulse setter differs.
type PulseOutput struct {
	set      PulseFunc
	attached bool
	angle    int
	written  bool
}

func NewPulseOutput(set PulseFunc) *PulseOutput {
	return &PulseOutput{set: set}
}

// Attach energises the channel. If an angle was written before, the servo
// is driven back to it at once; otherwise the line stays quiet until the
// first Write.
func (p *PulseOutput) Attach() error {
	if p.written {
		if err := p.set(PulseWidth(p.angle)); err != nil {
			return err
		}
	}
	p.attached = true
	return nil
}

func (p *PulseOutput) Detach() error {
	p.attached = false
	return p.set(0)
}

func (p *PulseOutput) Write(angle int) error {
	if !p.attached {
		return errcode.NotAttached
	}
	if err := p.set(PulseWidth(angle)); err != nil {
		return err
	}
	p.angle, p.written = angle, true
	return nil
}

func (p *PulseOutput) Attached() bool { return p.attached }
