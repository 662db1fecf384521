package hal

import (
	"go.uber.org/multierr"

	"servoctl-go/errcode"
)

// Bank owns the servo outputs of a board and is the claim authority for
// energisation: at most one output may be attached at any time. A second
// Attach while another channel is held fails with errcode.ChannelBusy.
//
// Bank is not safe for concurrent use; it lives on the run loop.
type Bank struct {
	outs  []ServoOutput
	owner int // index of the attached output, -1 when none
}

func NewBank(outs ...ServoOutput) *Bank {
	return &Bank{outs: outs, owner: -1}
}

func (b *Bank) Len() int { return len(b.outs) }

// Owner returns the index of the attached output, if any.
func (b *Bank) Owner() (int, bool) { return b.owner, b.owner >= 0 }

func (b *Bank) valid(i int) bool { return i >= 0 && i < len(b.outs) }

// Attach claims and energises output i. Attaching the current owner is a no-op.
func (b *Bank) Attach(i int) error {
	if !b.valid(i) {
		return errcode.UnknownServo
	}
	if b.owner == i && b.outs[i].Attached() {
		return nil
	}
	if b.owner >= 0 && b.owner != i {
		return errcode.ChannelBusy
	}
	if err := b.outs[i].Attach(); err != nil {
		return errcode.Wrap(errcode.DriverFault, "attach", err)
	}
	b.owner = i
	return nil
}

// Detach withdraws output i and releases the claim. Detaching an idle
// output is a no-op. The claim is released even if the driver reports an
// error so a faulty channel cannot block the others.
func (b *Bank) Detach(i int) error {
	if !b.valid(i) {
		return errcode.UnknownServo
	}
	if b.owner == i {
		b.owner = -1
	}
	if !b.outs[i].Attached() {
		return nil
	}
	return errcode.Wrap(errcode.DriverFault, "detach", b.outs[i].Detach())
}

// Write commands output i; it must be the attached owner.
func (b *Bank) Write(i, angle int) error {
	if !b.valid(i) {
		return errcode.UnknownServo
	}
	if b.owner != i {
		return errcode.NotAttached
	}
	return errcode.Wrap(errcode.DriverFault, "write", b.outs[i].Write(angle))
}

// Attached reports whether output i is currently energised.
func (b *Bank) Attached(i int) bool {
	return b.valid(i) && b.outs[i].Attached()
}

// Energized counts attached outputs as reported by the drivers.
func (b *Bank) Energized() int {
	n := 0
	for _, o := range b.outs {
		if o.Attached() {
			n++
		}
	}
	return n
}

// DetachAll withdraws every output; used at boot and shutdown.
func (b *Bank) DetachAll() error {
	var err error
	for i := range b.outs {
		err = multierr.Append(err, b.Detach(i))
	}
	b.owner = -1
	return err
}
