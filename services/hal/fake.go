package hal

import (
	"sync"

	"servoctl-go/errcode"
)

// FakeServo implements ServoOutput for host builds and tests. It records
// every written angle and can be told to fail.
type FakeServo struct {
	mu       sync.Mutex
	attached bool
	angle    int
	writes   []int
	attaches int
	detaches int

	FailAttach error
	FailWrite  error
	FailDetach error
}

func (f *FakeServo) Attach() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FailAttach != nil {
		return f.FailAttach
	}
	f.attached = true
	f.attaches++
	return nil
}

func (f *FakeServo) Detach() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.attached = false
	f.detaches++
	return f.FailDetach
}

func (f *FakeServo) Write(angle int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.attached {
		return errcode.NotAttached
	}
	if f.FailWrite != nil {
		return f.FailWrite
	}
	f.angle = angle
	f.writes = append(f.writes, angle)
	return nil
}

func (f *FakeServo) Attached() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.attached
}

// Angle returns the last written angle.
func (f *FakeServo) Angle() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.angle
}

// Writes returns a copy of every angle written so far.
func (f *FakeServo) Writes() []int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]int(nil), f.writes...)
}

// Counts returns the number of successful Attach calls and of Detach calls.
func (f *FakeServo) Counts() (attaches, detaches int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.attaches, f.detaches
}

// FakeServos builds n fakes and returns them both as concrete values (for
// assertions) and as ServoOutputs (for NewBank).
func FakeServos(n int) ([]*FakeServo, []ServoOutput) {
	fs := make([]*FakeServo, n)
	outs := make([]ServoOutput, n)
	for i := range fs {
		fs[i] = &FakeServo{}
		outs[i] = fs[i]
	}
	return fs, outs
}

// FakeIndicator records the indicator level and transitions.
type FakeIndicator struct {
	mu      sync.Mutex
	on      bool
	changes int
}

func (f *FakeIndicator) Set(on bool) {
	f.mu.Lock()
	if f.on != on {
		f.changes++
	}
	f.on = on
	f.mu.Unlock()
}

func (f *FakeIndicator) On() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.on
}

func (f *FakeIndicator) Changes() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.changes
}
