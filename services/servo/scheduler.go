package servo

import (
	"time"

	"servoctl-go/errcode"
	"servoctl-go/x/mathx"
	"servoctl-go/x/timex"
)

// Outputs is the effector capability the scheduler drives. hal.Bank
// satisfies it and enforces the single-claim rule on its own side.
type Outputs interface {
	Attach(i int) error
	Detach(i int) error
	Write(i, angle int) error
	Attached(i int) bool
}

type servoState struct {
	current int
	target  int
}

// Done reports a completed motion.
type Done struct {
	Servo int
	Angle int
}

// Scheduler moves at most one servo at a time, one degree per quantum.
//
// States per servo: idle (detached, current == target) and moving (the
// single active servo, attached). A request for a different servo detaches
// the active one on the spot; its partial progress stays in current.
type Scheduler struct {
	reg      *Registry
	out      Outputs
	state    []servoState
	active   int
	quantum  time.Duration
	lastStep time.Time
}

func NewScheduler(reg *Registry, out Outputs, quantum time.Duration) *Scheduler {
	s := &Scheduler{
		reg:     reg,
		out:     out,
		state:   make([]servoState, reg.Len()),
		active:  -1,
		quantum: quantum,
	}
	for i := range s.state {
		m := reg.Range(i).Min
		s.state[i] = servoState{current: m, target: m}
	}
	return s
}

func (s *Scheduler) Quantum() time.Duration { return s.quantum }

// Active returns the index of the moving servo, if any.
func (s *Scheduler) Active() (int, bool) { return s.active, s.active >= 0 }

func (s *Scheduler) Current(i int) int { return s.state[i].current }
func (s *Scheduler) Target(i int) int  { return s.state[i].target }

// Energized reports whether servo i's output is attached.
func (s *Scheduler) Energized(i int) bool { return s.out.Attached(i) }

// RequestMove makes servo i the sole active servo heading for target.
// The angle must already be validated against the servo's range.
func (s *Scheduler) RequestMove(i, target int) error {
	if i < 0 || i >= len(s.state) {
		return errcode.UnknownServo
	}
	if s.active >= 0 && s.active != i {
		prev := s.active
		s.active = -1
		if err := s.out.Detach(prev); err != nil {
			println("[servo] detach", string(s.reg.Symbol(prev)), "failed:", err.Error())
		}
	}
	if err := s.out.Attach(i); err != nil {
		return err
	}
	s.state[i].target = target
	s.active = i
	return nil
}

// Tick advances the active servo by one degree once a quantum has elapsed
// since the previous step. It never blocks. When the servo reaches its
// target it is detached and the completion is returned.
func (s *Scheduler) Tick(now time.Time) (Done, bool, error) {
	i := s.active
	if i < 0 || !timex.Due(now, s.lastStep, s.quantum) {
		return Done{}, false, nil
	}
	s.lastStep = now

	st := &s.state[i]
	if st.current != st.target {
		next := mathx.StepToward(st.current, st.target, 1)
		if err := s.out.Write(i, next); err != nil {
			// current only tracks angles the output accepted
			return Done{}, false, err
		}
		st.current = next
	}
	if st.current != st.target {
		return Done{}, false, nil
	}
	s.active = -1
	return Done{Servo: i, Angle: st.current}, true, s.out.Detach(i)
}

// Stop abandons the active motion and detaches its output.
func (s *Scheduler) Stop() error {
	if s.active < 0 {
		return nil
	}
	i := s.active
	s.active = -1
	return s.out.Detach(i)
}
