package servo

import (
	"time"

	"servoctl-go/errcode"
	"servoctl-go/services/hal"
	"servoctl-go/types"
	"servoctl-go/x/conv"
	"servoctl-go/x/timex"
)

const (
	DefaultQuantum       = 20 * time.Millisecond
	DefaultReadyInterval = 5 * time.Second
)

// Config is compiled in by each board's main.
type Config struct {
	Actuators     []Actuator
	Quantum       time.Duration // per-degree step; larger is slower
	ReadyInterval time.Duration // idle READY hint period
}

// Controller owns the actuator table and all runtime state. It is driven
// from a single run loop: bytes go in through Inputs, and Poll advances
// motion and the idle hint. Nothing in here blocks or sleeps.
type Controller struct {
	reg    *Registry
	sched  *Scheduler
	interp *Interpreter
	ann    *Announcer
	out    Notifier
	led    hal.Indicator
	clk    timex.Clock
	stats  types.ControllerStats
}

func New(cfg Config, outs Outputs, out Notifier, led hal.Indicator, clk timex.Clock) (*Controller, error) {
	if cfg.Actuators == nil {
		cfg.Actuators = DefaultActuators
	}
	if cfg.Quantum <= 0 {
		cfg.Quantum = DefaultQuantum
	}
	if cfg.ReadyInterval <= 0 {
		cfg.ReadyInterval = DefaultReadyInterval
	}
	if led == nil {
		led = hal.NopIndicator{}
	}
	if clk == nil {
		clk = timex.System()
	}
	reg, err := NewRegistry(cfg.Actuators)
	if err != nil {
		return nil, err
	}
	sched := NewScheduler(reg, outs, cfg.Quantum)
	return &Controller{
		reg:    reg,
		sched:  sched,
		interp: NewInterpreter(reg, sched, cfg.Quantum),
		ann:    NewAnnouncer(ReadyLine(reg), cfg.ReadyInterval, clk.Now()),
		out:    out,
		led:    led,
		clk:    clk,
	}, nil
}

func (c *Controller) Registry() *Registry   { return c.reg }
func (c *Controller) Scheduler() *Scheduler { return c.sched }

// Boot prints the banner and restarts the idle timer.
func (c *Controller) Boot() {
	b := make([]byte, 0, 40)
	b = append(b, "--- "...)
	b = conv.AppendInt(b, c.reg.Len())
	b = append(b, "-DOF Servo Control Ready ---"...)
	c.out.Notify(string(b))
	c.out.Notify("Send 'SERVOANGLE' (e.g., " + string(c.reg.Symbol(0)) + "90). Send '?' for HELP. Send 'G' for STATUS.")
	c.led.Set(false)
	c.ann.Touch(c.clk.Now())
}

// Input is one command stream. Each stream assembles its own lines.
type Input struct {
	name string
	asm  LineAssembler
	c    *Controller
}

func (c *Controller) NewInput(name string) *Input {
	return &Input{name: name, c: c}
}

func (in *Input) Name() string { return in.name }

// Feed assembles p and executes every completed line in arrival order.
func (in *Input) Feed(p []byte) {
	for _, b := range p {
		before := in.asm.Overflows()
		line, ok := in.asm.Feed(b)
		if in.asm.Overflows() != before {
			in.c.stats.Overflows++
			println("[servo]", in.name+":", errcode.BufferOverflow.Error(), "- dropping until end of line")
		}
		if ok {
			in.c.Exec(line)
		}
	}
}

// Exec runs one assembled line and emits its response.
func (c *Controller) Exec(line string) Reply {
	c.ann.Touch(c.clk.Now())
	c.stats.Lines++

	r := c.interp.Interpret(line)
	if r.Err != nil {
		c.stats.Rejected++
	}
	if r.Move != nil {
		prev, wasActive := c.sched.Active()
		sym := string(c.reg.Symbol(r.Move.Servo))
		if err := c.sched.RequestMove(r.Move.Servo, r.Move.Angle); err != nil {
			println("[servo] move", sym, "failed:", err.Error())
			r.Err = err
			r.Lines = []string{"ERR:" + sym + " output fault"}
			r.Move = nil
			c.stats.Rejected++
		} else {
			c.stats.Moves++
			if wasActive && prev != r.Move.Servo {
				c.stats.Preempted++
			}
		}
		c.syncIndicator()
	}
	for _, l := range r.Lines {
		c.out.Notify(l)
	}
	return r
}

// Poll performs one non-blocking pass: a motion step if due, then the idle hint.
func (c *Controller) Poll() {
	now := c.clk.Now()
	done, ok, err := c.sched.Tick(now)
	if err != nil {
		println("[servo] step failed:", err.Error())
	}
	if ok {
		c.stats.Completed++
		c.syncIndicator()
		c.out.Notify(DoneLine(c.reg.Symbol(done.Servo), done.Angle))
	}
	_, busy := c.sched.Active()
	if line, ok := c.ann.MaybeAnnounce(now, busy); ok {
		c.out.Notify(line)
	}
}

// Shutdown abandons any motion and de-energises its output.
func (c *Controller) Shutdown() error {
	err := c.sched.Stop()
	c.syncIndicator()
	return err
}

func (c *Controller) syncIndicator() {
	_, busy := c.sched.Active()
	c.led.Set(busy)
}

// Snapshot returns the state of every actuator.
func (c *Controller) Snapshot() []types.ServoStatus {
	active, _ := c.sched.Active()
	out := make([]types.ServoStatus, c.reg.Len())
	for i := range out {
		rg := c.reg.Range(i)
		out[i] = types.ServoStatus{
			Symbol:    string(c.reg.Symbol(i)),
			Channel:   c.reg.Channel(i),
			Min:       rg.Min,
			Max:       rg.Max,
			Current:   c.sched.Current(i),
			Target:    c.sched.Target(i),
			Energized: c.sched.Energized(i),
			Active:    i == active,
		}
	}
	return out
}

// Stats returns the run-loop counters.
func (c *Controller) Stats() types.ControllerStats {
	s := c.stats
	if f, ok := c.out.(*Fanout); ok {
		s.SinkErrors = f.Errors()
	}
	return s
}
