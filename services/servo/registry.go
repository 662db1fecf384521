package servo

import (
	"servoctl-go/errcode"
)

// MaxServos is the number of outputs the controller can arbitrate.
const MaxServos = 6

// Range is an inclusive angle range in degrees.
type Range struct {
	Min, Max int
}

// Actuator is one row of the static servo table.
type Actuator struct {
	Symbol  byte  // upper-case letter used on the wire
	Channel int   // GPIO number of the output
	Range   Range // safe angle range
}

// DefaultActuators is the wiring and safe ranges of the six-axis arm.
var DefaultActuators = []Actuator{
	{Symbol: 'A', Channel: 4, Range: Range{0, 180}},
	{Symbol: 'B', Channel: 5, Range: Range{45, 90}},
	{Symbol: 'C', Channel: 6, Range: Range{0, 85}},
	{Symbol: 'D', Channel: 7, Range: Range{90, 180}},
	{Symbol: 'E', Channel: 8, Range: Range{0, 180}},
	{Symbol: 'F', Channel: 9, Range: Range{90, 180}},
}

// Registry is the immutable actuator table.
type Registry struct {
	acts []Actuator
}

// NewRegistry validates and copies the table.
func NewRegistry(acts []Actuator) (*Registry, error) {
	if len(acts) == 0 || len(acts) > MaxServos {
		return nil, &errcode.E{C: errcode.InvalidParams, Op: "registry", Msg: "need 1..6 servos"}
	}
	seen := map[byte]bool{}
	out := make([]Actuator, len(acts))
	for i, a := range acts {
		s := upper(a.Symbol)
		if s < 'A' || s > 'Z' {
			return nil, &errcode.E{C: errcode.InvalidParams, Op: "registry", Msg: "symbol must be a letter"}
		}
		// G and H are command letters and can never address a servo.
		if s == 'G' || s == 'H' {
			return nil, &errcode.E{C: errcode.InvalidParams, Op: "registry", Msg: "symbol collides with a command"}
		}
		if seen[s] {
			return nil, &errcode.E{C: errcode.InvalidParams, Op: "registry", Msg: "duplicate symbol " + string(s)}
		}
		if a.Range.Min > a.Range.Max {
			return nil, &errcode.E{C: errcode.InvalidParams, Op: "registry", Msg: "min > max for " + string(s)}
		}
		seen[s] = true
		a.Symbol = s
		out[i] = a
	}
	return &Registry{acts: out}, nil
}

// MustRegistry is NewRegistry for compiled-in tables.
func MustRegistry(acts []Actuator) *Registry {
	r, err := NewRegistry(acts)
	if err != nil {
		panic(err.Error())
	}
	return r
}

func (r *Registry) Len() int { return len(r.acts) }

// Find returns the index of the actuator with symbol ch (case-insensitive).
func (r *Registry) Find(ch byte) (int, bool) {
	ch = upper(ch)
	for i := range r.acts {
		if r.acts[i].Symbol == ch {
			return i, true
		}
	}
	return -1, false
}

func (r *Registry) Range(i int) Range { return r.acts[i].Range }
func (r *Registry) Symbol(i int) byte { return r.acts[i].Symbol }
func (r *Registry) Channel(i int) int { return r.acts[i].Channel }

// Channels lists the output channels in table order.
func (r *Registry) Channels() []int {
	ch := make([]int, len(r.acts))
	for i, a := range r.acts {
		ch[i] = a.Channel
	}
	return ch
}

// Span renders the symbol span for hints, e.g. "A..F".
func (r *Registry) Span() string {
	first, last := r.acts[0].Symbol, r.acts[len(r.acts)-1].Symbol
	if first == last {
		return string(first)
	}
	return string([]byte{first, '.', '.', last})
}

func upper(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - 'a' + 'A'
	}
	return c
}
