package servo

import (
	"time"

	"servoctl-go/x/timex"
)

// Announcer emits the idle READY hint at a fixed interval.
type Announcer struct {
	line     string
	interval time.Duration
	last     time.Time
}

func NewAnnouncer(line string, interval time.Duration, now time.Time) *Announcer {
	return &Announcer{line: line, interval: interval, last: now}
}

// ReadyLine is the hint text for reg.
func ReadyLine(reg *Registry) string {
	first, last := reg.Symbol(0), reg.Symbol(reg.Len()-1)
	return "READY: Use " + reg.Span() + "+angle (e.g., " + string(first) + "90, " + string(last) +
		"150), '?' for HELP, 'G' for STATUS"
}

// Touch restarts the interval; called whenever a line is assembled.
func (a *Announcer) Touch(now time.Time) { a.last = now }

// MaybeAnnounce returns the hint when nothing is moving and more than the
// interval has passed since the last hint or Touch.
func (a *Announcer) MaybeAnnounce(now time.Time, busy bool) (string, bool) {
	if busy || !timex.Exceeded(now, a.last, a.interval) {
		return "", false
	}
	a.last = now
	return a.line, true
}
