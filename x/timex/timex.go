package timex

import (
	"time"

	"github.com/benbjohnson/clock"
)

// Clock is the time source injected into run loops. Tests pass clock.NewMock().
type Clock = clock.Clock

// System returns the wall clock.
func System() Clock { return clock.New() }

// NowMs returns Unix milliseconds of c as int64.
func NowMs(c Clock) int64 { return c.Now().UnixMilli() }

// Due reports whether at least every has elapsed since last.
// It is the non-blocking gate used instead of sleeping.
func Due(now, last time.Time, every time.Duration) bool { return now.Sub(last) >= every }

// Exceeded reports whether strictly more than d has elapsed since last.
func Exceeded(now, last time.Time, d time.Duration) bool { return now.Sub(last) > d }
