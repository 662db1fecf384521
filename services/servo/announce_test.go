package servo

import (
	"testing"
	"time"

	"github.com/benbjohnson/clock"
)

func TestReadyLine(t *testing.T) {
	want := "READY: Use A..F+angle (e.g., A90, F150), '?' for HELP, 'G' for STATUS"
	if got := ReadyLine(MustRegistry(DefaultActuators)); got != want {
		t.Fatalf("ReadyLine = %q", got)
	}
}

func TestAnnouncer_StrictlyAfterInterval(t *testing.T) {
	clk := clock.NewMock()
	a := NewAnnouncer("R", 5*time.Second, clk.Now())

	clk.Add(5 * time.Second)
	if _, ok := a.MaybeAnnounce(clk.Now(), false); ok {
		t.Fatalf("announced at exactly the interval")
	}
	clk.Add(time.Millisecond)
	if line, ok := a.MaybeAnnounce(clk.Now(), false); !ok || line != "R" {
		t.Fatalf("expected announcement, got %q,%v", line, ok)
	}
	if _, ok := a.MaybeAnnounce(clk.Now(), false); ok {
		t.Fatalf("announcement should reset the timer")
	}
}

func TestAnnouncer_SuppressedWhileBusy(t *testing.T) {
	clk := clock.NewMock()
	a := NewAnnouncer("R", 5*time.Second, clk.Now())
	clk.Add(time.Minute)
	if _, ok := a.MaybeAnnounce(clk.Now(), true); ok {
		t.Fatalf("announced while busy")
	}
	if _, ok := a.MaybeAnnounce(clk.Now(), false); !ok {
		t.Fatalf("should announce once idle")
	}
}

func TestAnnouncer_TouchRestartsInterval(t *testing.T) {
	clk := clock.NewMock()
	a := NewAnnouncer("R", 5*time.Second, clk.Now())
	clk.Add(4 * time.Second)
	a.Touch(clk.Now())
	clk.Add(4 * time.Second)
	if _, ok := a.MaybeAnnounce(clk.Now(), false); ok {
		t.Fatalf("announced within the interval after Touch")
	}
	clk.Add(1001 * time.Millisecond)
	if _, ok := a.MaybeAnnounce(clk.Now(), false); !ok {
		t.Fatalf("expected announcement")
	}
}
