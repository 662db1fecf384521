//go:build linux && !(rp2040 || rp2350)

package platform

import (
	"testing"

	"periph.io/x/conn/v3/gpio"
)

func TestDuty(t *testing.T) {
	for _, c := range []struct {
		us   int
		want gpio.Duty
	}{
		{0, 0},
		{20_000, gpio.DutyMax},
		{1472, gpio.Duty(int64(1472) * int64(gpio.DutyMax) / 20_000)},
		{10_000, gpio.DutyHalf},
	} {
		if got := duty(c.us); got != c.want {
			t.Fatalf("duty(%d) = %v, want %v", c.us, got, c.want)
		}
	}
}
