//go:build rp2040 || rp2350

// cmd/boardtest/main.go
package main

import (
	"runtime"
	"time"

	"servoctl-go/services/hal"
	"servoctl-go/services/hal/platform"
	"servoctl-go/services/hal/platform/setups"
	"servoctl-go/services/servo"
	"servoctl-go/x/conv"
)

// ---------- Configuration ----------

const (
	moveTimeout = 10 * time.Second
	dwell       = 500 * time.Millisecond

	// Cycles: 0 = loop forever
	cyclesToRun = 0
)

// sweep drives every servo to both ends of its range and back to its
// minimum, one at a time, through the same command path as the serial
// streams.
func sweep(ctl *servo.Controller) bool {
	reg := ctl.Registry()
	ok := true
	var line []byte
	for i := 0; i < reg.Len(); i++ {
		rg := reg.Range(i)
		for _, a := range []int{rg.Max, rg.Min} {
			line = append(line[:0], reg.Symbol(i))
			line = conv.AppendInt(line, a)
			if r := ctl.Exec(string(line)); r.Err != nil {
				println("[boardtest]", string(line), "rejected:", r.Err.Error())
				ok = false
				continue
			}
			if !waitIdle(ctl) {
				println("[boardtest]", string(line), "timed out")
				ok = false
			}
			time.Sleep(dwell)
		}
	}
	return ok
}

func waitIdle(ctl *servo.Controller) bool {
	deadline := time.Now().Add(moveTimeout)
	for time.Now().Before(deadline) {
		ctl.Poll()
		if _, busy := ctl.Scheduler().Active(); !busy {
			return true
		}
		runtime.Gosched()
	}
	return false
}

func main() {
	time.Sleep(2 * time.Second)
	println("[boardtest] start")

	plan := setups.SelectedPlan
	reg := servo.MustRegistry(servo.DefaultActuators)
	outs, err := platform.ServoOutputs(reg.Channels())
	if err != nil {
		println("[boardtest] outputs:", err.Error())
		return
	}
	bank := hal.NewBank(outs...)
	ctl, err := servo.New(servo.Config{}, bank, servo.NewFanout(platform.Console()), platform.Indicator(plan), nil)
	if err != nil {
		println("[boardtest] controller:", err.Error())
		return
	}
	ctl.Boot()

	for cycle := 1; cyclesToRun == 0 || cycle <= cyclesToRun; cycle++ {
		println("[boardtest] cycle", cycle)
		if !sweep(ctl) {
			println("[boardtest] cycle", cycle, "FAIL")
		}
		if n := bank.Energized(); n != 0 {
			println("[boardtest] FAIL:", n, "outputs still energised")
		}
		s := ctl.Stats()
		println("[boardtest] moves", s.Moves, "completed", s.Completed, "rejected", s.Rejected)
	}
	println("[boardtest] done")
}
