//go:build rp2040 || rp2350

package main

import (
	"runtime"
	"time"

	"servoctl-go/services/hal"
	"servoctl-go/services/hal/platform"
	"servoctl-go/services/hal/platform/setups"
	"servoctl-go/services/servo"
)

// drain hands everything buffered on s to in without blocking.
func drain(s platform.Stream, in *servo.Input, buf []byte) {
	for s.Buffered() > 0 {
		n := 0
		for n < len(buf) && s.Buffered() > 0 {
			b, err := s.ReadByte()
			if err != nil {
				break
			}
			buf[n] = b
			n++
		}
		if n == 0 {
			return
		}
		in.Feed(buf[:n])
	}
}

func main() {
	// Allow USB CDC to enumerate before we print.
	time.Sleep(2 * time.Second)
	println("[main] boot")

	plan := setups.SelectedPlan
	cfg := servo.Config{Actuators: servo.DefaultActuators}

	reg := servo.MustRegistry(cfg.Actuators)
	outs, err := platform.ServoOutputs(reg.Channels())
	if err != nil {
		println("[main] servo outputs:", err.Error())
		for {
			time.Sleep(time.Second)
		}
	}
	bank := hal.NewBank(outs...)
	if err := bank.DetachAll(); err != nil {
		println("[main] detach:", err.Error())
	}

	console := platform.Console()
	remote, err := platform.Remote(plan)
	if err != nil {
		println("[main] remote uart:", err.Error(), "- console only")
	}

	fan := servo.NewFanout(console)
	if remote != nil {
		fan = servo.NewFanout(console, remote)
	}

	ctl, err := servo.New(cfg, bank, fan, platform.Indicator(plan), nil)
	if err != nil {
		println("[main] controller:", err.Error())
		return
	}
	ctl.Boot()

	usb := ctl.NewInput("usb")
	var bt *servo.Input
	if remote != nil {
		bt = ctl.NewInput(plan.Remote.ID)
	}

	var buf [32]byte
	for {
		drain(console, usb, buf[:])
		if bt != nil {
			drain(remote, bt, buf[:])
		}
		ctl.Poll()
		runtime.Gosched()
	}
}
