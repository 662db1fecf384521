//go:build linux && !(rp2040 || rp2350)

// Command servoctl-linux runs the servo controller on a Linux SBC. The
// primary stream is stdin/stdout; the Bluetooth bridge is the serial
// device named in the board plan.
package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"servoctl-go/services/bridge"
	"servoctl-go/services/hal"
	"servoctl-go/services/hal/platform"
	"servoctl-go/services/hal/platform/setups"
	"servoctl-go/services/servo"
	"servoctl-go/x/logx"
)

const pollEvery = time.Millisecond

type serialTransport struct{ plan setups.ResourcePlan }

func (s serialTransport) Open(context.Context) (io.ReadWriteCloser, error) {
	return platform.Remote(s.plan)
}

func (s serialTransport) String() string { return "serial:" + s.plan.Remote.ID }

func main() {
	log := logx.New("servoctl")
	defer log.Sync()

	if err := run(log); err != nil {
		log.Errorw("exit", "error", err)
		os.Exit(1)
	}
}

func run(log *zap.SugaredLogger) (err error) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	plan := setups.SelectedPlan
	cfg := servo.Config{Actuators: servo.DefaultActuators}
	reg, err := servo.NewRegistry(cfg.Actuators)
	if err != nil {
		return errors.Wrap(err, "actuator table")
	}

	if err := platform.Init(); err != nil {
		return err
	}
	pins := reg.Channels()
	outs, err := platform.ServoOutputs(pins)
	if err != nil {
		return errors.Wrap(err, "servo outputs")
	}
	defer platform.Halt(pins)

	bank := hal.NewBank(outs...)
	defer func() { err = multierr.Append(err, bank.DetachAll()) }()

	link := bridge.NewLink(serialTransport{plan: plan}, log)
	if ports := platform.Ports(); len(ports) > 0 {
		log.Infow("serial ports", "present", ports, "using", plan.Remote.ID)
	} else {
		log.Warnw("no serial ports found", "using", plan.Remote.ID)
	}

	clk := clock.New()
	ctl, err := servo.New(cfg, bank, servo.NewFanout(os.Stdout, link), platform.Indicator(plan), clk)
	if err != nil {
		return errors.Wrap(err, "controller")
	}

	chunks := make(chan bridge.Chunk, 16)
	console := ctl.NewInput("stdin")
	go func() {
		if err := bridge.Pump(ctx, os.Stdin, console, chunks); err != nil {
			log.Warnw("stdin closed", "error", err)
			return
		}
		log.Info("stdin closed")
	}()
	go link.Run(ctx, ctl.NewInput(plan.Remote.ID), chunks)

	ctl.Boot()
	log.Infow("running",
		"servos", reg.Span(),
		"quantum", servo.DefaultQuantum,
		"ready_every", servo.DefaultReadyInterval)

	err = bridge.Serve(ctx, ctl, clk, pollEvery, chunks)
	log.Infow("stopped", "stats", ctl.Stats())
	return err
}
