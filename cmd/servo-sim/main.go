//go:build !(rp2040 || rp2350)

// Command servo-sim runs the controller against virtual PWM outputs. The
// primary stream is stdin/stdout; a TCP client on remoteAddr stands in for
// the Bluetooth bridge.
package main

import (
	"context"
	"io"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"servoctl-go/services/bridge"
	"servoctl-go/services/hal"
	"servoctl-go/services/servo"
	"servoctl-go/x/logx"
)

const (
	remoteAddr = "127.0.0.1:9600"
	pollEvery  = time.Millisecond
)

// tcpTransport hands out one accepted connection per Open.
type tcpTransport struct{ ln net.Listener }

func (t tcpTransport) Open(ctx context.Context) (io.ReadWriteCloser, error) {
	type res struct {
		c   net.Conn
		err error
	}
	ch := make(chan res, 1)
	go func() {
		c, err := t.ln.Accept()
		ch <- res{c, err}
	}()
	select {
	case r := <-ch:
		return r.c, r.err
	case <-ctx.Done():
		_ = t.ln.Close()
		return nil, ctx.Err()
	}
}

func (t tcpTransport) String() string { return "tcp:" + t.ln.Addr().String() }

// virtualOutputs logs pulse widths instead of driving pins.
func virtualOutputs(reg *servo.Registry, log *zap.SugaredLogger) []hal.ServoOutput {
	outs := make([]hal.ServoOutput, reg.Len())
	for i := range outs {
		sym, ch := string(reg.Symbol(i)), reg.Channel(i)
		outs[i] = hal.NewPulseOutput(func(us int) error {
			log.Debugw("pulse", "servo", sym, "gpio", ch, "us", us)
			return nil
		})
	}
	return outs
}

func main() {
	log := logx.New("servo-sim")
	defer log.Sync()
	if err := run(log); err != nil {
		log.Errorw("exit", "error", err)
		os.Exit(1)
	}
}

func run(log *zap.SugaredLogger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := servo.Config{Actuators: servo.DefaultActuators}
	reg, err := servo.NewRegistry(cfg.Actuators)
	if err != nil {
		return errors.Wrap(err, "actuator table")
	}
	bank := hal.NewBank(virtualOutputs(reg, log)...)

	ln, err := net.Listen("tcp", remoteAddr)
	if err != nil {
		return errors.Wrapf(err, "listen %s", remoteAddr)
	}
	link := bridge.NewLink(tcpTransport{ln: ln}, log)

	clk := clock.New()
	ctl, err := servo.New(cfg, bank, servo.NewFanout(os.Stdout, link), nil, clk)
	if err != nil {
		return errors.Wrap(err, "controller")
	}

	chunks := make(chan bridge.Chunk, 16)
	go func() {
		_ = bridge.Pump(ctx, os.Stdin, ctl.NewInput("stdin"), chunks)
		log.Info("stdin closed")
	}()
	go link.Run(ctx, ctl.NewInput("tcp"), chunks)

	ctl.Boot()
	log.Infow("simulating", "servos", reg.Span(), "remote", remoteAddr)
	err = bridge.Serve(ctx, ctl, clk, pollEvery, chunks)
	log.Infow("stopped", "stats", ctl.Stats(), "snapshot", ctl.Snapshot())
	return err
}
