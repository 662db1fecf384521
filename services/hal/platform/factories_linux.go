//go:build linux && !(rp2040 || rp2350)

package platform

import (
	"io"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"go.bug.st/serial"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/host/v3"

	"servoctl-go/services/hal"
	"servoctl-go/services/hal/platform/setups"
)

// ServoFrequency is the servo frame rate.
const ServoFrequency = 50 * physic.Hertz

// Init loads the periph host drivers. Call once before ServoOutputs.
func Init() error {
	if _, err := host.Init(); err != nil {
		return errors.Wrap(err, "periph host init")
	}
	return nil
}

// duty converts a pulse width to a duty cycle at ServoFrequency.
func duty(us int) gpio.Duty {
	return gpio.Duty(int64(us) * int64(gpio.DutyMax) / hal.ServoPeriodUs)
}

func pinByNumber(n int) (gpio.PinIO, error) {
	p := gpioreg.ByName("GPIO" + strconv.Itoa(n))
	if p == nil {
		return nil, errors.Errorf("no GPIO%d on this host", n)
	}
	return p, nil
}

// ServoOutputs builds one hardware-PWM servo effector per GPIO. A detached
// output is driven low.
func ServoOutputs(pins []int) ([]hal.ServoOutput, error) {
	outs := make([]hal.ServoOutput, len(pins))
	for i, n := range pins {
		p, err := pinByNumber(n)
		if err != nil {
			return nil, err
		}
		if err := p.Out(gpio.Low); err != nil {
			return nil, errors.Wrapf(err, "servo %s", p.Name())
		}
		outs[i] = hal.NewPulseOutput(func(us int) error {
			if us == 0 {
				return p.Out(gpio.Low)
			}
			return p.PWM(duty(us), ServoFrequency)
		})
	}
	return outs, nil
}

type periphLED struct{ p gpio.PinIO }

func (l periphLED) Set(on bool) { _ = l.p.Out(gpio.Level(on)) }

// Indicator returns the LED on the planned GPIO, or a no-op when the
// board has none or the pin is missing.
func Indicator(plan setups.ResourcePlan) hal.Indicator {
	if plan.LED < 0 {
		return hal.NopIndicator{}
	}
	p, err := pinByNumber(plan.LED)
	if err != nil || p.Out(gpio.Low) != nil {
		return hal.NopIndicator{}
	}
	return periphLED{p: p}
}

// Remote opens the planned serial device. Reads time out after ReadMs so
// reader goroutines can notice shutdown.
func Remote(plan setups.ResourcePlan) (io.ReadWriteCloser, error) {
	port, err := serial.Open(plan.Remote.ID, &serial.Mode{BaudRate: int(plan.Remote.Baud)})
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", plan.Remote.ID)
	}
	if plan.Remote.ReadMs > 0 {
		if err := port.SetReadTimeout(time.Duration(plan.Remote.ReadMs) * time.Millisecond); err != nil {
			port.Close()
			return nil, errors.Wrap(err, "set read timeout")
		}
	}
	return port, nil
}

// Ports lists the serial devices present, for diagnostics.
func Ports() []string {
	ports, err := serial.GetPortsList()
	if err != nil {
		return nil
	}
	return ports
}

// Halt releases every pin in pins.
func Halt(pins []int) {
	for _, n := range pins {
		if p, err := pinByNumber(n); err == nil {
			_ = p.Halt()
		}
	}
}
