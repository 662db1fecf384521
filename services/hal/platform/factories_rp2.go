//go:build rp2040 || rp2350

package platform

import (
	"machine"

	uartx "github.com/jangala-dev/tinygo-uartx/uartx"
	"tinygo.org/x/drivers/servo"

	"servoctl-go/errcode"
	"servoctl-go/services/hal"
	"servoctl-go/services/hal/platform/setups"
)

// Select the PWM controller for a slice (0..7).
func pwmGroupBySlice(slice uint8) servo.PWM {
	switch slice {
	case 0:
		return machine.PWM0
	case 1:
		return machine.PWM1
	case 2:
		return machine.PWM2
	case 3:
		return machine.PWM3
	case 4:
		return machine.PWM4
	case 5:
		return machine.PWM5
	case 6:
		return machine.PWM6
	default:
		return machine.PWM7
	}
}

// ServoOutputs builds one 50 Hz servo effector per GPIO. Outputs start
// detached with no pulse.
func ServoOutputs(pins []int) ([]hal.ServoOutput, error) {
	outs := make([]hal.ServoOutput, len(pins))
	for i, n := range pins {
		if n < 0 || n > 28 {
			return nil, &errcode.E{C: errcode.InvalidParams, Op: "servo", Msg: "no such GPIO"}
		}
		pin := machine.Pin(n)
		slice, err := machine.PWMPeripheral(pin)
		if err != nil {
			return nil, errcode.Wrap(errcode.DriverFault, "servo", err)
		}
		s, err := servo.New(pwmGroupBySlice(slice), pin)
		if err != nil {
			return nil, errcode.Wrap(errcode.DriverFault, "servo", err)
		}
		s.SetMicroseconds(0)
		outs[i] = hal.NewPulseOutput(func(us int) error {
			s.SetMicroseconds(int16(us))
			return nil
		})
	}
	return outs, nil
}

type rp2LED struct{ p machine.Pin }

func (l rp2LED) Set(on bool) { l.p.Set(on) }

// Indicator returns the LED on the planned GPIO, or a no-op.
func Indicator(plan setups.ResourcePlan) hal.Indicator {
	if plan.LED < 0 {
		return hal.NopIndicator{}
	}
	p := machine.Pin(plan.LED)
	p.Configure(machine.PinConfig{Mode: machine.PinOutput})
	p.Low()
	return rp2LED{p: p}
}

// Stream is a polled byte stream: the run loop drains whatever is buffered
// and never blocks on it.
type Stream interface {
	Buffered() int
	ReadByte() (byte, error)
	Write(p []byte) (int, error)
}

// Remote configures the planned UART for the Bluetooth bridge.
func Remote(plan setups.ResourcePlan) (Stream, error) {
	var hw *uartx.UART
	switch plan.Remote.ID {
	case "uart0":
		hw = uartx.UART0
	case "uart1":
		hw = uartx.UART1
	default:
		return nil, &errcode.E{C: errcode.InvalidParams, Op: "uart", Msg: plan.Remote.ID}
	}
	if err := hw.Configure(uartx.UARTConfig{
		BaudRate: plan.Remote.Baud,
		TX:       machine.Pin(plan.Remote.TX),
		RX:       machine.Pin(plan.Remote.RX),
	}); err != nil {
		return nil, errcode.Wrap(errcode.DriverFault, "uart", err)
	}
	return hw, nil
}

// Console is the USB CDC serial port.
func Console() Stream { return machine.Serial }
