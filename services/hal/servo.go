package hal

import "servoctl-go/x/mathx"

// Servo pulse timing shared by the platform effectors. These match the
// hobby-servo convention of 544..2400 µs over 0..180° at 50 Hz.
const (
	ServoPeriodUs  = 20_000
	ServoMinPulse  = 544
	ServoMaxPulse  = 2400
	ServoMaxDegree = 180
)

// PulseWidth converts an angle to the pulse width in microseconds.
// Angles outside 0..ServoMaxDegree are clamped.
func PulseWidth(angle int) int {
	return mathx.Scale(angle, 0, ServoMaxDegree, ServoMinPulse, ServoMaxPulse)
}

// ServoOutput is one physical servo channel.
//
// Attach energises the output so that subsequent writes produce a pulse
// train, Detach withdraws it (the servo stops holding and draws idle
// current only), Write commands an angle in degrees. Writing to a detached
// output returns errcode.NotAttached.
type ServoOutput interface {
	Attach() error
	Detach() error
	Write(angle int) error
	Attached() bool
}

// Indicator is a single on/off output such as the on-board LED.
type Indicator interface {
	Set(on bool)
}

// NopIndicator is used when a board has no activity LED wired.
type NopIndicator struct{}

func (NopIndicator) Set(bool) {}
