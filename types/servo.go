package types

// ------------------------
// Servo
// ------------------------

// ServoStatus is a point-in-time view of one actuator.
type ServoStatus struct {
	Symbol    string `json:"symbol"`
	Channel   int    `json:"channel"`
	Min       int    `json:"min"`
	Max       int    `json:"max"`
	Current   int    `json:"current"`
	Target    int    `json:"target"`
	Energized bool   `json:"energized"`
	Active    bool   `json:"active"`
}

// ControllerStats are counters kept by the run loop for diagnostics.
type ControllerStats struct {
	Lines      uint32 `json:"lines"`
	Rejected   uint32 `json:"rejected"`
	Moves      uint32 `json:"moves"`
	Completed  uint32 `json:"completed"`
	Preempted  uint32 `json:"preempted"`
	Overflows  uint32 `json:"overflows"`
	SinkErrors uint32 `json:"sink_errors"`
}
