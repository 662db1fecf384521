package setups

// ResourcePlan is the compiled-in wiring of a board. The servo channels come
// from the actuator table; everything else the run loop needs is here.
type ResourcePlan struct {
	Remote UARTPlan
	LED    int // GPIO of the activity indicator, -1 when the board has none
}

type UARTPlan struct {
	ID     string // "uart0" on RP2, device path on Linux
	TX     int    // GPIO number; unused on Linux
	RX     int    // GPIO number; unused on Linux
	Baud   uint32
	ReadMs int // per-read timeout for blocking ports; 0 blocks
}
