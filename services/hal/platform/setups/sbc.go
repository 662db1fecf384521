//go:build linux && !(rp2040 || rp2350)

package setups

// Raspberry Pi style SBC: Bluetooth bridge on the primary UART header,
// status LED on GPIO17.
var SelectedPlan = ResourcePlan{
	Remote: UARTPlan{ID: "/dev/serial0", Baud: 9_600, ReadMs: 100},
	LED:    17,
}
