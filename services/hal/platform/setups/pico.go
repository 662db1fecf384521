//go:build rp2040 || rp2350

package setups

// HC-06 Bluetooth bridge on uart0, on-board LED on GP25.
var SelectedPlan = ResourcePlan{
	Remote: UARTPlan{ID: "uart0", TX: 0, RX: 1, Baud: 9_600},
	LED:    25,
}
