package midiout

import "github.com/flk92/pcem/sdk/contracts"

// backend is the operation set shared by the two destination families.
// Implementations log their own failures and degrade to no-ops: a missing
// or broken MIDI peripheral must never stop the emulation loop.
type backend interface {
	open(info contracts.DeviceInfo) error
	close() error
	write(b byte)
}

// Device pairs an enumerated destination descriptor with the backend that
// knows how to drive it. Devices are value-like until opened.
type Device struct {
	Info contracts.DeviceInfo

	be backend
}

// Open acquires the host resources for this destination. The returned
// error is diagnostic only; on failure the device stays unopened and
// writes become no-ops.
func (d *Device) Open() error {
	return d.be.open(d.Info)
}

// Close releases the destination. Safe to call when not open.
func (d *Device) Close() error {
	return d.be.close()
}

// Write forwards one MIDI protocol byte. Silent no-op when the device is
// not open.
func (d *Device) Write(b byte) {
	d.be.write(b)
}
