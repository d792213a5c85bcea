package midiout

import "github.com/flk92/pcem/sdk/contracts"

// Controller holds the at-most-one currently open output device and routes
// init/close/write calls to it. It never holds two devices at once; the
// caller closes before re-initialising.
type Controller struct {
	log     contracts.Logger
	current *Device
}

// NewController creates an empty controller.
func NewController(log contracts.Logger) *Controller {
	return &Controller{log: log}
}

// Init selects the device at index and opens it. An out-of-range index or
// a failed open leaves no device functional but is never fatal: the
// emulator keeps running without MIDI output.
func (c *Controller) Init(reg *Registry, index int) {
	dev, err := reg.Device(index)
	if err != nil {
		c.log.Error("configured MIDI device missing",
			c.log.Field().Int("index", index),
			c.log.Field().Error("error", err))
		return
	}

	c.current = dev
	if err := dev.Open(); err != nil {
		c.log.Error("MIDI device open failed",
			c.log.Field().String("device", dev.Info.Name),
			c.log.Field().Error("error", err))
	}
}

// Close releases the open device, if any. Idempotent.
func (c *Controller) Close() {
	if c.current == nil {
		return
	}
	_ = c.current.Close()
	c.current = nil
}

// Write forwards one MIDI byte to the open device. Silent no-op when
// nothing is open.
func (c *Controller) Write(b byte) {
	if c.current == nil {
		return
	}
	c.current.Write(b)
}
