// Package midiout is the public surface of the MIDI output subsystem: it
// discovers the host's MIDI destinations, merges hardware and sequencer
// ports into one indexed list, and forwards the emulator's outgoing MIDI
// byte stream to the destination the user selected.
package midiout

import (
	core "github.com/flk92/pcem/internal/midiout"
	"github.com/flk92/pcem/sdk/contracts"
)

// midiSettingKey is the machine-scoped configuration key holding the
// selected device index.
const midiSettingKey = "midi"

// Output is the MIDI output client consumed by the emulator. All methods
// degrade to no-ops on failure; nothing here may halt emulation. Calls are
// expected from a single thread.
type Output struct {
	log        contracts.Logger
	settings   contracts.Settings
	registry   *core.Registry
	controller *core.Controller
}

// New creates a MIDI output client with the specified options. It applies
// defaults (zap logging, platform host adapters, TOML-backed settings) for
// anything not provided.
func New(opts ...contracts.Option) (*Output, error) {
	options, err := applyDefaultOptions(opts...)
	if err != nil {
		return nil, err
	}

	return &Output{
		log:        options.Logger,
		settings:   options.Settings,
		registry:   core.NewRegistry(&options),
		controller: core.NewController(options.Logger),
	}, nil
}

// Init opens the configured device. The selected index comes from the
// machine-scoped "midi" setting, default 0. Failures are logged only.
func (o *Output) Init() {
	if err := o.registry.Discover(); err != nil {
		return
	}
	index := o.settings.MachineInt(midiSettingKey, 0)
	o.controller.Init(o.registry, index)
}

// Close releases any open device. Idempotent.
func (o *Output) Close() {
	o.controller.Close()
}

// Write sends one MIDI protocol byte to the open device; no-op if none.
func (o *Output) Write(b byte) {
	o.controller.Write(b)
}

// DeviceCount triggers discovery if needed and returns the number of
// selectable devices.
func (o *Output) DeviceCount() int {
	return o.registry.Count()
}

// DeviceName returns the display name of the device at index. The caller
// bound-checks the index against DeviceCount.
func (o *Output) DeviceName(index int) (string, error) {
	return o.registry.Name(index)
}
