package midiout

import (
	"fmt"

	"github.com/flk92/pcem/sdk/contracts"
)

// DefaultMaxDevices bounds enumeration cost and memory when the host
// reports an unreasonable number of ports.
const DefaultMaxDevices = 128

// Registry holds the merged, ordered list of every selectable MIDI output
// destination. Discovery runs lazily and exactly once; after that the list
// and its indices are stable for the life of the process, because the bare
// index is what user configuration persists.
//
// Index order is an external contract: all raw hardware ports first, in
// host (card, device, subdevice) order, then all sequencer ports in host
// (client, port) order.
type Registry struct {
	log     contracts.Logger
	rawHost contracts.RawHost
	seqHost contracts.SeqHost
	max     int

	queried bool
	devices []*Device

	raw *rawPort
	seq *sequencer
}

// NewRegistry builds a registry over the given capability surfaces. Either
// host may be nil, meaning that backend is absent on this platform.
func NewRegistry(opts *contracts.ClientOptions) *Registry {
	max := opts.MaxDevices
	if max <= 0 {
		max = DefaultMaxDevices
	}
	return &Registry{
		log:     opts.Logger,
		rawHost: opts.RawHost,
		seqHost: opts.SeqHost,
		max:     max,
		raw:     newRawPort(opts.Logger, opts.RawHost),
		seq:     newSequencer(opts.Logger, opts.SeqHost, opts.ClientName),
	}
}

// Discover populates the device list. Idempotent: once it has succeeded,
// later calls return immediately without touching the hosts. Raw
// enumeration failures degrade to zero raw devices; a sequencer
// enumeration failure fails discovery as a whole.
func (r *Registry) Discover() error {
	if r.queried {
		return nil
	}

	r.devices = r.devices[:0]
	r.discoverRaw()
	if err := r.discoverSeq(); err != nil {
		r.log.Error("sequencer enumeration failed", r.log.Field().Error("error", err))
		return fmt.Errorf("%w: %v", ErrEnumeration, err)
	}

	r.queried = true
	r.log.Info("MIDI devices discovered", r.log.Field().Int("count", len(r.devices)))
	return nil
}

// discoverRaw walks cards, then MIDI-capable devices, then output
// subdevices, in host order. Absence of cards is a normal state and a
// failing card probe skips just that card.
func (r *Registry) discoverRaw() {
	if r.rawHost == nil {
		return
	}
	cards, err := r.rawHost.Cards()
	if err != nil {
		r.log.Warn("no sound cards enumerated", r.log.Field().Error("error", err))
		return
	}
	for _, card := range cards {
		addrs, err := r.rawHost.OutputSubdevices(card.Card)
		if err != nil {
			r.log.Debug("skipping card",
				r.log.Field().Int("card", card.Card),
				r.log.Field().Error("error", err))
			continue
		}
		for _, addr := range addrs {
			if len(r.devices) >= r.max {
				return
			}
			r.devices = append(r.devices, &Device{
				Info: contracts.DeviceInfo{
					Name: fmt.Sprintf("rawmidi(%d:%d:%d): %s", addr.Card, addr.Device, addr.Sub, card.Name),
					Kind: contracts.RawPortDevice,
					Raw:  addr,
				},
				be: r.raw,
			})
		}
	}
}

// discoverSeq appends every graph port the emulator can send into: generic
// MIDI ports that are both writable and subscribable for writing.
func (r *Registry) discoverSeq() error {
	if r.seqHost == nil {
		return nil
	}
	ports, err := r.seqHost.Ports()
	if err != nil {
		return err
	}
	const wrCaps = contracts.PortCapWrite | contracts.PortCapSubsWrite
	for _, port := range ports {
		if port.Type&contracts.PortTypeGenericMIDI == 0 {
			continue
		}
		if port.Caps&wrCaps != wrCaps {
			continue
		}
		if len(r.devices) >= r.max {
			break
		}
		r.devices = append(r.devices, &Device{
			Info: contracts.DeviceInfo{
				Name: fmt.Sprintf("alsa_seq(%d:%d): %s", port.Addr.Client, port.Addr.Port, port.ClientName),
				Kind: contracts.SequencerPortDevice,
				Seq:  port.Addr,
			},
			be: r.seq,
		})
	}
	return nil
}

// Count returns the number of discovered devices, running discovery first
// if needed. A failed discovery counts as zero devices.
func (r *Registry) Count() int {
	if err := r.Discover(); err != nil {
		return 0
	}
	return len(r.devices)
}

// Name returns the display name of the device at index.
func (r *Registry) Name(index int) (string, error) {
	dev, err := r.Device(index)
	if err != nil {
		return "", err
	}
	return dev.Info.Name, nil
}

// Device returns the device descriptor at index for opening.
func (r *Registry) Device(index int) (*Device, error) {
	if index < 0 || index >= r.Count() {
		return nil, fmt.Errorf("%w: %d", ErrDeviceMissing, index)
	}
	return r.devices[index], nil
}
