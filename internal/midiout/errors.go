// Package midiout routes an emulated sound chip's outgoing MIDI byte
// stream to one host destination. It merges two incompatible device models
// behind a single indexed list: flat hardware-addressed raw ports and
// graph-addressed sequencer ports with dynamic subscription.
package midiout

import "errors"

// Error definitions for device discovery and output routing.
var (
	// ErrEnumeration indicates the sequencer graph could not be queried at
	// all; discovery as a whole fails.
	ErrEnumeration = errors.New("MIDI device enumeration failed")
	// ErrDeviceMissing indicates a device index outside the discovered range.
	ErrDeviceMissing = errors.New("no MIDI device at index")
	// ErrNameTooLong indicates a hardware port name that exceeds the fixed
	// name bound and would be truncated.
	ErrNameTooLong = errors.New("MIDI port name too long")
	// ErrOpenFailure indicates the host refused to open a port or client.
	ErrOpenFailure = errors.New("failed to open MIDI device")
)
