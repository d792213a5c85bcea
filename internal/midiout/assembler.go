package midiout

import "github.com/flk92/pcem/sdk/contracts"

// Assembler regroups a byte-at-a-time MIDI stream into complete messages
// for hosts whose transport is message oriented rather than a byte stream.
// It carries running status and partial message state between calls.
type Assembler struct {
	enc *eventEncoder
}

// NewAssembler creates an empty assembler.
func NewAssembler() *Assembler {
	return &Assembler{enc: newEventEncoder()}
}

// Feed consumes one stream byte and reports whether it completed a
// message.
func (a *Assembler) Feed(b byte) (contracts.Message, bool) {
	return a.enc.feed(b)
}
