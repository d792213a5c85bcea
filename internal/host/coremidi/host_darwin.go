//go:build darwin
// +build darwin

// Package coremidi is the Darwin raw-port host adapter. CoreMIDI has flat
// destination endpoints, so each one is presented as its own single-device
// card.
package coremidi

import (
	"fmt"

	"github.com/youpy/go-coremidi"

	"github.com/flk92/pcem/internal/midiout"
	"github.com/flk92/pcem/sdk/contracts"
)

// RawHost implements contracts.RawHost over CoreMIDI destinations.
type RawHost struct {
	log        contracts.Logger
	clientName string
}

// NewRawHost creates the CoreMIDI-backed raw host.
func NewRawHost(log contracts.Logger, clientName string) (contracts.RawHost, error) {
	return &RawHost{log: log, clientName: clientName}, nil
}

// Cards maps each CoreMIDI destination to a pseudo-card carrying the
// endpoint name.
func (h *RawHost) Cards() ([]contracts.CardInfo, error) {
	dests, err := coremidi.AllDestinations()
	if err != nil {
		return nil, fmt.Errorf("error listing MIDI destinations: %w", err)
	}
	cards := make([]contracts.CardInfo, len(dests))
	for i, dest := range dests {
		cards[i] = contracts.CardInfo{Card: i, Name: dest.Name()}
	}
	return cards, nil
}

// OutputSubdevices reports the single endpoint behind each pseudo-card.
func (h *RawHost) OutputSubdevices(card int) ([]contracts.RawAddress, error) {
	dests, err := coremidi.AllDestinations()
	if err != nil {
		return nil, err
	}
	if card < 0 || card >= len(dests) {
		return nil, fmt.Errorf("no CoreMIDI destination %d", card)
	}
	return []contracts.RawAddress{{Card: card}}, nil
}

// OpenPort opens an output port routed to the destination behind the
// address.
func (h *RawHost) OpenPort(addr contracts.RawAddress) (contracts.RawConn, error) {
	dests, err := coremidi.AllDestinations()
	if err != nil {
		return nil, err
	}
	if addr.Card < 0 || addr.Card >= len(dests) {
		return nil, fmt.Errorf("no CoreMIDI destination %d", addr.Card)
	}

	client, err := coremidi.NewClient(h.clientName)
	if err != nil {
		return nil, fmt.Errorf("error creating CoreMIDI client: %w", err)
	}
	port, err := coremidi.NewOutputPort(client, "Output")
	if err != nil {
		return nil, fmt.Errorf("error creating output port: %w", err)
	}

	conn := &rawConn{port: port, dest: dests[addr.Card], asm: midiout.NewAssembler()}
	conn.send = func(data []byte) error {
		packet := coremidi.NewPacket(data, 0)
		return packet.Send(&conn.port, &conn.dest)
	}
	return conn, nil
}

// rawConn regroups the incoming byte stream into complete messages before
// packetizing, since a CoreMIDI packet must carry whole messages.
type rawConn struct {
	port coremidi.OutputPort
	dest coremidi.Destination
	asm  *midiout.Assembler
	send func([]byte) error
}

func (c *rawConn) Write(b byte) error {
	msg, done := c.asm.Feed(b)
	if !done {
		return nil
	}
	return c.send(msg.Bytes())
}

// Drain is a no-op: packets are handed to the MIDI server as they are
// sent.
func (c *rawConn) Drain() error {
	return nil
}

func (c *rawConn) Close() error {
	return nil
}
