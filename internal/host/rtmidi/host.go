// Package rtmidi is a portable raw-port host adapter over the rtmidi
// driver. It has no card topology, so every flat output port is presented
// as its own single-device card.
package rtmidi

import (
	"fmt"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // Register MIDI driver

	"github.com/flk92/pcem/internal/midiout"
	"github.com/flk92/pcem/sdk/contracts"
)

// RawHost implements contracts.RawHost over rtmidi output ports.
type RawHost struct {
	log contracts.Logger
}

// NewRawHost creates the rtmidi-backed raw host.
func NewRawHost(log contracts.Logger) (contracts.RawHost, error) {
	return &RawHost{log: log}, nil
}

// Cards maps each rtmidi output port to a pseudo-card carrying the port
// name.
func (h *RawHost) Cards() ([]contracts.CardInfo, error) {
	outs := gomidi.GetOutPorts()
	cards := make([]contracts.CardInfo, len(outs))
	for i, out := range outs {
		cards[i] = contracts.CardInfo{Card: i, Name: out.String()}
	}
	return cards, nil
}

// OutputSubdevices reports the single port behind each pseudo-card.
func (h *RawHost) OutputSubdevices(card int) ([]contracts.RawAddress, error) {
	outs := gomidi.GetOutPorts()
	if card < 0 || card >= len(outs) {
		return nil, fmt.Errorf("no rtmidi port %d", card)
	}
	return []contracts.RawAddress{{Card: card}}, nil
}

// OpenPort opens the rtmidi output port behind the address.
func (h *RawHost) OpenPort(addr contracts.RawAddress) (contracts.RawConn, error) {
	out, err := gomidi.OutPort(addr.Card)
	if err != nil {
		return nil, fmt.Errorf("rtmidi port %d: %w", addr.Card, err)
	}
	if err := out.Open(); err != nil {
		return nil, fmt.Errorf("rtmidi open %d: %w", addr.Card, err)
	}
	return &rawConn{out: out, asm: midiout.NewAssembler(), send: out.Send}, nil
}

// rawConn regroups the incoming byte stream into complete messages before
// handing them to the driver, which rejects bare message fragments.
type rawConn struct {
	out  drivers.Out
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

// Drain is a no-op: rtmidi hands bytes to the device as they are sent.
func (c *rawConn) Drain() error {
	return nil
}

func (c *rawConn) Close() error {
	return c.out.Close()
}
