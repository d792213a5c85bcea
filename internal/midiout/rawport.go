package midiout

import (
	"fmt"

	"go.uber.org/multierr"

	"github.com/flk92/pcem/sdk/contracts"
)

// portNameMax bounds the formatted "hw:c,d,s" port name, matching the
// fixed buffer the hardware interface accepts.
const portNameMax = 32

// rawPort drives flat hardware-addressed destinations. One instance is
// shared by every raw device in the registry; at most one of them is open
// at a time.
type rawPort struct {
	log  contracts.Logger
	host contracts.RawHost

	conn contracts.RawConn
}

func newRawPort(log contracts.Logger, host contracts.RawHost) *rawPort {
	return &rawPort{log: log, host: host}
}

func (p *rawPort) open(info contracts.DeviceInfo) error {
	if p.conn != nil {
		return nil
	}
	if p.host == nil {
		p.log.Error("raw MIDI unavailable on this host")
		return ErrOpenFailure
	}

	portName := fmt.Sprintf("hw:%d,%d,%d", info.Raw.Card, info.Raw.Device, info.Raw.Sub)
	if len(portName) >= portNameMax {
		p.log.Error("MIDI port name exceeds bound", p.log.Field().String("port", portName))
		return ErrNameTooLong
	}

	p.log.Info("opening MIDI port", p.log.Field().String("port", portName))
	conn, err := p.host.OpenPort(info.Raw)
	if err != nil {
		p.log.Error("failed to open MIDI port",
			p.log.Field().String("port", portName),
			p.log.Field().Error("error", err))
		return fmt.Errorf("%w: %v", ErrOpenFailure, err)
	}
	p.conn = conn
	return nil
}

func (p *rawPort) close() error {
	if p.conn == nil {
		return nil
	}
	err := multierr.Append(p.conn.Drain(), p.conn.Close())
	p.conn = nil
	if err != nil {
		p.log.Warn("error closing MIDI port", p.log.Field().Error("error", err))
	}
	return err
}

func (p *rawPort) write(b byte) {
	if p.conn == nil {
		return
	}
	// Best effort: a write error must not reach the emulation loop.
	_ = p.conn.Write(b)
}
