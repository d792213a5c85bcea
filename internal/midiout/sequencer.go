package midiout

import (
	"fmt"

	"go.uber.org/multierr"

	"github.com/flk92/pcem/sdk/contracts"
)

// sequencer drives graph-addressed destinations. One instance is shared by
// every sequencer device in the registry; the connection state below is the
// reason only one of them may be open at a time.
//
// The state machine is Closed <-> Open. open while Open and close while
// Closed are no-ops, which guards against duplicate resource acquisition.
type sequencer struct {
	log        contracts.Logger
	host       contracts.SeqHost
	clientName string

	client contracts.SeqClient
	own    contracts.SeqAddress
	dest   contracts.SeqAddress
	enc    *eventEncoder
}

func newSequencer(log contracts.Logger, host contracts.SeqHost, clientName string) *sequencer {
	return &sequencer{log: log, host: host, clientName: clientName}
}

func (s *sequencer) open(info contracts.DeviceInfo) error {
	if s.client != nil {
		// Already open; a second open must not leak a client.
		return nil
	}
	if s.host == nil {
		s.log.Error("sequencer unavailable on this host")
		return ErrOpenFailure
	}

	client, err := s.host.CreateClient(s.clientName)
	if err != nil {
		s.log.Error("failed to allocate sequencer client", s.log.Field().Error("error", err))
		return fmt.Errorf("%w: %v", ErrOpenFailure, err)
	}

	own, err := client.CreatePort("Output",
		contracts.PortCapRead|contracts.PortCapSubsRead,
		contracts.PortTypeApplication|contracts.PortTypeGenericMIDI)
	if err != nil {
		_ = client.Close()
		s.log.Error("failed to create sequencer port", s.log.Field().Error("error", err))
		return fmt.Errorf("%w: %v", ErrOpenFailure, err)
	}

	// Resolve the destination. The subscribers placeholder and a
	// self-loop back to the port just created both fall back to the
	// broadcast address, so the user can route manually at any time.
	dest := info.Seq
	if dest == contracts.SubscribersAddress || dest == own {
		dest = contracts.SubscribersAddress
	}

	if dest != contracts.SubscribersAddress {
		if err := client.Connect(own, dest); err != nil {
			// Non-fatal: the port stays open unconnected and the user may
			// subscribe it externally later.
			s.log.Warn("failed to connect sequencer port",
				s.log.Field().Int("client", dest.Client),
				s.log.Field().Int("port", dest.Port),
				s.log.Field().Error("error", err))
		}
	}

	s.client = client
	s.own = own
	s.dest = dest
	s.enc = newEventEncoder()
	s.log.Info("sequencer client ready",
		s.log.Field().Int("client", own.Client),
		s.log.Field().Int("port", own.Port))
	return nil
}

func (s *sequencer) close() error {
	if s.client == nil {
		return nil
	}
	err := multierr.Append(s.client.Drain(), s.client.Close())
	s.client = nil
	s.enc = nil
	if err != nil {
		s.log.Warn("error closing sequencer client", s.log.Field().Error("error", err))
	}
	return err
}

func (s *sequencer) write(b byte) {
	if s.client == nil {
		return
	}
	msg, done := s.enc.feed(b)
	if !done {
		return
	}
	if err := s.client.Send(msg); err != nil {
		return
	}
	// Program Change and Channel Pressure tolerate batching; everything
	// else goes out immediately.
	if msg.WantsFlush() {
		_ = s.client.Drain()
	}
}
