//go:build !linux
// +build !linux

package alsa

import (
	"errors"

	"github.com/flk92/pcem/sdk/contracts"
)

// ErrUnavailable is returned on platforms without the ALSA kernel
// interfaces.
var ErrUnavailable = errors.New("ALSA is not available on this platform")

// NewRawHost reports ALSA as unavailable off Linux.
func NewRawHost(log contracts.Logger) (contracts.RawHost, error) {
	log.Warn("ALSA raw MIDI host requested on non-Linux system")
	return nil, ErrUnavailable
}

// NewSeqHost reports ALSA as unavailable off Linux.
func NewSeqHost(log contracts.Logger) (contracts.SeqHost, error) {
	log.Warn("ALSA sequencer host requested on non-Linux system")
	return nil, ErrUnavailable
}
