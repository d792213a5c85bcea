//go:build !darwin
// +build !darwin

package coremidi

import (
	"errors"

	"github.com/flk92/pcem/sdk/contracts"
)

// ErrUnavailable is returned on platforms without CoreMIDI.
var ErrUnavailable = errors.New("CoreMIDI is not available on this platform")

// NewRawHost reports CoreMIDI as unavailable off Darwin.
func NewRawHost(log contracts.Logger, clientName string) (contracts.RawHost, error) {
	log.Warn("CoreMIDI host requested on non-Darwin system")
	return nil, ErrUnavailable
}
