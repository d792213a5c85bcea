package midiout

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/flk92/pcem/internal/host/alsa"
	"github.com/flk92/pcem/internal/host/coremidi"
	"github.com/flk92/pcem/internal/host/rtmidi"
	"github.com/flk92/pcem/sdk/contracts"
)

// ErrUnsupportedOS is returned when no host adapter exists for the current
// operating system and none was injected through options.
var ErrUnsupportedOS = errors.New("unsupported operating system")

// hostInitializers maps OS names to the default capability surfaces for
// that platform. Only Linux carries a sequencer graph; the other platforms
// expose raw ports only.
var hostInitializers = map[string]func(*contracts.ClientOptions) (contracts.RawHost, contracts.SeqHost, error){
	"linux": func(opts *contracts.ClientOptions) (contracts.RawHost, contracts.SeqHost, error) {
		raw, err := alsa.NewRawHost(opts.Logger)
		if err != nil {
			return nil, nil, err
		}
		seq, err := alsa.NewSeqHost(opts.Logger)
		if err != nil {
			return nil, nil, err
		}
		return raw, seq, nil
	},
	"darwin": func(opts *contracts.ClientOptions) (contracts.RawHost, contracts.SeqHost, error) {
		raw, err := coremidi.NewRawHost(opts.Logger, opts.ClientName)
		return raw, nil, err
	},
	"windows": func(opts *contracts.ClientOptions) (contracts.RawHost, contracts.SeqHost, error) {
		raw, err := rtmidi.NewRawHost(opts.Logger)
		return raw, nil, err
	},
}

// defaultHosts fills in the platform capability surfaces for any the
// options leave nil.
func defaultHosts(opts *contracts.ClientOptions) error {
	if opts.RawHost != nil || opts.SeqHost != nil {
		return nil
	}
	initializer, exists := hostInitializers[runtime.GOOS]
	if !exists {
		return fmt.Errorf("%w: %s", ErrUnsupportedOS, runtime.GOOS)
	}
	raw, seq, err := initializer(opts)
	if err != nil {
		return err
	}
	opts.RawHost = raw
	opts.SeqHost = seq
	return nil
}
