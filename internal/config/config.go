// Package config is the configuration collaborator for the MIDI output
// layer: a TOML settings file with machine-scoped integer keys. The only
// key this layer reads is "midi", the selected output device index.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Settings holds the parsed configuration file. A missing file yields an
// empty value: every lookup falls back to its default.
type Settings struct {
	Machine map[string]int64 `toml:"machine"`
}

// Defaults returns settings with no file behind them.
func Defaults() *Settings {
	return &Settings{}
}

// Load reads settings from path. A missing file is not an error; a present
// but unparsable file is.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Defaults(), nil
		}
		return nil, fmt.Errorf("config load failed (%s): %w", path, err)
	}

	var s Settings
	if err := toml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("config parse failed (%s): %w", path, err)
	}
	return &s, nil
}

// MachineInt returns the machine-scoped integer setting for key, or def
// when the key is absent.
func (s *Settings) MachineInt(key string, def int) int {
	v, ok := s.Machine[key]
	if !ok {
		return def
	}
	return int(v)
}
