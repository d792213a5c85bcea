package midiout

import (
	"github.com/flk92/pcem/internal/config"
	"github.com/flk92/pcem/internal/logger"
	"github.com/flk92/pcem/sdk/contracts"
)

// applyDefaultOptions sets default values for ClientOptions if not
// explicitly provided.
func applyDefaultOptions(opts ...contracts.Option) (contracts.ClientOptions, error) {
	options := &contracts.ClientOptions{}
	for _, opt := range opts {
		opt(options)
	}

	if options.Logger == nil {
		options.Logger = logger.NewZapLogger()
	}
	if options.LogLevel == 0 {
		options.LogLevel = contracts.InfoLevel
	}
	if options.ClientName == "" {
		options.ClientName = "PCem"
	}
	if options.Settings == nil {
		options.Settings = config.Defaults()
	}

	options.Logger.SetLevel(options.LogLevel)

	if err := defaultHosts(options); err != nil {
		return contracts.ClientOptions{}, err
	}
	return *options, nil
}
