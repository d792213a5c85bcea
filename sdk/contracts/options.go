package contracts

// ClientOptions defines the configuration options for the MIDI output client.
type ClientOptions struct {
	Logger     Logger   // Logger for logging events and errors.
	LogLevel   LogLevel // Level of logging to use.
	ClientName string   // Name announced to the sequencer graph.
	Settings   Settings // Configuration collaborator (selected device index).
	RawHost    RawHost  // Raw MIDI capability surface; nil selects the platform default.
	SeqHost    SeqHost  // Sequencer capability surface; nil selects the platform default.
	MaxDevices int      // Upper bound on enumerated devices.
}

// Option is a function that modifies ClientOptions.
type Option func(*ClientOptions)

// WithLogger sets the logger for the MIDI output client.
func WithLogger(l Logger) Option {
	return func(opts *ClientOptions) {
		opts.Logger = l
	}
}

// WithLogLevel sets the logging level for the MIDI output client.
func WithLogLevel(level LogLevel) Option {
	return func(opts *ClientOptions) {
		opts.LogLevel = level
	}
}

// WithClientName sets the name the client announces to the sequencer graph.
func WithClientName(name string) Option {
	return func(opts *ClientOptions) {
		opts.ClientName = name
	}
}

// WithSettings sets the configuration collaborator.
func WithSettings(s Settings) Option {
	return func(opts *ClientOptions) {
		opts.Settings = s
	}
}

// WithRawHost overrides the platform raw MIDI capability surface.
func WithRawHost(h RawHost) Option {
	return func(opts *ClientOptions) {
		opts.RawHost = h
	}
}

// WithSeqHost overrides the platform sequencer capability surface.
func WithSeqHost(h SeqHost) Option {
	return func(opts *ClientOptions) {
		opts.SeqHost = h
	}
}

// WithMaxDevices bounds the number of devices enumeration may return.
func WithMaxDevices(n int) Option {
	return func(opts *ClientOptions) {
		opts.MaxDevices = n
	}
}
