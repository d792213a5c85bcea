package contracts

// DeviceKind distinguishes the two backend families a MIDI output
// destination may belong to.
type DeviceKind int

const (
	// RawPortDevice is a flat, hardware-addressed destination identified by
	// a (card, device, subdevice) triple.
	RawPortDevice DeviceKind = iota
	// SequencerPortDevice is a virtual, graph-addressed destination
	// identified by a (client, port) pair with dynamic subscription.
	SequencerPortDevice
)

func (k DeviceKind) String() string {
	switch k {
	case RawPortDevice:
		return "rawmidi"
	case SequencerPortDevice:
		return "alsa_seq"
	default:
		return "unknown"
	}
}

// RawAddress is the hardware address of a raw MIDI port.
type RawAddress struct {
	Card   int
	Device int
	Sub    int
}

// SeqAddress is the graph address of a sequencer port.
type SeqAddress struct {
	Client int
	Port   int
}

// SubscribersAddress is the broadcast destination: every peer currently or
// later subscribed to the sending port. Values follow the ALSA sequencer
// address constants (client 254 = subscribers, port 253 = unknown).
var SubscribersAddress = SeqAddress{Client: 254, Port: 253}

// DeviceInfo describes one selectable MIDI output destination. Exactly one
// of Raw or Seq is meaningful, according to Kind. DeviceInfo values are
// produced by enumeration and own no host resources until opened.
type DeviceInfo struct {
	Name string     // Display name shown to the user.
	Kind DeviceKind // Which backend the address belongs to.
	Raw  RawAddress // Hardware address, valid when Kind == RawPortDevice.
	Seq  SeqAddress // Graph address, valid when Kind == SequencerPortDevice.
}
