package contracts

// Sequencer port capability and type bits, matching the ALSA sequencer
// values so host adapters can pass them through unchanged.
const (
	PortCapRead      uint = 1 << 0
	PortCapWrite     uint = 1 << 1
	PortCapSubsRead  uint = 1 << 5
	PortCapSubsWrite uint = 1 << 6

	PortTypeGenericMIDI uint = 1 << 1
	PortTypeApplication uint = 1 << 20
)

// CardInfo identifies one host sound card.
type CardInfo struct {
	Card int    // Host-assigned card index.
	Name string // Short human-readable card name.
}

// SeqPortInfo describes one sequencer graph port as reported by the host.
type SeqPortInfo struct {
	Addr       SeqAddress
	ClientName string
	Type       uint // PortType* bitmask.
	Caps       uint // PortCap* bitmask.
}

// RawConn is an open raw MIDI output port.
type RawConn interface {
	// Write transmits a single protocol byte synchronously.
	Write(b byte) error
	// Drain blocks until all buffered bytes have been handed to the device.
	Drain() error
	Close() error
}

// RawHost is the capability surface for flat, hardware-addressed MIDI
// ports: enumeration of cards and output subdevices, and port opening.
type RawHost interface {
	// Cards lists host sound cards in host-assigned order.
	Cards() ([]CardInfo, error)
	// OutputSubdevices lists the output-capable raw MIDI addresses of one
	// card, in host-assigned (device, subdevice) order.
	OutputSubdevices(card int) ([]RawAddress, error)
	// OpenPort opens the port at the given hardware address for output.
	OpenPort(addr RawAddress) (RawConn, error)
}

// SeqClient is an allocated sequencer client with exactly one output port.
type SeqClient interface {
	// CreatePort creates the client's output port and returns its graph
	// address.
	CreatePort(name string, caps, typ uint) (SeqAddress, error)
	// Connect subscribes the sender port to the destination port.
	Connect(sender, dest SeqAddress) error
	// Send queues one message addressed from the client's own port to all
	// current subscribers, stamped "now", for direct delivery.
	Send(msg Message) error
	// Drain flushes every queued event to the host.
	Drain() error
	// Close releases the client and its port.
	Close() error
}

// SeqHost is the capability surface for the sequencer graph: port
// enumeration and client allocation.
type SeqHost interface {
	// Ports lists every graph port in host query order, unfiltered.
	Ports() ([]SeqPortInfo, error)
	// CreateClient allocates a new client with the given name.
	CreateClient(name string) (SeqClient, error)
}

// Settings is the configuration collaborator. The only value this layer
// reads is the machine-scoped selected MIDI device index.
type Settings interface {
	// MachineInt returns the machine-scoped integer setting for key, or
	// def when the key is absent.
	MachineInt(key string, def int) int
}
