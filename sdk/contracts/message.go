package contracts

// MIDI status byte categories used by the encoder and the hosts.
const (
	StatusNoteOff         byte = 0x80
	StatusNoteOn          byte = 0x90
	StatusKeyPressure     byte = 0xA0
	StatusControlChange   byte = 0xB0
	StatusProgramChange   byte = 0xC0
	StatusChannelPressure byte = 0xD0
	StatusPitchBend       byte = 0xE0

	StatusSysExStart byte = 0xF0
	StatusSysExEnd   byte = 0xF7

	StatusClock    byte = 0xF8
	StatusStart    byte = 0xFA
	StatusContinue byte = 0xFB
	StatusStop     byte = 0xFC
)

// Message is one fully assembled MIDI protocol message. For channel voice
// and system common messages Data holds the 0-2 data bytes; for system
// exclusive messages Status is StatusSysExStart and Data holds the complete
// frame including the leading 0xF0 and trailing 0xF7.
type Message struct {
	Status byte
	Data   []byte
}

// Channel returns the channel number for channel voice messages.
func (m Message) Channel() uint8 {
	return m.Status & 0x0F
}

// Bytes returns the full wire form of the message. SysEx frames already
// carry their delimiters in Data; everything else is the status byte
// followed by its data bytes.
func (m Message) Bytes() []byte {
	if m.IsSysEx() {
		return m.Data
	}
	return append([]byte{m.Status}, m.Data...)
}

// IsSysEx reports whether the message is a system exclusive frame.
func (m Message) IsSysEx() bool {
	return m.Status == StatusSysExStart
}

// WantsFlush reports whether the transport buffer must be drained
// immediately after sending this message. Program Change and Channel
// Pressure tolerate minor batching; everything else is latency-sensitive
// and is pushed out right away.
func (m Message) WantsFlush() bool {
	kind := m.Status & 0xF0
	return kind != StatusProgramChange && kind != StatusChannelPressure
}
