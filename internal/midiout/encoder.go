package midiout

import "github.com/flk92/pcem/sdk/contracts"

// sysexBufSize bounds the system exclusive payload a single message may
// carry. Frames that outgrow it are dropped whole.
const sysexBufSize = 256

// eventEncoder converts a byte-at-a-time MIDI stream into discrete
// protocol messages. It tracks running status and partial message state
// across calls; realtime bytes pass through without disturbing either.
type eventEncoder struct {
	running byte // last channel voice status, for running status
	pending byte // status of the message being assembled, 0 if none
	need    int  // data bytes still expected for the pending message
	have    int
	data    [2]byte

	inSysex  bool
	overflow bool
	sysex    []byte
}

func newEventEncoder() *eventEncoder {
	return &eventEncoder{sysex: make([]byte, 0, sysexBufSize)}
}

// dataLen returns the number of data bytes that follow the given status
// byte per the MIDI message-length rules.
func dataLen(status byte) int {
	switch status & 0xF0 {
	case contracts.StatusNoteOff, contracts.StatusNoteOn,
		contracts.StatusKeyPressure, contracts.StatusControlChange,
		contracts.StatusPitchBend:
		return 2
	case contracts.StatusProgramChange, contracts.StatusChannelPressure:
		return 1
	}
	// System common.
	switch status {
	case 0xF1, 0xF3:
		return 1
	case 0xF2:
		return 2
	}
	return 0
}

// feed consumes one byte of the stream and reports whether it completed a
// message. Partial state is retained for the next call.
func (e *eventEncoder) feed(b byte) (contracts.Message, bool) {
	switch {
	case b >= contracts.StatusClock:
		// Realtime: completes immediately, may interleave anywhere.
		return contracts.Message{Status: b}, true

	case b >= 0x80:
		return e.feedStatus(b)

	default:
		return e.feedData(b)
	}
}

func (e *eventEncoder) feedStatus(b byte) (contracts.Message, bool) {
	// Any non-realtime status aborts a sysex frame in progress; the frame
	// is only emitted when properly terminated below.
	terminated := e.inSysex && b == contracts.StatusSysExEnd
	wasOverflow := e.overflow
	frame := e.sysex
	e.inSysex = false
	e.overflow = false

	switch {
	case b == contracts.StatusSysExStart:
		e.pending = 0
		e.running = 0
		e.inSysex = true
		e.sysex = append(e.sysex[:0], b)
		return contracts.Message{}, false

	case b == contracts.StatusSysExEnd:
		// EOX is system common: it clears running status and aborts any
		// partial message even when no frame was in progress.
		e.pending = 0
		e.running = 0
		e.have = 0
		e.sysex = e.sysex[:0]
		if !terminated || wasOverflow {
			return contracts.Message{}, false
		}
		frame = append(frame, b)
		out := make([]byte, len(frame))
		copy(out, frame)
		return contracts.Message{Status: contracts.StatusSysExStart, Data: out}, true

	case b < 0xF0:
		// Channel voice: becomes the running status.
		e.pending = b
		e.running = b
		e.need = dataLen(b)
		e.have = 0
		return contracts.Message{}, false

	default:
		// System common clears running status.
		e.running = 0
		e.need = dataLen(b)
		e.have = 0
		if e.need == 0 {
			e.pending = 0
			return contracts.Message{Status: b}, true
		}
		e.pending = b
		return contracts.Message{}, false
	}
}

func (e *eventEncoder) feedData(b byte) (contracts.Message, bool) {
	if e.inSysex {
		if len(e.sysex) >= sysexBufSize {
			e.overflow = true
			return contracts.Message{}, false
		}
		e.sysex = append(e.sysex, b)
		return contracts.Message{}, false
	}

	if e.pending == 0 {
		if e.running == 0 {
			// Stray data byte, nothing to attach it to.
			return contracts.Message{}, false
		}
		// Running status continuation.
		e.pending = e.running
		e.need = dataLen(e.running)
		e.have = 0
	}

	e.data[e.have] = b
	e.have++
	if e.have < e.need {
		return contracts.Message{}, false
	}

	msg := contracts.Message{Status: e.pending, Data: append([]byte(nil), e.data[:e.have]...)}
	e.pending = 0
	e.have = 0
	return msg, true
}
