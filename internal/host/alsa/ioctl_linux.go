//go:build linux
// +build linux

package alsa

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

// ioctl request encoding, as in asm-generic/ioctl.h.
const (
	iocWrite = 1
	iocRead  = 2
)

func ioc(dir, typ, nr, size uintptr) uintptr {
	return dir<<30 | size<<16 | typ<<8 | nr
}

func ioR(typ, nr, size uintptr) uintptr  { return ioc(iocRead, typ, nr, size) }
func ioW(typ, nr, size uintptr) uintptr  { return ioc(iocWrite, typ, nr, size) }
func ioWR(typ, nr, size uintptr) uintptr { return ioc(iocRead|iocWrite, typ, nr, size) }

func ioctl(fd int, req uintptr, arg unsafe.Pointer) error {
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), req, uintptr(arg))
	if errno != 0 {
		return errno
	}
	return nil
}

// Control device requests for raw MIDI probing (sound/asound.h, 'U').
var (
	ctlRawmidiNextDevice      = ioWR('U', 0x40, unsafe.Sizeof(int32(0)))
	ctlRawmidiInfo            = ioWR('U', 0x41, unsafe.Sizeof(rawmidiInfo{}))
	ctlRawmidiPreferSubdevice = ioW('U', 0x42, unsafe.Sizeof(int32(0)))
)

// Raw MIDI device requests ('W').
var rawmidiDrain = ioW('W', 0x31, unsafe.Sizeof(int32(0)))

// Sequencer requests (sound/asequencer.h, 'S').
var (
	seqClientID      = ioR('S', 0x01, unsafe.Sizeof(int32(0)))
	seqSetClientInfo = ioW('S', 0x11, unsafe.Sizeof(seqClientInfo{}))
	seqCreatePort    = ioWR('S', 0x20, unsafe.Sizeof(seqPortInfo{}))
	seqSubscribePort = ioW('S', 0x30, unsafe.Sizeof(seqPortSubscribe{}))
	seqQueryNextCli  = ioWR('S', 0x51, unsafe.Sizeof(seqClientInfo{}))
	seqQueryNextPort = ioWR('S', 0x52, unsafe.Sizeof(seqPortInfo{}))
)

const rawmidiStreamOutput = 0

// rawmidiInfo mirrors struct snd_rawmidi_info.
type rawmidiInfo struct {
	Device          uint32
	Subdevice       uint32
	Stream          int32
	Card            int32
	Flags           uint32
	ID              [64]byte
	Name            [80]byte
	Subname         [32]byte
	SubdevicesCount uint32
	SubdevicesAvail uint32
	Reserved        [64]byte
}

// seqAddr mirrors struct snd_seq_addr.
type seqAddr struct {
	Client uint8
	Port   uint8
}

// seqClientInfo mirrors struct snd_seq_client_info.
type seqClientInfo struct {
	Client          int32
	Type            int32
	Name            [64]byte
	Filter          uint32
	MulticastFilter [8]byte
	EventFilter     [32]byte
	NumPorts        int32
	EventLost       int32
	Card            int32
	Pid             int32
	Reserved        [56]byte
}

// seqPortInfo mirrors struct snd_seq_port_info.
type seqPortInfo struct {
	Addr         seqAddr
	Name         [64]byte
	_            [2]byte
	Capability   uint32
	Type         uint32
	MidiChannels int32
	MidiVoices   int32
	SynthVoices  int32
	ReadUse      int32
	WriteUse     int32
	Kernel       uintptr
	Flags        uint32
	TimeQueue    uint8
	Reserved     [59]byte
}

// seqPortSubscribe mirrors struct snd_seq_port_subscribe.
type seqPortSubscribe struct {
	Sender   seqAddr
	Dest     seqAddr
	Voices   uint32
	Flags    uint32
	Queue    uint8
	Pad      [3]byte
	Reserved [64]byte
}

// Sequencer event constants.
const (
	seqQueueDirect = 253

	seqEventLengthVariable = 0x04

	seqEventNoteOn     = 6
	seqEventNoteOff    = 7
	seqEventKeyPress   = 8
	seqEventController = 10
	seqEventPgmChange  = 11
	seqEventChanPress  = 12
	seqEventPitchBend  = 13
	seqEventStart      = 30
	seqEventContinue   = 31
	seqEventStop       = 32
	seqEventClock      = 36
	seqEventSensing    = 42
	seqEventSysex      = 130
)

// seqEventSize is sizeof(struct snd_seq_event): 4 header bytes, 8 byte
// timestamp, source and dest addresses, 12 byte data union.
const seqEventSize = 28

func cString(b []byte) string {
	for i, c := range b {
		if c == 0 {
			return string(b[:i])
		}
	}
	return string(b)
}

func setCString(dst []byte, s string) {
	n := copy(dst[:len(dst)-1], s)
	dst[n] = 0
}
