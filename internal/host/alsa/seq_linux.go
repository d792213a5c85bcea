//go:build linux
// +build linux

package alsa

import (
	"encoding/binary"
	"fmt"
	"unsafe"

	"go.uber.org/multierr"
	"golang.org/x/sys/unix"

	"github.com/flk92/pcem/sdk/contracts"
)

const seqDevice = "/dev/snd/seq"

// seqOutputBufSize is the event batch the client accumulates before it is
// forced out even without an explicit drain.
const seqOutputBufSize = 4096

// SeqHost implements contracts.SeqHost over the kernel sequencer.
type SeqHost struct {
	log contracts.Logger
}

// NewSeqHost creates the ALSA-backed sequencer host.
func NewSeqHost(log contracts.Logger) (contracts.SeqHost, error) {
	return &SeqHost{log: log}, nil
}

// Ports walks the sequencer graph: every client in kernel query order,
// every port of each client. No capability filtering happens here.
func (h *SeqHost) Ports() ([]contracts.SeqPortInfo, error) {
	fd, err := unix.Open(seqDevice, unix.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", seqDevice, err)
	}
	defer unix.Close(fd)

	var ports []contracts.SeqPortInfo
	var cinfo seqClientInfo
	cinfo.Client = -1
	for {
		if err := ioctl(fd, seqQueryNextCli, unsafe.Pointer(&cinfo)); err != nil {
			return ports, nil
		}
		clientName := cString(cinfo.Name[:])

		next := 0
		for next <= 0xFF {
			var pinfo seqPortInfo
			pinfo.Addr.Client = uint8(cinfo.Client)
			pinfo.Addr.Port = uint8(next)
			if err := ioctl(fd, seqQueryNextPort, unsafe.Pointer(&pinfo)); err != nil {
				break
			}
			ports = append(ports, contracts.SeqPortInfo{
				Addr: contracts.SeqAddress{
					Client: int(pinfo.Addr.Client),
					Port:   int(pinfo.Addr.Port),
				},
				ClientName: clientName,
				Type:       uint(pinfo.Type),
				Caps:       uint(pinfo.Capability),
			})
			next = int(pinfo.Addr.Port) + 1
		}
	}
}

// CreateClient opens a private sequencer handle and names its client.
func (h *SeqHost) CreateClient(name string) (contracts.SeqClient, error) {
	fd, err := unix.Open(seqDevice, unix.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", seqDevice, err)
	}

	var id int32
	if err := ioctl(fd, seqClientID, unsafe.Pointer(&id)); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("querying client id: %w", err)
	}

	var cinfo seqClientInfo
	cinfo.Client = id
	setCString(cinfo.Name[:], name)
	if err := ioctl(fd, seqSetClientInfo, unsafe.Pointer(&cinfo)); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("naming client %d: %w", id, err)
	}

	h.log.Debug("sequencer client allocated", h.log.Field().Int("client", int(id)))
	return &seqClient{log: h.log, fd: fd, id: int(id)}, nil
}

type seqClient struct {
	log contracts.Logger
	fd  int
	id  int

	port contracts.SeqAddress
	buf  []byte
}

func (c *seqClient) CreatePort(name string, caps, typ uint) (contracts.SeqAddress, error) {
	var pinfo seqPortInfo
	pinfo.Addr.Client = uint8(c.id)
	setCString(pinfo.Name[:], name)
	pinfo.Capability = uint32(caps)
	pinfo.Type = uint32(typ)
	if err := ioctl(c.fd, seqCreatePort, unsafe.Pointer(&pinfo)); err != nil {
		return contracts.SeqAddress{}, fmt.Errorf("creating port: %w", err)
	}
	c.port = contracts.SeqAddress{Client: int(pinfo.Addr.Client), Port: int(pinfo.Addr.Port)}
	return c.port, nil
}

func (c *seqClient) Connect(sender, dest contracts.SeqAddress) error {
	var sub seqPortSubscribe
	sub.Sender = seqAddr{Client: uint8(sender.Client), Port: uint8(sender.Port)}
	sub.Dest = seqAddr{Client: uint8(dest.Client), Port: uint8(dest.Port)}
	if err := ioctl(c.fd, seqSubscribePort, unsafe.Pointer(&sub)); err != nil {
		return fmt.Errorf("subscribing %d:%d -> %d:%d: %w",
			sender.Client, sender.Port, dest.Client, dest.Port, err)
	}
	return nil
}

// Send encodes one protocol message as a kernel sequencer event and queues
// it for direct delivery from the client's port to its subscribers.
// Messages with no sequencer representation are dropped.
func (c *seqClient) Send(msg contracts.Message) error {
	ev, ok := encodeEvent(msg, c.port)
	if !ok {
		return nil
	}
	c.buf = append(c.buf, ev...)
	if len(c.buf) >= seqOutputBufSize {
		return c.Drain()
	}
	return nil
}

// Drain hands every queued event record to the kernel.
func (c *seqClient) Drain() error {
	if len(c.buf) == 0 {
		return nil
	}
	_, err := unix.Write(c.fd, c.buf)
	c.buf = c.buf[:0]
	return err
}

func (c *seqClient) Close() error {
	err := multierr.Append(c.Drain(), unix.Close(c.fd))
	c.log.Debug("sequencer client released", c.log.Field().Int("client", c.id))
	return err
}

// encodeEvent builds the wire record for one message: a 28-byte event
// header, followed inline by the payload for variable-length events.
func encodeEvent(msg contracts.Message, source contracts.SeqAddress) ([]byte, bool) {
	ev := make([]byte, seqEventSize)
	ev[3] = seqQueueDirect
	ev[12] = uint8(source.Client)
	ev[13] = uint8(source.Port)
	ev[14] = uint8(contracts.SubscribersAddress.Client)
	ev[15] = uint8(contracts.SubscribersAddress.Port)
	data := ev[16:]

	channel := msg.Channel()
	d := func(i int) byte {
		if i < len(msg.Data) {
			return msg.Data[i]
		}
		return 0
	}

	switch msg.Status & 0xF0 {
	case contracts.StatusNoteOn:
		ev[0] = seqEventNoteOn
		data[0], data[1], data[2] = channel, d(0), d(1)
	case contracts.StatusNoteOff:
		ev[0] = seqEventNoteOff
		data[0], data[1], data[2] = channel, d(0), d(1)
	case contracts.StatusKeyPressure:
		ev[0] = seqEventKeyPress
		data[0], data[1], data[2] = channel, d(0), d(1)
	case contracts.StatusControlChange:
		ev[0] = seqEventController
		data[0] = channel
		binary.LittleEndian.PutUint32(data[4:], uint32(d(0)))
		binary.LittleEndian.PutUint32(data[8:], uint32(d(1)))
	case contracts.StatusProgramChange:
		ev[0] = seqEventPgmChange
		data[0] = channel
		binary.LittleEndian.PutUint32(data[8:], uint32(d(0)))
	case contracts.StatusChannelPressure:
		ev[0] = seqEventChanPress
		data[0] = channel
		binary.LittleEndian.PutUint32(data[8:], uint32(d(0)))
	case contracts.StatusPitchBend:
		ev[0] = seqEventPitchBend
		data[0] = channel
		bend := int32(d(0)) | int32(d(1))<<7
		binary.LittleEndian.PutUint32(data[8:], uint32(bend-8192))
	default:
		switch msg.Status {
		case contracts.StatusSysExStart:
			ev[0] = seqEventSysex
			ev[1] |= seqEventLengthVariable
			binary.LittleEndian.PutUint32(data[0:], uint32(len(msg.Data)))
			return append(ev, msg.Data...), true
		case contracts.StatusClock:
			ev[0] = seqEventClock
		case contracts.StatusStart:
			ev[0] = seqEventStart
		case contracts.StatusContinue:
			ev[0] = seqEventContinue
		case contracts.StatusStop:
			ev[0] = seqEventStop
		case 0xFE:
			ev[0] = seqEventSensing
		default:
			return nil, false
		}
	}
	return ev, true
}
