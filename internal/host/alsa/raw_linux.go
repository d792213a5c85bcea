//go:build linux
// +build linux

// Package alsa is the Linux host adapter. It speaks the ALSA kernel
// interfaces directly: card topology from procfs, raw MIDI probing through
// the control device ioctls, and a sequencer client on /dev/snd/seq.
package alsa

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/flk92/pcem/sdk/contracts"
)

const procCards = "/proc/asound/cards"

// RawHost implements contracts.RawHost over /dev/snd.
type RawHost struct {
	log contracts.Logger
}

// NewRawHost creates the ALSA-backed raw host.
func NewRawHost(log contracts.Logger) (contracts.RawHost, error) {
	return &RawHost{log: log}, nil
}

// Cards parses /proc/asound/cards. Lines look like
//
//	0 [PCH            ]: HDA-Intel - HDA Intel PCH
//
// where the text after " - " is the card's short name.
func (h *RawHost) Cards() ([]contracts.CardInfo, error) {
	data, err := os.ReadFile(procCards)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", procCards, err)
	}
	return parseCards(string(data)), nil
}

func parseCards(data string) []contracts.CardInfo {
	var cards []contracts.CardInfo
	for _, line := range strings.Split(data, "\n") {
		open := strings.IndexByte(line, '[')
		if open < 1 {
			continue
		}
		index, err := strconv.Atoi(strings.TrimSpace(line[:open]))
		if err != nil {
			continue
		}
		name := line
		if sep := strings.Index(line, " - "); sep >= 0 {
			name = strings.TrimSpace(line[sep+3:])
		}
		cards = append(cards, contracts.CardInfo{Card: index, Name: name})
	}
	return cards
}

// OutputSubdevices probes one card through its control device: every raw
// MIDI device in kernel order, every output-capable subdevice of each.
func (h *RawHost) OutputSubdevices(card int) ([]contracts.RawAddress, error) {
	ctl, err := unix.Open(fmt.Sprintf("/dev/snd/controlC%d", card), unix.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("opening control device for card %d: %w", card, err)
	}
	defer unix.Close(ctl)

	var addrs []contracts.RawAddress
	device := int32(-1)
	for {
		if err := ioctl(ctl, ctlRawmidiNextDevice, unsafe.Pointer(&device)); err != nil {
			return addrs, nil
		}
		if device < 0 {
			return addrs, nil
		}

		var info rawmidiInfo
		info.Device = uint32(device)
		info.Stream = rawmidiStreamOutput
		if err := ioctl(ctl, ctlRawmidiInfo, unsafe.Pointer(&info)); err != nil {
			continue
		}

		count := int(info.SubdevicesCount)
		for sub := 0; sub < count; sub++ {
			info.Subdevice = uint32(sub)
			if err := ioctl(ctl, ctlRawmidiInfo, unsafe.Pointer(&info)); err != nil {
				continue
			}
			addrs = append(addrs, contracts.RawAddress{Card: card, Device: int(device), Sub: sub})
		}
	}
}

// OpenPort opens /dev/snd/midiC<card>D<device> for writing, steering the
// kernel to the requested subdevice first.
func (h *RawHost) OpenPort(addr contracts.RawAddress) (contracts.RawConn, error) {
	ctl, err := unix.Open(fmt.Sprintf("/dev/snd/controlC%d", addr.Card), unix.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("opening control device for card %d: %w", addr.Card, err)
	}
	sub := int32(addr.Sub)
	prefErr := ioctl(ctl, ctlRawmidiPreferSubdevice, unsafe.Pointer(&sub))

	fd, err := unix.Open(fmt.Sprintf("/dev/snd/midiC%dD%d", addr.Card, addr.Device), unix.O_WRONLY, 0)
	unix.Close(ctl)
	if err != nil {
		return nil, fmt.Errorf("opening rawmidi %d:%d:%d: %w", addr.Card, addr.Device, addr.Sub, err)
	}
	if prefErr != nil {
		h.log.Debug("subdevice preference not honoured",
			h.log.Field().Int("sub", addr.Sub),
			h.log.Field().Error("error", prefErr))
	}
	return &rawConn{fd: fd}, nil
}

type rawConn struct {
	fd int
}

func (c *rawConn) Write(b byte) error {
	_, err := unix.Write(c.fd, []byte{b})
	return err
}

func (c *rawConn) Drain() error {
	arg := int32(rawmidiStreamOutput)
	return ioctl(c.fd, rawmidiDrain, unsafe.Pointer(&arg))
}

func (c *rawConn) Close() error {
	return unix.Close(c.fd)
}
