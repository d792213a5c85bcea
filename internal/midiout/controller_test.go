package midiout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flk92/pcem/internal/logger"
	"github.com/flk92/pcem/sdk/contracts"
)

func TestController_InitOpensSelectedDevice(t *testing.T) {
	raw := multiPortRawHost()
	r := newTestRegistry(raw, &fakeSeqHost{}, 0)
	c := NewController(logger.NewNop())

	c.Init(r, 1)
	require.Len(t, raw.opened, 1)
	assert.Equal(t, contracts.RawAddress{Card: 1, Device: 2, Sub: 0}, raw.opened[0])

	c.Write(0xC0)
	c.Write(20)
	assert.Equal(t, []byte{0xC0, 20}, raw.conns[0].wrote)

	c.Close()
	assert.Equal(t, 1, raw.conns[0].closes)
}

func TestController_IndexOutOfRange(t *testing.T) {
	raw := multiPortRawHost()
	r := newTestRegistry(raw, &fakeSeqHost{}, 0)
	c := NewController(logger.NewNop())

	c.Init(r, r.Count())
	assert.Empty(t, raw.opened, "nothing opened for a bad index")

	c.Write(0x90) // silent no-op, never a fault
	c.Close()
}

func TestController_WriteWithoutInit(t *testing.T) {
	c := NewController(logger.NewNop())
	c.Write(0x90)
	c.Close()
}

func TestController_WriteAfterClose(t *testing.T) {
	raw := multiPortRawHost()
	r := newTestRegistry(raw, &fakeSeqHost{}, 0)
	c := NewController(logger.NewNop())

	c.Init(r, 0)
	c.Write(0xF8)
	c.Close()
	c.Write(0xF8)
	assert.Equal(t, []byte{0xF8}, raw.conns[0].wrote, "no writes after close")

	c.Close() // idempotent
	assert.Equal(t, 1, raw.conns[0].closes)
}

func TestController_FailedOpenStillSafe(t *testing.T) {
	raw := multiPortRawHost()
	raw.openErr = assert.AnError
	r := newTestRegistry(raw, &fakeSeqHost{}, 0)
	c := NewController(logger.NewNop())

	c.Init(r, 0)
	c.Write(0x90)
	c.Close()
}
