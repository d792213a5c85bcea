package midiout

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flk92/pcem/internal/logger"
	"github.com/flk92/pcem/sdk/contracts"
)

func seqDeviceInfo(client, port int) contracts.DeviceInfo {
	return contracts.DeviceInfo{
		Name: "alsa_seq(128:0): test",
		Kind: contracts.SequencerPortDevice,
		Seq:  contracts.SeqAddress{Client: client, Port: port},
	}
}

func newTestSequencer(host contracts.SeqHost) *sequencer {
	return newSequencer(logger.NewNop(), host, "test")
}

func TestSequencer_OpenConnectsDestination(t *testing.T) {
	host := &fakeSeqHost{portAddr: contracts.SeqAddress{Client: 130, Port: 0}}
	s := newTestSequencer(host)

	require.NoError(t, s.open(seqDeviceInfo(128, 0)))
	require.Len(t, host.clients, 1)

	client := host.clients[0]
	assert.Equal(t, 1, client.createdPorts)
	require.Len(t, client.connects, 1)
	assert.Equal(t, contracts.SeqAddress{Client: 130, Port: 0}, client.connects[0][0])
	assert.Equal(t, contracts.SeqAddress{Client: 128, Port: 0}, client.connects[0][1])
}

func TestSequencer_DoubleOpenAllocatesOnce(t *testing.T) {
	host := &fakeSeqHost{portAddr: contracts.SeqAddress{Client: 130, Port: 0}}
	s := newTestSequencer(host)

	require.NoError(t, s.open(seqDeviceInfo(128, 0)))
	require.NoError(t, s.open(seqDeviceInfo(128, 0)))
	assert.Len(t, host.clients, 1, "no leaked client handles")
}

func TestSequencer_DoubleCloseIsNoop(t *testing.T) {
	host := &fakeSeqHost{portAddr: contracts.SeqAddress{Client: 130, Port: 0}}
	s := newTestSequencer(host)

	require.NoError(t, s.open(seqDeviceInfo(128, 0)))
	require.NoError(t, s.close())
	assert.Equal(t, 1, host.clients[0].closes)
	require.NoError(t, s.close())
	assert.Equal(t, 1, host.clients[0].closes)
}

func TestSequencer_SelfLoopRewrittenToBroadcast(t *testing.T) {
	own := contracts.SeqAddress{Client: 130, Port: 0}
	host := &fakeSeqHost{portAddr: own}
	s := newTestSequencer(host)

	require.NoError(t, s.open(seqDeviceInfo(own.Client, own.Port)))
	assert.Empty(t, host.clients[0].connects, "no self-connection attempted")
	assert.Equal(t, contracts.SubscribersAddress, s.dest)
}

func TestSequencer_SubscribersPlaceholderKept(t *testing.T) {
	host := &fakeSeqHost{portAddr: contracts.SeqAddress{Client: 130, Port: 0}}
	s := newTestSequencer(host)

	info := seqDeviceInfo(contracts.SubscribersAddress.Client, contracts.SubscribersAddress.Port)
	require.NoError(t, s.open(info))
	assert.Empty(t, host.clients[0].connects)
	assert.Equal(t, contracts.SubscribersAddress, s.dest)
}

func TestSequencer_ConnectFailureNonFatal(t *testing.T) {
	host := &fakeSeqHost{
		portAddr:   contracts.SeqAddress{Client: 130, Port: 0},
		connectErr: errors.New("destination unreachable"),
	}
	s := newTestSequencer(host)

	require.NoError(t, s.open(seqDeviceInfo(128, 0)))
	assert.Empty(t, host.clients[0].connects)

	// Still open: writes are encoded and sent.
	for _, b := range []byte{0x90, 60, 100} {
		s.write(b)
	}
	assert.Len(t, host.clients[0].sent, 1)
}

func TestSequencer_PortCreateFailureRollsBack(t *testing.T) {
	host := &fakeSeqHost{portAddr: contracts.SeqAddress{Client: 130, Port: 0}}
	// The wrapper makes the first CreatePort call fail.
	failing := &failingPortSeqHost{inner: host}
	s := newTestSequencer(failing)

	err := s.open(seqDeviceInfo(128, 0))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrOpenFailure)
	require.Len(t, host.clients, 1)
	assert.Equal(t, 1, host.clients[0].closes, "client released on rollback")

	// A later open starts from scratch.
	require.NoError(t, s.open(seqDeviceInfo(128, 0)))
	assert.Len(t, host.clients, 2)
}

// failingPortSeqHost makes the first CreatePort call fail.
type failingPortSeqHost struct {
	inner *fakeSeqHost
	fail  bool
}

func (h *failingPortSeqHost) Ports() ([]contracts.SeqPortInfo, error) {
	return h.inner.Ports()
}

func (h *failingPortSeqHost) CreateClient(name string) (contracts.SeqClient, error) {
	client, err := h.inner.CreateClient(name)
	if err != nil {
		return nil, err
	}
	if fc, ok := client.(*fakeSeqClient); ok && !h.fail {
		h.fail = true
		fc.createPortErr = errors.New("port refused")
	}
	return client, nil
}

func TestSequencer_FlushPolicy(t *testing.T) {
	host := &fakeSeqHost{portAddr: contracts.SeqAddress{Client: 130, Port: 0}}
	s := newTestSequencer(host)
	require.NoError(t, s.open(seqDeviceInfo(128, 0)))
	client := host.clients[0]

	for _, b := range []byte{0x90, 60, 100} { // note on: latency-sensitive
		s.write(b)
	}
	require.Len(t, client.sent, 1)
	assert.Equal(t, 1, client.drains, "note on forces a drain")

	for _, b := range []byte{0xC0, 20} { // program change: batched
		s.write(b)
	}
	require.Len(t, client.sent, 2)
	assert.Equal(t, 1, client.drains, "program change does not drain")

	for _, b := range []byte{0xD0, 64} { // channel pressure: batched
		s.write(b)
	}
	require.Len(t, client.sent, 3)
	assert.Equal(t, 1, client.drains)

	for _, b := range []byte{0xB0, 7, 127} { // control change: drains again
		s.write(b)
	}
	require.Len(t, client.sent, 4)
	assert.Equal(t, 2, client.drains)
}

func TestSequencer_WriteWhileClosedIsNoop(t *testing.T) {
	host := &fakeSeqHost{portAddr: contracts.SeqAddress{Client: 130, Port: 0}}
	s := newTestSequencer(host)

	s.write(0x90)
	s.write(60)
	s.write(100)
	assert.Empty(t, host.clients)
}

func TestSequencer_CloseDrainsPending(t *testing.T) {
	host := &fakeSeqHost{portAddr: contracts.SeqAddress{Client: 130, Port: 0}}
	s := newTestSequencer(host)
	require.NoError(t, s.open(seqDeviceInfo(128, 0)))
	client := host.clients[0]

	for _, b := range []byte{0xC0, 20} { // left batched
		s.write(b)
	}
	require.NoError(t, s.close())
	assert.Equal(t, 1, client.drains, "close drains the batch")
	assert.Equal(t, 1, client.closes)
}

func TestSequencer_OpenFailureStaysClosed(t *testing.T) {
	host := &fakeSeqHost{createErr: errors.New("sequencer service down")}
	s := newTestSequencer(host)

	err := s.open(seqDeviceInfo(128, 0))
	require.Error(t, err)
	s.write(0x90) // must not panic
	require.NoError(t, s.close())
}
