package midiout

import (
	"github.com/flk92/pcem/internal/logger"
	"github.com/flk92/pcem/sdk/contracts"
)

func newTestRegistry(raw contracts.RawHost, seq contracts.SeqHost, max int) *Registry {
	return NewRegistry(&contracts.ClientOptions{
		Logger:     logger.NewNop(),
		ClientName: "test",
		RawHost:    raw,
		SeqHost:    seq,
		MaxDevices: max,
	})
}

type fakeRawConn struct {
	wrote  []byte
	drains int
	closes int
}

func (c *fakeRawConn) Write(b byte) error {
	c.wrote = append(c.wrote, b)
	return nil
}

func (c *fakeRawConn) Drain() error {
	c.drains++
	return nil
}

func (c *fakeRawConn) Close() error {
	c.closes++
	return nil
}

type fakeRawHost struct {
	cards    []contracts.CardInfo
	cardsErr error
	subs     map[int][]contracts.RawAddress
	subsErr  map[int]error
	openErr  error

	cardQueries int
	opened      []contracts.RawAddress
	conns       []*fakeRawConn
}

func (h *fakeRawHost) Cards() ([]contracts.CardInfo, error) {
	h.cardQueries++
	return h.cards, h.cardsErr
}

func (h *fakeRawHost) OutputSubdevices(card int) ([]contracts.RawAddress, error) {
	if err, ok := h.subsErr[card]; ok {
		return nil, err
	}
	return h.subs[card], nil
}

func (h *fakeRawHost) OpenPort(addr contracts.RawAddress) (contracts.RawConn, error) {
	if h.openErr != nil {
		return nil, h.openErr
	}
	h.opened = append(h.opened, addr)
	conn := &fakeRawConn{}
	h.conns = append(h.conns, conn)
	return conn, nil
}

type fakeSeqClient struct {
	portAddr      contracts.SeqAddress
	createPortErr error
	connectErr    error

	createdPorts int
	connects     [][2]contracts.SeqAddress
	sent         []contracts.Message
	drains       int
	closes       int
}

func (c *fakeSeqClient) CreatePort(name string, caps, typ uint) (contracts.SeqAddress, error) {
	if c.createPortErr != nil {
		return contracts.SeqAddress{}, c.createPortErr
	}
	c.createdPorts++
	return c.portAddr, nil
}

func (c *fakeSeqClient) Connect(sender, dest contracts.SeqAddress) error {
	if c.connectErr != nil {
		return c.connectErr
	}
	c.connects = append(c.connects, [2]contracts.SeqAddress{sender, dest})
	return nil
}

func (c *fakeSeqClient) Send(msg contracts.Message) error {
	c.sent = append(c.sent, msg)
	return nil
}

func (c *fakeSeqClient) Drain() error {
	c.drains++
	return nil
}

func (c *fakeSeqClient) Close() error {
	c.closes++
	return nil
}

type fakeSeqHost struct {
	ports      []contracts.SeqPortInfo
	portsErr   error
	createErr  error
	connectErr error
	portAddr   contracts.SeqAddress

	portQueries int
	clients     []*fakeSeqClient
}

func (h *fakeSeqHost) Ports() ([]contracts.SeqPortInfo, error) {
	h.portQueries++
	return h.ports, h.portsErr
}

func (h *fakeSeqHost) CreateClient(name string) (contracts.SeqClient, error) {
	if h.createErr != nil {
		return nil, h.createErr
	}
	client := &fakeSeqClient{portAddr: h.portAddr, connectErr: h.connectErr}
	h.clients = append(h.clients, client)
	return client, nil
}

// writablePort builds a SeqPortInfo the registry would accept.
func writablePort(client, port int, name string) contracts.SeqPortInfo {
	return contracts.SeqPortInfo{
		Addr:       contracts.SeqAddress{Client: client, Port: port},
		ClientName: name,
		Type:       contracts.PortTypeGenericMIDI,
		Caps:       contracts.PortCapWrite | contracts.PortCapSubsWrite,
	}
}
