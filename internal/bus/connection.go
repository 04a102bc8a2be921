package bus

import (
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/danmuck/gbhost/internal/observability"
)

// Protocol names the device-class protocol spoken over a connection.
// The values track the manifest function classes; the semantics behind
// them live in protocol drivers outside this core.
type Protocol uint8

const (
	ProtocolControl Protocol = 0x00
	ProtocolUSB     Protocol = 0x01
	ProtocolGPIO    Protocol = 0x02
	ProtocolSPI     Protocol = 0x03
	ProtocolUART    Protocol = 0x04
	ProtocolPWM     Protocol = 0x05
	ProtocolI2S     Protocol = 0x06
	ProtocolI2C     Protocol = 0x07
	ProtocolSDIO    Protocol = 0x08
	ProtocolHID     Protocol = 0x09
	ProtocolVendor  Protocol = 0xff
)

// Connection is one bidirectional logical channel between a local cport
// and a cport on a remote interface. It holds its host and interface by
// stable id; those must outlive the connection.
type Connection struct {
	hostID  uuid.UUID
	ifaceID uuid.UUID

	host  *Host
	iface *Interface

	localCPort  uint16
	remoteCPort uint16
	protocol    Protocol

	opCycle atomic.Uint32

	pendingMu sync.Mutex
	pending   map[uint16]*operation
	closed    bool
}

// CreateConnection binds a new connection between a freshly allocated
// local cport id and the given remote cport on the interface. The
// first connection on a fresh host gets local id 0. On allocator
// exhaustion nothing is registered and ErrCPortExhausted is returned.
func (h *Host) CreateConnection(intf *Interface, remoteCPort uint16, protocol Protocol) (*Connection, error) {
	h.mu.Lock()
	id, err := h.cports.allocate()
	if err != nil {
		h.mu.Unlock()
		return nil, err
	}

	conn := &Connection{
		hostID:      h.ID,
		ifaceID:     intf.ID,
		host:        h,
		iface:       intf,
		localCPort:  id,
		remoteCPort: remoteCPort,
		protocol:    protocol,
		pending:     make(map[uint16]*operation),
	}
	h.connections[id] = conn
	intf.connections[id] = conn
	live := len(h.connections)
	h.mu.Unlock()

	observability.RecordCPortAllocation()
	observability.SetActiveConnections(h.ID.String(), live)
	h.logger.Info().
		Uint16("local_cport", id).
		Uint16("remote_cport", remoteCPort).
		Uint8("protocol", uint8(protocol)).
		Msg("connection created")
	return conn, nil
}

// Destroy tears the connection down: it leaves both registry indexes
// and returns its local cport id to the pool as one unit under the
// host lock, so a concurrent create can never observe two live
// connections sharing an id. Destroying with operations still pending
// is a caller contract violation; it is logged and the destroy
// proceeds, completing each abandoned operation as cancelled.
func (c *Connection) Destroy() {
	h := c.host

	h.mu.Lock()
	if h.connections[c.localCPort] != c {
		// Already destroyed.
		h.mu.Unlock()
		return
	}
	delete(h.connections, c.localCPort)
	delete(c.iface.connections, c.localCPort)
	if !h.cports.free(c.localCPort) {
		h.logger.Warn().Uint16("local_cport", c.localCPort).Msg("freed cport id was not allocated")
	}
	live := len(h.connections)
	h.mu.Unlock()

	c.pendingMu.Lock()
	c.closed = true
	abandoned := len(c.pending)
	for id, op := range c.pending {
		delete(c.pending, id)
		op.cancel()
	}
	c.pendingMu.Unlock()

	if abandoned > 0 {
		h.logger.Warn().
			Uint16("local_cport", c.localCPort).
			Int("pending", abandoned).
			Msg("connection destroyed with pending operations")
	}

	observability.RecordCPortFree()
	observability.SetActiveConnections(h.ID.String(), live)
	h.logger.Info().Uint16("local_cport", c.localCPort).Msg("connection destroyed")
}

// NextOperationID returns the next request correlation id. Ids are
// unique within one wraparound window of 65536 generations; they are
// correlation keys, not lifetime-unique handles.
func (c *Connection) NextOperationID() uint16 {
	return uint16(c.opCycle.Add(1))
}

// LocalCPort is the host-side cport id this connection occupies.
func (c *Connection) LocalCPort() uint16 {
	return c.localCPort
}

// RemoteCPort is the cport id the remote interface declared.
func (c *Connection) RemoteCPort() uint16 {
	return c.remoteCPort
}

func (c *Connection) Protocol() Protocol {
	return c.protocol
}

// HostID identifies the owning host without pinning it.
func (c *Connection) HostID() uuid.UUID {
	return c.hostID
}

// InterfaceID identifies the remote interface without pinning it.
func (c *Connection) InterfaceID() uuid.UUID {
	return c.ifaceID
}

// PendingOperations reports requests still awaiting their response.
func (c *Connection) PendingOperations() int {
	c.pendingMu.Lock()
	defer c.pendingMu.Unlock()
	return len(c.pending)
}
