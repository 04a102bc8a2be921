package bus

import (
	"context"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/danmuck/gbhost/internal/observability"
)

// Transport carries encoded operation messages to the far side of the
// physical link. Implementations live outside this package; loopback.go
// ships one for tests and demos.
type Transport interface {
	Send(ctx context.Context, cportID uint16, data []byte) error
}

// Config tunes one host device.
type Config struct {
	// CPortMax bounds the local cport id space; 0 means DefaultCPortMax.
	CPortMax uint16
	// OperationTimeout caps a synchronous operation's wait for its
	// response; 0 means no deadline beyond the caller's context.
	OperationTimeout time.Duration
	// Clock defaults to the wall clock; tests inject a mock.
	Clock clock.Clock
}

// Host is one host-side bus device: it owns the cport id space and the
// registry of live connections. All registry mutation is serialized
// under the host's lock; unrelated hosts never contend.
type Host struct {
	ID uuid.UUID

	mu          sync.RWMutex
	cports      *cportMap
	connections map[uint16]*Connection
	interfaces  map[uuid.UUID]*Interface

	transport Transport
	clk       clock.Clock
	timeout   time.Duration
	logger    zerolog.Logger
}

func NewHost(cfg Config, transport Transport, logger zerolog.Logger) *Host {
	max := cfg.CPortMax
	if max == 0 {
		max = DefaultCPortMax
	}
	clk := cfg.Clock
	if clk == nil {
		clk = clock.New()
	}
	id := uuid.New()
	return &Host{
		ID:          id,
		cports:      newCPortMap(max),
		connections: make(map[uint16]*Connection),
		interfaces:  make(map[uuid.UUID]*Interface),
		transport:   transport,
		clk:         clk,
		timeout:     cfg.OperationTimeout,
		logger:      logger.With().Str("host", id.String()).Logger(),
	}
}

// Receive dispatches one inbound message to the connection listening on
// the given local cport id. Responses complete their pending operation;
// anything else is dropped with a log line (inbound requests belong to
// protocol drivers outside this core).
func (h *Host) Receive(cportID uint16, data []byte) error {
	h.mu.RLock()
	conn := h.connections[cportID]
	h.mu.RUnlock()
	if conn == nil {
		return ErrUnknownCPort
	}

	hdr, payload, err := decodeMsg(data)
	if err != nil {
		return err
	}
	if hdr.Type&ResponseTypeFlag == 0 {
		h.logger.Debug().
			Uint16("cport", cportID).
			Uint8("type", hdr.Type).
			Msg("dropping inbound request, no protocol driver attached")
		return nil
	}
	return conn.complete(hdr.ID, payload)
}

// ConnectionCount reports live connections, for introspection.
func (h *Host) ConnectionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.connections)
}

// CPortsUsed reports allocator occupancy, for introspection.
func (h *Host) CPortsUsed() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.cports.used()
}

// Connections snapshots the live connection set.
func (h *Host) Connections() []*Connection {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]*Connection, 0, len(h.connections))
	for _, c := range h.connections {
		out = append(out, c)
	}
	return out
}

// Interfaces snapshots the registered interfaces.
func (h *Host) Interfaces() []*Interface {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]*Interface, 0, len(h.interfaces))
	for _, intf := range h.interfaces {
		out = append(out, intf)
	}
	return out
}

// Shutdown refuses to tear down a host that still has live
// connections; callers destroy those first.
func (h *Host) Shutdown() error {
	h.mu.RLock()
	live := len(h.connections)
	h.mu.RUnlock()
	if live > 0 {
		h.logger.Warn().Int("connections", live).Msg("shutdown refused")
		return ErrHostBusy
	}
	observability.SetActiveConnections(h.ID.String(), 0)
	h.logger.Info().Msg("host shut down")
	return nil
}
