package bus

import (
	"github.com/google/uuid"

	"github.com/danmuck/gbhost/internal/manifest"
)

// Interface is one remote interface reachable through a host: the far
// end of the connections created against it. Its declared cports come
// straight out of a parsed manifest; the surrounding system guarantees
// an interface outlives every connection that references it.
type Interface struct {
	ID      uuid.UUID
	IfaceID uint8

	host        *Host
	module      manifest.Module
	cports      []manifest.CPortDecl
	functions   []manifest.FunctionDecl
	connections map[uint16]*Connection // by local cport id
}

// RegisterInterface records a remote interface described by a parsed
// manifest on this host.
func (h *Host) RegisterInterface(ifaceID uint8, parsed manifest.Result) *Interface {
	intf := &Interface{
		ID:          uuid.New(),
		IfaceID:     ifaceID,
		host:        h,
		module:      parsed.Module,
		cports:      parsed.CPorts,
		functions:   parsed.Functions,
		connections: make(map[uint16]*Connection),
	}
	h.mu.Lock()
	h.interfaces[intf.ID] = intf
	h.mu.Unlock()

	h.logger.Info().
		Str("interface", intf.ID.String()).
		Uint16("vendor", parsed.Module.Vendor).
		Uint16("product", parsed.Module.Product).
		Int("cports", len(parsed.CPorts)).
		Msg("interface registered")
	return intf
}

// Module returns the parsed module identity behind this interface.
func (i *Interface) Module() manifest.Module {
	return i.module
}

// CPorts returns the cports the interface's manifest declared.
func (i *Interface) CPorts() []manifest.CPortDecl {
	return i.cports
}

// Functions returns the functions the interface's manifest declared.
func (i *Interface) Functions() []manifest.FunctionDecl {
	return i.functions
}

// ConnectionCount reports live connections on this interface.
func (i *Interface) ConnectionCount() int {
	i.host.mu.RLock()
	defer i.host.mu.RUnlock()
	return len(i.connections)
}
