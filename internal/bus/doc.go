// Package bus manages per-device logical connections over a shared
// transport.
//
// Ownership boundary:
// - host-side cport id allocation
// - the connection registry, indexed by host and interface
// - operation correlation ids and synchronous request/response
//
// Physical transports and device-class protocol drivers sit outside
// this package; they meet it at the Transport interface and at
// Connection.SendAndAwait. Hosts and interfaces must outlive the
// connections that reference them.
package bus
