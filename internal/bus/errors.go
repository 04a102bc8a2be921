package bus

import "errors"

var (
	ErrCPortExhausted   = errors.New("bus: no free cport id on host")
	ErrConnectionClosed = errors.New("bus: connection destroyed")
	ErrUnknownCPort     = errors.New("bus: no connection on cport")
	ErrShortMessage     = errors.New("bus: operation message shorter than header")
	ErrMessageSize      = errors.New("bus: operation message size mismatch")
	ErrOperationTimeout = errors.New("bus: operation timed out")
	ErrStaleOperation   = errors.New("bus: response for unknown operation id")
	ErrHostBusy         = errors.New("bus: host still has live connections")
)
