package bus

import (
	"context"
	"encoding/binary"
)

// Loopback is an in-process transport that answers every request with
// a response echoing the request payload. It stands in for a physical
// transport in tests and the demo CLI.
type Loopback struct {
	host *Host
}

func NewLoopback() *Loopback {
	return &Loopback{}
}

// Attach points the loopback back at the host it serves. NewHost takes
// the transport before the host exists, hence the two-step setup.
func (l *Loopback) Attach(h *Host) {
	l.host = h
}

func (l *Loopback) Send(ctx context.Context, cportID uint16, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	hdr, payload, err := decodeMsg(data)
	if err != nil {
		return err
	}

	resp := make([]byte, msgHeaderLen+len(payload))
	binary.LittleEndian.PutUint16(resp[0:2], uint16(len(resp)))
	binary.LittleEndian.PutUint16(resp[2:4], hdr.ID)
	resp[4] = hdr.Type | ResponseTypeFlag
	copy(resp[msgHeaderLen:], payload)

	// Completion arrives from a different goroutine, as it would from
	// a real transport's receive path.
	go func() {
		_ = l.host.Receive(cportID, resp)
	}()
	return nil
}
