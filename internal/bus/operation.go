package bus

import (
	"context"
	"fmt"
	"time"

	"github.com/danmuck/gbhost/internal/observability"
)

// OpResult is the outcome of one request/response exchange.
type OpResult uint8

const (
	OpSuccess     OpResult = 0
	OpInvalid     OpResult = 1
	OpNoMemory    OpResult = 2
	OpInterrupted OpResult = 3
	OpTimeout     OpResult = 4
	OpCancelled   OpResult = 5
)

func (r OpResult) String() string {
	switch r {
	case OpSuccess:
		return "success"
	case OpInvalid:
		return "invalid"
	case OpNoMemory:
		return "no_memory"
	case OpInterrupted:
		return "interrupted"
	case OpTimeout:
		return "timeout"
	case OpCancelled:
		return "cancelled"
	}
	return "unknown"
}

type opOutcome struct {
	payload []byte
	err     error
}

// operation is one in-flight request awaiting its response.
type operation struct {
	id   uint16
	done chan opOutcome
}

func (o *operation) cancel() {
	o.done <- opOutcome{err: ErrConnectionClosed}
}

// SendAndAwait performs one synchronous operation: it draws a new
// correlation id, registers the operation as pending, hands the encoded
// request to the transport, and blocks until the matching response
// arrives via Host.Receive, the context is cancelled, the configured
// operation timeout fires, or the connection is torn down underneath
// the caller.
func (c *Connection) SendAndAwait(ctx context.Context, opType uint8, payload []byte) ([]byte, error) {
	start := c.host.clk.Now()

	c.pendingMu.Lock()
	if c.closed {
		c.pendingMu.Unlock()
		return nil, ErrConnectionClosed
	}
	op := &operation{id: c.NextOperationID(), done: make(chan opOutcome, 1)}
	c.pending[op.id] = op
	c.pendingMu.Unlock()

	msg := encodeMsg(op.id, opType&^ResponseTypeFlag, payload)
	if err := c.host.transport.Send(ctx, c.localCPort, msg); err != nil {
		c.unregister(op.id)
		observability.RecordOperation(OpInterrupted.String(), c.host.clk.Since(start))
		return nil, fmt.Errorf("bus: send failed on cport %d: %w", c.localCPort, err)
	}

	var timeout <-chan time.Time
	if c.host.timeout > 0 {
		timer := c.host.clk.Timer(c.host.timeout)
		defer timer.Stop()
		timeout = timer.C
	}

	select {
	case outcome := <-op.done:
		if outcome.err != nil {
			observability.RecordOperation(OpCancelled.String(), c.host.clk.Since(start))
			return nil, outcome.err
		}
		observability.RecordOperation(OpSuccess.String(), c.host.clk.Since(start))
		return outcome.payload, nil
	case <-ctx.Done():
		c.unregister(op.id)
		observability.RecordOperation(OpInterrupted.String(), c.host.clk.Since(start))
		return nil, ctx.Err()
	case <-timeout:
		c.unregister(op.id)
		observability.RecordOperation(OpTimeout.String(), c.host.clk.Since(start))
		return nil, fmt.Errorf("%w: id %d after %s", ErrOperationTimeout, op.id, c.host.timeout)
	}
}

func (c *Connection) unregister(id uint16) {
	c.pendingMu.Lock()
	delete(c.pending, id)
	c.pendingMu.Unlock()
}

// complete delivers a response payload to the pending operation with
// the given id. Late responses (already timed out, cancelled, or never
// sent) report ErrStaleOperation.
func (c *Connection) complete(id uint16, payload []byte) error {
	c.pendingMu.Lock()
	op, ok := c.pending[id]
	if ok {
		delete(c.pending, id)
	}
	c.pendingMu.Unlock()
	if !ok {
		return fmt.Errorf("%w: id %d", ErrStaleOperation, id)
	}
	op.done <- opOutcome{payload: payload}
	return nil
}
