// Package sink defines the input/output collaborator interfaces the
// dispatcher reads events from and writes emitted events to, plus an
// in-memory FIFO implementation for tests and the CLI demo.
package sink

import (
	"context"
	"errors"

	"github.com/karabiner-go/manipulator/internal/event"
)

// ErrClosed is returned by Recv/Send once the sink has been closed.
var ErrClosed = errors.New("sink: closed")

// Input is the collaborator the dispatcher reads incoming events from, in
// FIFO order.
type Input interface {
	Recv(ctx context.Context) (event.Event, error)
}

// Output is the collaborator the dispatcher writes emitted events to, in
// emission order.
type Output interface {
	Send(event.Event) error
}

// Channel is an in-memory FIFO implementation of both Input and Output,
// backed by a buffered Go channel.
type Channel struct {
	c      chan event.Event
	closed chan struct{}
}

// NewChannel creates a Channel with the given buffer capacity.
func NewChannel(capacity int) *Channel {
	return &Channel{
		c:      make(chan event.Event, capacity),
		closed: make(chan struct{}),
	}
}

// Push enqueues an event for a later Recv. It is the producer-side
// counterpart used by tests and the CLI's stdin reader; it blocks if the
// channel is full.
func (c *Channel) Push(e event.Event) error {
	select {
	case <-c.closed:
		return ErrClosed
	case c.c <- e:
		return nil
	}
}

func (c *Channel) Recv(ctx context.Context) (event.Event, error) {
	select {
	case e, ok := <-c.c:
		if !ok {
			return event.None, ErrClosed
		}
		return e, nil
	case <-c.closed:
		return event.None, ErrClosed
	case <-ctx.Done():
		return event.None, ctx.Err()
	}
}

func (c *Channel) Send(e event.Event) error {
	select {
	case <-c.closed:
		return ErrClosed
	case c.c <- e:
		return nil
	}
}

// Close shuts the channel down; subsequent Recv/Send/Push calls return
// ErrClosed.
func (c *Channel) Close() {
	select {
	case <-c.closed:
	default:
		close(c.closed)
	}
}
