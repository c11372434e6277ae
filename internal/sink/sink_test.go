package sink

import (
	"context"
	"testing"

	"github.com/karabiner-go/manipulator/internal/event"
)

func TestChannelFIFOOrder(t *testing.T) {
	c := NewChannel(4)
	a := event.NewShellCommand("a")
	b := event.NewShellCommand("b")
	if err := c.Push(a); err != nil {
		t.Fatal(err)
	}
	if err := c.Push(b); err != nil {
		t.Fatal(err)
	}
	got1, err := c.Recv(context.Background())
	if err != nil || !got1.Equal(a) {
		t.Fatalf("expected a first, got %+v err=%v", got1, err)
	}
	got2, err := c.Recv(context.Background())
	if err != nil || !got2.Equal(b) {
		t.Fatalf("expected b second, got %+v err=%v", got2, err)
	}
}

func TestChannelCloseUnblocksRecv(t *testing.T) {
	c := NewChannel(1)
	c.Close()
	if _, err := c.Recv(context.Background()); err != ErrClosed {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
}
