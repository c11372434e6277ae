package manipulate

import (
	"context"
	"testing"
	"time"

	"github.com/karabiner-go/manipulator/internal/condition"
	"github.com/karabiner-go/manipulator/internal/event"
	"github.com/karabiner-go/manipulator/internal/sink"
)

func TestDispatcherRoutesEventsInOrder(t *testing.T) {
	m := NewManager()
	m.PushBack(newBasic(t, `{"key_code":"a"}`, `{"key_code":"x"}`))

	in := sink.NewChannel(4)
	out := sink.NewChannel(4)
	d := NewDispatcher(m, in, out, &condition.Environment{}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	go d.Run(ctx)

	press := event.NewMomentarySwitch(event.MomentarySwitch{Family: "key_code", Code: 4, Direction: event.DirectionDown})
	if err := in.Push(press); err != nil {
		t.Fatal(err)
	}

	got, err := out.Recv(context.Background())
	if err != nil {
		t.Fatalf("Recv: %v", err)
	}
	ms, _ := got.MomentarySwitch()
	if ms.Code != 27 {
		t.Errorf("unexpected dispatched output: %+v", ms)
	}
	cancel()
}

func TestDispatcherStopsOnContextCancel(t *testing.T) {
	m := NewManager()
	in := sink.NewChannel(1)
	out := sink.NewChannel(1)
	d := NewDispatcher(m, in, out, &condition.Environment{}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- d.Run(ctx) }()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("dispatcher did not stop after context cancellation")
	}
}
