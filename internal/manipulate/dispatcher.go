package manipulate

import (
	"context"
	"log/slog"

	"github.com/karabiner-go/manipulator/internal/condition"
	"github.com/karabiner-go/manipulator/internal/event"
	"github.com/karabiner-go/manipulator/internal/sink"
)

// Dispatcher owns a single goroutine that serializes incoming events and
// timer firings through a Manager: timer callbacks scheduled via
// internal/clockx post through timerCh, which this goroutine also
// selects on, so a fired timer never observes partial state from another
// event's dispatch (see the concurrency model in DESIGN.md).
type Dispatcher struct {
	manager *Manager
	input   sink.Input
	output  sink.Output
	env     *condition.Environment
	timerCh chan func() []event.Event
	log     *slog.Logger
}

// NewDispatcher builds a Dispatcher over the given manager, input/output
// sinks, and environment. The environment is owned by the dispatcher
// goroutine once Run starts; callers must not mutate it concurrently.
func NewDispatcher(manager *Manager, input sink.Input, output sink.Output, env *condition.Environment, log *slog.Logger) *Dispatcher {
	if log == nil {
		log = slog.Default()
	}
	return &Dispatcher{
		manager: manager,
		input:   input,
		output:  output,
		env:     env,
		timerCh: make(chan func() []event.Event, 64),
		log:     log,
	}
}

// PostTimer schedules fn to run on the dispatcher goroutine, serialized
// with incoming events. clockx timer callbacks should call this rather
// than touching the manager directly.
func (d *Dispatcher) PostTimer(fn func() []event.Event) {
	d.timerCh <- fn
}

// SetManager replaces the manager Run dispatches through. It exists for
// the two-phase construction NewDispatcherClock requires: a manager's
// manipulators need a Clock bound to their Dispatcher, but that
// Dispatcher needs a manager to dispatch into. Callers build a
// Dispatcher with a placeholder manager, derive its DispatcherClock,
// build the real manager with that clock, then call SetManager before
// Run. Must not be called concurrently with Run.
func (d *Dispatcher) SetManager(manager *Manager) {
	d.manager = manager
}

// Emit writes a single event, produced outside the normal press/release
// call stack (a fired to_if_held_down or to_delayed_action timer), to the
// output sink. It must only be called from the dispatcher goroutine —
// manipulator constructors wire this as their Emit callback, and
// DispatcherClock guarantees timer callbacks run there. Send errors are
// logged rather than propagated: a single undeliverable async emission
// shouldn't tear down the whole dispatch loop.
func (d *Dispatcher) Emit(ev event.Event) {
	if err := d.output.Send(ev); err != nil {
		d.log.Error("failed to send timer-emitted event", "error", err)
	}
}

// Run drains events from the input sink and timer firings from its
// internal channel until ctx is cancelled or the input sink reports an
// error. Every emitted event is written to the output sink in order. The
// input sink is read on its own goroutine so a blocking Recv can never
// delay a pending timer firing from reaching this goroutine's select.
func (d *Dispatcher) Run(ctx context.Context) error {
	type received struct {
		ev  event.Event
		err error
	}
	eventCh := make(chan received)
	go func() {
		for {
			ev, err := d.input.Recv(ctx)
			select {
			case eventCh <- received{ev, err}:
			case <-ctx.Done():
				return
			}
			if err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case fn := <-d.timerCh:
			for _, out := range fn() {
				if err := d.output.Send(out); err != nil {
					return err
				}
			}

		case r := <-eventCh:
			if r.err != nil {
				return r.err
			}
			outputs := d.manager.Manipulate(r.ev, d.env)
			for _, out := range outputs {
				if err := d.output.Send(out); err != nil {
					return err
				}
			}
		}
	}
}
