// Package manipulator implements the basic and mouse_basic manipulator
// variants: the units that match an incoming event against a rule and
// produce output events.
package manipulator

import (
	"github.com/karabiner-go/manipulator/internal/condition"
	"github.com/karabiner-go/manipulator/internal/event"
)

// Manipulator is the common capability surface the manager dispatches
// through. Implementations run entirely on the dispatcher goroutine; none
// of their state needs its own locking (see internal/manipulate.Dispatcher).
type Manipulator interface {
	// Apply attempts to match ev. If it matches, outputs holds the
	// events produced and consumed is true, meaning the manager must not
	// offer ev to any later manipulator. If it doesn't match, outputs is
	// nil and consumed is false.
	Apply(ev event.Event, env *condition.Environment) (outputs []event.Event, consumed bool)

	// HandleDeviceUngrabbed winds down any state this manipulator holds
	// for the given device, returning any events that wind-down
	// produces (e.g. outstanding key-ups).
	HandleDeviceUngrabbed(deviceAddress string) []event.Event

	// HandleDeviceKeysAndPointingButtonsReleased winds down all
	// activations for the given device as though every physically held
	// key/button had been released.
	HandleDeviceKeysAndPointingButtonsReleased(deviceAddress string) []event.Event

	// NeedsVirtualHIDPointing reports whether this manipulator can ever
	// emit pointing events, so the manager can report whether the
	// virtual pointing device must be connected.
	NeedsVirtualHIDPointing() bool

	// Active reports whether this manipulator currently holds any live
	// activations.
	Active() bool

	// Invalidate winds down every live activation (emitting outstanding
	// key-ups and cancellation side effects) and discards them. Called
	// by the manager when the manipulator is being dropped.
	Invalidate() []event.Event
}

// SwitchEventObserver is implemented by manipulator variants whose
// activations need to learn that a switch event (matched or not) passed
// through the manager, so a to_if_alone window can be marked interrupted
// and any "key_up_when: any" key-ups still owed can be flushed. The
// manager type-asserts for this rather than requiring every Manipulator to
// implement it.
type SwitchEventObserver interface {
	NotifySwitchEvent(exceptActivationID int64) []event.Event
}
