// Package manipulate implements the manipulator manager and the
// single-threaded event dispatcher that drives it.
package manipulate

import (
	"github.com/karabiner-go/manipulator/internal/condition"
	"github.com/karabiner-go/manipulator/internal/event"
	"github.com/karabiner-go/manipulator/internal/manipulator"
)

// Manager owns an ordered list of manipulators and routes events through
// them one at a time: the first manipulator that matches wins, and later
// manipulators never see that event. The manager exclusively owns its
// manipulators; callers must not retain or mutate them directly once
// pushed.
type Manager struct {
	manipulators []manipulator.Manipulator
	generation   int64
}

// NewManager returns an empty manager.
func NewManager() *Manager { return &Manager{} }

// PushBack appends a manipulator to the end of the authoring-order list.
func (m *Manager) PushBack(mp manipulator.Manipulator) {
	m.manipulators = append(m.manipulators, mp)
}

// Generation reports the invalidation epoch: it increments every time
// InvalidateManipulators runs, letting external callers holding a stale
// index detect that the manager has since been rebuilt.
func (m *Manager) Generation() int64 { return m.generation }

// Len reports how many manipulators the manager currently holds.
func (m *Manager) Len() int { return len(m.manipulators) }

// InvalidateManipulators winds every held manipulator down (emitting
// outstanding key-ups and cancellation side effects, in manipulator
// order) and drops them all. Used on every configuration reload so no
// mid-flight activation survives a rule change.
func (m *Manager) InvalidateManipulators() []event.Event {
	var out []event.Event
	for _, mp := range m.manipulators {
		out = append(out, mp.Invalidate()...)
	}
	m.manipulators = nil
	m.generation++
	return out
}

// Manipulate routes a single event through the ordered manipulator list.
// The first manipulator to consume the event wins; if none do, the
// original event is forwarded unchanged. Momentary switch events are
// first fanned out to every manipulator's SwitchEventObserver so a
// to_if_alone window elsewhere in the list is marked interrupted and any
// key-ups deferred with key_up_when: any are flushed, regardless of which
// manipulator (if any) ultimately matches this event.
func (m *Manager) Manipulate(ev event.Event, env *condition.Environment) []event.Event {
	var pending []event.Event
	if _, ok := ev.MomentarySwitch(); ok {
		for _, mp := range m.manipulators {
			if obs, ok := mp.(manipulator.SwitchEventObserver); ok {
				pending = append(pending, obs.NotifySwitchEvent(-1)...)
			}
		}
	}

	for _, mp := range m.manipulators {
		out, consumed := mp.Apply(ev, env)
		if consumed {
			return append(pending, out...)
		}
	}
	return append(pending, ev)
}

// HandleDeviceGrabbed notifies every manipulator that a device was
// grabbed. Device identity is passed as a parameter rather than carried
// on the event value itself: the wire encoding of device_grabbed has no
// payload, so round-tripping it through Event would silently lose the
// identity anyway.
func (m *Manager) HandleDeviceGrabbed(deviceAddress string) {
	// No manipulator variant currently tracks grab state beyond its
	// device_if precondition, evaluated per event; grabbing has no
	// wind-down obligations of its own.
}

// HandleDeviceUngrabbed winds down every manipulator's state tied to the
// given device and returns the resulting events (outstanding key-ups,
// cancellations).
func (m *Manager) HandleDeviceUngrabbed(deviceAddress string) []event.Event {
	var out []event.Event
	for _, mp := range m.manipulators {
		out = append(out, mp.HandleDeviceUngrabbed(deviceAddress)...)
	}
	return out
}

// HandleDeviceKeysAndPointingButtonsReleased winds down every
// manipulator's activations for the given device as though every
// physically held key/button had been released.
func (m *Manager) HandleDeviceKeysAndPointingButtonsReleased(deviceAddress string) []event.Event {
	var out []event.Event
	for _, mp := range m.manipulators {
		out = append(out, mp.HandleDeviceKeysAndPointingButtonsReleased(deviceAddress)...)
	}
	return out
}

// NeedsVirtualHIDPointing reports whether any held manipulator can ever
// emit a pointing event.
func (m *Manager) NeedsVirtualHIDPointing() bool {
	for _, mp := range m.manipulators {
		if mp.NeedsVirtualHIDPointing() {
			return true
		}
	}
	return false
}
