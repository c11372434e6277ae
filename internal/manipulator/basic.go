package manipulator

import (
	"time"

	"github.com/karabiner-go/manipulator/internal/clockx"
	"github.com/karabiner-go/manipulator/internal/condition"
	"github.com/karabiner-go/manipulator/internal/event"
	"github.com/karabiner-go/manipulator/internal/eventdef"
)

// Parameters holds the timing thresholds a basic manipulator inherits
// from its containing profile.
type Parameters struct {
	SimultaneousThresholdMilliseconds  int64
	ToIfAloneTimeoutMilliseconds       int64
	ToIfHeldDownThresholdMilliseconds  int64
	ToDelayedActionDelayMilliseconds   int64
}

// DefaultParameters returns the engine's documented defaults.
func DefaultParameters() Parameters {
	return Parameters{
		SimultaneousThresholdMilliseconds: 50,
		ToIfAloneTimeoutMilliseconds:      1000,
		ToIfHeldDownThresholdMilliseconds: 500,
		ToDelayedActionDelayMilliseconds:  500,
	}
}

// Basic implements the "basic" manipulator variant: a single from-event
// definition, a to-event list, and the optional to_if_alone/
// to_if_held_down/to_after_key_up/to_delayed_action lists.
type Basic struct {
	From              *eventdef.FromEventDefinition
	To                []*eventdef.ToEventDefinition
	ToIfAlone         []*eventdef.ToEventDefinition
	ToIfHeldDown      []*eventdef.ToEventDefinition
	ToAfterKeyUp      []*eventdef.ToEventDefinition
	ToDelayedInvoked  []*eventdef.ToEventDefinition
	ToDelayedCanceled []*eventdef.ToEventDefinition
	Conditions        []condition.Condition
	Parameters        Parameters

	Clock clockx.Clock
	// Emit delivers events produced asynchronously by a fired timer
	// (to_if_held_down, to_delayed_action) back into the pipeline. It is
	// invoked only on the dispatcher goroutine, matching the
	// single-threaded cooperative model.
	Emit func(event.Event)

	activations map[int64]*basicActivation
	nextID      int64

	// pendingKeyUps holds key-ups deferred by a to-event's
	// key_up_when: "any" rather than sent at physical release; they are
	// flushed the next time NotifySwitchEvent reports any switch event
	// passing through the pipeline.
	pendingKeyUps []event.Event
}

// NewBasic constructs a Basic manipulator. params is stored as given; no
// defaults are substituted for zero-valued timer parameters.
func NewBasic(from *eventdef.FromEventDefinition, to []*eventdef.ToEventDefinition, conditions []condition.Condition, params Parameters, clock clockx.Clock, emit func(event.Event)) *Basic {
	return &Basic{
		From:        from,
		To:          to,
		Conditions:  conditions,
		Parameters:  params,
		Clock:       clock,
		Emit:        emit,
		activations: make(map[int64]*basicActivation),
	}
}

type basicActivation struct {
	id     int64
	code   int64
	family string
	// interrupted is set once another switch event is observed while
	// this activation is live; to_if_alone never fires for an
	// interrupted activation even if its timer hasn't expired yet.
	interrupted     bool
	toIfAloneTimer  clockx.CancelFunc
	toHeldDownTimer clockx.CancelFunc
	toDelayedTimer  clockx.CancelFunc
	delayedPending  bool
	// toDownCount is how many leading elements of the main To list were
	// actually materialized on press: normally len(b.To), but truncated
	// if an element set Halt, stopping the to list's processing early.
	// Release mirrors exactly these elements, in reverse.
	toDownCount int
}

// NotifySwitchEvent is called by the manager for every momentary switch
// event routed through the pipeline (matched or not), so activations on
// other manipulators learn that a switch event interrupted their
// alone-window. A manipulator's own matching press for the same
// activation does not count as an interruption. It also flushes any
// key-ups a to-event deferred with key_up_when: "any", since the event
// that just passed through is exactly the "any" this manipulator was
// waiting on.
func (b *Basic) NotifySwitchEvent(exceptActivationID int64) []event.Event {
	for id, a := range b.activations {
		if id != exceptActivationID {
			a.interrupted = true
		}
	}
	pending := b.pendingKeyUps
	b.pendingKeyUps = nil
	return pending
}

func (b *Basic) Active() bool { return len(b.activations) > 0 }

func (b *Basic) NeedsVirtualHIDPointing() bool { return false }

// Apply matches momentary switch events only; other kinds pass through
// untouched, matching the engine's rule that a single manipulator only
// ever targets one event family via its from-definition.
func (b *Basic) Apply(ev event.Event, env *condition.Environment) ([]event.Event, bool) {
	ms, ok := ev.MomentarySwitch()
	if !ok {
		return nil, false
	}

	if ms.Direction == event.DirectionDown {
		return b.applyPress(ms, env)
	}
	return b.applyRelease(ms, env)
}

func (b *Basic) applyPress(ms event.MomentarySwitch, env *condition.Environment) ([]event.Event, bool) {
	if !b.From.Definition.MatchesFamily(ms) {
		return nil, false
	}
	if !eventdef.Satisfies(b.From.Mandatory, b.From.Optional, heldSet(env)) {
		return nil, false
	}
	if !condition.All(b.Conditions, env) {
		return nil, false
	}

	if existing := b.activationForCode(ms.Code); existing != nil {
		// Key-repeat: re-press without an intervening release. Re-emit
		// the to-list for elements flagged Repeat.
		var out []event.Event
		for _, t := range b.To {
			if t.Repeat {
				out = append(out, materializeDown(t)...)
			}
		}
		return out, true
	}

	b.nextID++
	a := &basicActivation{id: b.nextID, code: ms.Code, family: ms.Family}
	b.NotifySwitchEvent(a.id)
	b.activations[a.id] = a

	var out []event.Event
	for _, t := range b.To {
		out = append(out, materializeDown(t)...)
		a.toDownCount++
		if t.HoldDownMilliseconds > 0 {
			id := a.id
			def := t
			b.Clock.AfterFunc(time.Duration(t.HoldDownMilliseconds)*time.Millisecond, func() {
				if _, ok := b.activations[id]; ok {
					for _, e := range materializeUp(def) {
						b.Emit(e)
					}
				}
			})
		}
		if t.Halt {
			break
		}
	}

	if len(b.ToIfAlone) > 0 {
		id := a.id
		a.toIfAloneTimer = b.Clock.AfterFunc(time.Duration(b.Parameters.ToIfAloneTimeoutMilliseconds)*time.Millisecond, func() {
			act, ok := b.activations[id]
			if !ok {
				return
			}
			act.toIfAloneTimer = nil
		})
	}

	if len(b.ToIfHeldDown) > 0 {
		id := a.id
		a.toHeldDownTimer = b.Clock.AfterFunc(time.Duration(b.Parameters.ToIfHeldDownThresholdMilliseconds)*time.Millisecond, func() {
			if _, ok := b.activations[id]; !ok {
				return
			}
			for _, t := range b.ToIfHeldDown {
				for _, e := range b.materializeTap(t) {
					b.Emit(e)
				}
				if t.Halt {
					break
				}
			}
		})
	}

	if len(b.ToDelayedInvoked) > 0 || len(b.ToDelayedCanceled) > 0 {
		id := a.id
		a.delayedPending = true
		a.toDelayedTimer = b.Clock.AfterFunc(time.Duration(b.Parameters.ToDelayedActionDelayMilliseconds)*time.Millisecond, func() {
			act, ok := b.activations[id]
			if !ok || !act.delayedPending {
				return
			}
			act.delayedPending = false
			for _, t := range b.ToDelayedInvoked {
				for _, e := range b.materializeTap(t) {
					b.Emit(e)
				}
				if t.Halt {
					break
				}
			}
		})
	}

	return out, true
}

func (b *Basic) applyRelease(ms event.MomentarySwitch, env *condition.Environment) ([]event.Event, bool) {
	if !b.From.Definition.MatchesFamily(ms) {
		return nil, false
	}
	a := b.activationForCode(ms.Code)
	if a == nil {
		return nil, false
	}
	b.NotifySwitchEvent(a.id)

	var out []event.Event
	for i := a.toDownCount - 1; i >= 0; i-- {
		t := b.To[i]
		if !t.Lazy {
			out = b.appendOrDeferUp(out, t)
		}
	}

	if !a.interrupted && a.toIfAloneTimer != nil {
		for _, t := range b.ToIfAlone {
			out = append(out, b.materializeTap(t)...)
			if t.Halt {
				break
			}
		}
	}
	if a.toIfAloneTimer != nil {
		a.toIfAloneTimer()
	}
	if a.toHeldDownTimer != nil {
		a.toHeldDownTimer()
	}
	if a.toDelayedTimer != nil {
		a.toDelayedTimer()
		if a.delayedPending {
			for _, t := range b.ToDelayedCanceled {
				out = append(out, b.materializeTap(t)...)
				if t.Halt {
					break
				}
			}
		}
	}

	for _, t := range b.ToAfterKeyUp {
		out = append(out, b.materializeTap(t)...)
		if t.Halt {
			break
		}
	}

	delete(b.activations, a.id)
	return out, true
}

func (b *Basic) activationForCode(code int64) *basicActivation {
	for _, a := range b.activations {
		if a.code == code {
			return a
		}
	}
	return nil
}

// HandleDeviceUngrabbed and HandleDeviceKeysAndPointingButtonsReleased
// wind down all activations unconditionally: a basic manipulator does not
// track which physical device each activation belongs to beyond its
// device_if precondition, which is already evaluated per device at match
// time, so a device-scoped release event applies to every live activation.
func (b *Basic) HandleDeviceUngrabbed(deviceAddress string) []event.Event {
	return b.windDownAll()
}

func (b *Basic) HandleDeviceKeysAndPointingButtonsReleased(deviceAddress string) []event.Event {
	return b.windDownAll()
}

func (b *Basic) Invalidate() []event.Event {
	return b.windDownAll()
}

func (b *Basic) windDownAll() []event.Event {
	var out []event.Event
	for _, a := range b.activations {
		for i := a.toDownCount - 1; i >= 0; i-- {
			if !b.To[i].Lazy {
				out = b.appendOrDeferUp(out, b.To[i])
			}
		}
		if a.toIfAloneTimer != nil {
			a.toIfAloneTimer()
		}
		if a.toHeldDownTimer != nil {
			a.toHeldDownTimer()
		}
		if a.toDelayedTimer != nil {
			a.toDelayedTimer()
		}
	}
	b.activations = make(map[int64]*basicActivation)
	out = append(out, b.pendingKeyUps...)
	b.pendingKeyUps = nil
	return out
}

func heldSet(env *condition.Environment) eventdef.ModifierSet {
	set := eventdef.ModifierSet{}
	for flag, held := range env.HeldModifiers {
		if held {
			set[eventdef.ModifierFlag(flag)] = struct{}{}
		}
	}
	return set
}

// materializeDown produces the events a to-definition emits on
// activation: a key-down for each of its added modifiers, in a fixed
// deterministic order, followed by the definition's own event. Only
// momentary-switch definitions get their added modifiers wrapped around
// them; every other kind (shell_command, set_variable, …) fires once with
// no down/up pairing at all.
func materializeDown(t *eventdef.ToEventDefinition) []event.Event {
	ev, ok := t.Definition.ToEvent()
	if !ok {
		return nil
	}
	ms, ok := ev.MomentarySwitch()
	if !ok {
		return []event.Event{ev}
	}
	ms.Direction = event.DirectionDown

	var out []event.Event
	for _, mod := range t.ModifiersToAdd.Sorted() {
		if code, ok := eventdef.KeyCodeForModifier(mod); ok {
			out = append(out, event.NewMomentarySwitch(event.MomentarySwitch{Family: "key_code", Code: code, Direction: event.DirectionDown}))
		}
	}
	return append(out, event.NewMomentarySwitch(ms))
}

// materializeUp produces the release counterpart: the definition's own
// key-up (if it has one) followed by its added modifiers' key-ups, in the
// reverse of the order materializeDown applied them. Non-momentary-switch
// definitions have no release side and produce nothing.
func materializeUp(t *eventdef.ToEventDefinition) []event.Event {
	if t.Definition.Type != eventdef.TypeMomentarySwitch {
		return nil
	}
	ms := t.Definition.MomentarySwitch
	ms.Direction = event.DirectionUp
	out := []event.Event{event.NewMomentarySwitch(ms)}

	mods := t.ModifiersToAdd.Sorted()
	for i := len(mods) - 1; i >= 0; i-- {
		if code, ok := eventdef.KeyCodeForModifier(mods[i]); ok {
			out = append(out, event.NewMomentarySwitch(event.MomentarySwitch{Family: "key_code", Code: code, Direction: event.DirectionUp}))
		}
	}
	return out
}

// materializeTap synthesizes a self-contained down-then-up pair for
// to-lists that fire once with no physically held key to pair a release
// with: to_if_alone, to_if_held_down, to_after_key_up, and
// to_delayed_action. It still honors key_up_when on the synthesized
// release the same way the main to list's release does.
func (b *Basic) materializeTap(t *eventdef.ToEventDefinition) []event.Event {
	out := materializeDown(t)
	return b.appendOrDeferUp(out, t)
}

// appendOrDeferUp appends a to-definition's key-up(s) to out, unless the
// definition asks to defer them: key_up_when: "any" queues them to be
// flushed by NotifySwitchEvent the next time any switch event passes
// through the pipeline; key_up_when_milliseconds schedules them after the
// given delay instead of emitting them synchronously with the rest of
// this release.
func (b *Basic) appendOrDeferUp(out []event.Event, t *eventdef.ToEventDefinition) []event.Event {
	ups := materializeUp(t)
	if len(ups) == 0 {
		return out
	}
	switch {
	case t.KeyUpWhenAny:
		b.pendingKeyUps = append(b.pendingKeyUps, ups...)
	case t.KeyUpWhenMilliseconds != nil:
		delay := time.Duration(*t.KeyUpWhenMilliseconds) * time.Millisecond
		b.Clock.AfterFunc(delay, func() {
			for _, e := range ups {
				b.Emit(e)
			}
		})
	default:
		out = append(out, ups...)
	}
	return out
}
