package event

import (
	"hash/fnv"
	"reflect"
)

// Event is a value-typed, hashable, equality-comparable tagged union of
// everything that can flow through the manipulator pipeline: physical key
// and pointing actions, synthetic actions a manipulator produces, and
// system notifications the environment reports back to manipulators.
//
// Event is deliberately immutable after construction; every New*
// constructor returns a new value.
type Event struct {
	kind    Kind
	payload any
}

// None is the zero Event, used as a sentinel "no event" value.
var None = Event{kind: KindNone}

// Kind reports the variant this Event carries.
func (e Event) Kind() Kind { return e.kind }

// NewMomentarySwitch builds a KindMomentarySwitch event.
func NewMomentarySwitch(p MomentarySwitch) Event {
	return Event{kind: KindMomentarySwitch, payload: p}
}

// MomentarySwitch returns the payload and true if e is a momentary switch
// event.
func (e Event) MomentarySwitch() (MomentarySwitch, bool) {
	p, ok := e.payload.(MomentarySwitch)
	return p, ok
}

// NewPointingMotion builds a KindPointingMotion event.
func NewPointingMotion(p PointingMotion) Event {
	return Event{kind: KindPointingMotion, payload: p}
}

func (e Event) PointingMotion() (PointingMotion, bool) {
	p, ok := e.payload.(PointingMotion)
	return p, ok
}

// NewShellCommand builds a KindShellCommand event.
func NewShellCommand(cmd string) Event {
	return Event{kind: KindShellCommand, payload: ShellCommand(cmd)}
}

func (e Event) ShellCommand() (string, bool) {
	p, ok := e.payload.(ShellCommand)
	return string(p), ok
}

// NewSelectInputSource builds a KindSelectInputSource event.
func NewSelectInputSource(specs InputSourceSpecifiers) Event {
	return Event{kind: KindSelectInputSource, payload: specs}
}

func (e Event) SelectInputSource() (InputSourceSpecifiers, bool) {
	p, ok := e.payload.(InputSourceSpecifiers)
	return p, ok
}

// NewSetVariable builds a KindSetVariable event.
func NewSetVariable(p SetVariable) Event {
	return Event{kind: KindSetVariable, payload: p}
}

func (e Event) SetVariable() (SetVariable, bool) {
	p, ok := e.payload.(SetVariable)
	return p, ok
}

// NewNotificationMessage builds a KindSetNotificationMessage event.
func NewNotificationMessage(p NotificationMessage) Event {
	return Event{kind: KindSetNotificationMessage, payload: p}
}

func (e Event) NotificationMessage() (NotificationMessage, bool) {
	p, ok := e.payload.(NotificationMessage)
	return p, ok
}

// NewMouseKey builds a KindMouseKey event.
func NewMouseKey(p MouseKey) Event {
	return Event{kind: KindMouseKey, payload: p}
}

func (e Event) MouseKey() (MouseKey, bool) {
	p, ok := e.payload.(MouseKey)
	return p, ok
}

// NewStickyModifier builds a KindStickyModifier event.
func NewStickyModifier(p StickyModifier) Event {
	return Event{kind: KindStickyModifier, payload: p}
}

func (e Event) StickyModifier() (StickyModifier, bool) {
	p, ok := e.payload.(StickyModifier)
	return p, ok
}

// NewSoftwareFunction builds a KindSoftwareFunction event.
func NewSoftwareFunction(p SoftwareFunction) Event {
	return Event{kind: KindSoftwareFunction, payload: p}
}

func (e Event) SoftwareFunction() (SoftwareFunction, bool) {
	p, ok := e.payload.(SoftwareFunction)
	return p, ok
}

// NewFrontmostApplicationChanged builds a notification event reporting the
// currently-active application.
func NewFrontmostApplicationChanged(p FrontmostApplication) Event {
	return Event{kind: KindFrontmostApplicationChanged, payload: p}
}

func (e Event) FrontmostApplicationChanged() (FrontmostApplication, bool) {
	p, ok := e.payload.(FrontmostApplication)
	return p, ok
}

// NewInputSourceChanged builds a notification event reporting the active
// input source.
func NewInputSourceChanged(p InputSourceProperties) Event {
	return Event{kind: KindInputSourceChanged, payload: p}
}

func (e Event) InputSourceChanged() (InputSourceProperties, bool) {
	p, ok := e.payload.(InputSourceProperties)
	return p, ok
}

// NewSystemPreferencesPropertiesChanged builds a notification event.
func NewSystemPreferencesPropertiesChanged(p SystemPreferencesProperties) Event {
	return Event{kind: KindSystemPreferencesPropertiesChanged, payload: p}
}

func (e Event) SystemPreferencesPropertiesChanged() (SystemPreferencesProperties, bool) {
	p, ok := e.payload.(SystemPreferencesProperties)
	return p, ok
}

// NewVirtualHIDDevicesStateChanged builds a notification event.
func NewVirtualHIDDevicesStateChanged(p VirtualHIDDevicesState) Event {
	return Event{kind: KindVirtualHIDDevicesStateChanged, payload: p}
}

func (e Event) VirtualHIDDevicesStateChanged() (VirtualHIDDevicesState, bool) {
	p, ok := e.payload.(VirtualHIDDevicesState)
	return p, ok
}

// The five signal-only kinds below carry no payload on the wire. Device
// identity for the grab/ungrab pair is plumbed separately by the caller
// (see manipulate.Manager), never stored on the Event itself, so these
// constructors take no arguments.

func NewStopKeyboardRepeat() Event { return Event{kind: KindStopKeyboardRepeat} }

func NewDeviceKeysAndPointingButtonsReleased() Event {
	return Event{kind: KindDeviceKeysAndPointingButtonsReleased}
}

func NewDeviceGrabbed() Event   { return Event{kind: KindDeviceGrabbed} }
func NewDeviceUngrabbed() Event { return Event{kind: KindDeviceUngrabbed} }

func NewPointingDeviceEventFromEventTap() Event {
	return Event{kind: KindPointingDeviceEventFromEventTap}
}

// IsKeyDown reports whether a momentary-switch event is a press
// (DirectionDown).
func (m MomentarySwitch) IsKeyDown() bool { return m.Direction == DirectionDown }

// Equal reports whether two events carry the same kind and payload value.
// Payloads are compared structurally, not by identity.
func (e Event) Equal(other Event) bool {
	if e.kind != other.kind {
		return false
	}
	return reflect.DeepEqual(e.payload, other.payload)
}

// Hash returns a value suitable for using Event as a map key substitute or
// for deduplication, derived from the event's canonical JSON encoding.
func (e Event) Hash() uint64 {
	b, err := e.ToJSON()
	if err != nil {
		// ToJSON never fails for a well-formed Event; fall back to the
		// kind alone rather than panicking.
		h := fnv.New64a()
		_, _ = h.Write([]byte(e.kind))
		return h.Sum64()
	}
	h := fnv.New64a()
	_, _ = h.Write(b)
	return h.Sum64()
}
