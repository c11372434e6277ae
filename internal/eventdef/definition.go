// Package eventdef implements the event-definition schema element used on
// the "from" and "to" side of a manipulator rule: a JSON object that is
// incrementally ingested key by key and materializes, at most, one event
// type.
package eventdef

import (
	"fmt"

	"github.com/karabiner-go/manipulator/internal/event"
)

// Type discriminates what an event definition currently describes.
type Type string

const (
	TypeNone              Type = "none"
	TypeMomentarySwitch   Type = "momentary_switch_event"
	TypeAny               Type = "any"
	TypeShellCommand      Type = "shell_command"
	TypeSelectInputSource Type = "select_input_source"
	TypeSetVariable       Type = "set_variable"
	TypeNotificationMsg   Type = "set_notification_message"
	TypeMouseKey          Type = "mouse_key"
	TypeStickyModifier    Type = "sticky_modifier"
	TypeSoftwareFunction  Type = "software_function"
)

// AnyFamily enumerates the families the "any" wildcard may be restricted
// to.
type AnyFamily string

const (
	AnyKeyCode                     AnyFamily = "key_code"
	AnyConsumerKeyCode             AnyFamily = "consumer_key_code"
	AnyAppleVendorKeyboardKeyCode  AnyFamily = "apple_vendor_keyboard_key_code"
	AnyAppleVendorTopCaseKeyCode   AnyFamily = "apple_vendor_top_case_key_code"
	AnyPointingButton              AnyFamily = "pointing_button"
)

// Definition is an event definition under construction: it accumulates
// ingested keys and, once exactly one recognized type has been set,
// materializes into an event.Event via ToEvent.
type Definition struct {
	Type Type

	MomentarySwitch event.MomentarySwitch
	AnyType         AnyFamily
	ShellCommand    string
	InputSources    event.InputSourceSpecifiers
	SetVariable     event.SetVariable
	Notification    event.NotificationMessage
	MouseKey        event.MouseKey
	StickyModifier  event.StickyModifier
	SoftwareFn      event.SoftwareFunction
}

// New returns an empty, unconstrained definition.
func New() *Definition { return &Definition{Type: TypeNone} }

// IngestError reports a rule that could not be parsed, carrying the
// offending key/value for diagnostics; manipulator construction surfaces
// exactly one of these per bad rule and skips it.
type IngestError struct {
	Key     string
	Value   any
	Message string
}

func (e *IngestError) Error() string {
	return fmt.Sprintf("event definition: key %q: %s (value=%v)", e.Key, e.Message, e.Value)
}

func momentarySwitchFamilies() map[string]bool {
	return map[string]bool{
		"key_code":                        true,
		"consumer_key_code":               true,
		"apple_vendor_keyboard_key_code":  true,
		"apple_vendor_top_case_key_code":  true,
		"generic_desktop":                 true,
		"pointing_button":                 true,
	}
}

// setType transitions the definition to t, failing if any type had already
// been set — the "at most one type per definition" invariant. A second
// type key fails even when it names the same type (e.g. key_code plus
// consumer_key_code).
func (d *Definition) setType(t Type) error {
	if d.Type != TypeNone {
		return &IngestError{Message: fmt.Sprintf("conflicting types %s and %s on the same definition", d.Type, t)}
	}
	d.Type = t
	return nil
}

// Ingest extends the definition with one key/value pair from the
// definition's JSON object. It returns (recognized, error): recognized is
// false for keys this schema doesn't understand (the caller should treat
// the whole object as invalid in that case); error is non-nil when the key
// is recognized but the value is malformed or contradicts a type already
// set.
func (d *Definition) Ingest(key string, value any, wholeObject map[string]any) (bool, error) {
	switch key {
	case "key_code", "consumer_key_code", "apple_vendor_keyboard_key_code",
		"apple_vendor_top_case_key_code", "generic_desktop", "pointing_button":
		code, err := codeFromSymbol(key, value)
		if err != nil {
			return true, err
		}
		if err := d.setType(TypeMomentarySwitch); err != nil {
			return true, err
		}
		d.MomentarySwitch = event.MomentarySwitch{Family: key, Code: code}
		return true, nil

	case "any":
		s, ok := value.(string)
		if !ok {
			return true, &IngestError{Key: key, Value: value, Message: "any must be a string"}
		}
		family := AnyFamily(s)
		switch family {
		case AnyKeyCode, AnyConsumerKeyCode, AnyAppleVendorKeyboardKeyCode,
			AnyAppleVendorTopCaseKeyCode, AnyPointingButton:
		default:
			return true, &IngestError{Key: key, Value: value, Message: "unrecognized any family"}
		}
		if err := d.setType(TypeAny); err != nil {
			return true, err
		}
		d.AnyType = family
		return true, nil

	case "shell_command":
		s, ok := value.(string)
		if !ok {
			return true, &IngestError{Key: key, Value: value, Message: "shell_command must be a string"}
		}
		if err := d.setType(TypeShellCommand); err != nil {
			return true, err
		}
		d.ShellCommand = s
		return true, nil

	case "select_input_source":
		specs, err := parseInputSourceSpecifiers(value)
		if err != nil {
			return true, &IngestError{Key: key, Value: value, Message: err.Error()}
		}
		if err := d.setType(TypeSelectInputSource); err != nil {
			return true, err
		}
		d.InputSources = specs
		return true, nil

	case "set_variable":
		sv, err := parseSetVariable(value)
		if err != nil {
			return true, &IngestError{Key: key, Value: value, Message: err.Error()}
		}
		if err := d.setType(TypeSetVariable); err != nil {
			return true, err
		}
		d.SetVariable = sv
		return true, nil

	case "set_notification_message":
		nm, err := parseNotificationMessage(value)
		if err != nil {
			return true, &IngestError{Key: key, Value: value, Message: err.Error()}
		}
		if err := d.setType(TypeNotificationMsg); err != nil {
			return true, err
		}
		d.Notification = nm
		return true, nil

	case "mouse_key":
		mk, err := parseMouseKey(value)
		if err != nil {
			return true, &IngestError{Key: key, Value: value, Message: err.Error()}
		}
		if err := d.setType(TypeMouseKey); err != nil {
			return true, err
		}
		d.MouseKey = mk
		return true, nil

	case "sticky_modifier":
		sm, err := parseStickyModifier(value)
		if err != nil {
			return true, &IngestError{Key: key, Value: value, Message: err.Error()}
		}
		if err := d.setType(TypeStickyModifier); err != nil {
			return true, err
		}
		d.StickyModifier = sm
		return true, nil

	case "software_function":
		sf, err := parseSoftwareFunction(value)
		if err != nil {
			return true, &IngestError{Key: key, Value: value, Message: err.Error()}
		}
		if err := d.setType(TypeSoftwareFunction); err != nil {
			return true, err
		}
		d.SoftwareFn = sf
		return true, nil

	case "description":
		return true, nil // documentation-only, ignored

	default:
		return false, nil
	}
}

// ToEvent materializes the definition into a concrete event. TypeNone and
// TypeAny have no concrete event: any is a pattern used only for matching.
func (d *Definition) ToEvent() (event.Event, bool) {
	switch d.Type {
	case TypeMomentarySwitch:
		return event.NewMomentarySwitch(d.MomentarySwitch), true
	case TypeShellCommand:
		return event.NewShellCommand(d.ShellCommand), true
	case TypeSelectInputSource:
		return event.NewSelectInputSource(d.InputSources), true
	case TypeSetVariable:
		return event.NewSetVariable(d.SetVariable), true
	case TypeNotificationMsg:
		return event.NewNotificationMessage(d.Notification), true
	case TypeMouseKey:
		return event.NewMouseKey(d.MouseKey), true
	case TypeStickyModifier:
		return event.NewStickyModifier(d.StickyModifier), true
	case TypeSoftwareFunction:
		return event.NewSoftwareFunction(d.SoftwareFn), true
	default:
		return event.None, false
	}
}

// MatchesFamily reports whether a momentary-switch event matches this
// definition, accounting for the "any" wildcard restricted to a family.
func (d *Definition) MatchesFamily(m event.MomentarySwitch) bool {
	switch d.Type {
	case TypeMomentarySwitch:
		return d.MomentarySwitch.Family == m.Family && d.MomentarySwitch.Code == m.Code
	case TypeAny:
		return string(d.AnyType) == m.Family
	default:
		return false
	}
}
