package event

import (
	"encoding/json"
	"fmt"
)

// wireEnvelope is the on-the-wire shape shared by every event kind: a
// "type" discriminator plus, for kinds that carry one, a single payload
// field named after the kind.
type wireEnvelope struct {
	Type Kind `json:"type"`
}

// ToJSON renders e in its canonical wire form. It never fails for a
// well-formed Event.
func (e Event) ToJSON() ([]byte, error) {
	key, hasPayload := e.kind.payloadKey()
	if !hasPayload {
		return json.Marshal(wireEnvelope{Type: e.kind})
	}

	raw, err := json.Marshal(e.payload)
	if err != nil {
		return nil, fmt.Errorf("event: marshal %s payload: %w", e.kind, err)
	}

	out := map[string]json.RawMessage{
		"type": mustMarshal(e.kind),
		key:    raw,
	}
	return json.Marshal(out)
}

func mustMarshal(v any) json.RawMessage {
	b, _ := json.Marshal(v)
	return b
}

// FromJSON parses a wire-format event. Unlike most decoders in this
// module, FromJSON never returns an error for syntactically valid JSON of
// unknown shape: an object with an unrecognized or missing "type" decodes
// to None, matching the engine-wide convention that deserialization of
// forward-compatible data is total. Malformed JSON (not a JSON object)
// still reports a syntax error.
func FromJSON(data []byte) (Event, error) {
	var head wireEnvelope
	if err := json.Unmarshal(data, &head); err != nil {
		return None, fmt.Errorf("event: parse envelope: %w", err)
	}

	key, hasPayload := head.Type.payloadKey()
	if !hasPayload {
		return eventForSignalKind(head.Type), nil
	}

	var body map[string]json.RawMessage
	if err := json.Unmarshal(data, &body); err != nil {
		return None, fmt.Errorf("event: parse body: %w", err)
	}
	raw, present := body[key]
	if !present {
		return None, nil
	}

	return decodePayload(head.Type, raw)
}

func eventForSignalKind(k Kind) Event {
	switch k {
	case KindStopKeyboardRepeat:
		return NewStopKeyboardRepeat()
	case KindDeviceKeysAndPointingButtonsReleased:
		return NewDeviceKeysAndPointingButtonsReleased()
	case KindDeviceGrabbed:
		return NewDeviceGrabbed()
	case KindDeviceUngrabbed:
		return NewDeviceUngrabbed()
	case KindPointingDeviceEventFromEventTap:
		return NewPointingDeviceEventFromEventTap()
	default:
		return None
	}
}

func decodePayload(k Kind, raw json.RawMessage) (Event, error) {
	switch k {
	case KindMomentarySwitch:
		var p MomentarySwitch
		if err := json.Unmarshal(raw, &p); err != nil {
			return None, err
		}
		return NewMomentarySwitch(p), nil
	case KindPointingMotion:
		var p PointingMotion
		if err := json.Unmarshal(raw, &p); err != nil {
			return None, err
		}
		return NewPointingMotion(p), nil
	case KindShellCommand:
		var p string
		if err := json.Unmarshal(raw, &p); err != nil {
			return None, err
		}
		return NewShellCommand(p), nil
	case KindSelectInputSource:
		var p InputSourceSpecifiers
		if err := json.Unmarshal(raw, &p); err != nil {
			return None, err
		}
		return NewSelectInputSource(p), nil
	case KindSetVariable:
		var p SetVariable
		if err := json.Unmarshal(raw, &p); err != nil {
			return None, err
		}
		return NewSetVariable(p), nil
	case KindSetNotificationMessage:
		var p NotificationMessage
		if err := json.Unmarshal(raw, &p); err != nil {
			return None, err
		}
		return NewNotificationMessage(p), nil
	case KindMouseKey:
		var p MouseKey
		if err := json.Unmarshal(raw, &p); err != nil {
			return None, err
		}
		return NewMouseKey(p), nil
	case KindStickyModifier:
		var p StickyModifier
		if err := json.Unmarshal(raw, &p); err != nil {
			return None, err
		}
		return NewStickyModifier(p), nil
	case KindSoftwareFunction:
		var p SoftwareFunction
		if err := json.Unmarshal(raw, &p); err != nil {
			return None, err
		}
		return NewSoftwareFunction(p), nil
	case KindFrontmostApplicationChanged:
		var p FrontmostApplication
		if err := json.Unmarshal(raw, &p); err != nil {
			return None, err
		}
		return NewFrontmostApplicationChanged(p), nil
	case KindInputSourceChanged:
		var p InputSourceProperties
		if err := json.Unmarshal(raw, &p); err != nil {
			return None, err
		}
		return NewInputSourceChanged(p), nil
	case KindSystemPreferencesPropertiesChanged:
		var p SystemPreferencesProperties
		if err := json.Unmarshal(raw, &p); err != nil {
			return None, err
		}
		return NewSystemPreferencesPropertiesChanged(p), nil
	case KindVirtualHIDDevicesStateChanged:
		var p VirtualHIDDevicesState
		if err := json.Unmarshal(raw, &p); err != nil {
			return None, err
		}
		return NewVirtualHIDDevicesStateChanged(p), nil
	case KindCapsLockStateChanged:
		var p int64
		if err := json.Unmarshal(raw, &p); err != nil {
			return None, err
		}
		return Event{kind: KindCapsLockStateChanged, payload: p}, nil
	default:
		return None, nil
	}
}

// MarshalJSON satisfies encoding/json.Marshaler so Event nests directly in
// larger structures (event definitions, test fixtures).
func (e Event) MarshalJSON() ([]byte, error) { return e.ToJSON() }

// UnmarshalJSON satisfies encoding/json.Unmarshaler.
func (e *Event) UnmarshalJSON(data []byte) error {
	v, err := FromJSON(data)
	if err != nil {
		return err
	}
	*e = v
	return nil
}
