package event

// Direction is the press/release polarity of a momentary switch.
type Direction string

const (
	DirectionUp   Direction = "key_up"
	DirectionDown Direction = "key_down"
)

// MomentarySwitch is the payload for KindMomentarySwitch: a single
// key/button/consumer-key press or release.
type MomentarySwitch struct {
	Family    string    `json:"family"`
	Code      int64     `json:"code"`
	Direction Direction `json:"direction"`
}

// PointingMotion is the payload for KindPointingMotion.
type PointingMotion struct {
	X             int `json:"x"`
	Y             int `json:"y"`
	VerticalWheel int `json:"vertical_wheel"`
	HorizontalWheel int `json:"horizontal_wheel"`
}

// SetVariable is the payload for KindSetVariable.
type SetVariable struct {
	Name  string `json:"name"`
	Value any    `json:"value"`
}

// NotificationMessage is the payload for KindSetNotificationMessage.
type NotificationMessage struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// MouseKey is the payload for KindMouseKey: a relative pointer/wheel nudge
// expressed as independently-accumulating fractional axes, mirroring the
// original engine's mouse_key manipulation model.
type MouseKey struct {
	X               float64 `json:"x,omitempty"`
	Y               float64 `json:"y,omitempty"`
	VerticalWheel   float64 `json:"vertical_wheel,omitempty"`
	HorizontalWheel float64 `json:"horizontal_wheel,omitempty"`
	Speed           float64 `json:"speed_multiplier,omitempty"`
}

// StickyModifier is the payload for KindStickyModifier.
type StickyModifier struct {
	KeyCode string `json:"key_code"`
	Value   string `json:"value"` // "on" | "off" | "toggle"
}

// ShellCommand is the payload for KindShellCommand.
type ShellCommand string

// InputSourceSpecifiers is the payload for KindSelectInputSource: an
// ordered list of selectors, any one of which may match.
type InputSourceSpecifiers []InputSourceSpecifier

// InputSourceSpecifier names an input source by any combination of its
// language/input-source-id/input-mode-id, each treated as a regular
// expression when present.
type InputSourceSpecifier struct {
	LanguagePattern      *string `json:"language,omitempty"`
	InputSourceIDPattern *string `json:"input_source_id,omitempty"`
	InputModeIDPattern   *string `json:"input_mode_id,omitempty"`
}

// SoftwareFunction is the payload for KindSoftwareFunction: an opaque
// engine-internal action name plus arbitrary parameters.
type SoftwareFunction struct {
	Name       string         `json:"name"`
	Parameters map[string]any `json:"parameters,omitempty"`
}

// FrontmostApplication is the payload for KindFrontmostApplicationChanged.
type FrontmostApplication struct {
	BundleIdentifier string `json:"bundle_identifier"`
	FilePath         string `json:"file_path"`
}

// InputSourceProperties is the payload for KindInputSourceChanged.
type InputSourceProperties struct {
	LanguageID    string `json:"language,omitempty"`
	InputSourceID string `json:"input_source_id,omitempty"`
	InputModeID   string `json:"input_mode_id,omitempty"`
}

// SystemPreferencesProperties is the payload for
// KindSystemPreferencesPropertiesChanged.
type SystemPreferencesProperties struct {
	KeyboardFnState       bool   `json:"keyboard_fn_state"`
	SwipeScrollDirection  string `json:"swipe_scroll_direction"`
	KeyRepeatMilliseconds int    `json:"key_repeat_milliseconds,omitempty"`
}

// VirtualHIDDevicesState is the payload for
// KindVirtualHIDDevicesStateChanged.
type VirtualHIDDevicesState struct {
	KeyboardReady bool `json:"keyboard_ready"`
	MouseReady    bool `json:"mouse_ready"`
}
