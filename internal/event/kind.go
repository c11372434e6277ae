// Package event defines the tagged union of values that traverse the
// manipulator pipeline, along with its self-describing JSON wire format.
package event

// Kind discriminates the variant carried by an Event. The string values are
// the exact "type" names used on the wire.
type Kind string

const (
	KindNone                                 Kind = "none"
	KindMomentarySwitch                      Kind = "momentary_switch"
	KindPointingMotion                       Kind = "pointing_motion"
	KindShellCommand                         Kind = "shell_command"
	KindSelectInputSource                    Kind = "select_input_source"
	KindSetVariable                          Kind = "set_variable"
	KindSetNotificationMessage                Kind = "set_notification_message"
	KindMouseKey                             Kind = "mouse_key"
	KindStickyModifier                       Kind = "sticky_modifier"
	KindSoftwareFunction                     Kind = "software_function"
	KindStopKeyboardRepeat                   Kind = "stop_keyboard_repeat"
	KindDeviceKeysAndPointingButtonsReleased Kind = "device_keys_and_pointing_buttons_released"
	KindDeviceGrabbed                        Kind = "device_grabbed"
	KindDeviceUngrabbed                      Kind = "device_ungrabbed"
	KindCapsLockStateChanged                 Kind = "caps_lock_state_changed"
	KindPointingDeviceEventFromEventTap      Kind = "pointing_device_event_from_event_tap"
	KindFrontmostApplicationChanged          Kind = "frontmost_application_changed"
	KindInputSourceChanged                   Kind = "input_source_changed"
	KindSystemPreferencesPropertiesChanged   Kind = "system_preferences_properties_changed"
	KindVirtualHIDDevicesStateChanged        Kind = "virtual_hid_devices_state_changed"
)

// payloadKey returns the JSON object key used to carry this kind's payload,
// and whether the kind carries a payload at all. Five kinds are pure
// signals on the wire: their in-memory value (if any) never round-trips,
// mirroring the original engine's to_json(), which emits no payload for
// them even though device_grabbed/device_ungrabbed are routed with a
// device identity internally (see manipulate.Manager).
func (k Kind) payloadKey() (string, bool) {
	switch k {
	case KindNone,
		KindStopKeyboardRepeat,
		KindDeviceKeysAndPointingButtonsReleased,
		KindDeviceGrabbed,
		KindDeviceUngrabbed,
		KindPointingDeviceEventFromEventTap:
		return "", false
	case KindMomentarySwitch:
		return "momentary_switch_event", true
	case KindPointingMotion:
		return "pointing_motion", true
	case KindCapsLockStateChanged:
		return "caps_lock_state_changed", true
	case KindShellCommand:
		return "shell_command", true
	case KindSelectInputSource:
		return "input_source_specifiers", true
	case KindSetVariable:
		return "set_variable", true
	case KindSetNotificationMessage:
		return "set_notification_message", true
	case KindMouseKey:
		return "mouse_key", true
	case KindStickyModifier:
		return "sticky_modifier", true
	case KindSoftwareFunction:
		return "software_function", true
	case KindFrontmostApplicationChanged:
		return "frontmost_application", true
	case KindInputSourceChanged:
		return "input_source_properties", true
	case KindSystemPreferencesPropertiesChanged:
		return "system_preferences_properties", true
	case KindVirtualHIDDevicesStateChanged:
		return "virtual_hid_devices_state", true
	default:
		return "", false
	}
}
