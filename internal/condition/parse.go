package condition

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
)

// ParseList parses a manipulator's "conditions" array into a slice of
// Condition. A malformed entry produces an error naming the offending
// type; the caller (manipulator construction) is responsible for turning
// that into a single "rule invalid" diagnostic and skipping the rule.
func ParseList(raw []byte) ([]Condition, error) {
	result := gjson.ParseBytes(raw)
	if !result.IsArray() {
		return nil, fmt.Errorf("conditions must be an array")
	}
	var out []Condition
	for _, elem := range result.Array() {
		c, err := parseOne(elem)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func parseOne(r gjson.Result) (Condition, error) {
	t := r.Get("type").String()
	switch t {
	case "frontmost_application_if", "frontmost_application_unless":
		return FrontmostApplication{
			BundleIdentifiers: stringArray(r.Get("bundle_identifiers")),
			FilePaths:         stringArray(r.Get("file_paths")),
			Unless:            t == "frontmost_application_unless",
		}, nil

	case "input_source_if", "input_source_unless":
		return InputSource{
			Languages:      stringArrayOf(r.Get("input_sources"), "language"),
			InputSourceIDs: stringArrayOf(r.Get("input_sources"), "input_source_id"),
			InputModeIDs:   stringArrayOf(r.Get("input_sources"), "input_mode_id"),
			Unless:         t == "input_source_unless",
		}, nil

	case "variable_if", "variable_unless":
		var value any
		if err := json.Unmarshal([]byte(r.Get("value").Raw), &value); err != nil {
			return nil, fmt.Errorf("variable condition: %w", err)
		}
		return Variable{
			Name:   r.Get("name").String(),
			Value:  value,
			Unless: t == "variable_unless",
		}, nil

	case "device_if", "device_unless":
		var ids []DeviceIdentifierMatch
		for _, elem := range r.Get("identifiers").Array() {
			ids = append(ids, parseDeviceIdentifier(elem))
		}
		return Device{Identifiers: ids, Unless: t == "device_unless"}, nil

	case "event_changed_if", "event_changed_unless":
		return EventChanged{Value: r.Get("value").Bool(), Unless: t == "event_changed_unless"}, nil

	case "keyboard_type_if", "keyboard_type_unless":
		return KeyboardType{Types: stringArray(r.Get("keyboard_types")), Unless: t == "keyboard_type_unless"}, nil

	default:
		return nil, fmt.Errorf("unrecognized condition type %q", t)
	}
}

func parseDeviceIdentifier(r gjson.Result) DeviceIdentifierMatch {
	var id DeviceIdentifierMatch
	if v := r.Get("vendor_id"); v.Exists() {
		n := v.Int()
		id.VendorID = &n
	}
	if v := r.Get("product_id"); v.Exists() {
		n := v.Int()
		id.ProductID = &n
	}
	if v := r.Get("is_keyboard"); v.Exists() {
		b := v.Bool()
		id.IsKeyboard = &b
	}
	if v := r.Get("is_pointing_device"); v.Exists() {
		b := v.Bool()
		id.IsPointingDevice = &b
	}
	if v := r.Get("device_address"); v.Exists() {
		s := v.String()
		id.DeviceAddress = &s
	}
	if v := r.Get("location_id"); v.Exists() {
		n := v.Int()
		id.LocationID = &n
	}
	return id
}

func stringArray(r gjson.Result) []string {
	if !r.Exists() {
		return nil
	}
	var out []string
	for _, elem := range r.Array() {
		out = append(out, elem.String())
	}
	return out
}

func stringArrayOf(r gjson.Result, field string) []string {
	if !r.Exists() {
		return nil
	}
	var out []string
	for _, elem := range r.Array() {
		if v := elem.Get(field); v.Exists() {
			out = append(out, v.String())
		}
	}
	return out
}
