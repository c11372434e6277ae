package eventdef

import (
	"encoding/json"
	"fmt"

	"github.com/karabiner-go/manipulator/internal/event"
	"github.com/tidwall/gjson"
)

func parseInputSourceSpecifiers(value any) (event.InputSourceSpecifiers, error) {
	raw, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	result := gjson.ParseBytes(raw)
	parseOne := func(r gjson.Result) event.InputSourceSpecifier {
		var s event.InputSourceSpecifier
		if v := r.Get("language"); v.Exists() {
			p := v.String()
			s.LanguagePattern = &p
		}
		if v := r.Get("input_source_id"); v.Exists() {
			p := v.String()
			s.InputSourceIDPattern = &p
		}
		if v := r.Get("input_mode_id"); v.Exists() {
			p := v.String()
			s.InputModeIDPattern = &p
		}
		return s
	}

	if result.IsArray() {
		var specs event.InputSourceSpecifiers
		for _, r := range result.Array() {
			specs = append(specs, parseOne(r))
		}
		return specs, nil
	}
	if result.IsObject() {
		return event.InputSourceSpecifiers{parseOne(result)}, nil
	}
	return nil, fmt.Errorf("select_input_source must be an object or array of objects")
}

func parseSetVariable(value any) (event.SetVariable, error) {
	raw, err := json.Marshal(value)
	if err != nil {
		return event.SetVariable{}, err
	}
	result := gjson.ParseBytes(raw)
	name := result.Get("name")
	if !name.Exists() {
		return event.SetVariable{}, fmt.Errorf("set_variable requires a name")
	}
	val := result.Get("value")
	if !val.Exists() {
		return event.SetVariable{}, fmt.Errorf("set_variable requires a value")
	}
	return event.SetVariable{Name: name.String(), Value: val.Value()}, nil
}

func parseNotificationMessage(value any) (event.NotificationMessage, error) {
	var nm event.NotificationMessage
	raw, err := json.Marshal(value)
	if err != nil {
		return nm, err
	}
	if err := json.Unmarshal(raw, &nm); err != nil {
		return nm, err
	}
	if nm.ID == "" {
		return nm, fmt.Errorf("set_notification_message requires an id")
	}
	return nm, nil
}

func parseMouseKey(value any) (event.MouseKey, error) {
	var mk event.MouseKey
	raw, err := json.Marshal(value)
	if err != nil {
		return mk, err
	}
	if err := json.Unmarshal(raw, &mk); err != nil {
		return mk, err
	}
	return mk, nil
}

func parseStickyModifier(value any) (event.StickyModifier, error) {
	obj, ok := value.(map[string]any)
	if !ok || len(obj) != 1 {
		return event.StickyModifier{}, fmt.Errorf("sticky_modifier must be a single-entry object")
	}
	for k, v := range obj {
		s, ok := v.(string)
		if !ok || (s != "on" && s != "off" && s != "toggle") {
			return event.StickyModifier{}, fmt.Errorf("sticky_modifier value for %q must be on/off/toggle", k)
		}
		return event.StickyModifier{KeyCode: k, Value: s}, nil
	}
	return event.StickyModifier{}, fmt.Errorf("sticky_modifier must be a single-entry object")
}

func parseSoftwareFunction(value any) (event.SoftwareFunction, error) {
	obj, ok := value.(map[string]any)
	if !ok {
		return event.SoftwareFunction{}, fmt.Errorf("software_function must be an object")
	}
	var sf event.SoftwareFunction
	for name, params := range obj {
		sf.Name = name
		if p, ok := params.(map[string]any); ok {
			sf.Parameters = p
		}
		return sf, nil
	}
	return event.SoftwareFunction{}, fmt.Errorf("software_function must name exactly one function")
}

// FromJSON builds a Definition by ingesting every key of a JSON object,
// in the order gjson reports them.
func FromJSON(raw []byte) (*Definition, error) {
	result := gjson.ParseBytes(raw)
	if !result.IsObject() {
		return nil, fmt.Errorf("event definition must be a JSON object")
	}
	var whole map[string]any
	if err := json.Unmarshal(raw, &whole); err != nil {
		return nil, err
	}

	d := New()
	var ingestErr error
	result.ForEach(func(key, value gjson.Result) bool {
		recognized, err := d.Ingest(key.String(), whole[key.String()], whole)
		if err != nil {
			ingestErr = err
			return false
		}
		if !recognized {
			ingestErr = &IngestError{Key: key.String(), Message: "unrecognized event definition key"}
			return false
		}
		return true
	})
	if ingestErr != nil {
		return nil, ingestErr
	}
	return d, nil
}
