// Package rulebuild turns a profile's raw complex_modifications rule
// JSON into live manipulators, the way internal/simplemods turns a
// profile's simple_modifications pairs into live manipulators.
package rulebuild

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/tidwall/gjson"

	"github.com/karabiner-go/manipulator/internal/clockx"
	"github.com/karabiner-go/manipulator/internal/condition"
	"github.com/karabiner-go/manipulator/internal/event"
	"github.com/karabiner-go/manipulator/internal/eventdef"
	"github.com/karabiner-go/manipulator/internal/manipulator"
)

// Rule is one named group of raw manipulator JSON specifications,
// mirroring config.ComplexRule without importing internal/config (the
// same leaf-first dependency direction internal/simplemods keeps).
type Rule struct {
	Description  string
	Manipulators []string
}

// Build parses every manipulator in rules, in authoring order, skipping
// and logging any that fail to parse (a malformed manipulator never
// aborts the rest of the profile).
func Build(rules []Rule, defaults manipulator.Parameters, clock clockx.Clock, emit func(event.Event), log *slog.Logger) []manipulator.Manipulator {
	if log == nil {
		log = slog.Default()
	}

	var out []manipulator.Manipulator
	for _, rule := range rules {
		for _, raw := range rule.Manipulators {
			m, err := buildOne([]byte(raw), defaults, clock, emit)
			if err != nil {
				log.Error("skipping invalid manipulator",
					"rule", rule.Description, "error", err, "manipulator", raw)
				continue
			}
			out = append(out, m)
		}
	}
	return out
}

// buildOne parses a single manipulator spec. Only "basic" and
// "mouse_basic" types are recognized, matching the two manipulator
// variants this engine implements; any other "type" value is an
// unmarshal_error.
func buildOne(raw []byte, defaults manipulator.Parameters, clock clockx.Clock, emit func(event.Event)) (manipulator.Manipulator, error) {
	root := gjson.ParseBytes(raw)
	if !root.Exists() || !root.IsObject() {
		return nil, fmt.Errorf("rulebuild: manipulator must be a JSON object")
	}

	typ := root.Get("type").String()
	switch typ {
	case "", "basic":
		return buildBasic(root, defaults, clock, emit)
	case "mouse_basic":
		return buildMouseBasic(root)
	default:
		return nil, fmt.Errorf("rulebuild: unrecognized manipulator type %q", typ)
	}
}

func buildBasic(root gjson.Result, defaults manipulator.Parameters, clock clockx.Clock, emit func(event.Event)) (manipulator.Manipulator, error) {
	fromRaw := root.Get("from")
	if !fromRaw.Exists() {
		return nil, fmt.Errorf("rulebuild: basic manipulator missing \"from\"")
	}
	from, err := eventdef.ParseFrom([]byte(fromRaw.Raw))
	if err != nil {
		return nil, fmt.Errorf("rulebuild: parsing from: %w", err)
	}

	to, err := parseToField(root, "to")
	if err != nil {
		return nil, err
	}

	conditions, err := parseConditions(root)
	if err != nil {
		return nil, err
	}

	params := defaults
	if p := root.Get("parameters"); p.Exists() {
		applyParameterOverrides(p, &params)
	}

	b := manipulator.NewBasic(from, to, conditions, params, clock, emit)

	if b.ToIfAlone, err = parseToField(root, "to_if_alone"); err != nil {
		return nil, err
	}
	if b.ToIfHeldDown, err = parseToField(root, "to_if_held_down"); err != nil {
		return nil, err
	}
	if b.ToAfterKeyUp, err = parseToField(root, "to_after_key_up"); err != nil {
		return nil, err
	}
	if delayed := root.Get("to_delayed_action"); delayed.Exists() {
		if b.ToDelayedInvoked, err = parseToField(delayed, "to_if_invoked"); err != nil {
			return nil, err
		}
		if b.ToDelayedCanceled, err = parseToField(delayed, "to_if_canceled"); err != nil {
			return nil, err
		}
	}
	return b, nil
}

func buildMouseBasic(root gjson.Result) (manipulator.Manipulator, error) {
	conditions, err := parseConditions(root)
	if err != nil {
		return nil, err
	}

	mb := &manipulator.MouseBasic{
		Flip:       map[manipulator.Axis]bool{},
		Discard:    map[manipulator.Axis]bool{},
		Conditions: conditions,
	}
	for _, a := range root.Get("flip").Array() {
		mb.Flip[manipulator.Axis(a.String())] = true
	}
	for _, a := range root.Get("discard").Array() {
		mb.Discard[manipulator.Axis(a.String())] = true
	}
	for _, a := range root.Get("swap").Array() {
		switch a.String() {
		case "xy":
			mb.SwapXY = true
		case "wheels":
			mb.SwapWheels = true
		}
	}
	return mb, nil
}

func parseToField(root gjson.Result, key string) ([]*eventdef.ToEventDefinition, error) {
	field := root.Get(key)
	if !field.Exists() {
		return nil, nil
	}
	list, err := eventdef.ParseToList([]byte(field.Raw))
	if err != nil {
		return nil, fmt.Errorf("rulebuild: parsing %s: %w", key, err)
	}
	return list, nil
}

func parseConditions(root gjson.Result) ([]condition.Condition, error) {
	field := root.Get("conditions")
	if !field.Exists() {
		return nil, nil
	}
	conditions, err := condition.ParseList([]byte(field.Raw))
	if err != nil {
		return nil, fmt.Errorf("rulebuild: parsing conditions: %w", err)
	}
	return conditions, nil
}

func applyParameterOverrides(p gjson.Result, params *manipulator.Parameters) {
	var overrides map[string]int64
	if err := json.Unmarshal([]byte(p.Raw), &overrides); err != nil {
		return
	}
	if v, ok := overrides["basic.simultaneous_threshold_milliseconds"]; ok {
		params.SimultaneousThresholdMilliseconds = v
	}
	if v, ok := overrides["basic.to_if_alone_timeout_milliseconds"]; ok {
		params.ToIfAloneTimeoutMilliseconds = v
	}
	if v, ok := overrides["basic.to_if_held_down_threshold_milliseconds"]; ok {
		params.ToIfHeldDownThresholdMilliseconds = v
	}
	if v, ok := overrides["basic.to_delayed_action_delay_milliseconds"]; ok {
		params.ToDelayedActionDelayMilliseconds = v
	}
}
