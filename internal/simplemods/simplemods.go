// Package simplemods derives basic/mouse_basic manipulators from a
// profile's simple substitution maps and mouse flip/swap/discard flags,
// grounded on the original engine's simple_modifications_manipulator_manager.
package simplemods

import (
	"fmt"
	"log/slog"

	"github.com/karabiner-go/manipulator/internal/clockx"
	"github.com/karabiner-go/manipulator/internal/condition"
	"github.com/karabiner-go/manipulator/internal/event"
	"github.com/karabiner-go/manipulator/internal/eventdef"
	"github.com/karabiner-go/manipulator/internal/manipulator"
)

// Pair is one simple-modification entry: the raw "from"/"to" JSON text
// exactly as authored, parsed here rather than at configuration-decode
// time (the "to" side may be an object or an array).
type Pair struct {
	FromJSON string
	ToJSON   string
}

// DeviceIdentifier narrows a device_if condition to a single physical
// device.
type DeviceIdentifier struct {
	VendorID         int64
	ProductID        int64
	IsKeyboard       bool
	IsPointingDevice bool
}

// MouseFlags mirrors a device's mouse_flip_*/mouse_swap_*/mouse_discard_*
// configuration fields.
type MouseFlags struct {
	FlipX, FlipY, FlipVerticalWheel, FlipHorizontalWheel       bool
	SwapXY, SwapWheels                                         bool
	DiscardX, DiscardY, DiscardVerticalWheel, DiscardHorizontal bool
}

func (f MouseFlags) empty() bool {
	return !f.FlipX && !f.FlipY && !f.FlipVerticalWheel && !f.FlipHorizontalWheel &&
		!f.SwapXY && !f.SwapWheels &&
		!f.DiscardX && !f.DiscardY && !f.DiscardVerticalWheel && !f.DiscardHorizontal
}

// Device is one profile device entry: its identifier, its device-scoped
// simple modifications, and its mouse flags.
type Device struct {
	Identifier          DeviceIdentifier
	SimpleModifications []Pair
	Mouse                MouseFlags
}

// Build constructs the manipulators for every device (in device order,
// pairs in authoring order) followed by the profile-level simple
// modifications without any device_if. A malformed pair logs an error via
// log and is skipped; the rest of the build proceeds, matching the
// engine-wide convention that one bad rule doesn't abort configuration
// loading.
func Build(devices []Device, profileLevel []Pair, clock clockx.Clock, emit func(event.Event), log *slog.Logger) []manipulator.Manipulator {
	if log == nil {
		log = slog.Default()
	}

	var out []manipulator.Manipulator
	for _, d := range devices {
		deviceCond := deviceCondition(d.Identifier)

		for _, pair := range d.SimpleModifications {
			mp, err := buildPair(pair, []condition.Condition{deviceCond}, clock, emit)
			if err != nil {
				log.Error("skipping malformed simple modification", "error", err, "from", pair.FromJSON, "to", pair.ToJSON)
				continue
			}
			out = append(out, mp)
		}

		if !d.Mouse.empty() {
			out = append(out, buildMouseBasic(d.Mouse, deviceCond))
		}
	}

	for _, pair := range profileLevel {
		mp, err := buildPair(pair, nil, clock, emit)
		if err != nil {
			log.Error("skipping malformed simple modification", "error", err, "from", pair.FromJSON, "to", pair.ToJSON)
			continue
		}
		out = append(out, mp)
	}

	return out
}

func buildPair(pair Pair, conditions []condition.Condition, clock clockx.Clock, emit func(event.Event)) (manipulator.Manipulator, error) {
	from, err := eventdef.ParseFrom([]byte(pair.FromJSON))
	if err != nil {
		return nil, fmt.Errorf("parsing from: %w", err)
	}
	// Simple substitutions are modifier-agnostic: the engine always
	// injects optional={any} so the mapping fires regardless of what
	// other modifiers happen to be held.
	from.Optional[eventdef.ModifierAny] = struct{}{}

	to, err := eventdef.ParseToList([]byte(pair.ToJSON))
	if err != nil {
		return nil, fmt.Errorf("parsing to: %w", err)
	}

	return manipulator.NewBasic(from, to, conditions, manipulator.DefaultParameters(), clock, emit), nil
}

func buildMouseBasic(flags MouseFlags, deviceCond condition.Condition) manipulator.Manipulator {
	flip := map[manipulator.Axis]bool{}
	if flags.FlipX {
		flip[manipulator.AxisX] = true
	}
	if flags.FlipY {
		flip[manipulator.AxisY] = true
	}
	if flags.FlipVerticalWheel {
		flip[manipulator.AxisVerticalWheel] = true
	}
	if flags.FlipHorizontalWheel {
		flip[manipulator.AxisHorizontalWheel] = true
	}

	discard := map[manipulator.Axis]bool{}
	if flags.DiscardX {
		discard[manipulator.AxisX] = true
	}
	if flags.DiscardY {
		discard[manipulator.AxisY] = true
	}
	if flags.DiscardVerticalWheel {
		discard[manipulator.AxisVerticalWheel] = true
	}
	if flags.DiscardHorizontal {
		discard[manipulator.AxisHorizontalWheel] = true
	}

	return &manipulator.MouseBasic{
		Flip:       flip,
		SwapXY:     flags.SwapXY,
		SwapWheels: flags.SwapWheels,
		Discard:    discard,
		Conditions: []condition.Condition{deviceCond},
	}
}

func deviceCondition(id DeviceIdentifier) condition.Condition {
	vendor, product := id.VendorID, id.ProductID
	isKeyboard, isPointing := id.IsKeyboard, id.IsPointingDevice
	return condition.Device{
		Identifiers: []condition.DeviceIdentifierMatch{{
			VendorID:         &vendor,
			ProductID:        &product,
			IsKeyboard:       &isKeyboard,
			IsPointingDevice: &isPointing,
		}},
	}
}
