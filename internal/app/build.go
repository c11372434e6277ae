package app

import (
	"log/slog"

	"github.com/karabiner-go/manipulator/internal/clockx"
	"github.com/karabiner-go/manipulator/internal/config"
	"github.com/karabiner-go/manipulator/internal/event"
	"github.com/karabiner-go/manipulator/internal/manipulate"
	"github.com/karabiner-go/manipulator/internal/manipulator"
	"github.com/karabiner-go/manipulator/internal/rulebuild"
	"github.com/karabiner-go/manipulator/internal/simplemods"
)

// BuildManager assembles a manipulate.Manager from a profile's
// simple_modifications, device entries, and complex_modifications rules,
// in the authoring order SPEC_FULL.md §4.5/§4.7 require: per-device
// simple modifications, then profile-level simple modifications, then
// complex-modification rules. clock and emit are threaded through to
// every basic manipulator the profile builds.
func BuildManager(profile config.Profile, clock clockx.Clock, emit func(event.Event), log *slog.Logger) *manipulate.Manager {
	if log == nil {
		log = slog.Default()
	}

	params := manipulator.Parameters{
		SimultaneousThresholdMilliseconds: profile.Parameters.SimultaneousThresholdMilliseconds,
		ToIfAloneTimeoutMilliseconds:      profile.Parameters.ToIfAloneTimeoutMilliseconds,
		ToIfHeldDownThresholdMilliseconds: profile.Parameters.ToIfHeldDownThresholdMilliseconds,
		ToDelayedActionDelayMilliseconds:  profile.Parameters.ToDelayedActionDelayMilliseconds,
	}
	if params == (manipulator.Parameters{}) {
		params = manipulator.DefaultParameters()
	}

	devices := make([]simplemods.Device, 0, len(profile.Devices))
	for _, d := range profile.Devices {
		devices = append(devices, simplemods.Device{
			Identifier: simplemods.DeviceIdentifier{
				VendorID:         d.Identifiers.VendorID,
				ProductID:        d.Identifiers.ProductID,
				IsKeyboard:       d.Identifiers.IsKeyboard,
				IsPointingDevice: d.Identifiers.IsPointingDevice,
			},
			SimpleModifications: toSimplemodsPairs(d.SimpleModifications),
			Mouse: simplemods.MouseFlags{
				FlipX:             d.MouseFlipX,
				FlipY:             d.MouseFlipY,
				FlipVerticalWheel: d.MouseFlipVerticalWheel,
				FlipHorizontalWheel: d.MouseFlipHorizontalWheel,
				SwapXY:            d.MouseSwapXY,
				SwapWheels:        d.MouseSwapWheels,
				DiscardX:          d.MouseDiscardX,
				DiscardY:          d.MouseDiscardY,
				DiscardVerticalWheel: d.MouseDiscardVerticalWheel,
				DiscardHorizontal: d.MouseDiscardHorizontalWheel,
			},
		})
	}

	manager := manipulate.NewManager()
	for _, m := range simplemods.Build(devices, toSimplemodsPairs(profile.SimpleModifications), clock, emit, log) {
		manager.PushBack(m)
	}

	rules := make([]rulebuild.Rule, 0, len(profile.ComplexModifications.Rules))
	for _, r := range profile.ComplexModifications.Rules {
		rules = append(rules, rulebuild.Rule{Description: r.Description, Manipulators: r.Manipulators})
	}
	for _, m := range rulebuild.Build(rules, params, clock, emit, log) {
		manager.PushBack(m)
	}

	return manager
}

func toSimplemodsPairs(in []config.SimpleModification) []simplemods.Pair {
	out := make([]simplemods.Pair, 0, len(in))
	for _, p := range in {
		out = append(out, simplemods.Pair{FromJSON: p.From, ToJSON: p.To})
	}
	return out
}
