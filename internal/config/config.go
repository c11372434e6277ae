// Package config implements the JSON/JSONC configuration file schema,
// koanf-backed loading with decode hooks, and atomic saving with backup
// rotation and ownership checks.
package config

import "github.com/karabiner-go/manipulator/internal/eventdef"

// Root is the top-level configuration document.
type Root struct {
	Global   GlobalConfig `koanf:"global"`
	Profiles []Profile    `koanf:"profiles"`
}

// GlobalConfig holds settings that apply across every profile.
type GlobalConfig struct {
	CheckForUpdatesOnStartup bool `koanf:"check_for_updates_on_startup"`
	ShowInMenuBar            bool `koanf:"show_in_menu_bar"`
	UnsafeUI                 bool `koanf:"unsafe_ui"`
}

// Profile is one named rule set.
type Profile struct {
	Name                 string               `koanf:"name"`
	Selected             bool                 `koanf:"selected"`
	SimpleModifications  []SimpleModification `koanf:"simple_modifications"`
	ComplexModifications ComplexModifications `koanf:"complex_modifications"`
	Devices              []DeviceConfig       `koanf:"devices"`
	VirtualHIDKeyboard   VirtualHIDKeyboard   `koanf:"virtual_hid_keyboard"`
	Parameters           BasicParameters      `koanf:"parameters"`
	// DefaultOptionalModifiers is decoded from the configuration but not
	// read by any builder: simple modifications get only the
	// always-injected "any" optional wildcard (see internal/simplemods).
	DefaultOptionalModifiers eventdef.ModifierSet `koanf:"default_optional_modifiers"`
}

// SimpleModification carries the raw "from"/"to" JSON text exactly as
// received; internal/eventdef resolves whether "to" is a single object or
// an array at build time, not here.
type SimpleModification struct {
	From string `koanf:"from"`
	To   string `koanf:"to"`
}

// ComplexModifications holds the profile's manipulator rule groups, each
// carrying raw manipulator JSON for internal/eventdef and
// internal/condition to parse at build time.
type ComplexModifications struct {
	Rules []ComplexRule `koanf:"rules"`
}

// ComplexRule is one named group of raw manipulator specifications.
type ComplexRule struct {
	Description  string   `koanf:"description"`
	Manipulators []string `koanf:"manipulators"`
}

// DeviceConfig is one profile device entry.
type DeviceConfig struct {
	Identifiers          DeviceIdentifiers    `koanf:"identifiers"`
	SimpleModifications  []SimpleModification `koanf:"simple_modifications"`
	MouseFlipX           bool                 `koanf:"mouse_flip_x"`
	MouseFlipY           bool                 `koanf:"mouse_flip_y"`
	MouseFlipVerticalWheel   bool             `koanf:"mouse_flip_vertical_wheel"`
	MouseFlipHorizontalWheel bool             `koanf:"mouse_flip_horizontal_wheel"`
	MouseSwapXY          bool                 `koanf:"mouse_swap_xy"`
	MouseSwapWheels      bool                 `koanf:"mouse_swap_wheels"`
	MouseDiscardX        bool                 `koanf:"mouse_discard_x"`
	MouseDiscardY        bool                 `koanf:"mouse_discard_y"`
	MouseDiscardVerticalWheel   bool          `koanf:"mouse_discard_vertical_wheel"`
	MouseDiscardHorizontalWheel bool          `koanf:"mouse_discard_horizontal_wheel"`
}

// DeviceIdentifiers names a physical device for a device's own scope and
// for device_if conditions that reference it.
type DeviceIdentifiers struct {
	VendorID         int64  `koanf:"vendor_id"`
	ProductID        int64  `koanf:"product_id"`
	IsKeyboard       bool   `koanf:"is_keyboard"`
	IsPointingDevice bool   `koanf:"is_pointing_device"`
}

// KeyboardType names the physical keyboard layout the virtual HID
// keyboard emulates, affecting which keyboard_type_if conditions match.
type KeyboardType string

const (
	KeyboardTypeANSI KeyboardType = "ansi"
	KeyboardTypeISO  KeyboardType = "iso"
	KeyboardTypeJIS  KeyboardType = "jis"
)

// VirtualHIDKeyboard configures the synthetic keyboard device a profile
// presents to the OS.
type VirtualHIDKeyboard struct {
	KeyboardTypeV2 KeyboardType `koanf:"keyboard_type_v2"`
}

// BasicParameters are the timing thresholds basic manipulators inherit
// unless overridden per rule.
type BasicParameters struct {
	SimultaneousThresholdMilliseconds int64 `koanf:"basic.simultaneous_threshold_milliseconds"`
	ToIfAloneTimeoutMilliseconds      int64 `koanf:"basic.to_if_alone_timeout_milliseconds"`
	ToIfHeldDownThresholdMilliseconds int64 `koanf:"basic.to_if_held_down_threshold_milliseconds"`
	ToDelayedActionDelayMilliseconds  int64 `koanf:"basic.to_delayed_action_delay_milliseconds"`
}

// NewDefault returns the configuration used both as the koanf defaults
// layer and as the fallback when loading is refused (missing file,
// ownership violation).
func NewDefault() *Root {
	return &Root{
		Global: GlobalConfig{
			CheckForUpdatesOnStartup: true,
			ShowInMenuBar:            true,
		},
		Profiles: []Profile{
			{
				Name:     "Default profile",
				Selected: true,
				Parameters: BasicParameters{
					SimultaneousThresholdMilliseconds: 50,
					ToIfAloneTimeoutMilliseconds:       1000,
					ToIfHeldDownThresholdMilliseconds:  500,
					ToDelayedActionDelayMilliseconds:   500,
				},
			},
		},
	}
}

// SelectedProfile returns the profile marked selected, or the first
// profile if none is marked, or false if Profiles is empty.
func (r *Root) SelectedProfile() (Profile, bool) {
	for _, p := range r.Profiles {
		if p.Selected {
			return p, true
		}
	}
	if len(r.Profiles) > 0 {
		return r.Profiles[0], true
	}
	return Profile{}, false
}
