package condition

// FrontmostApplication matches the current frontmost application against
// a list of bundle-identifier and file-path regular expressions; either
// list matching is sufficient. Unless inverts the result.
type FrontmostApplication struct {
	BundleIdentifiers []string
	FilePaths         []string
	Unless            bool
}

func (c FrontmostApplication) Evaluate(env *Environment) bool {
	matched := matchesAny(c.BundleIdentifiers, env.FrontmostBundleIdentifier) ||
		matchesAny(c.FilePaths, env.FrontmostFilePath)
	if c.Unless {
		return !matched
	}
	return matched
}

// InputSource matches the current input source's language/id/mode-id
// against the corresponding regex lists when supplied; a list is skipped
// (treated as satisfied) when empty.
type InputSource struct {
	Languages      []string
	InputSourceIDs []string
	InputModeIDs   []string
	Unless         bool
}

func (c InputSource) Evaluate(env *Environment) bool {
	matched := matchOrSkip(c.Languages, env.InputSourceLanguage) &&
		matchOrSkip(c.InputSourceIDs, env.InputSourceID) &&
		matchOrSkip(c.InputModeIDs, env.InputModeID)
	if c.Unless {
		return !matched
	}
	return matched
}

func matchOrSkip(patterns []string, s string) bool {
	if len(patterns) == 0 {
		return true
	}
	return matchesAny(patterns, s)
}

// Variable matches iff env.Variables[Name] equals Value, using
// type-aware equality: numbers compare numerically, strings/bools
// directly, and if Value is a slice, membership is checked instead of
// exact equality.
type Variable struct {
	Name   string
	Value  any
	Unless bool
}

func (c Variable) Evaluate(env *Environment) bool {
	actual, ok := env.Variables[c.Name]
	matched := ok && variableEqual(actual, c.Value)
	if c.Unless {
		return !matched
	}
	return matched
}

func variableEqual(actual, want any) bool {
	if list, ok := want.([]any); ok {
		for _, elem := range list {
			if scalarEqual(actual, elem) {
				return true
			}
		}
		return false
	}
	return scalarEqual(actual, want)
}

func scalarEqual(a, b any) bool {
	af, aok := toFloat(a)
	bf, bok := toFloat(b)
	if aok && bok {
		return af == bf
	}
	return a == b
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

// Device matches iff the current device identity satisfies any of the
// listed identifiers. An absent (nil) field in an identifier entry is
// treated as a wildcard for that field.
type Device struct {
	Identifiers []DeviceIdentifierMatch
	Unless      bool
}

// DeviceIdentifierMatch is one alternative device identifier; every
// non-nil field, including one holding a zero value, must match.
type DeviceIdentifierMatch struct {
	VendorID         *int64
	ProductID        *int64
	IsKeyboard       *bool
	IsPointingDevice *bool
	DeviceAddress    *string
	LocationID       *int64
}

func (c Device) Evaluate(env *Environment) bool {
	matched := false
	for _, id := range c.Identifiers {
		if id.matches(env.Device) {
			matched = true
			break
		}
	}
	if c.Unless {
		return !matched
	}
	return matched
}

func (id DeviceIdentifierMatch) matches(d DeviceIdentity) bool {
	if id.VendorID != nil && *id.VendorID != d.VendorID {
		return false
	}
	if id.ProductID != nil && *id.ProductID != d.ProductID {
		return false
	}
	if id.IsKeyboard != nil && *id.IsKeyboard != d.IsKeyboard {
		return false
	}
	if id.IsPointingDevice != nil && *id.IsPointingDevice != d.IsPointingDevice {
		return false
	}
	if id.DeviceAddress != nil && *id.DeviceAddress != d.DeviceAddress {
		return false
	}
	if id.LocationID != nil && *id.LocationID != d.LocationID {
		return false
	}
	return true
}

// EventChanged matches iff the routed event's "original" flag equals
// Value.
type EventChanged struct {
	Value  bool
	Unless bool
}

func (c EventChanged) Evaluate(env *Environment) bool {
	matched := env.EventOriginal == c.Value
	if c.Unless {
		return !matched
	}
	return matched
}

// KeyboardType matches iff env.KeyboardType is one of Types.
type KeyboardType struct {
	Types  []string
	Unless bool
}

func (c KeyboardType) Evaluate(env *Environment) bool {
	matched := false
	for _, t := range c.Types {
		if t == env.KeyboardType {
			matched = true
			break
		}
	}
	if c.Unless {
		return !matched
	}
	return matched
}
