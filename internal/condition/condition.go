// Package condition implements the manipulator precondition system:
// predicates evaluated against a manipulator environment snapshot,
// AND-combined across a manipulator.
package condition

import (
	"regexp"
)

// Environment is the snapshot of external state a condition evaluates
// against. It is owned and mutated only by the dispatcher goroutine (see
// internal/manipulate.Dispatcher); readers elsewhere must treat it as
// read-only.
type Environment struct {
	FrontmostBundleIdentifier string
	FrontmostFilePath         string

	InputSourceLanguage string
	InputSourceID       string
	InputModeID         string

	Variables map[string]any

	// HeldModifiers is the set of modifier flags (by name, e.g.
	// "left_shift") currently held down. Manipulator matching consults
	// this to evaluate a from-definition's mandatory/optional modifier
	// sets.
	HeldModifiers map[string]bool

	Device DeviceIdentity

	KeyboardType string

	// EventOriginal reports whether the event currently being routed is
	// an original (physically generated) event, as opposed to one
	// synthesized by a manipulator. event_changed_if conditions match
	// against this flag.
	EventOriginal bool
}

// DeviceIdentity identifies the device that produced the event currently
// being routed.
type DeviceIdentity struct {
	VendorID          int64
	ProductID         int64
	IsKeyboard        bool
	IsPointingDevice  bool
	DeviceAddress     string
	LocationID        int64
}

// Condition is a single predicate. Evaluate must be deterministic and free
// of side effects.
type Condition interface {
	Evaluate(env *Environment) bool
}

// All AND-combines a manipulator's attached conditions; an empty set is
// vacuously true, matching a manipulator with no preconditions.
func All(conditions []Condition, env *Environment) bool {
	for _, c := range conditions {
		if !c.Evaluate(env) {
			return false
		}
	}
	return true
}

// matchesAny reports whether s matches any of the supplied regular
// expression patterns.
func matchesAny(patterns []string, s string) bool {
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			continue
		}
		if re.MatchString(s) {
			return true
		}
	}
	return false
}
