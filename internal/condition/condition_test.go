package condition

import "testing"

func TestFrontmostApplicationIf(t *testing.T) {
	c := FrontmostApplication{BundleIdentifiers: []string{"^com\\.apple\\.Terminal$"}}
	env := &Environment{FrontmostBundleIdentifier: "com.apple.Terminal"}
	if !c.Evaluate(env) {
		t.Error("expected match on exact bundle id")
	}
	env.FrontmostBundleIdentifier = "com.apple.Safari"
	if c.Evaluate(env) {
		t.Error("expected no match for different bundle id")
	}
}

func TestFrontmostApplicationUnless(t *testing.T) {
	c := FrontmostApplication{BundleIdentifiers: []string{"^com\\.apple\\.Terminal$"}, Unless: true}
	env := &Environment{FrontmostBundleIdentifier: "com.apple.Terminal"}
	if c.Evaluate(env) {
		t.Error("unless should invert a matching condition")
	}
}

func TestVariableIfTypeAwareEquality(t *testing.T) {
	c := Variable{Name: "count", Value: float64(3)}
	env := &Environment{Variables: map[string]any{"count": float64(3)}}
	if !c.Evaluate(env) {
		t.Error("expected numeric equality to match")
	}
}

func TestVariableIfArrayMembership(t *testing.T) {
	c := Variable{Name: "mode", Value: []any{"a", "b"}}
	env := &Environment{Variables: map[string]any{"mode": "b"}}
	if !c.Evaluate(env) {
		t.Error("expected membership match")
	}
}

func TestDeviceIfAnyIdentifier(t *testing.T) {
	vendor := int64(1452)
	c := Device{Identifiers: []DeviceIdentifierMatch{{VendorID: &vendor}}}
	env := &Environment{Device: DeviceIdentity{VendorID: 1452, ProductID: 1}}
	if !c.Evaluate(env) {
		t.Error("expected vendor id match")
	}
}

func TestAllIsConjunction(t *testing.T) {
	env := &Environment{FrontmostBundleIdentifier: "com.apple.Terminal", KeyboardType: "ansi"}
	conds := []Condition{
		FrontmostApplication{BundleIdentifiers: []string{"Terminal"}},
		KeyboardType{Types: []string{"iso"}},
	}
	if All(conds, env) {
		t.Error("expected conjunction to fail when one condition fails")
	}
}

func TestAllVacuouslyTrue(t *testing.T) {
	if !All(nil, &Environment{}) {
		t.Error("empty condition list should be vacuously true")
	}
}
