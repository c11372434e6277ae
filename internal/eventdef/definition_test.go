package eventdef

import "testing"

func TestIngestBuildsMomentarySwitch(t *testing.T) {
	d, err := FromJSON([]byte(`{"key_code":"a"}`))
	if err != nil {
		t.Fatalf("FromJSON: %v", err)
	}
	if d.Type != TypeMomentarySwitch {
		t.Fatalf("expected momentary_switch_event, got %s", d.Type)
	}
	ev, ok := d.ToEvent()
	if !ok {
		t.Fatal("expected ToEvent to succeed")
	}
	ms, ok := ev.MomentarySwitch()
	if !ok || ms.Family != "key_code" || ms.Code != 4 {
		t.Fatalf("unexpected payload: %+v", ms)
	}
}

// Two mutually exclusive type keys in the same definition must fail
// construction rather than silently picking one.
func TestContradictoryDefinitionFails(t *testing.T) {
	_, err := FromJSON([]byte(`{"key_code":"a","shell_command":"open ."}`))
	if err == nil {
		t.Fatal("expected error for contradictory definition")
	}
}

func TestAnyIsPatternOnly(t *testing.T) {
	d, err := FromJSON([]byte(`{"any":"key_code"}`))
	if err != nil {
		t.Fatalf("FromJSON: %v", err)
	}
	if _, ok := d.ToEvent(); ok {
		t.Fatal("any must not materialize to a concrete event")
	}
}

func TestAnyRejectsUnknownFamily(t *testing.T) {
	if _, err := FromJSON([]byte(`{"any":"not_a_family"}`)); err == nil {
		t.Fatal("expected error for unrecognized any family")
	}
}

func TestDescriptionIgnored(t *testing.T) {
	d, err := FromJSON([]byte(`{"description":"does a thing","key_code":"a"}`))
	if err != nil {
		t.Fatalf("FromJSON: %v", err)
	}
	if d.Type != TypeMomentarySwitch {
		t.Fatalf("description key should not affect type, got %s", d.Type)
	}
}

func TestParseToListAcceptsObjectOrArray(t *testing.T) {
	single, err := ParseToList([]byte(`{"key_code":"b"}`))
	if err != nil || len(single) != 1 {
		t.Fatalf("single object: %v %v", single, err)
	}
	multi, err := ParseToList([]byte(`[{"key_code":"b"},{"key_code":"c"}]`))
	if err != nil || len(multi) != 2 {
		t.Fatalf("array: %v %v", multi, err)
	}
}

func TestParseFromModifiers(t *testing.T) {
	f, err := ParseFrom([]byte(`{"key_code":"a","modifiers":{"mandatory":["left_shift"],"optional":["any"]}}`))
	if err != nil {
		t.Fatalf("ParseFrom: %v", err)
	}
	if !f.Mandatory.Has("left_shift") || !f.Optional.Has(ModifierAny) {
		t.Fatalf("unexpected modifiers: %+v", f)
	}
}

func TestSatisfiesModifierState(t *testing.T) {
	mandatory := NewModifierSet("left_shift")
	optional := NewModifierSet()
	if !Satisfies(mandatory, optional, NewModifierSet("left_shift")) {
		t.Error("expected satisfied: exact mandatory match")
	}
	if Satisfies(mandatory, optional, NewModifierSet()) {
		t.Error("expected unsatisfied: missing mandatory modifier")
	}
	if Satisfies(mandatory, optional, NewModifierSet("left_shift", "left_control")) {
		t.Error("expected unsatisfied: extra modifier not in optional")
	}
	if !Satisfies(mandatory, NewModifierSet(ModifierAny), NewModifierSet("left_shift", "left_control")) {
		t.Error("expected satisfied: optional any accepts extra modifiers")
	}
}
