package eventdef

import "testing"

func TestModifierSetSortedIsDeterministic(t *testing.T) {
	s := NewModifierSet("right_shift", "left_control", "left_shift")
	want := []ModifierFlag{"left_control", "left_shift", "right_shift"}
	got := s.Sorted()
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestKeyCodeForModifierResolvesKnownFlags(t *testing.T) {
	code, ok := KeyCodeForModifier("left_control")
	if !ok || code != 224 {
		t.Fatalf("expected left_control to resolve to 224, got %d ok=%v", code, ok)
	}
}

func TestKeyCodeForModifierRejectsAnyAndUnknown(t *testing.T) {
	if _, ok := KeyCodeForModifier(ModifierAny); ok {
		t.Error("expected the any wildcard to be invalid as a to-side modifier addition")
	}
	if _, ok := KeyCodeForModifier("not_a_real_modifier"); ok {
		t.Error("expected an unrecognized flag to report false")
	}
}

func TestParseToOneCapturesHaltAndKeyUpWhen(t *testing.T) {
	d, err := parseToOne([]byte(`{"key_code":"b","halt":true,"key_up_when":"any","modifiers":["left_control"]}`))
	if err != nil {
		t.Fatalf("parseToOne: %v", err)
	}
	if !d.Halt {
		t.Error("expected Halt to be true")
	}
	if !d.KeyUpWhenAny {
		t.Error("expected KeyUpWhenAny to be true")
	}
	if d.KeyUpWhenMilliseconds != nil {
		t.Errorf("expected KeyUpWhenMilliseconds to stay nil when key_up_when is \"any\", got %v", *d.KeyUpWhenMilliseconds)
	}
	if !d.ModifiersToAdd.Has("left_control") {
		t.Error("expected left_control in ModifiersToAdd")
	}
}

func TestParseToOneCapturesKeyUpWhenMilliseconds(t *testing.T) {
	d, err := parseToOne([]byte(`{"key_code":"b","key_up_when":300}`))
	if err != nil {
		t.Fatalf("parseToOne: %v", err)
	}
	if d.KeyUpWhenAny {
		t.Error("expected KeyUpWhenAny to stay false for a numeric key_up_when")
	}
	if d.KeyUpWhenMilliseconds == nil || *d.KeyUpWhenMilliseconds != 300 {
		t.Fatalf("expected KeyUpWhenMilliseconds=300, got %v", d.KeyUpWhenMilliseconds)
	}
}
