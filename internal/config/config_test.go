package config

import (
	"encoding/json"
	"testing"
)

func TestStripJSONComments(t *testing.T) {
	src := []byte(`{
  // a line comment
  "a": 1, /* inline block */ "b": "value with // not a comment",
  "c": "value with /* not a comment */ either"
}`)
	out := stripJSONComments(src)

	var got map[string]any
	if err := json.Unmarshal(out, &got); err != nil {
		t.Fatalf("stripped JSON did not parse: %v\n%s", err, out)
	}
	if got["b"] != "value with // not a comment" {
		t.Errorf("comment stripper corrupted a string literal: %v", got["b"])
	}
	if got["c"] != "value with /* not a comment */ either" {
		t.Errorf("comment stripper corrupted a string literal: %v", got["c"])
	}
	if got["a"].(float64) != 1 {
		t.Errorf("expected a=1, got %v", got["a"])
	}
}

func TestSelectedProfileFallsBackToFirst(t *testing.T) {
	r := &Root{Profiles: []Profile{{Name: "only"}}}
	p, ok := r.SelectedProfile()
	if !ok || p.Name != "only" {
		t.Fatalf("expected fallback to the only profile, got %+v ok=%v", p, ok)
	}
}

func TestSelectedProfilePrefersSelectedFlag(t *testing.T) {
	r := &Root{Profiles: []Profile{{Name: "a"}, {Name: "b", Selected: true}}}
	p, ok := r.SelectedProfile()
	if !ok || p.Name != "b" {
		t.Fatalf("expected the profile marked selected, got %+v ok=%v", p, ok)
	}
}

func TestSelectedProfileEmpty(t *testing.T) {
	r := &Root{}
	if _, ok := r.SelectedProfile(); ok {
		t.Error("expected no profile for an empty Root")
	}
}
