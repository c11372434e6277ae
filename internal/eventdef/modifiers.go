package eventdef

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/tidwall/gjson"
)

// ModifierFlag names a single modifier key, or the "any" wildcard that
// matches every remaining modifier.
type ModifierFlag string

const ModifierAny ModifierFlag = "any"

// ModifierSet is an unordered set of modifier flags.
type ModifierSet map[ModifierFlag]struct{}

// NewModifierSet builds a set from a list of flags.
func NewModifierSet(flags ...ModifierFlag) ModifierSet {
	s := make(ModifierSet, len(flags))
	for _, f := range flags {
		s[f] = struct{}{}
	}
	return s
}

func (s ModifierSet) Has(f ModifierFlag) bool {
	_, ok := s[f]
	return ok
}

// Sorted returns the set's flags in a fixed, deterministic order, letting
// a caller that synthesizes a down/up pair for each flag undo them in the
// exact reverse of how it applied them.
func (s ModifierSet) Sorted() []ModifierFlag {
	flags := make([]ModifierFlag, 0, len(s))
	for f := range s {
		flags = append(flags, f)
	}
	sort.Slice(flags, func(i, j int) bool { return flags[i] < flags[j] })
	return flags
}

// KeyCodeForModifier resolves a modifier flag from a to-event's
// "modifiers" list to the key_code usage value its synthesized down/up
// pair should carry. ModifierAny is never valid here (it is a from-side
// matching wildcard only) and reports false, as does any flag this table
// doesn't recognize.
func KeyCodeForModifier(flag ModifierFlag) (int64, bool) {
	if flag == ModifierAny {
		return 0, false
	}
	code, ok := keyCodeSymbols[string(flag)]
	return code, ok
}

// Satisfies reports whether the currently-held modifiers `held` satisfy
// this definition's mandatory/optional split: held must be a superset of
// mandatory, and every held modifier not in mandatory must be in optional
// (unless optional contains the "any" wildcard).
func Satisfies(mandatory, optional ModifierSet, held ModifierSet) bool {
	for m := range mandatory {
		if !held.Has(m) {
			return false
		}
	}
	if optional.Has(ModifierAny) {
		return true
	}
	for h := range held {
		if mandatory.Has(h) {
			continue
		}
		if !optional.Has(h) {
			return false
		}
	}
	return true
}

// FromEventDefinition is an event definition as it appears on the "from"
// side of a rule: the matched event type plus the modifier state required
// to trigger it.
type FromEventDefinition struct {
	Definition *Definition
	Mandatory  ModifierSet
	Optional   ModifierSet
}

// ToEventDefinition is an event definition as it appears on the "to" side
// of a rule, plus the attributes that shape emission.
type ToEventDefinition struct {
	Definition            *Definition
	ModifiersToAdd        ModifierSet
	Lazy                  bool
	Repeat                bool
	Halt                  bool
	HoldDownMilliseconds  int
	KeyUpWhenMilliseconds *int
	KeyUpWhenAny          bool
}

// ParseFrom parses a "from" object: the event-definition keys plus an
// optional "modifiers" object with "mandatory"/"optional" string arrays.
// Simple-modification callers should inject ModifierAny into Optional
// themselves (see internal/simplemods), matching the engine-wide
// convention that simple substitutions are modifier-agnostic.
func ParseFrom(raw []byte) (*FromEventDefinition, error) {
	result := gjson.ParseBytes(raw)
	var whole map[string]any
	if err := json.Unmarshal(raw, &whole); err != nil {
		return nil, err
	}
	delete(whole, "modifiers")

	defRaw, err := json.Marshal(whole)
	if err != nil {
		return nil, err
	}
	def, err := FromJSON(defRaw)
	if err != nil {
		return nil, err
	}

	f := &FromEventDefinition{Definition: def, Mandatory: ModifierSet{}, Optional: ModifierSet{}}
	mods := result.Get("modifiers")
	if mods.Exists() {
		f.Mandatory = parseModifierList(mods.Get("mandatory"))
		f.Optional = parseModifierList(mods.Get("optional"))
	}
	return f, nil
}

// ParseToList parses a "to" value, which may be a single to-definition
// object or an array of them — internal/eventdef resolves the shape at
// build time via gjson rather than at config-decode time.
func ParseToList(raw []byte) ([]*ToEventDefinition, error) {
	result := gjson.ParseBytes(raw)
	switch {
	case result.IsArray():
		var defs []*ToEventDefinition
		for _, elem := range result.Array() {
			d, err := parseToOne([]byte(elem.Raw))
			if err != nil {
				return nil, err
			}
			defs = append(defs, d)
		}
		return defs, nil
	case result.IsObject():
		d, err := parseToOne(raw)
		if err != nil {
			return nil, err
		}
		return []*ToEventDefinition{d}, nil
	default:
		return nil, fmt.Errorf("to must be an object or array of objects")
	}
}

func parseToOne(raw []byte) (*ToEventDefinition, error) {
	result := gjson.ParseBytes(raw)
	var whole map[string]any
	if err := json.Unmarshal(raw, &whole); err != nil {
		return nil, err
	}

	t := &ToEventDefinition{ModifiersToAdd: ModifierSet{}}
	reserved := map[string]bool{
		"modifiers": true, "lazy": true, "repeat": true, "halt": true,
		"hold_down_milliseconds": true, "key_up_when": true,
		"key_up_when_milliseconds": true,
	}
	if v := result.Get("modifiers"); v.Exists() {
		t.ModifiersToAdd = parseModifierList(v)
	}
	if v := result.Get("lazy"); v.Exists() {
		t.Lazy = v.Bool()
	}
	if v := result.Get("repeat"); v.Exists() {
		t.Repeat = v.Bool()
	} else {
		t.Repeat = true // engine default: to events participate in key repeat
	}
	if v := result.Get("halt"); v.Exists() {
		t.Halt = v.Bool()
	}
	if v := result.Get("hold_down_milliseconds"); v.Exists() {
		t.HoldDownMilliseconds = int(v.Int())
	}
	if v := result.Get("key_up_when"); v.Exists() {
		if v.Type == gjson.String && v.String() == "any" {
			t.KeyUpWhenAny = true
		} else {
			ms := int(v.Int())
			t.KeyUpWhenMilliseconds = &ms
		}
	}
	if v := result.Get("key_up_when_milliseconds"); v.Exists() {
		ms := int(v.Int())
		t.KeyUpWhenMilliseconds = &ms
	}

	defFields := map[string]any{}
	for k, v := range whole {
		if !reserved[k] {
			defFields[k] = v
		}
	}
	defRaw, err := json.Marshal(defFields)
	if err != nil {
		return nil, err
	}
	def, err := FromJSON(defRaw)
	if err != nil {
		return nil, err
	}
	t.Definition = def
	return t, nil
}

func parseModifierList(r gjson.Result) ModifierSet {
	set := ModifierSet{}
	if !r.Exists() || !r.IsArray() {
		return set
	}
	for _, elem := range r.Array() {
		set[ModifierFlag(elem.String())] = struct{}{}
	}
	return set
}
