package rulebuild

import (
	"testing"

	"github.com/karabiner-go/manipulator/internal/clockx"
	"github.com/karabiner-go/manipulator/internal/condition"
	"github.com/karabiner-go/manipulator/internal/event"
	"github.com/karabiner-go/manipulator/internal/manipulator"
)

func TestBuildParsesBasicManipulator(t *testing.T) {
	rules := []Rule{{
		Description: "swap a for b",
		Manipulators: []string{
			`{"type":"basic","from":{"key_code":"a"},"to":[{"key_code":"b"}]}`,
		},
	}}

	ms := Build(rules, manipulator.DefaultParameters(), clockx.System{}, func(event.Event) {}, nil)
	if len(ms) != 1 {
		t.Fatalf("expected 1 manipulator, got %d", len(ms))
	}

	ev := event.NewMomentarySwitch(event.MomentarySwitch{Family: "key_code", Code: 4, Direction: event.DirectionDown})
	out, consumed := ms[0].Apply(ev, &condition.Environment{})
	if !consumed {
		t.Fatal("expected the manipulator to consume the matching press")
	}
	if len(out) == 0 {
		t.Fatal("expected at least one emitted event")
	}
}

func TestBuildSkipsInvalidManipulatorAndContinues(t *testing.T) {
	rules := []Rule{{
		Manipulators: []string{
			`{"type":"basic"}`,
			`{"type":"basic","from":{"key_code":"a"},"to":[{"key_code":"b"}]}`,
		},
	}}

	ms := Build(rules, manipulator.DefaultParameters(), clockx.System{}, func(event.Event) {}, nil)
	if len(ms) != 1 {
		t.Fatalf("expected the malformed entry to be skipped, got %d manipulators", len(ms))
	}
}

func TestBuildParsesMouseBasicManipulator(t *testing.T) {
	rules := []Rule{{
		Manipulators: []string{
			`{"type":"mouse_basic","flip":["x"]}`,
		},
	}}

	ms := Build(rules, manipulator.DefaultParameters(), clockx.System{}, func(event.Event) {}, nil)
	if len(ms) != 1 {
		t.Fatalf("expected 1 manipulator, got %d", len(ms))
	}
	if !ms[0].(*manipulator.MouseBasic).Flip[manipulator.AxisX] {
		t.Error("expected flip[x] to be set")
	}
}
