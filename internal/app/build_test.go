package app

import (
	"testing"

	"github.com/karabiner-go/manipulator/internal/clockx"
	"github.com/karabiner-go/manipulator/internal/condition"
	"github.com/karabiner-go/manipulator/internal/config"
	"github.com/karabiner-go/manipulator/internal/event"
)

func TestBuildManagerOrdersSimpleModsBeforeComplexRules(t *testing.T) {
	profile := config.Profile{
		Name: "test",
		SimpleModifications: []config.SimpleModification{
			{From: `{"key_code":"a"}`, To: `{"key_code":"b"}`},
		},
		ComplexModifications: config.ComplexModifications{
			Rules: []config.ComplexRule{{
				Manipulators: []string{
					`{"type":"basic","from":{"key_code":"a"},"to":[{"key_code":"c"}]}`,
				},
			}},
		},
	}

	var emitted []event.Event
	manager := BuildManager(profile, clockx.System{}, func(e event.Event) { emitted = append(emitted, e) }, nil)

	ev := event.NewMomentarySwitch(event.MomentarySwitch{Family: "key_code", Code: 4, Direction: event.DirectionDown})
	out := manager.Manipulate(ev, &condition.Environment{})
	if len(out) == 0 {
		t.Fatal("expected an output event")
	}
	ms, ok := out[0].MomentarySwitch()
	if !ok || ms.Code != 5 {
		t.Fatalf("expected the simple modification (key_code b=5) to win over the complex rule, got %+v", out[0])
	}
}
