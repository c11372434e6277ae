package manipulator

import (
	"testing"
	"time"

	"github.com/karabiner-go/manipulator/internal/clockx"
	"github.com/karabiner-go/manipulator/internal/condition"
	"github.com/karabiner-go/manipulator/internal/event"
	"github.com/karabiner-go/manipulator/internal/eventdef"
)

func mustFrom(t *testing.T, raw string) *eventdef.FromEventDefinition {
	t.Helper()
	f, err := eventdef.ParseFrom([]byte(raw))
	if err != nil {
		t.Fatalf("ParseFrom: %v", err)
	}
	return f
}

func mustTo(t *testing.T, raw string) []*eventdef.ToEventDefinition {
	t.Helper()
	list, err := eventdef.ParseToList([]byte(raw))
	if err != nil {
		t.Fatalf("ParseToList: %v", err)
	}
	return list
}

func newTestBasic(t *testing.T, fromRaw, toRaw string) (*Basic, *clockx.Fake, *[]event.Event) {
	t.Helper()
	clock := clockx.NewFake(0)
	var emitted []event.Event
	b := NewBasic(
		mustFrom(t, fromRaw),
		mustTo(t, toRaw),
		nil,
		DefaultParameters(),
		clock,
		func(e event.Event) { emitted = append(emitted, e) },
	)
	return b, clock, &emitted
}

func TestBasicSimpleRemap(t *testing.T) {
	b, _, _ := newTestBasic(t, `{"key_code":"a"}`, `{"key_code":"b"}`)
	env := &condition.Environment{}

	press := event.NewMomentarySwitch(event.MomentarySwitch{Family: "key_code", Code: 4, Direction: event.DirectionDown})
	out, consumed := b.Apply(press, env)
	if !consumed || len(out) != 1 {
		t.Fatalf("expected one output event, got %v consumed=%v", out, consumed)
	}
	ms, _ := out[0].MomentarySwitch()
	if ms.Family != "key_code" || ms.Code != 5 || ms.Direction != event.DirectionDown {
		t.Errorf("unexpected press output: %+v", ms)
	}
	if !b.Active() {
		t.Fatal("expected an active activation after press")
	}

	release := event.NewMomentarySwitch(event.MomentarySwitch{Family: "key_code", Code: 4, Direction: event.DirectionUp})
	out, consumed = b.Apply(release, env)
	if !consumed || len(out) != 1 {
		t.Fatalf("expected one key-up output, got %v consumed=%v", out, consumed)
	}
	ms, _ = out[0].MomentarySwitch()
	if ms.Direction != event.DirectionUp || ms.Code != 5 {
		t.Errorf("unexpected release output: %+v", ms)
	}
	if b.Active() {
		t.Fatal("expected no activations after release")
	}
}

func TestBasicRequiresMandatoryModifier(t *testing.T) {
	b, _, _ := newTestBasic(t, `{"key_code":"a","modifiers":{"mandatory":["left_shift"]}}`, `{"key_code":"b"}`)
	press := event.NewMomentarySwitch(event.MomentarySwitch{Family: "key_code", Code: 4, Direction: event.DirectionDown})

	_, consumed := b.Apply(press, &condition.Environment{})
	if consumed {
		t.Fatal("expected no match without mandatory modifier held")
	}

	env := &condition.Environment{HeldModifiers: map[string]bool{"left_shift": true}}
	_, consumed = b.Apply(press, env)
	if !consumed {
		t.Fatal("expected match once mandatory modifier is held")
	}
}

func TestBasicRejectsUnlistedExtraModifier(t *testing.T) {
	b, _, _ := newTestBasic(t, `{"key_code":"a"}`, `{"key_code":"b"}`)
	press := event.NewMomentarySwitch(event.MomentarySwitch{Family: "key_code", Code: 4, Direction: event.DirectionDown})
	env := &condition.Environment{HeldModifiers: map[string]bool{"left_control": true}}
	_, consumed := b.Apply(press, env)
	if consumed {
		t.Error("expected no match: held modifier not in mandatory or optional")
	}
}

func TestBasicEmitsToIfAloneOnlyWhenUninterrupted(t *testing.T) {
	b, clock, _ := newTestBasic(t, `{"key_code":"a"}`, `{"key_code":"b"}`)
	b.ToIfAlone = mustTo(t, `{"key_code":"c"}`)
	env := &condition.Environment{}

	press := event.NewMomentarySwitch(event.MomentarySwitch{Family: "key_code", Code: 4, Direction: event.DirectionDown})
	b.Apply(press, env)

	clock.Advance(10) // well within the 1000ms to_if_alone window

	release := event.NewMomentarySwitch(event.MomentarySwitch{Family: "key_code", Code: 4, Direction: event.DirectionUp})
	out, _ := b.Apply(release, env)

	foundAlone := false
	for _, e := range out {
		if ms, ok := e.MomentarySwitch(); ok && ms.Code == 6 {
			foundAlone = true
		}
	}
	if !foundAlone {
		t.Error("expected to_if_alone event when released without an intervening switch event")
	}
}

func TestBasicSuppressesToIfAloneAfterInterveningEvent(t *testing.T) {
	b, _, _ := newTestBasic(t, `{"key_code":"a"}`, `{"key_code":"b"}`)
	b.ToIfAlone = mustTo(t, `{"key_code":"c"}`)
	env := &condition.Environment{}

	press := event.NewMomentarySwitch(event.MomentarySwitch{Family: "key_code", Code: 4, Direction: event.DirectionDown})
	b.Apply(press, env)

	// The manager fans out every switch event to every manipulator so
	// activations elsewhere learn their alone-window was interrupted;
	// simulate that fan-out directly since this unit test exercises a
	// single manipulator in isolation.
	b.NotifySwitchEvent(0)

	release := event.NewMomentarySwitch(event.MomentarySwitch{Family: "key_code", Code: 4, Direction: event.DirectionUp})
	out, _ := b.Apply(release, env)

	for _, e := range out {
		if ms, ok := e.MomentarySwitch(); ok && ms.Code == 6 {
			t.Error("to_if_alone must not fire after an intervening switch event")
		}
	}
}

func TestBasicIgnoresNonMatchingFamily(t *testing.T) {
	b, _, _ := newTestBasic(t, `{"key_code":"a"}`, `{"key_code":"b"}`)
	press := event.NewMomentarySwitch(event.MomentarySwitch{Family: "consumer_key_code", Code: 4, Direction: event.DirectionDown})
	_, consumed := b.Apply(press, &condition.Environment{})
	if consumed {
		t.Error("expected no match for a different family")
	}
}

// codes collects the (family, code, direction) triples out of a MomentarySwitch
// event slice, in order, so a test can assert the full emitted sequence
// rather than just membership.
func codes(t *testing.T, out []event.Event) []event.MomentarySwitch {
	t.Helper()
	var got []event.MomentarySwitch
	for _, e := range out {
		ms, ok := e.MomentarySwitch()
		if !ok {
			t.Fatalf("expected only momentary switch events, got %+v", e)
		}
		got = append(got, ms)
	}
	return got
}

func TestBasicToIfAloneEmitsFullDownUpSequence(t *testing.T) {
	// Mirrors scenario S4: from left_shift, to left_shift, to_if_alone key_code 9.
	// Press+release within the alone window emits left_shift_down,
	// left_shift_up, 9_down, 9_up in that order.
	b, clock, _ := newTestBasic(t, `{"key_code":"left_shift"}`, `{"key_code":"left_shift"}`)
	b.ToIfAlone = mustTo(t, `{"key_code":"9"}`)
	env := &condition.Environment{}

	press := event.NewMomentarySwitch(event.MomentarySwitch{Family: "key_code", Code: 225, Direction: event.DirectionDown})
	out, consumed := b.Apply(press, env)
	if !consumed || len(out) != 1 {
		t.Fatalf("expected one press output, got %v consumed=%v", out, consumed)
	}

	clock.Advance(500 * time.Millisecond)

	release := event.NewMomentarySwitch(event.MomentarySwitch{Family: "key_code", Code: 225, Direction: event.DirectionUp})
	relOut, consumed := b.Apply(release, env)
	if !consumed {
		t.Fatalf("expected release to be consumed")
	}

	got := codes(t, relOut)
	if len(got) != 3 {
		t.Fatalf("expected left_shift_up, 9_down, 9_up, got %+v", got)
	}
	if got[0].Code != 225 || got[0].Direction != event.DirectionUp {
		t.Errorf("expected left_shift_up first, got %+v", got[0])
	}
	if got[1].Code != 38 || got[1].Direction != event.DirectionDown {
		t.Errorf("expected to_if_alone key-down second, got %+v", got[1])
	}
	if got[2].Code != 38 || got[2].Direction != event.DirectionUp {
		t.Errorf("expected to_if_alone key-up third, got %+v", got[2])
	}
}

func TestBasicToIfHeldDownEmitsDownAndUp(t *testing.T) {
	b, clock, emitted := newTestBasic(t, `{"key_code":"a"}`, `{"key_code":"a"}`)
	b.ToIfHeldDown = mustTo(t, `{"key_code":"b"}`)
	env := &condition.Environment{}

	press := event.NewMomentarySwitch(event.MomentarySwitch{Family: "key_code", Code: 4, Direction: event.DirectionDown})
	b.Apply(press, env)

	clock.Advance(time.Duration(b.Parameters.ToIfHeldDownThresholdMilliseconds) * time.Millisecond)

	got := codes(t, *emitted)
	if len(got) != 2 {
		t.Fatalf("expected to_if_held_down down+up pair, got %+v", got)
	}
	if got[0].Code != 5 || got[0].Direction != event.DirectionDown {
		t.Errorf("expected held-down key-down first, got %+v", got[0])
	}
	if got[1].Code != 5 || got[1].Direction != event.DirectionUp {
		t.Errorf("expected held-down key-up second, got %+v", got[1])
	}
}

func TestBasicToEntryWrapsAddedModifier(t *testing.T) {
	// to:[{"key_code":"tab","modifiers":["left_control"]}] must wrap the
	// emitted tab with left_control's down/up on press and release.
	b, _, _ := newTestBasic(t, `{"key_code":"a"}`, `{"key_code":"tab","modifiers":["left_control"]}`)
	env := &condition.Environment{}

	press := event.NewMomentarySwitch(event.MomentarySwitch{Family: "key_code", Code: 4, Direction: event.DirectionDown})
	out, consumed := b.Apply(press, env)
	if !consumed {
		t.Fatalf("expected press to be consumed")
	}
	got := codes(t, out)
	if len(got) != 2 {
		t.Fatalf("expected left_control_down, tab_down, got %+v", got)
	}
	if got[0].Code != 224 || got[0].Direction != event.DirectionDown {
		t.Errorf("expected left_control down first, got %+v", got[0])
	}
	if got[1].Direction != event.DirectionDown {
		t.Errorf("expected tab down second, got %+v", got[1])
	}

	release := event.NewMomentarySwitch(event.MomentarySwitch{Family: "key_code", Code: 4, Direction: event.DirectionUp})
	relOut, consumed := b.Apply(release, env)
	if !consumed {
		t.Fatalf("expected release to be consumed")
	}
	gotRel := codes(t, relOut)
	if len(gotRel) != 2 {
		t.Fatalf("expected tab_up, left_control_up, got %+v", gotRel)
	}
	if gotRel[0].Direction != event.DirectionUp {
		t.Errorf("expected tab up first, got %+v", gotRel[0])
	}
	if gotRel[1].Code != 224 || gotRel[1].Direction != event.DirectionUp {
		t.Errorf("expected left_control up last (reverse order), got %+v", gotRel[1])
	}
}

func TestBasicHaltStopsToListProcessing(t *testing.T) {
	b, _, _ := newTestBasic(t, `{"key_code":"a"}`, `[{"key_code":"b","halt":true},{"key_code":"c"}]`)
	env := &condition.Environment{}

	press := event.NewMomentarySwitch(event.MomentarySwitch{Family: "key_code", Code: 4, Direction: event.DirectionDown})
	out, consumed := b.Apply(press, env)
	if !consumed {
		t.Fatalf("expected press to be consumed")
	}
	got := codes(t, out)
	if len(got) != 1 || got[0].Code != 5 {
		t.Fatalf("expected halt to stop processing after the first element, got %+v", got)
	}

	release := event.NewMomentarySwitch(event.MomentarySwitch{Family: "key_code", Code: 4, Direction: event.DirectionUp})
	relOut, consumed := b.Apply(release, env)
	if !consumed {
		t.Fatalf("expected release to be consumed")
	}
	gotRel := codes(t, relOut)
	if len(gotRel) != 1 || gotRel[0].Code != 5 || gotRel[0].Direction != event.DirectionUp {
		t.Fatalf("expected release to mirror only the halted-at element, got %+v", gotRel)
	}
}

func TestBasicKeyUpWhenMillisecondsDefersRelease(t *testing.T) {
	b, clock, emitted := newTestBasic(t, `{"key_code":"a"}`, `{"key_code":"b","key_up_when":200}`)
	env := &condition.Environment{}

	press := event.NewMomentarySwitch(event.MomentarySwitch{Family: "key_code", Code: 4, Direction: event.DirectionDown})
	b.Apply(press, env)

	release := event.NewMomentarySwitch(event.MomentarySwitch{Family: "key_code", Code: 4, Direction: event.DirectionUp})
	out, consumed := b.Apply(release, env)
	if !consumed {
		t.Fatalf("expected release to be consumed")
	}
	if len(out) != 0 {
		t.Fatalf("expected the key-up to be deferred rather than emitted synchronously, got %+v", out)
	}
	if len(*emitted) != 0 {
		t.Fatalf("expected nothing emitted before the deferred delay elapses, got %+v", *emitted)
	}

	clock.Advance(200 * time.Millisecond)
	got := codes(t, *emitted)
	if len(got) != 1 || got[0].Code != 5 || got[0].Direction != event.DirectionUp {
		t.Fatalf("expected the deferred key-up after the delay, got %+v", got)
	}
}

func TestBasicKeyUpWhenAnyFlushesOnNextSwitchEvent(t *testing.T) {
	b, _, _ := newTestBasic(t, `{"key_code":"a"}`, `{"key_code":"b","key_up_when":"any"}`)
	env := &condition.Environment{}

	press := event.NewMomentarySwitch(event.MomentarySwitch{Family: "key_code", Code: 4, Direction: event.DirectionDown})
	b.Apply(press, env)

	release := event.NewMomentarySwitch(event.MomentarySwitch{Family: "key_code", Code: 4, Direction: event.DirectionUp})
	out, consumed := b.Apply(release, env)
	if !consumed {
		t.Fatalf("expected release to be consumed")
	}
	if len(out) != 0 {
		t.Fatalf("expected the key-up to be deferred rather than emitted at release, got %+v", out)
	}

	flushed := b.NotifySwitchEvent(0)
	got := codes(t, flushed)
	if len(got) != 1 || got[0].Code != 5 || got[0].Direction != event.DirectionUp {
		t.Fatalf("expected the deferred key-up flushed by the next switch event, got %+v", got)
	}
}
