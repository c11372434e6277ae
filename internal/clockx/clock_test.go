package clockx

import "testing"

func TestFakeAdvanceFiresDueTimers(t *testing.T) {
	c := NewFake(0)
	fired := false
	c.AfterFunc(100_000_000, func() { fired = true }) // 100ms
	c.Advance(150_000_000)
	if !fired {
		t.Error("expected timer to fire after advancing past its deadline")
	}
}

func TestFakeTimerCancel(t *testing.T) {
	c := NewFake(0)
	fired := false
	cancel := c.AfterFunc(1_000_000_000, func() { fired = true }) // 1s
	cancel()
	c.Advance(2_000_000_000)
	if fired {
		t.Error("canceled timer must not fire")
	}
}

func TestFakeTimerFiresInOrder(t *testing.T) {
	c := NewFake(0)
	var order []int
	c.AfterFunc(1_000_000_000, func() { order = append(order, 1) })
	c.AfterFunc(1_000_000_000, func() { order = append(order, 2) })
	c.Advance(1_000_000_000)
	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Errorf("expected [1 2], got %v", order)
	}
}
