package manipulator

import (
	"github.com/karabiner-go/manipulator/internal/condition"
	"github.com/karabiner-go/manipulator/internal/event"
)

// Axis names one of the four pointing-motion components mouse_basic can
// flip, swap, or discard.
type Axis string

const (
	AxisX               Axis = "x"
	AxisY               Axis = "y"
	AxisVerticalWheel   Axis = "vertical_wheel"
	AxisHorizontalWheel Axis = "horizontal_wheel"
)

// MouseBasic implements the "mouse_basic" manipulator variant: a pure
// transform over pointing_motion events gated by a device condition (the
// condition list is expected to carry a device_if identifying the mouse).
type MouseBasic struct {
	Flip       map[Axis]bool
	SwapXY     bool
	SwapWheels bool
	Discard    map[Axis]bool
	Conditions []condition.Condition
}

func (m *MouseBasic) Active() bool             { return false }
func (m *MouseBasic) NeedsVirtualHIDPointing() bool { return true }

func (m *MouseBasic) Apply(ev event.Event, env *condition.Environment) ([]event.Event, bool) {
	pm, ok := ev.PointingMotion()
	if !ok {
		return nil, false
	}
	if !condition.All(m.Conditions, env) {
		return nil, false
	}

	if m.Discard[AxisX] {
		pm.X = 0
	}
	if m.Discard[AxisY] {
		pm.Y = 0
	}
	if m.Discard[AxisVerticalWheel] {
		pm.VerticalWheel = 0
	}
	if m.Discard[AxisHorizontalWheel] {
		pm.HorizontalWheel = 0
	}

	if m.SwapXY {
		pm.X, pm.Y = pm.Y, pm.X
	}
	if m.SwapWheels {
		pm.VerticalWheel, pm.HorizontalWheel = pm.HorizontalWheel, pm.VerticalWheel
	}

	if m.Flip[AxisX] {
		pm.X = -pm.X
	}
	if m.Flip[AxisY] {
		pm.Y = -pm.Y
	}
	if m.Flip[AxisVerticalWheel] {
		pm.VerticalWheel = -pm.VerticalWheel
	}
	if m.Flip[AxisHorizontalWheel] {
		pm.HorizontalWheel = -pm.HorizontalWheel
	}

	if pm.X == 0 && pm.Y == 0 && pm.VerticalWheel == 0 && pm.HorizontalWheel == 0 {
		return nil, true
	}
	return []event.Event{event.NewPointingMotion(pm)}, true
}

func (m *MouseBasic) HandleDeviceUngrabbed(deviceAddress string) []event.Event { return nil }

func (m *MouseBasic) HandleDeviceKeysAndPointingButtonsReleased(deviceAddress string) []event.Event {
	return nil
}

func (m *MouseBasic) Invalidate() []event.Event { return nil }
