//go:build enable_native_hook

package inputsink

import (
	"context"
	"log/slog"

	hook "github.com/robotn/gohook"

	"github.com/karabiner-go/manipulator/internal/event"
)

// Hook streams native keyboard and mouse events as event.Event values
// until ctx is canceled. Keyboard rawcodes are forwarded as key_code
// family momentary switches; mouse moves and
// wheel ticks as pointing_motion. This is the only package in the
// module that talks to the OS input subsystem directly.
type Hook struct {
	log *slog.Logger
}

// NewHook constructs a Hook. log may be nil, in which case
// slog.Default() is used.
func NewHook(log *slog.Logger) *Hook {
	if log == nil {
		log = slog.Default()
	}
	return &Hook{log: log}
}

// Run forwards native events onto out until ctx is canceled or the
// underlying hook ends.
func (h *Hook) Run(ctx context.Context, out chan<- event.Event) error {
	events := hook.Start()
	defer hook.End()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case e, ok := <-events:
			if !ok {
				return nil
			}
			if ev, matched := translate(e); matched {
				select {
				case out <- ev:
				case <-ctx.Done():
					return ctx.Err()
				}
			}
		}
	}
}

func translate(e hook.Event) (event.Event, bool) {
	switch e.Kind {
	case hook.KeyDown:
		return event.NewMomentarySwitch(event.MomentarySwitch{
			Family:    "key_code",
			Code:      int64(e.Rawcode),
			Direction: event.DirectionDown,
		}), true
	case hook.KeyUp:
		return event.NewMomentarySwitch(event.MomentarySwitch{
			Family:    "key_code",
			Code:      int64(e.Rawcode),
			Direction: event.DirectionUp,
		}), true
	case hook.MouseDown:
		return event.NewMomentarySwitch(event.MomentarySwitch{
			Family:    "pointing_button",
			Code:      int64(e.Button),
			Direction: event.DirectionDown,
		}), true
	case hook.MouseUp:
		return event.NewMomentarySwitch(event.MomentarySwitch{
			Family:    "pointing_button",
			Code:      int64(e.Button),
			Direction: event.DirectionUp,
		}), true
	case hook.MouseMove, hook.MouseDrag:
		return event.NewPointingMotion(event.PointingMotion{X: int(e.X), Y: int(e.Y)}), true
	case hook.MouseWheel:
		if e.Direction == 0 {
			return event.NewPointingMotion(event.PointingMotion{VerticalWheel: int(e.Rotation)}), true
		}
		return event.NewPointingMotion(event.PointingMotion{HorizontalWheel: int(e.Rotation)}), true
	default:
		return event.None, false
	}
}
