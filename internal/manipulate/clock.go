package manipulate

import (
	"sync"
	"time"

	"github.com/karabiner-go/manipulator/internal/clockx"
	"github.com/karabiner-go/manipulator/internal/event"
)

// DispatcherClock adapts the runtime clock to clockx.Clock such that every
// AfterFunc callback is posted through the owning Dispatcher's timer
// channel instead of running on the Go runtime's own timer goroutine.
// This is what makes the single-threaded cooperative model in §5 hold:
// a basic manipulator activation's timer-driven reads/writes of its own
// state never race with the goroutine routing incoming events.
type DispatcherClock struct {
	dispatcher *Dispatcher
}

// NewDispatcherClock builds a Clock bound to d. Manipulators constructed
// for use with d must be given this clock, not clockx.System directly.
func NewDispatcherClock(d *Dispatcher) *DispatcherClock {
	return &DispatcherClock{dispatcher: d}
}

func (c *DispatcherClock) Now() int64 { return clockx.System{}.Now() }

func (c *DispatcherClock) AfterFunc(d time.Duration, f func()) clockx.CancelFunc {
	timer := time.AfterFunc(d, func() {
		c.dispatcher.PostTimer(func() []event.Event {
			f()
			return nil
		})
	})
	var once sync.Once
	return func() {
		once.Do(func() { timer.Stop() })
	}
}
