//go:build !enable_native_hook

package inputsink

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/karabiner-go/manipulator/internal/event"
)

// Hook is the default, no-op stand-in used when the module is built
// without enable_native_hook. Capturing raw input system-wide requires
// cgo and OS accessibility permissions that most builds and all tests
// should not depend on.
type Hook struct {
	log *slog.Logger
}

// NewHook constructs a Hook. log may be nil.
func NewHook(log *slog.Logger) *Hook {
	if log == nil {
		log = slog.Default()
	}
	return &Hook{log: log}
}

// Run always fails: rebuild with -tags enable_native_hook to capture
// native input.
func (h *Hook) Run(ctx context.Context, out chan<- event.Event) error {
	return fmt.Errorf("inputsink: built without enable_native_hook, no native capture available")
}
