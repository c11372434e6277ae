//go:build !enable_native_hook

package inputsink

import (
	"context"
	"testing"

	"github.com/karabiner-go/manipulator/internal/event"
)

func TestHookRunFailsWithoutNativeTag(t *testing.T) {
	h := NewHook(nil)
	out := make(chan event.Event, 1)
	if err := h.Run(context.Background(), out); err == nil {
		t.Fatal("expected an error when built without enable_native_hook")
	}
}
