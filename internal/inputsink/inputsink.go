// Package inputsink adapts a native OS keyboard/mouse hook into the
// event.Event stream the dispatcher consumes. It is gated behind the
// enable_native_hook build tag: capturing raw input system-wide needs
// cgo and platform accessibility permissions that most builds (and all
// tests) should not depend on.
package inputsink

// DeviceAddress is a synthetic device address naming the native hook,
// which exposes no per-device identity of its own. Hook.Run does not
// attach it, or any other device identity, to the events it forwards.
const DeviceAddress = "native-hook"
