// Package engine defines the normalized event contract with the consuming
// engine: the Intake interface the engine implements, the tagged Emission
// values the bridge produces, and the single-producer/single-consumer queue
// that hands emissions over to the engine thread.
package engine

import "github.com/aknorr/inputbridge/event"

// PointerInfo identifies one pointer of a touch emission.
type PointerInfo struct {
	ID   int
	Tool event.ToolType
}

// PointerPosition is the pixel position of one pointer of a touch emission.
type PointerPosition struct {
	X float32
	Y float32
}

// Intake is the engine's event intake API. All methods are invoked on the
// engine's own thread, in the exact order the producing events were
// classified. Axis values are normalized to [-1, 1]; coordinates are pixels.
type Intake interface {
	// JoyButton reports a game-controller button state change for the
	// device in the given registry slot.
	JoyButton(device, button int, pressed bool)

	// JoyAxis reports a normalized axis reading, value in [-1, 1].
	JoyAxis(device, axis int, value float32)

	// JoyHat reports a hat direction as a rounded axis pair.
	JoyHat(device, hatX, hatY int)

	// JoyConnectionChanged reports a device appearing in or leaving a
	// registry slot. Slots shift down on removal; the engine must not
	// cache slot numbers across connection changes.
	JoyConnectionChanged(device int, connected bool, name string)

	// Key reports a raw keyboard key state change.
	Key(code event.Keycode, scanCode int, unicode rune, pressed bool)

	// Hover reports stylus or mouse hover motion.
	Hover(tool event.ToolType, action event.Action, x, y float32)

	// Scroll reports mouse wheel motion with the raw scroll deltas.
	Scroll(tool event.ToolType, x, y, startX, startY, deltaH, deltaV float32)

	// Touch reports a touch gesture change. actionButton is non-zero
	// only for mouse button-press/button-release actions routed through
	// the touch shape; pointerIndex is the pointer that triggered the
	// action.
	Touch(actionButton int, action event.Action, pointerIndex, pointerCount int, info []PointerInfo, positions []PointerPosition)

	// MousePressed reports a mouse button state change in the legacy
	// protocol shape.
	MousePressed(button int, x, y float32, pressed bool)

	// MouseDragged reports mouse motion while the given button is held,
	// in the legacy protocol shape. One call per held button.
	MouseDragged(button int, x, y float32)
}
