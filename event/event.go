// Package event defines the raw input event model fed into the bridge.
//
// Constant values mirror the platform's wire values exactly so that recorded
// traces and live sources agree without translation tables.
package event

// Source identifies the device class bits carried by a raw event.
//
// Sources are composed of a class nibble plus device bits; membership tests
// must check containment of the full mask, not a single bit.
type Source int

const (
	SourceKeyboard    Source = 0x0101
	SourceDPad        Source = 0x0201
	SourceGamepad     Source = 0x0401
	SourceTouchscreen Source = 0x1002
	SourceMouse       Source = 0x2002
	SourceStylus      Source = 0x4002
	SourceJoystick    Source = 0x1000010
)

// Has reports whether the source contains every bit of the given mask.
func (s Source) Has(mask Source) bool {
	return s&mask == mask
}

// Action identifies the gesture phase of a motion event, independent of
// which pointer triggered it.
type Action int

const (
	ActionDown          Action = 0
	ActionUp            Action = 1
	ActionMove          Action = 2
	ActionCancel        Action = 3
	ActionPointerDown   Action = 5
	ActionPointerUp     Action = 6
	ActionHoverMove     Action = 7
	ActionScroll        Action = 8
	ActionHoverEnter    Action = 9
	ActionHoverExit     Action = 10
	ActionButtonPress   Action = 11
	ActionButtonRelease Action = 12
)

// Raw action encoding: low byte is the masked action, the next byte carries
// the index of the pointer that triggered it.
const (
	actionMask              = 0x00ff
	actionPointerIndexMask  = 0xff00
	actionPointerIndexShift = 8
)

// ToolType classifies the implement that produced a pointer.
type ToolType int

const (
	ToolUnknown ToolType = 0
	ToolFinger  ToolType = 1
	ToolStylus  ToolType = 2
	ToolMouse   ToolType = 3
	ToolEraser  ToolType = 4
)

// Axis is a platform motion axis code.
type Axis int

const (
	AxisX       Axis = 0
	AxisY       Axis = 1
	AxisVScroll Axis = 9
	AxisHScroll Axis = 10
	AxisHatX    Axis = 15
	AxisHatY    Axis = 16
)

// Buttons is the mouse button state bitmask of a motion event.
type Buttons int

const (
	ButtonPrimary   Buttons = 1 << 0
	ButtonSecondary Buttons = 1 << 1
	ButtonTertiary  Buttons = 1 << 2
	ButtonBack      Buttons = 1 << 3
	ButtonForward   Buttons = 1 << 4
)

// Key is a raw keyboard or game-controller key event.
type Key struct {
	DeviceID int
	Source   Source
	Code     Keycode
	ScanCode int
	// Unicode is the character produced by the key without modifiers,
	// zero when the key has no character mapping.
	Unicode rune
	// Repeat is the auto-repeat count; zero for the initial press.
	Repeat int
}

// Pointer is one active pointer of a motion event.
type Pointer struct {
	ID   int
	Tool ToolType
	X    float32
	Y    float32
}

// Motion is a raw motion event: joystick axis movement, stylus or mouse
// motion, scroll, mouse button change, or a multi-pointer touch gesture.
type Motion struct {
	DeviceID int
	Source   Source
	// Action is the raw action code including pointer index bits.
	Action int
	// ActionButton is the button that triggered a button-press or
	// button-release action. Zero on platform versions that do not
	// report it; the compatibility shim reconstructs it from Buttons.
	ActionButton int
	Buttons      Buttons
	// Pointers holds every active pointer, ordered by pointer slot.
	Pointers []Pointer
	// Axes holds the axis readings sampled with the event.
	Axes map[Axis]float32
}

// Masked returns the action with the pointer index bits stripped.
func (m Motion) Masked() Action {
	return Action(m.Action & actionMask)
}

// PointerIndex returns the index of the pointer that triggered the action.
func (m Motion) PointerIndex() int {
	return (m.Action & actionPointerIndexMask) >> actionPointerIndexShift
}

// AxisValue returns the sampled reading for the axis, zero when absent.
func (m Motion) AxisValue(a Axis) float32 {
	return m.Axes[a]
}

// X returns the x coordinate of the primary pointer.
func (m Motion) X() float32 {
	if len(m.Pointers) == 0 {
		return 0
	}
	return m.Pointers[0].X
}

// Y returns the y coordinate of the primary pointer.
func (m Motion) Y() float32 {
	if len(m.Pointers) == 0 {
		return 0
	}
	return m.Pointers[0].Y
}
