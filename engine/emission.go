package engine

import "github.com/aknorr/inputbridge/event"

// Kind tags an Emission with the Intake call it carries.
type Kind int

const (
	KindJoyButton Kind = iota
	KindJoyAxis
	KindJoyHat
	KindJoyConnectionChanged
	KindKey
	KindHover
	KindScroll
	KindTouch
	KindMousePressed
	KindMouseDragged
)

var kindNames = map[Kind]string{
	KindJoyButton:            "joybutton",
	KindJoyAxis:              "joyaxis",
	KindJoyHat:               "joyhat",
	KindJoyConnectionChanged: "joyconnectionchanged",
	KindKey:                  "key",
	KindHover:                "hover",
	KindScroll:               "scroll",
	KindTouch:                "touch",
	KindMousePressed:         "mousepressed",
	KindMouseDragged:         "mousedragged",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// Emission is one deferred Intake call: a tagged value carrying the call
// kind and its payload. Emissions are produced on the input dispatch thread
// and delivered on the engine thread.
type Emission interface {
	Kind() Kind
	// Deliver performs the Intake call this emission represents.
	Deliver(Intake)
}

// JoyButton carries an Intake.JoyButton call.
type JoyButton struct {
	Device  int
	Button  int
	Pressed bool
}

func (JoyButton) Kind() Kind          { return KindJoyButton }
func (e JoyButton) Deliver(in Intake) { in.JoyButton(e.Device, e.Button, e.Pressed) }

// JoyAxis carries an Intake.JoyAxis call.
type JoyAxis struct {
	Device int
	Axis   int
	Value  float32
}

func (JoyAxis) Kind() Kind          { return KindJoyAxis }
func (e JoyAxis) Deliver(in Intake) { in.JoyAxis(e.Device, e.Axis, e.Value) }

// JoyHat carries an Intake.JoyHat call.
type JoyHat struct {
	Device int
	HatX   int
	HatY   int
}

func (JoyHat) Kind() Kind          { return KindJoyHat }
func (e JoyHat) Deliver(in Intake) { in.JoyHat(e.Device, e.HatX, e.HatY) }

// JoyConnectionChanged carries an Intake.JoyConnectionChanged call.
type JoyConnectionChanged struct {
	Device    int
	Connected bool
	Name      string
}

func (JoyConnectionChanged) Kind() Kind { return KindJoyConnectionChanged }
func (e JoyConnectionChanged) Deliver(in Intake) {
	in.JoyConnectionChanged(e.Device, e.Connected, e.Name)
}

// Key carries an Intake.Key call.
type Key struct {
	Code     event.Keycode
	ScanCode int
	Unicode  rune
	Pressed  bool
}

func (Key) Kind() Kind          { return KindKey }
func (e Key) Deliver(in Intake) { in.Key(e.Code, e.ScanCode, e.Unicode, e.Pressed) }

// Hover carries an Intake.Hover call.
type Hover struct {
	Tool   event.ToolType
	Action event.Action
	X      float32
	Y      float32
}

func (Hover) Kind() Kind          { return KindHover }
func (e Hover) Deliver(in Intake) { in.Hover(e.Tool, e.Action, e.X, e.Y) }

// Scroll carries an Intake.Scroll call.
type Scroll struct {
	Tool   event.ToolType
	X      float32
	Y      float32
	StartX float32
	StartY float32
	DeltaH float32
	DeltaV float32
}

func (Scroll) Kind() Kind { return KindScroll }
func (e Scroll) Deliver(in Intake) {
	in.Scroll(e.Tool, e.X, e.Y, e.StartX, e.StartY, e.DeltaH, e.DeltaV)
}

// Touch carries an Intake.Touch call.
type Touch struct {
	ActionButton int
	Action       event.Action
	PointerIndex int
	PointerCount int
	Info         []PointerInfo
	Positions    []PointerPosition
}

func (Touch) Kind() Kind { return KindTouch }
func (e Touch) Deliver(in Intake) {
	in.Touch(e.ActionButton, e.Action, e.PointerIndex, e.PointerCount, e.Info, e.Positions)
}

// MousePressed carries an Intake.MousePressed call.
type MousePressed struct {
	Button  int
	X       float32
	Y       float32
	Pressed bool
}

func (MousePressed) Kind() Kind          { return KindMousePressed }
func (e MousePressed) Deliver(in Intake) { in.MousePressed(e.Button, e.X, e.Y, e.Pressed) }

// MouseDragged carries an Intake.MouseDragged call.
type MouseDragged struct {
	Button int
	X      float32
	Y      float32
}

func (MouseDragged) Kind() Kind          { return KindMouseDragged }
func (e MouseDragged) Deliver(in Intake) { in.MouseDragged(e.Button, e.X, e.Y) }
