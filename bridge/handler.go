package bridge

import (
	"log/slog"
	"math"

	"github.com/aknorr/inputbridge/engine"
	"github.com/aknorr/inputbridge/event"
	"github.com/aknorr/inputbridge/platform"
)

// BackHandler is notified when the platform back key is pressed. The back
// key is always consumed by the bridge; what a back press means is up to
// the surrounding application.
type BackHandler interface {
	BackPressed()
}

// Option configures a Handler.
type Option func(*Handler)

// WithLegacyMouseProtocol makes mouse button and drag events use the
// legacy MousePressed/MouseDragged intake shape instead of the richer
// pointer-info Touch shape.
func WithLegacyMouseProtocol() Option {
	return func(h *Handler) { h.legacyMouse = true }
}

// WithBackHandler installs the collaborator notified on back key presses.
func WithBackHandler(b BackHandler) Option {
	return func(h *Handler) { h.back = b }
}

// Handler classifies raw platform events and emits normalized engine
// emissions through the queue. Classification itself is stateless; device
// and mouse button state live in the injected Registry and in the button
// resolver.
//
// Handler methods return whether the event was consumed. A false return
// leaves the event to the platform's default behavior (volume keys must
// keep working).
type Handler struct {
	registry    *Registry
	queue       *engine.Queue
	logger      *slog.Logger
	resolver    buttonResolver
	touchHover  bool
	legacyMouse bool
	back        BackHandler
}

// New returns a Handler emitting through q. The mouse button resolution
// strategy is chosen once, from the platform's reporting capability.
func New(p platform.Platform, reg *Registry, q *engine.Queue, logger *slog.Logger, opts ...Option) *Handler {
	h := &Handler{
		registry: reg,
		queue:    q,
		logger:   logger,
	}
	if p.ReportsActionButton() {
		h.resolver = actionButtonResolver{}
	} else {
		h.resolver = &stateDiffResolver{}
		// Hosts this old deliver touchscreen hover motion without
		// button metadata; route it through the hover path.
		h.touchHover = true
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Registry returns the device registry the handler resolves slots through.
func (h *Handler) Registry() *Registry { return h.registry }

// isGameDevice reports whether a key event source should be routed to
// joystick handling. Keyboards commonly declare keyboard|dpad together;
// that exact combination stays on the keyboard path.
func isGameDevice(src event.Source) bool {
	if src == event.SourceKeyboard|event.SourceDPad {
		return false
	}
	return src.Has(event.SourceJoystick) || src.Has(event.SourceDPad) || src.Has(event.SourceGamepad)
}

// HandleKeyDown classifies and emits a key press. The back key is consumed
// and forwarded to the back handler; volume keys are left to the platform.
func (h *Handler) HandleKeyDown(k event.Key) bool {
	if k.Code == event.KeycodeBack {
		if h.back != nil {
			h.back.BackPressed()
		}
		return true
	}
	if k.Code == event.KeycodeVolumeUp || k.Code == event.KeycodeVolumeDown {
		return false
	}

	if isGameDevice(k.Source) {
		if k.Repeat > 0 {
			// Key echo.
			return true
		}
		slot, ok := h.registry.Find(k.DeviceID)
		if !ok {
			h.logger.Debug("key press from unregistered joystick", "deviceID", k.DeviceID)
			return true
		}
		h.queue.Enqueue(engine.JoyButton{Device: slot, Button: LogicalButton(k.Code), Pressed: true})
		return true
	}

	h.queue.Enqueue(engine.Key{Code: k.Code, ScanCode: k.ScanCode, Unicode: k.Unicode, Pressed: true})
	return true
}

// HandleKeyUp classifies and emits a key release.
func (h *Handler) HandleKeyUp(k event.Key) bool {
	if k.Code == event.KeycodeBack {
		return true
	}
	if k.Code == event.KeycodeVolumeUp || k.Code == event.KeycodeVolumeDown {
		return false
	}

	if isGameDevice(k.Source) {
		slot, ok := h.registry.Find(k.DeviceID)
		if !ok {
			h.logger.Debug("key release from unregistered joystick", "deviceID", k.DeviceID)
			return true
		}
		h.queue.Enqueue(engine.JoyButton{Device: slot, Button: LogicalButton(k.Code), Pressed: false})
		return true
	}

	h.queue.Enqueue(engine.Key{Code: k.Code, ScanCode: k.ScanCode, Unicode: k.Unicode, Pressed: false})
	return true
}

// HandleMotion classifies a generic motion event. Source bits are checked
// in priority order joystick, stylus, mouse; the first match wins so one
// physical event is never handled as two sources. The returned error is
// non-nil only when the compatibility shim detects button state
// desynchronization, which callers must treat as fatal.
func (h *Handler) HandleMotion(m event.Motion) (bool, error) {
	switch {
	case m.Source.Has(event.SourceJoystick) && m.Masked() == event.ActionMove:
		return h.handleJoystickMotion(m), nil
	case m.Source.Has(event.SourceStylus):
		return h.handleHover(m), nil
	case h.touchHover && m.Source.Has(event.SourceTouchscreen):
		return h.handleHover(m), nil
	case m.Source.Has(event.SourceMouse):
		return h.handleMouse(m)
	}
	return false, nil
}

func (h *Handler) handleJoystickMotion(m event.Motion) bool {
	slot, ok := h.registry.Find(m.DeviceID)
	if !ok {
		// Device detached mid-burst; drop.
		return false
	}
	joy := h.registry.device(slot)

	for i, rg := range joy.axes {
		value := rg.Normalize(m.AxisValue(rg.Axis))
		h.queue.Enqueue(engine.JoyAxis{Device: slot, Axis: i, Value: value})
	}
	for i := 0; i+1 < len(joy.hats); i += 2 {
		hatX := roundToInt(m.AxisValue(joy.hats[i].Axis))
		hatY := roundToInt(m.AxisValue(joy.hats[i+1].Axis))
		h.queue.Enqueue(engine.JoyHat{Device: slot, HatX: hatX, HatY: hatY})
	}
	return true
}

func (h *Handler) handleHover(m event.Motion) bool {
	switch m.Masked() {
	case event.ActionHoverEnter, event.ActionHoverMove, event.ActionHoverExit:
		h.queue.Enqueue(engine.Hover{Tool: h.primaryTool(m), Action: m.Masked(), X: m.X(), Y: m.Y()})
		return true
	}
	return false
}

func (h *Handler) handleMouse(m event.Motion) (bool, error) {
	switch m.Masked() {
	case event.ActionHoverEnter, event.ActionHoverMove, event.ActionHoverExit:
		return h.handleHover(m), nil

	case event.ActionScroll:
		h.queue.Enqueue(engine.Scroll{
			Tool:   h.primaryTool(m),
			X:      m.X(),
			Y:      m.Y(),
			StartX: m.X(),
			StartY: m.Y(),
			DeltaH: m.AxisValue(event.AxisHScroll),
			DeltaV: m.AxisValue(event.AxisVScroll),
		})
		return true, nil

	case event.ActionButtonPress, event.ActionButtonRelease:
		button, err := h.resolver.resolve(m)
		if err != nil {
			return false, err
		}
		pressed := m.Masked() == event.ActionButtonPress
		if h.legacyMouse {
			h.queue.Enqueue(engine.MousePressed{Button: button, X: m.X(), Y: m.Y(), Pressed: pressed})
		} else {
			info, positions := pointerArrays(m)
			h.queue.Enqueue(engine.Touch{
				ActionButton: button,
				Action:       m.Masked(),
				PointerIndex: 0,
				PointerCount: len(m.Pointers),
				Info:         info,
				Positions:    positions,
			})
		}
		return true, nil
	}
	return false, nil
}

// HandleTouch classifies a multi-pointer touch event. Mouse-tooled down
// and up touches are suppressed because the same physical click arrives
// through the button press path; mouse moves in the legacy protocol are
// reported as drags, everything else flows through the touch path.
func (h *Handler) HandleTouch(m event.Motion) bool {
	if len(m.Pointers) == 0 {
		// Nothing to report, but the event is done with.
		return true
	}

	if m.Pointers[0].Tool == event.ToolMouse {
		switch m.Masked() {
		case event.ActionDown, event.ActionUp:
			return true
		case event.ActionMove:
			if h.legacyMouse {
				h.legacyMouseDrag(m)
				return true
			}
		}
	}

	info, positions := pointerArrays(m)
	switch m.Masked() {
	case event.ActionDown, event.ActionUp, event.ActionMove, event.ActionCancel:
		h.queue.Enqueue(engine.Touch{
			Action:       m.Masked(),
			PointerCount: len(m.Pointers),
			Info:         info,
			Positions:    positions,
		})
		return true

	case event.ActionPointerDown, event.ActionPointerUp:
		h.queue.Enqueue(engine.Touch{
			Action:       m.Masked(),
			PointerIndex: m.PointerIndex(),
			PointerCount: len(m.Pointers),
			Info:         info,
			Positions:    positions,
		})
		return true
	}
	return false
}

// legacyMouseDrag reports mouse motion with buttons held in the legacy
// protocol shape, one emission per held button. In the richer protocol
// drags flow through the regular touch path instead.
func (h *Handler) legacyMouseDrag(m event.Motion) {
	for _, b := range []event.Buttons{event.ButtonPrimary, event.ButtonSecondary, event.ButtonTertiary} {
		if m.Buttons&b == b {
			h.queue.Enqueue(engine.MouseDragged{Button: int(b), X: m.X(), Y: m.Y()})
		}
	}
}

// HandleText decomposes a multi-character input (IME composition or
// auto-complete insertion) into synthetic key press/release pairs carrying
// only the character payload. Empty input is reported unhandled.
func (h *Handler) HandleText(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r == 0 {
			continue
		}
		h.queue.Enqueue(engine.Key{Code: 0, ScanCode: 0, Unicode: r, Pressed: true})
		h.queue.Enqueue(engine.Key{Code: 0, ScanCode: 0, Unicode: r, Pressed: false})
	}
	return true
}

// HandleDeviceAdded registers a newly attached platform device.
func (h *Handler) HandleDeviceAdded(deviceID int) {
	h.registry.Add(deviceID)
}

// HandleDeviceRemoved unregisters a detached platform device.
func (h *Handler) HandleDeviceRemoved(deviceID int) {
	h.registry.Remove(deviceID)
}

// HandleDeviceChanged re-registers a device after an in-place capability
// change.
func (h *Handler) HandleDeviceChanged(deviceID int) {
	h.registry.Replace(deviceID)
}

// InitDevices registers all currently attached devices.
func (h *Handler) InitDevices() {
	h.registry.Init()
}

func (h *Handler) primaryTool(m event.Motion) event.ToolType {
	if len(m.Pointers) == 0 {
		return event.ToolUnknown
	}
	return m.Pointers[0].Tool
}

func pointerArrays(m event.Motion) ([]engine.PointerInfo, []engine.PointerPosition) {
	info := make([]engine.PointerInfo, len(m.Pointers))
	positions := make([]engine.PointerPosition, len(m.Pointers))
	for i, p := range m.Pointers {
		info[i] = engine.PointerInfo{ID: p.ID, Tool: p.Tool}
		positions[i] = engine.PointerPosition{X: p.X, Y: p.Y}
	}
	return info, positions
}

func roundToInt(v float32) int {
	return int(math.Round(float64(v)))
}
