package bridge_test

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aknorr/inputbridge/bridge"
	"github.com/aknorr/inputbridge/engine"
	"github.com/aknorr/inputbridge/event"
	"github.com/aknorr/inputbridge/internal/inputtest"
	"github.com/aknorr/inputbridge/platform"
)

func newHandler(t *testing.T, opts ...bridge.Option) (*inputtest.FakePlatform, *bridge.Handler, *engine.Queue) {
	t.Helper()
	p := inputtest.NewFakePlatform()
	q := engine.NewQueue()
	reg := bridge.NewRegistry(p, q, slog.Default())
	return p, bridge.New(p, reg, q, slog.Default(), opts...), q
}

// newLegacyHandler builds a handler against a platform that does not
// report action buttons, with the legacy mouse protocol selected.
func newLegacyHandler(t *testing.T) (*inputtest.FakePlatform, *bridge.Handler, *engine.Queue) {
	t.Helper()
	p := inputtest.NewFakePlatform()
	p.ActionButton = false
	q := engine.NewQueue()
	reg := bridge.NewRegistry(p, q, slog.Default())
	return p, bridge.New(p, reg, q, slog.Default(), bridge.WithLegacyMouseProtocol()), q
}

func gamepadKey(device int, code event.Keycode) event.Key {
	return event.Key{DeviceID: device, Source: event.SourceGamepad, Code: code}
}

type backRecorder struct{ pressed int }

func (b *backRecorder) BackPressed() { b.pressed++ }

func TestKeyDownGameController(t *testing.T) {
	p, h, q := newHandler(t)
	p.AddGamepad(9, "pad")
	h.InitDevices()
	drain(t, q)

	assert.True(t, h.HandleKeyDown(gamepadKey(9, event.KeycodeButtonA)))
	assert.Equal(t, []string{"joybutton(0,0,true)"}, drain(t, q))
}

func TestKeyDownIgnoresEcho(t *testing.T) {
	p, h, q := newHandler(t)
	p.AddGamepad(9, "pad")
	h.InitDevices()
	drain(t, q)

	k := gamepadKey(9, event.KeycodeButtonA)
	k.Repeat = 2
	assert.True(t, h.HandleKeyDown(k))
	assert.Zero(t, q.Len())
}

func TestKeyUpDoesNotCheckEcho(t *testing.T) {
	p, h, q := newHandler(t)
	p.AddGamepad(9, "pad")
	h.InitDevices()
	drain(t, q)

	k := gamepadKey(9, event.KeycodeButtonB)
	k.Repeat = 2
	assert.True(t, h.HandleKeyUp(k))
	assert.Equal(t, []string{"joybutton(0,1,false)"}, drain(t, q))
}

func TestKeyFromUnregisteredJoystickIsConsumedSilently(t *testing.T) {
	_, h, q := newHandler(t)

	assert.True(t, h.HandleKeyDown(gamepadKey(5, event.KeycodeButtonA)))
	assert.True(t, h.HandleKeyUp(gamepadKey(5, event.KeycodeButtonA)))
	assert.Zero(t, q.Len())
}

func TestDPadKeyboardComboStaysOnKeyboardPath(t *testing.T) {
	_, h, q := newHandler(t)

	// Keyboards often declare keyboard|dpad; that exact combination must
	// not be routed to joystick handling.
	k := event.Key{
		Source:   event.SourceKeyboard | event.SourceDPad,
		Code:     event.KeycodeDPadUp,
		ScanCode: 103,
	}
	assert.True(t, h.HandleKeyDown(k))
	assert.Equal(t, []string{"key(19,103,0,true)"}, drain(t, q))
}

func TestOrdinaryKeyboardKey(t *testing.T) {
	_, h, q := newHandler(t)

	k := event.Key{Source: event.SourceKeyboard, Code: 29, ScanCode: 30, Unicode: 'a'}
	assert.True(t, h.HandleKeyDown(k))
	assert.True(t, h.HandleKeyUp(k))
	assert.Equal(t, []string{
		"key(29,30,97,true)",
		"key(29,30,97,false)",
	}, drain(t, q))
}

func TestBackKeyIsConsumedAndForwarded(t *testing.T) {
	back := &backRecorder{}
	_, h, q := newHandler(t, bridge.WithBackHandler(back))

	assert.True(t, h.HandleKeyDown(event.Key{Code: event.KeycodeBack}))
	assert.True(t, h.HandleKeyUp(event.Key{Code: event.KeycodeBack}))
	assert.Equal(t, 1, back.pressed)
	assert.Zero(t, q.Len())
}

func TestVolumeKeysAreNeverConsumed(t *testing.T) {
	_, h, q := newHandler(t)

	assert.False(t, h.HandleKeyDown(event.Key{Code: event.KeycodeVolumeUp}))
	assert.False(t, h.HandleKeyUp(event.Key{Code: event.KeycodeVolumeDown}))
	assert.Zero(t, q.Len())
}

func TestJoystickMotionNormalizesAxes(t *testing.T) {
	p, h, q := newHandler(t)
	p.AddGamepad(3, "pad",
		platform.MotionRange{Axis: 0, Min: -1, Range: 2},
		platform.MotionRange{Axis: 1, Min: 0, Range: 1},
	)
	h.InitDevices()
	drain(t, q)

	m := event.Motion{
		DeviceID: 3,
		Source:   event.SourceJoystick,
		Action:   int(event.ActionMove),
		Axes:     map[event.Axis]float32{0: -1, 1: 0.5},
	}
	handled, err := h.HandleMotion(m)
	require.NoError(t, err)
	assert.True(t, handled)
	assert.Equal(t, []string{
		"joyaxis(0,0,-1.00)",
		"joyaxis(0,1,0.00)",
	}, drain(t, q))
}

func TestJoystickMotionAxisEdges(t *testing.T) {
	type testCase struct {
		name string
		raw  float32
		want string
	}

	cases := []testCase{
		{"minimum", -1, "joyaxis(0,0,-1.00)"},
		{"center", 0, "joyaxis(0,0,0.00)"},
		{"maximum", 1, "joyaxis(0,0,1.00)"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p, h, q := newHandler(t)
			p.AddGamepad(3, "pad", platform.MotionRange{Axis: 0, Min: -1, Range: 2})
			h.InitDevices()
			drain(t, q)

			m := event.Motion{
				DeviceID: 3,
				Source:   event.SourceJoystick,
				Action:   int(event.ActionMove),
				Axes:     map[event.Axis]float32{0: tc.raw},
			}
			_, err := h.HandleMotion(m)
			require.NoError(t, err)
			assert.Equal(t, []string{tc.want}, drain(t, q))
		})
	}
}

func TestJoystickMotionPartitionsHatsAfterAxes(t *testing.T) {
	p, h, q := newHandler(t)
	// Declared out of order on purpose: sorting happens on registration.
	p.AddGamepad(3, "pad",
		platform.MotionRange{Axis: 3, Min: -1, Range: 2},
		platform.MotionRange{Axis: event.AxisHatX, Min: -1, Range: 2},
		platform.MotionRange{Axis: 1, Min: -1, Range: 2},
		platform.MotionRange{Axis: event.AxisHatY, Min: -1, Range: 2},
	)
	h.InitDevices()
	drain(t, q)

	m := event.Motion{
		DeviceID: 3,
		Source:   event.SourceJoystick,
		Action:   int(event.ActionMove),
		Axes: map[event.Axis]float32{
			1:              1,
			3:              -1,
			event.AxisHatX: 0.6,
			event.AxisHatY: -0.6,
		},
	}
	handled, err := h.HandleMotion(m)
	require.NoError(t, err)
	assert.True(t, handled)

	// Axis index 0 is code 1, index 1 is code 3; the hat pair follows,
	// rounded to integers.
	assert.Equal(t, []string{
		"joyaxis(0,0,1.00)",
		"joyaxis(0,1,-1.00)",
		"joyhat(0,1,-1)",
	}, drain(t, q))
}

func TestJoystickMotionUnknownDeviceIsDropped(t *testing.T) {
	_, h, q := newHandler(t)

	m := event.Motion{
		DeviceID: 77,
		Source:   event.SourceJoystick,
		Action:   int(event.ActionMove),
	}
	handled, err := h.HandleMotion(m)
	require.NoError(t, err)
	assert.False(t, handled)
	assert.Zero(t, q.Len())
}

func TestStylusHover(t *testing.T) {
	_, h, q := newHandler(t)

	m := event.Motion{
		Source:   event.SourceStylus,
		Action:   int(event.ActionHoverMove),
		Pointers: []event.Pointer{{Tool: event.ToolStylus, X: 10, Y: 20}},
	}
	handled, err := h.HandleMotion(m)
	require.NoError(t, err)
	assert.True(t, handled)
	assert.Equal(t, []string{"hover(2,7,10,20)"}, drain(t, q))
}

func TestTouchscreenHoverFallbackWithoutActionButtons(t *testing.T) {
	_, h, q := newLegacyHandler(t)

	m := event.Motion{
		Source:   event.SourceTouchscreen,
		Action:   int(event.ActionHoverMove),
		Pointers: []event.Pointer{{Tool: event.ToolFinger, X: 6, Y: 7}},
	}
	handled, err := h.HandleMotion(m)
	require.NoError(t, err)
	assert.True(t, handled)
	assert.Equal(t, []string{"hover(1,7,6,7)"}, drain(t, q))

	// Hosts that do report action buttons deliver these through the
	// touch path instead.
	_, hNew, qNew := newHandler(t)
	handled, err = hNew.HandleMotion(m)
	require.NoError(t, err)
	assert.False(t, handled)
	assert.Zero(t, qNew.Len())
}

func TestMouseHover(t *testing.T) {
	_, h, q := newHandler(t)

	for _, action := range []event.Action{event.ActionHoverEnter, event.ActionHoverMove, event.ActionHoverExit} {
		m := event.Motion{
			Source:   event.SourceMouse,
			Action:   int(action),
			Pointers: []event.Pointer{{Tool: event.ToolMouse, X: 4, Y: 5}},
		}
		handled, err := h.HandleMotion(m)
		require.NoError(t, err)
		assert.True(t, handled)
	}
	assert.Equal(t, []string{
		"hover(3,9,4,5)",
		"hover(3,7,4,5)",
		"hover(3,10,4,5)",
	}, drain(t, q))
}

func TestMouseScrollUsesRawDeltas(t *testing.T) {
	_, h, q := newHandler(t)

	m := event.Motion{
		Source:   event.SourceMouse,
		Action:   int(event.ActionScroll),
		Pointers: []event.Pointer{{Tool: event.ToolMouse, X: 100, Y: 200}},
		Axes: map[event.Axis]float32{
			event.AxisHScroll: -1.5,
			event.AxisVScroll: 2,
		},
	}
	handled, err := h.HandleMotion(m)
	require.NoError(t, err)
	assert.True(t, handled)
	assert.Equal(t, []string{"scroll(3,100,200,100,200,-1.5,2.0)"}, drain(t, q))
}

func TestMouseButtonPressRichProtocol(t *testing.T) {
	_, h, q := newHandler(t)

	m := event.Motion{
		Source:       event.SourceMouse,
		Action:       int(event.ActionButtonPress),
		ActionButton: int(event.ButtonSecondary),
		Buttons:      event.ButtonSecondary,
		Pointers:     []event.Pointer{{ID: 0, Tool: event.ToolMouse, X: 7, Y: 8}},
	}
	handled, err := h.HandleMotion(m)
	require.NoError(t, err)
	assert.True(t, handled)
	assert.Equal(t, []string{"touch(2,11,0,1,[{0 3}],[{7 8}])"}, drain(t, q))
}

func TestMouseButtonLegacyProtocolUsesShim(t *testing.T) {
	_, h, q := newLegacyHandler(t)

	press := event.Motion{
		Source:   event.SourceMouse,
		Action:   int(event.ActionButtonPress),
		Buttons:  event.ButtonPrimary,
		Pointers: []event.Pointer{{Tool: event.ToolMouse, X: 1, Y: 2}},
	}
	handled, err := h.HandleMotion(press)
	require.NoError(t, err)
	assert.True(t, handled)

	release := press
	release.Action = int(event.ActionButtonRelease)
	release.Buttons = 0
	handled, err = h.HandleMotion(release)
	require.NoError(t, err)
	assert.True(t, handled)

	assert.Equal(t, []string{
		"mousepressed(1,1,2,true)",
		"mousepressed(1,1,2,false)",
	}, drain(t, q))
}

func TestMouseButtonDesyncIsFatal(t *testing.T) {
	_, h, q := newLegacyHandler(t)

	m := event.Motion{
		Source:   event.SourceMouse,
		Action:   int(event.ActionButtonPress),
		Buttons:  0,
		Pointers: []event.Pointer{{Tool: event.ToolMouse}},
	}
	_, err := h.HandleMotion(m)
	assert.ErrorIs(t, err, bridge.ErrButtonDesync)
	assert.Zero(t, q.Len())
}

func TestTouchWithNoPointersIsHandledWithoutEmission(t *testing.T) {
	_, h, q := newHandler(t)

	assert.True(t, h.HandleTouch(event.Motion{Action: int(event.ActionDown)}))
	assert.Zero(t, q.Len())
}

func TestTouchDownSingleFinger(t *testing.T) {
	_, h, q := newHandler(t)

	m := event.Motion{
		Source:   event.SourceTouchscreen,
		Action:   int(event.ActionDown),
		Pointers: []event.Pointer{{ID: 4, Tool: event.ToolFinger, X: 30, Y: 40}},
	}
	assert.True(t, h.HandleTouch(m))
	assert.Equal(t, []string{"touch(0,0,0,1,[{4 1}],[{30 40}])"}, drain(t, q))
}

func TestTouchMouseDownIsSuppressed(t *testing.T) {
	_, h, q := newHandler(t)

	// Mouse clicks arrive through the motion path; the touch echo of the
	// same physical click must not be reported again.
	m := event.Motion{
		Source:   event.SourceTouchscreen,
		Action:   int(event.ActionDown),
		Pointers: []event.Pointer{{Tool: event.ToolMouse}},
	}
	assert.True(t, h.HandleTouch(m))
	assert.Zero(t, q.Len())
}

func TestTouchSecondaryPointerCarriesChangedIndex(t *testing.T) {
	_, h, q := newHandler(t)

	m := event.Motion{
		Source: event.SourceTouchscreen,
		Action: int(event.ActionPointerDown) | 1<<8,
		Pointers: []event.Pointer{
			{ID: 0, Tool: event.ToolFinger, X: 1, Y: 1},
			{ID: 1, Tool: event.ToolFinger, X: 2, Y: 2},
		},
	}
	assert.True(t, h.HandleTouch(m))
	assert.Equal(t, []string{"touch(0,5,1,2,[{0 1} {1 1}],[{1 1} {2 2}])"}, drain(t, q))
}

func TestTouchMoveAndCancel(t *testing.T) {
	_, h, q := newHandler(t)

	for _, action := range []event.Action{event.ActionMove, event.ActionCancel} {
		m := event.Motion{
			Source:   event.SourceTouchscreen,
			Action:   int(action),
			Pointers: []event.Pointer{{ID: 0, Tool: event.ToolFinger, X: 9, Y: 9}},
		}
		assert.True(t, h.HandleTouch(m))
	}
	assert.Equal(t, []string{
		"touch(0,2,0,1,[{0 1}],[{9 9}])",
		"touch(0,3,0,1,[{0 1}],[{9 9}])",
	}, drain(t, q))
}

func TestLegacyMouseDragEmitsPerHeldButton(t *testing.T) {
	_, h, q := newLegacyHandler(t)

	m := event.Motion{
		Source:   event.SourceTouchscreen,
		Action:   int(event.ActionMove),
		Buttons:  event.ButtonPrimary | event.ButtonTertiary,
		Pointers: []event.Pointer{{Tool: event.ToolMouse, X: 15, Y: 25}},
	}
	assert.True(t, h.HandleTouch(m))
	assert.Equal(t, []string{
		"mousedragged(1,15,25)",
		"mousedragged(4,15,25)",
	}, drain(t, q))
}

func TestMouseDragRicherProtocolFlowsThroughTouchPath(t *testing.T) {
	_, h, q := newHandler(t)

	m := event.Motion{
		Source:   event.SourceTouchscreen,
		Action:   int(event.ActionMove),
		Buttons:  event.ButtonPrimary,
		Pointers: []event.Pointer{{ID: 0, Tool: event.ToolMouse, X: 15, Y: 25}},
	}
	assert.True(t, h.HandleTouch(m))
	assert.Equal(t, []string{"touch(0,2,0,1,[{0 3}],[{15 25}])"}, drain(t, q))
}

func TestMouseCancelEmitsInBothProtocols(t *testing.T) {
	cancel := event.Motion{
		Source:   event.SourceTouchscreen,
		Action:   int(event.ActionCancel),
		Pointers: []event.Pointer{{ID: 0, Tool: event.ToolMouse, X: 3, Y: 4}},
	}

	_, h, q := newHandler(t)
	assert.True(t, h.HandleTouch(cancel))
	assert.Equal(t, []string{"touch(0,3,0,1,[{0 3}],[{3 4}])"}, drain(t, q))

	_, hl, ql := newLegacyHandler(t)
	assert.True(t, hl.HandleTouch(cancel))
	assert.Equal(t, []string{"touch(0,3,0,1,[{0 3}],[{3 4}])"}, drain(t, ql))
}

func TestTextInputDecomposesIntoKeyPairs(t *testing.T) {
	_, h, q := newHandler(t)

	assert.True(t, h.HandleText("abc"))
	assert.Equal(t, []string{
		"key(0,0,97,true)",
		"key(0,0,97,false)",
		"key(0,0,98,true)",
		"key(0,0,98,false)",
		"key(0,0,99,true)",
		"key(0,0,99,false)",
	}, drain(t, q))
}

func TestEmptyTextInputIsUnhandled(t *testing.T) {
	_, h, q := newHandler(t)

	assert.False(t, h.HandleText(""))
	assert.Zero(t, q.Len())
}

func TestDeviceNotificationsReachRegistry(t *testing.T) {
	p, h, q := newHandler(t)
	p.AddGamepad(1, "pad")

	h.HandleDeviceAdded(1)
	assert.Equal(t, 1, h.Registry().Len())

	h.HandleDeviceChanged(1)
	assert.Equal(t, 1, h.Registry().Len())

	h.HandleDeviceRemoved(1)
	assert.Equal(t, 0, h.Registry().Len())

	assert.Equal(t, []string{
		`joyconnectionchanged(0,true,"pad")`,
		`joyconnectionchanged(0,false,"")`,
		`joyconnectionchanged(0,true,"pad")`,
		`joyconnectionchanged(0,false,"")`,
	}, drain(t, q))
}
