// Package inputtest provides shared test doubles: an in-memory platform
// and an intake recorder that captures delivered emissions as readable
// call strings.
package inputtest

import (
	"fmt"
	"sort"

	"github.com/aknorr/inputbridge/engine"
	"github.com/aknorr/inputbridge/event"
	"github.com/aknorr/inputbridge/platform"
)

// FakePlatform is an in-memory platform.Platform.
type FakePlatform struct {
	Devices      map[int]platform.DeviceInfo
	ActionButton bool
}

// NewFakePlatform returns an empty fake that reports action buttons.
func NewFakePlatform() *FakePlatform {
	return &FakePlatform{
		Devices:      map[int]platform.DeviceInfo{},
		ActionButton: true,
	}
}

// AddGamepad registers a gamepad-capable device with the given identifier,
// name and motion ranges.
func (f *FakePlatform) AddGamepad(id int, name string, ranges ...platform.MotionRange) {
	f.Devices[id] = platform.DeviceInfo{
		Name:         name,
		Sources:      event.SourceGamepad | event.SourceJoystick,
		MotionRanges: ranges,
	}
}

func (f *FakePlatform) DeviceIDs() []int {
	ids := make([]int, 0, len(f.Devices))
	for id := range f.Devices {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

func (f *FakePlatform) Device(id int) (platform.DeviceInfo, bool) {
	info, ok := f.Devices[id]
	return info, ok
}

func (f *FakePlatform) ReportsActionButton() bool { return f.ActionButton }

// Recorder is an engine.Intake that records every call as a formatted
// string, letting tests assert exact emission sequences.
type Recorder struct {
	Calls []string
}

func (r *Recorder) record(format string, args ...any) {
	r.Calls = append(r.Calls, fmt.Sprintf(format, args...))
}

func (r *Recorder) JoyButton(device, button int, pressed bool) {
	r.record("joybutton(%d,%d,%t)", device, button, pressed)
}

func (r *Recorder) JoyAxis(device, axis int, value float32) {
	r.record("joyaxis(%d,%d,%.2f)", device, axis, value)
}

func (r *Recorder) JoyHat(device, hatX, hatY int) {
	r.record("joyhat(%d,%d,%d)", device, hatX, hatY)
}

func (r *Recorder) JoyConnectionChanged(device int, connected bool, name string) {
	r.record("joyconnectionchanged(%d,%t,%q)", device, connected, name)
}

func (r *Recorder) Key(code event.Keycode, scanCode int, unicode rune, pressed bool) {
	r.record("key(%d,%d,%d,%t)", code, scanCode, unicode, pressed)
}

func (r *Recorder) Hover(tool event.ToolType, action event.Action, x, y float32) {
	r.record("hover(%d,%d,%.0f,%.0f)", tool, action, x, y)
}

func (r *Recorder) Scroll(tool event.ToolType, x, y, startX, startY, deltaH, deltaV float32) {
	r.record("scroll(%d,%.0f,%.0f,%.0f,%.0f,%.1f,%.1f)", tool, x, y, startX, startY, deltaH, deltaV)
}

func (r *Recorder) Touch(actionButton int, action event.Action, pointerIndex, pointerCount int, info []engine.PointerInfo, positions []engine.PointerPosition) {
	r.record("touch(%d,%d,%d,%d,%v,%v)", actionButton, action, pointerIndex, pointerCount, info, positions)
}

func (r *Recorder) MousePressed(button int, x, y float32, pressed bool) {
	r.record("mousepressed(%d,%.0f,%.0f,%t)", button, x, y, pressed)
}

func (r *Recorder) MouseDragged(button int, x, y float32) {
	r.record("mousedragged(%d,%.0f,%.0f)", button, x, y)
}
