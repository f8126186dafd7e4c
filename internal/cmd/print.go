// Package cmd implements the CLI subcommands.
package cmd

import (
	"fmt"
	"io"

	"github.com/aknorr/inputbridge/engine"
	"github.com/aknorr/inputbridge/event"
)

// printIntake is an engine.Intake that writes each normalized call as one
// line, in the same field order as the intake contract.
type printIntake struct {
	w io.Writer
}

func (p printIntake) JoyButton(device, button int, pressed bool) {
	fmt.Fprintf(p.w, "joybutton device=%d button=%d pressed=%t\n", device, button, pressed)
}

func (p printIntake) JoyAxis(device, axis int, value float32) {
	fmt.Fprintf(p.w, "joyaxis device=%d axis=%d value=%.4f\n", device, axis, value)
}

func (p printIntake) JoyHat(device, hatX, hatY int) {
	fmt.Fprintf(p.w, "joyhat device=%d x=%d y=%d\n", device, hatX, hatY)
}

func (p printIntake) JoyConnectionChanged(device int, connected bool, name string) {
	fmt.Fprintf(p.w, "joyconnectionchanged device=%d connected=%t name=%q\n", device, connected, name)
}

func (p printIntake) Key(code event.Keycode, scanCode int, unicode rune, pressed bool) {
	fmt.Fprintf(p.w, "key code=%d scan=%d unicode=%q pressed=%t\n", code, scanCode, unicode, pressed)
}

func (p printIntake) Hover(tool event.ToolType, action event.Action, x, y float32) {
	fmt.Fprintf(p.w, "hover tool=%d action=%d x=%.1f y=%.1f\n", tool, action, x, y)
}

func (p printIntake) Scroll(tool event.ToolType, x, y, startX, startY, deltaH, deltaV float32) {
	fmt.Fprintf(p.w, "scroll tool=%d x=%.1f y=%.1f deltaH=%.2f deltaV=%.2f\n", tool, x, y, deltaH, deltaV)
}

func (p printIntake) Touch(actionButton int, action event.Action, pointerIndex, pointerCount int, info []engine.PointerInfo, positions []engine.PointerPosition) {
	fmt.Fprintf(p.w, "touch button=%d action=%d index=%d count=%d info=%v positions=%v\n",
		actionButton, action, pointerIndex, pointerCount, info, positions)
}

func (p printIntake) MousePressed(button int, x, y float32, pressed bool) {
	fmt.Fprintf(p.w, "mousepressed button=%d x=%.1f y=%.1f pressed=%t\n", button, x, y, pressed)
}

func (p printIntake) MouseDragged(button int, x, y float32) {
	fmt.Fprintf(p.w, "mousedragged button=%d x=%.1f y=%.1f\n", button, x, y)
}
