package bridge

import "github.com/aknorr/inputbridge/event"

// LogicalButton maps a physical gamepad key code to the engine's logical
// button index. The table is a fixed compatibility contract; note that the
// platform's A/B and X/Y pairs are swapped relative to the SNES layout the
// engine indices follow.
func LogicalButton(code event.Keycode) int {
	switch code {
	case event.KeycodeButtonA:
		return 0
	case event.KeycodeButtonB:
		return 1
	case event.KeycodeButtonX:
		return 2
	case event.KeycodeButtonY:
		return 3
	case event.KeycodeButtonSelect:
		return 4
	case event.KeycodeButtonStart:
		return 6
	case event.KeycodeButtonThumbL:
		return 7
	case event.KeycodeButtonThumbR:
		return 8
	case event.KeycodeButtonL1:
		return 9
	case event.KeycodeButtonR1:
		return 10
	case event.KeycodeDPadUp:
		return 11
	case event.KeycodeDPadDown:
		return 12
	case event.KeycodeDPadLeft:
		return 13
	case event.KeycodeDPadRight:
		return 14
	case event.KeycodeButtonL2:
		return 15
	case event.KeycodeButtonR2:
		return 16
	case event.KeycodeButtonC:
		return 17
	case event.KeycodeButtonZ:
		return 18
	default:
		// Numbered buttons beyond the named set map linearly from 20.
		return int(code) - int(event.KeycodeButton1) + 20
	}
}
