package event

// Keycode is a platform key code.
type Keycode int

// Key codes used by the bridge. Values per the platform key code table.
const (
	KeycodeBack Keycode = 4

	KeycodeDPadUp    Keycode = 19
	KeycodeDPadDown  Keycode = 20
	KeycodeDPadLeft  Keycode = 21
	KeycodeDPadRight Keycode = 22

	KeycodeVolumeUp   Keycode = 24
	KeycodeVolumeDown Keycode = 25

	KeycodeButtonA      Keycode = 96
	KeycodeButtonB      Keycode = 97
	KeycodeButtonC      Keycode = 98
	KeycodeButtonX      Keycode = 99
	KeycodeButtonY      Keycode = 100
	KeycodeButtonZ      Keycode = 101
	KeycodeButtonL1     Keycode = 102
	KeycodeButtonR1     Keycode = 103
	KeycodeButtonL2     Keycode = 104
	KeycodeButtonR2     Keycode = 105
	KeycodeButtonThumbL Keycode = 106
	KeycodeButtonThumbR Keycode = 107
	KeycodeButtonStart  Keycode = 108
	KeycodeButtonSelect Keycode = 109
	KeycodeButtonMode   Keycode = 110

	// KeycodeButton1 is the first of the numbered extra buttons
	// (button 1 through button 16) beyond the named gamepad set.
	KeycodeButton1 Keycode = 188
)
