package bridge_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aknorr/inputbridge/bridge"
	"github.com/aknorr/inputbridge/event"
)

func TestLogicalButtonTable(t *testing.T) {
	type testCase struct {
		name string
		code event.Keycode
		want int
	}

	cases := []testCase{
		{"button A", event.KeycodeButtonA, 0},
		{"button B", event.KeycodeButtonB, 1},
		{"button X", event.KeycodeButtonX, 2},
		{"button Y", event.KeycodeButtonY, 3},
		{"select", event.KeycodeButtonSelect, 4},
		{"start", event.KeycodeButtonStart, 6},
		{"thumb L", event.KeycodeButtonThumbL, 7},
		{"thumb R", event.KeycodeButtonThumbR, 8},
		{"L1", event.KeycodeButtonL1, 9},
		{"R1", event.KeycodeButtonR1, 10},
		{"dpad up", event.KeycodeDPadUp, 11},
		{"dpad down", event.KeycodeDPadDown, 12},
		{"dpad left", event.KeycodeDPadLeft, 13},
		{"dpad right", event.KeycodeDPadRight, 14},
		{"L2", event.KeycodeButtonL2, 15},
		{"R2", event.KeycodeButtonR2, 16},
		{"button C", event.KeycodeButtonC, 17},
		{"button Z", event.KeycodeButtonZ, 18},
		{"numbered button 1", event.KeycodeButton1, 20},
		{"numbered button 5", event.KeycodeButton1 + 4, 24},
		{"numbered button 16", event.KeycodeButton1 + 15, 35},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, bridge.LogicalButton(tc.code))
		})
	}
}
