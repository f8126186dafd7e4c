// Package platform abstracts the host input system queried by the bridge:
// which devices are attached, what they are capable of, and how much button
// metadata the host reports on mouse events.
package platform

import "github.com/aknorr/inputbridge/event"

// MotionRange describes one axis a device can report: the platform axis
// code, the minimum raw reading and the reading span. Raw readings are
// affine-mapped into [-1, 1] using Min and Range.
type MotionRange struct {
	Axis  event.Axis
	Min   float32
	Range float32
}

// Normalize maps a raw axis reading into [-1, 1].
func (r MotionRange) Normalize(raw float32) float32 {
	return (raw-r.Min)/r.Range*2 - 1
}

// DeviceInfo is the declared capability set of one attached device.
type DeviceInfo struct {
	Name         string
	Sources      event.Source
	MotionRanges []MotionRange
}

// Platform is the host input system. Implementations must be safe to call
// from the input dispatch thread; the bridge never calls them concurrently.
type Platform interface {
	// DeviceIDs enumerates the identifiers of all currently attached
	// input devices.
	DeviceIDs() []int

	// Device returns the capability set of the device with the given
	// platform identifier. The second return is false when the
	// identifier is unknown (the device may already be detached).
	Device(id int) (DeviceInfo, bool)

	// ReportsActionButton reports whether motion events carry the
	// specific button that changed on button-press and button-release
	// actions. Hosts lacking it fall back to reconstructing the button
	// from the state bitmask.
	ReportsActionButton() bool
}
