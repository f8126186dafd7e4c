// Package bridge converts raw platform input events into normalized engine
// emissions: it tracks attached joystick devices, classifies incoming key,
// motion and touch events, and reconstructs mouse button transitions on
// hosts that do not report them directly.
package bridge

import (
	"log/slog"
	"sort"

	"github.com/aknorr/inputbridge/engine"
	"github.com/aknorr/inputbridge/event"
	"github.com/aknorr/inputbridge/platform"
)

// joystick is one registered game controller. Its position in the registry
// is its externally visible device slot.
type joystick struct {
	deviceID int
	name     string
	axes     []platform.MotionRange
	hats     []platform.MotionRange
}

// Registry tracks attached joystick devices and assigns each a small
// integer slot. Slots are compacted on removal: removing a device shifts
// every later slot down by one, so consumers must not cache slots across
// connection changes.
//
// The registry is mutated only from the input dispatch thread and needs no
// locking of its own.
type Registry struct {
	platform platform.Platform
	queue    *engine.Queue
	logger   *slog.Logger
	devices  []joystick
}

// NewRegistry returns an empty registry backed by the given platform.
// Connection change emissions go through the queue.
func NewRegistry(p platform.Platform, q *engine.Queue, logger *slog.Logger) *Registry {
	return &Registry{
		platform: p,
		queue:    q,
		logger:   logger,
	}
}

// Len returns the number of registered devices.
func (r *Registry) Len() int { return len(r.devices) }

// Find returns the slot of the device with the given platform identifier.
func (r *Registry) Find(deviceID int) (int, bool) {
	for i := range r.devices {
		if r.devices[i].deviceID == deviceID {
			return i, true
		}
	}
	return 0, false
}

// Add registers the device with the given platform identifier and emits a
// connection change. Devices already registered, unknown identifiers and
// devices that declare neither gamepad nor joystick capability are ignored.
// Returns the assigned slot and whether a device was added.
func (r *Registry) Add(deviceID int) (int, bool) {
	if _, ok := r.Find(deviceID); ok {
		return 0, false
	}

	info, ok := r.platform.Device(deviceID)
	if !ok {
		return 0, false
	}
	if !info.Sources.Has(event.SourceGamepad) && !info.Sources.Has(event.SourceJoystick) {
		return 0, false
	}

	ranges := make([]platform.MotionRange, len(info.MotionRanges))
	copy(ranges, info.MotionRanges)
	sort.Slice(ranges, func(i, j int) bool {
		return ranges[i].Axis < ranges[j].Axis
	})

	joy := joystick{
		deviceID: deviceID,
		name:     info.Name,
	}
	for _, rg := range ranges {
		if rg.Axis == event.AxisHatX || rg.Axis == event.AxisHatY {
			joy.hats = append(joy.hats, rg)
		} else {
			joy.axes = append(joy.axes, rg)
		}
	}

	slot := len(r.devices)
	r.devices = append(r.devices, joy)

	r.logger.Debug("joystick connected", "slot", slot, "deviceID", deviceID, "name", joy.name,
		"axes", len(joy.axes), "hats", len(joy.hats))
	r.queue.Enqueue(engine.JoyConnectionChanged{Device: slot, Connected: true, Name: joy.name})
	return slot, true
}

// Remove erases the device with the given platform identifier and emits a
// connection change carrying the slot the device held before removal.
// Later slots shift down; no emissions are produced for the shifted
// devices. Returns the freed slot and whether a device was removed.
func (r *Registry) Remove(deviceID int) (int, bool) {
	slot, ok := r.Find(deviceID)
	if !ok {
		return 0, false
	}

	r.devices = append(r.devices[:slot], r.devices[slot+1:]...)

	r.logger.Debug("joystick disconnected", "slot", slot, "deviceID", deviceID)
	r.queue.Enqueue(engine.JoyConnectionChanged{Device: slot, Connected: false, Name: ""})
	return slot, true
}

// Replace re-registers a device whose capabilities changed in place.
func (r *Registry) Replace(deviceID int) {
	r.Remove(deviceID)
	r.Add(deviceID)
}

// Init registers every currently attached platform device. Safe to combine
// with later attach notifications: duplicate adds are no-ops.
func (r *Registry) Init() {
	for _, id := range r.platform.DeviceIDs() {
		r.Add(id)
	}
}

// device returns the registered joystick in the given slot.
func (r *Registry) device(slot int) joystick {
	return r.devices[slot]
}
