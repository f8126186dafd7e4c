package bridge

import (
	"errors"

	"github.com/aknorr/inputbridge/event"
)

// ErrButtonDesync reports a mouse button action whose state bitmask shows
// no change against the tracked pressed state. It indicates the event
// stream and the shim have desynchronized; callers must treat it as fatal
// rather than attempt recovery.
var ErrButtonDesync = errors.New("bridge: mouse button action without state change")

// buttonResolver determines which mouse button a button-press or
// button-release action refers to. The implementation is chosen once at
// handler construction from the platform's reporting capability.
type buttonResolver interface {
	resolve(m event.Motion) (int, error)
}

// actionButtonResolver reads the button directly from the event on hosts
// that report it.
type actionButtonResolver struct{}

func (actionButtonResolver) resolve(m event.Motion) (int, error) {
	return m.ActionButton, nil
}

// stateDiffResolver reconstructs the changed button by diffing the event's
// button state bitmask against the pressed state observed so far. The
// tracked state must exactly mirror what has been reported downstream or
// future diffs desynchronize.
type stateDiffResolver struct {
	pressed [5]bool
}

func (r *stateDiffResolver) resolve(m event.Motion) (int, error) {
	i, err := r.diff(m)
	if err != nil {
		return 0, err
	}
	return i + 1, nil
}

// diff returns the index of the first button whose "currently down" bit
// disagrees with the tracked state, updating the tracked state to match.
func (r *stateDiffResolver) diff(m event.Motion) (int, error) {
	for i := range r.pressed {
		// Index 2 is dead: the reported button is index+1, which would
		// be 3 (0b11), colliding with the primary|secondary state bits.
		if i == 2 {
			continue
		}
		down := m.Buttons&event.Buttons(i+1) != 0
		if down != r.pressed[i] {
			r.pressed[i] = down
			return i, nil
		}
	}
	return 0, ErrButtonDesync
}
