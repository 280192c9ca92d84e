package viewport

import "time"

// DefaultKeyHold is how long one press keeps its direction held. Key
// repeats arrive well inside it, so a held key pans without gaps.
const DefaultKeyHold = 200 * time.Millisecond

// HeldKeys turns key presses into continuous key state. Terminals report
// presses and auto-repeats but no releases, so a direction stays held until
// hold has passed since its last press.
type HeldKeys struct {
	hold time.Duration
	last map[Direction]time.Time
}

// NewHeldKeys returns an empty key state.
func NewHeldKeys(hold time.Duration) *HeldKeys {
	if hold <= 0 {
		hold = DefaultKeyHold
	}
	return &HeldKeys{hold: hold, last: make(map[Direction]time.Time, 4)}
}

// Press marks d held at now. Pressing a direction releases its opposite.
func (h *HeldKeys) Press(d Direction, now time.Time) {
	switch d {
	case Left:
		delete(h.last, Right)
	case Right:
		delete(h.last, Left)
	case Up:
		delete(h.last, Down)
	case Down:
		delete(h.last, Up)
	}
	h.last[d] = now
}

// Release drops every held direction.
func (h *HeldKeys) Release() {
	clear(h.last)
}

// Active returns the directions still held at now.
func (h *HeldKeys) Active(now time.Time) Direction {
	var d Direction
	for dir, at := range h.last {
		if now.Sub(at) < h.hold {
			d |= dir
		} else {
			delete(h.last, dir)
		}
	}
	return d
}
