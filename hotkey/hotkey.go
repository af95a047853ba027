// Package hotkey turns a raw stream of key transitions into discrete
// activation pulses for a configured key combination. The matcher and the
// debounce gate are pure state machines with no OS dependencies; the
// platform package feeds them from inside the keyboard hook callback.
package hotkey

import "time"

// Mode selects how many presses of the key trigger an activation.
type Mode int

const (
	SinglePress Mode = iota
	DoublePress
)

func (m Mode) String() string {
	if m == DoublePress {
		return "double"
	}
	return "single"
}

// DoublePressWindow is the maximum gap between two presses for them to
// count as a double press.
const DoublePressWindow = 500 * time.Millisecond

// Spec describes the key combination to watch for. KeyCode must be a
// non-modifier virtual key code. A Spec is fixed for the lifetime of a
// Matcher; changing the hotkey means installing a new one.
type Spec struct {
	Ctrl    bool
	Alt     bool
	Shift   bool
	KeyCode int
	Mode    Mode
}

// Transition is the direction of a key event.
type Transition int

const (
	Down Transition = iota
	Up
)

// KeyEvent is a single key transition as delivered by the OS hook.
type KeyEvent struct {
	KeyCode    int
	Transition Transition
	Time       time.Time
}
