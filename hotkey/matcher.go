package hotkey

import "time"

// Matcher filters a key-transition stream down to the activations of one
// Spec. It owns all detection state explicitly: the current modifier bits,
// a held flag for the hotkey key, and the press history used by
// double-press mode.
//
// Matcher is not safe for concurrent use. The OS serializes hook callbacks
// onto a single thread, and that thread is the only caller.
type Matcher struct {
	spec Spec

	ctrl  bool
	alt   bool
	shift bool

	// held is true between a Down and the matching Up of the hotkey key.
	// While set, repeated Down events (OS key repeat) are ignored.
	held bool

	pressCount int
	lastPress  time.Time
}

// NewMatcher creates a matcher for the given spec.
func NewMatcher(spec Spec) *Matcher {
	return &Matcher{spec: spec}
}

// Match consumes one key transition and reports whether it completes the
// configured hotkey pattern. It never blocks and never fails: input that
// does not fit the pattern simply yields false.
func (m *Matcher) Match(ev KeyEvent) bool {
	if mod, ok := modifierBit(ev.KeyCode); ok {
		down := ev.Transition == Down
		switch mod {
		case modCtrl:
			m.ctrl = down
		case modAlt:
			m.alt = down
		case modShift:
			m.shift = down
		}
		return false
	}

	if ev.KeyCode != m.spec.KeyCode {
		return false
	}

	if ev.Transition == Up {
		m.held = false
		return false
	}

	if m.held {
		// Key repeat while the key is physically down.
		return false
	}
	m.held = true

	// Exact match: extra modifiers disqualify, not just missing ones.
	if m.ctrl != m.spec.Ctrl || m.alt != m.spec.Alt || m.shift != m.spec.Shift {
		return false
	}

	if m.spec.Mode == SinglePress {
		return true
	}
	return m.matchDoublePress(ev.Time)
}

func (m *Matcher) matchDoublePress(now time.Time) bool {
	if m.lastPress.IsZero() || now.Sub(m.lastPress) >= DoublePressWindow {
		// First press, or the previous one expired.
		m.pressCount = 1
		m.lastPress = now
		return false
	}

	m.pressCount++
	if m.pressCount >= 2 {
		// A third press starts a fresh window.
		m.pressCount = 0
		m.lastPress = time.Time{}
		return true
	}
	m.lastPress = now
	return false
}
