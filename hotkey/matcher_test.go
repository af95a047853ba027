package hotkey

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

const (
	keyC = 0x43
	keyT = 0x54
)

// ev builds a key event at a millisecond offset from a fixed base time.
func ev(code int, tr Transition, offsetMs int) KeyEvent {
	base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	return KeyEvent{KeyCode: code, Transition: tr, Time: base.Add(time.Duration(offsetMs) * time.Millisecond)}
}

// feed runs a sequence through a fresh matcher and counts activations.
func feed(m *Matcher, events []KeyEvent) int {
	n := 0
	for _, e := range events {
		if m.Match(e) {
			n++
		}
	}
	return n
}

func TestMatcherSinglePress(t *testing.T) {
	spec := Spec{Ctrl: true, Shift: true, KeyCode: keyT, Mode: SinglePress}

	tests := []struct {
		name   string
		events []KeyEvent
		want   int
	}{
		{
			name: "qualifying press fires once",
			events: []KeyEvent{
				ev(vkCtrl, Down, 0),
				ev(vkShift, Down, 10),
				ev(keyT, Down, 20),
			},
			want: 1,
		},
		{
			name: "key repeat without release does not refire",
			events: []KeyEvent{
				ev(vkCtrl, Down, 0),
				ev(vkShift, Down, 10),
				ev(keyT, Down, 20),
				ev(keyT, Down, 520),
				ev(keyT, Down, 1020),
			},
			want: 1,
		},
		{
			name: "release and press again fires again",
			events: []KeyEvent{
				ev(vkCtrl, Down, 0),
				ev(vkShift, Down, 10),
				ev(keyT, Down, 20),
				ev(keyT, Up, 300),
				ev(keyT, Down, 600),
			},
			want: 2,
		},
		{
			name: "missing modifier yields nothing",
			events: []KeyEvent{
				ev(vkCtrl, Down, 0),
				ev(keyT, Down, 20),
			},
			want: 0,
		},
		{
			name: "extra modifier disqualifies the match",
			events: []KeyEvent{
				ev(vkCtrl, Down, 0),
				ev(vkShift, Down, 10),
				ev(vkAlt, Down, 15),
				ev(keyT, Down, 20),
			},
			want: 0,
		},
		{
			name: "released modifier re-qualifies later",
			events: []KeyEvent{
				ev(vkCtrl, Down, 0),
				ev(vkAlt, Down, 5),
				ev(vkShift, Down, 10),
				ev(keyT, Down, 20),
				ev(keyT, Up, 40),
				ev(vkAlt, Up, 50),
				ev(keyT, Down, 400),
			},
			want: 1,
		},
		{
			name: "unrelated keys never fire",
			events: []KeyEvent{
				ev(vkCtrl, Down, 0),
				ev(vkShift, Down, 10),
				ev(keyC, Down, 20),
				ev(0x58, Down, 40),
				ev(keyC, Up, 60),
			},
			want: 0,
		},
		{
			name: "left and right modifier variants count",
			events: []KeyEvent{
				ev(vkLCtrl, Down, 0),
				ev(vkRShift, Down, 10),
				ev(keyT, Down, 20),
			},
			want: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := feed(NewMatcher(spec), tt.events)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMatcherDoublePress(t *testing.T) {
	spec := Spec{Ctrl: true, KeyCode: keyC, Mode: DoublePress}

	tests := []struct {
		name   string
		events []KeyEvent
		want   int
	}{
		{
			name: "two presses inside the window fire once",
			events: []KeyEvent{
				ev(vkCtrl, Down, 0),
				ev(keyC, Down, 10),
				ev(keyC, Up, 60),
				ev(keyC, Down, 200),
			},
			want: 1,
		},
		{
			name: "two presses outside the window fire nothing",
			events: []KeyEvent{
				ev(vkCtrl, Down, 0),
				ev(keyC, Down, 10),
				ev(keyC, Up, 60),
				ev(keyC, Down, 600),
			},
			want: 0,
		},
		{
			name: "gap at exactly the window boundary does not fire",
			events: []KeyEvent{
				ev(vkCtrl, Down, 0),
				ev(keyC, Down, 0),
				ev(keyC, Up, 50),
				ev(keyC, Down, 500),
			},
			want: 0,
		},
		{
			name: "single press alone fires nothing",
			events: []KeyEvent{
				ev(vkCtrl, Down, 0),
				ev(keyC, Down, 10),
			},
			want: 0,
		},
		{
			name: "third press starts a fresh window",
			events: []KeyEvent{
				ev(vkCtrl, Down, 0),
				ev(keyC, Down, 0),
				ev(keyC, Up, 40),
				ev(keyC, Down, 100),
				ev(keyC, Up, 140),
				// Press history was cleared by the double press; this
				// one counts as press #1 again.
				ev(keyC, Down, 200),
			},
			want: 1,
		},
		{
			name: "four presses make two double presses",
			events: []KeyEvent{
				ev(vkCtrl, Down, 0),
				ev(keyC, Down, 0),
				ev(keyC, Up, 40),
				ev(keyC, Down, 100),
				ev(keyC, Up, 140),
				ev(keyC, Down, 1000),
				ev(keyC, Up, 1040),
				ev(keyC, Down, 1100),
			},
			want: 2,
		},
		{
			name: "stale press then a fast pair fires once",
			events: []KeyEvent{
				ev(vkCtrl, Down, 0),
				ev(keyC, Down, 0),
				ev(keyC, Up, 40),
				ev(keyC, Down, 800),
				ev(keyC, Up, 840),
				ev(keyC, Down, 900),
			},
			want: 1,
		},
		{
			name: "held key repeat does not count as a second press",
			events: []KeyEvent{
				ev(vkCtrl, Down, 0),
				ev(keyC, Down, 0),
				ev(keyC, Down, 100),
				ev(keyC, Down, 200),
			},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := feed(NewMatcher(spec), tt.events)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMatcherModifierStateTracking(t *testing.T) {
	spec := Spec{Ctrl: true, KeyCode: keyC, Mode: SinglePress}
	m := NewMatcher(spec)

	// Ctrl released before the key press: no activation.
	assert.False(t, m.Match(ev(vkCtrl, Down, 0)))
	assert.False(t, m.Match(ev(vkCtrl, Up, 10)))
	assert.False(t, m.Match(ev(keyC, Down, 20)))

	// Held flag was still set by the disqualified press; release clears it.
	assert.False(t, m.Match(ev(keyC, Up, 30)))
	assert.False(t, m.Match(ev(vkCtrl, Down, 40)))
	assert.True(t, m.Match(ev(keyC, Down, 50)))
}

func TestKeyCodeLookup(t *testing.T) {
	code, err := KeyCode("t")
	assert.NoError(t, err)
	assert.Equal(t, keyT, code)

	_, err = KeyCode("bogus")
	assert.Error(t, err)

	assert.Equal(t, "t", KeyName(keyT))
	assert.Equal(t, "0xFF", KeyName(0xFF))

	assert.True(t, IsModifier(vkCtrl))
	assert.True(t, IsModifier(vkRAlt))
	assert.False(t, IsModifier(keyC))
}
