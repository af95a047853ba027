package hotkey

import "time"

// DefaultCooldown is how long activations stay suppressed after one fires.
const DefaultCooldown = 200 * time.Millisecond

// Gate drops activations that arrive within the cooldown of a previous
// one, so a single physical trigger cannot fan out into several requests.
// Allow is a timestamp comparison, never a sleep: it runs on the
// input-delivery path and must not stall it.
type Gate struct {
	cooldown        time.Duration
	suppressedUntil time.Time
}

// NewGate creates a gate with the given cooldown; zero or negative means
// DefaultCooldown.
func NewGate(cooldown time.Duration) *Gate {
	if cooldown <= 0 {
		cooldown = DefaultCooldown
	}
	return &Gate{cooldown: cooldown}
}

// Allow reports whether an activation at the given time may pass, and if
// so starts a new cooldown.
func (g *Gate) Allow(now time.Time) bool {
	if now.Before(g.suppressedUntil) {
		return false
	}
	g.suppressedUntil = now.Add(g.cooldown)
	return true
}
