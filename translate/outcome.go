// Package translate drives translation requests against the Gemini
// generateContent API: a thin HTTP client, a pure response classifier, and
// an orchestrator that keeps at most one request in flight.
package translate

import "strings"

// OutcomeKind is the terminal disposition of a translation request.
type OutcomeKind int

const (
	// Success carries the full translated text.
	Success OutcomeKind = iota
	// Truncated carries displayable text that hit the token limit.
	Truncated
	// Blocked means the provider refused on policy grounds; not retryable.
	Blocked
	// Failed covers everything else: transport, provider rejection,
	// malformed or empty responses.
	Failed
)

func (k OutcomeKind) String() string {
	switch k {
	case Success:
		return "success"
	case Truncated:
		return "truncated"
	case Blocked:
		return "blocked"
	default:
		return "failed"
	}
}

// Outcome is the terminal result of one translation request.
type Outcome struct {
	Kind OutcomeKind

	// Text is set for Success and Truncated.
	Text string

	// Reason and Categories are set for Blocked.
	Reason     string
	Categories []string

	// Message is set for Failed.
	Message string
}

// Detail returns a human-readable summary for blocked and failed outcomes,
// empty otherwise.
func (o Outcome) Detail() string {
	switch o.Kind {
	case Blocked:
		if len(o.Categories) > 0 {
			return o.Reason + " (" + strings.Join(o.Categories, ", ") + ")"
		}
		return o.Reason
	case Failed:
		return o.Message
	}
	return ""
}
