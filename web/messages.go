package web

// Websocket message types pushed to dashboard clients.
const (
	MessageTypeStatus  = "status"
	MessageTypeOutcome = "outcome"
)

// Message is the envelope for all websocket pushes.
type Message struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// StatusMessage reports the agent state: idle or translating.
type StatusMessage struct {
	Status string `json:"status"`
}

// OutcomeMessage reports one finished translation.
type OutcomeMessage struct {
	ID          int64  `json:"id"`
	Outcome     string `json:"outcome"`
	SourceChars int    `json:"sourceChars"`
	LatencyMs   int64  `json:"latencyMs"`
	Detail      string `json:"detail,omitempty"`
	Timestamp   string `json:"timestamp"`
}
