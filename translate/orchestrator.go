package translate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"
)

const (
	defaultMaxAttempts = 3
	defaultRetryDelay  = time.Second
)

// Request is one accepted translation job.
type Request struct {
	SourceText  string
	SubmittedAt time.Time

	// Attempts is how many provider calls the request consumed. Filled in
	// before delivery.
	Attempts int
}

// Orchestrator serializes translation requests: at most one is in flight,
// and extra submissions are rejected until the current one reaches a
// terminal outcome. Each accepted request runs on its own goroutine, away
// from the input hook and any display context.
type Orchestrator struct {
	svc     Service
	deliver func(Request, Outcome)

	// inFlight is the only cross-thread state; everything else belongs to
	// the worker goroutine of a single request.
	inFlight atomic.Bool

	maxAttempts int
	retryDelay  time.Duration
}

// NewOrchestrator wires a provider to an outcome sink. The deliver
// callback runs on the request's worker goroutine.
func NewOrchestrator(svc Service, deliver func(Request, Outcome)) *Orchestrator {
	return &Orchestrator{
		svc:         svc,
		deliver:     deliver,
		maxAttempts: defaultMaxAttempts,
		retryDelay:  defaultRetryDelay,
	}
}

// Submit accepts text for translation unless a request is already in
// flight. A rejected submit performs no work at all; the caller surfaces
// the busy condition.
func (o *Orchestrator) Submit(ctx context.Context, text string) bool {
	if !o.inFlight.CompareAndSwap(false, true) {
		return false
	}
	req := Request{SourceText: text, SubmittedAt: time.Now()}
	go o.run(ctx, req)
	return true
}

// InFlight reports whether a request is currently outstanding.
func (o *Orchestrator) InFlight() bool {
	return o.inFlight.Load()
}

func (o *Orchestrator) run(ctx context.Context, req Request) {
	// The guard must clear no matter how delivery goes, or every future
	// hotkey press would be rejected.
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Outcome delivery panicked", "panic", r)
		}
		o.inFlight.Store(false)
	}()

	outcome, attempts := o.execute(ctx, req.SourceText)
	req.Attempts = attempts
	o.deliver(req, outcome)
}

// execute runs the bounded retry loop and returns the terminal outcome
// plus the number of attempts consumed.
func (o *Orchestrator) execute(ctx context.Context, text string) (Outcome, int) {
	var lastErr error

	for attempt := 1; attempt <= o.maxAttempts; attempt++ {
		if attempt > 1 {
			delay := time.Duration(attempt-1) * o.retryDelay
			slog.Info("Retrying translation", "attempt", attempt, "delay", delay)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return Outcome{Kind: Failed, Message: ctx.Err().Error()}, attempt
			}
		}

		resp, err := o.svc.Generate(ctx, text)
		if err == nil {
			return Classify(resp), attempt
		}

		var apiErr *APIError
		var transportErr *TransportError
		switch {
		case errors.As(err, &transportErr):
			lastErr = err
		case errors.As(err, &apiErr) && apiErr.Temporary():
			lastErr = err
		default:
			// Provider rejection or malformed response: no retry.
			return Outcome{Kind: Failed, Message: err.Error()}, attempt
		}
		slog.Warn("Translation attempt failed", "attempt", attempt, "error", err)
	}

	return Outcome{
		Kind:    Failed,
		Message: fmt.Sprintf("request failed after %d attempts: %v", o.maxAttempts, lastErr),
	}, o.maxAttempts
}
