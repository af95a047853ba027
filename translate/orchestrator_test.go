package translate

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeService scripts a sequence of Generate results and records call
// times so backoff can be asserted.
type fakeService struct {
	mu      sync.Mutex
	results []fakeResult
	calls   []time.Time
	block   chan struct{} // if set, Generate waits on it
}

type fakeResult struct {
	resp *GenerateResponse
	err  error
}

func (f *fakeService) Name() string { return "fake" }

func (f *fakeService) Generate(ctx context.Context, text string) (*GenerateResponse, error) {
	if f.block != nil {
		<-f.block
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, time.Now())
	if len(f.results) == 0 {
		return nil, errors.New("unscripted call")
	}
	r := f.results[0]
	f.results = f.results[1:]
	return r.resp, r.err
}

func (f *fakeService) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

type delivered struct {
	req Request
	out Outcome
}

func newTestOrchestrator(svc Service) (*Orchestrator, chan delivered) {
	ch := make(chan delivered, 1)
	o := NewOrchestrator(svc, func(req Request, out Outcome) {
		ch <- delivered{req: req, out: out}
	})
	o.retryDelay = 10 * time.Millisecond
	return o, ch
}

func waitOutcome(t *testing.T, ch chan delivered) delivered {
	t.Helper()
	select {
	case d := <-ch:
		return d
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for outcome")
		return delivered{}
	}
}

func success(text string) *GenerateResponse {
	return &GenerateResponse{Candidates: []Candidate{candidateWithText("STOP", text)}}
}

func TestSubmitSuccess(t *testing.T) {
	svc := &fakeService{results: []fakeResult{{resp: success("hello")}}}
	o, ch := newTestOrchestrator(svc)

	require.True(t, o.Submit(context.Background(), "text"))
	d := waitOutcome(t, ch)

	assert.Equal(t, Success, d.out.Kind)
	assert.Equal(t, "hello", d.out.Text)
	assert.Equal(t, 1, d.req.Attempts)
	assert.Equal(t, "text", d.req.SourceText)
	assert.Eventually(t, func() bool { return !o.InFlight() }, time.Second, time.Millisecond)
}

func TestSubmitRejectedWhileInFlight(t *testing.T) {
	svc := &fakeService{
		results: []fakeResult{{resp: success("slow")}},
		block:   make(chan struct{}),
	}
	o, ch := newTestOrchestrator(svc)

	require.True(t, o.Submit(context.Background(), "first"))
	assert.True(t, o.InFlight())

	// Every submit while the first is outstanding is rejected without a
	// provider call.
	assert.False(t, o.Submit(context.Background(), "second"))
	assert.False(t, o.Submit(context.Background(), "third"))

	close(svc.block)
	waitOutcome(t, ch)
	assert.Eventually(t, func() bool { return !o.InFlight() }, time.Second, time.Millisecond)
	assert.Equal(t, 1, svc.callCount())

	// Free again after the terminal outcome.
	require.True(t, o.Submit(context.Background(), "fourth"))
	waitOutcome(t, ch)
}

func TestTransportFailuresExhaustRetries(t *testing.T) {
	boom := &TransportError{Err: errors.New("connection refused")}
	svc := &fakeService{results: []fakeResult{{err: boom}, {err: boom}, {err: boom}}}
	o, ch := newTestOrchestrator(svc)

	require.True(t, o.Submit(context.Background(), "text"))
	d := waitOutcome(t, ch)

	assert.Equal(t, Failed, d.out.Kind)
	assert.Contains(t, d.out.Message, "after 3 attempts")
	assert.Contains(t, d.out.Message, "connection refused")
	assert.Equal(t, 3, d.req.Attempts)
	assert.Equal(t, 3, svc.callCount())
	assert.Eventually(t, func() bool { return !o.InFlight() }, time.Second, time.Millisecond)

	// Backoff grows between attempts: the second gap is larger than the
	// first.
	gap1 := svc.calls[1].Sub(svc.calls[0])
	gap2 := svc.calls[2].Sub(svc.calls[1])
	assert.GreaterOrEqual(t, gap1, o.retryDelay)
	assert.GreaterOrEqual(t, gap2, 2*o.retryDelay)
}

func TestOverloadStatusIsRetried(t *testing.T) {
	svc := &fakeService{results: []fakeResult{
		{err: &APIError{Status: 429, Body: "slow down"}},
		{err: &APIError{Status: 503, Body: "overloaded"}},
		{resp: success("eventually")},
	}}
	o, ch := newTestOrchestrator(svc)

	require.True(t, o.Submit(context.Background(), "text"))
	d := waitOutcome(t, ch)

	assert.Equal(t, Success, d.out.Kind)
	assert.Equal(t, "eventually", d.out.Text)
	assert.Equal(t, 3, d.req.Attempts)
}

func TestProviderRejectionIsFatal(t *testing.T) {
	svc := &fakeService{results: []fakeResult{
		{err: &APIError{Status: 400, Body: "bad request"}},
	}}
	o, ch := newTestOrchestrator(svc)

	require.True(t, o.Submit(context.Background(), "text"))
	d := waitOutcome(t, ch)

	assert.Equal(t, Failed, d.out.Kind)
	assert.Contains(t, d.out.Message, "api error 400")
	// No retry on a non-overload rejection.
	assert.Equal(t, 1, svc.callCount())
}

func TestMalformedResponseIsFatal(t *testing.T) {
	svc := &fakeService{results: []fakeResult{
		{err: errors.New("failed to parse response: unexpected end of JSON input")},
	}}
	o, ch := newTestOrchestrator(svc)

	require.True(t, o.Submit(context.Background(), "text"))
	d := waitOutcome(t, ch)

	assert.Equal(t, Failed, d.out.Kind)
	assert.Equal(t, 1, svc.callCount())
}

func TestBlockedResponseIsTerminal(t *testing.T) {
	svc := &fakeService{results: []fakeResult{{resp: &GenerateResponse{
		PromptFeedback: &PromptFeedback{BlockReason: "SAFETY"},
	}}}}
	o, ch := newTestOrchestrator(svc)

	require.True(t, o.Submit(context.Background(), "text"))
	d := waitOutcome(t, ch)

	assert.Equal(t, Blocked, d.out.Kind)
	assert.Equal(t, 1, svc.callCount())
}

func TestGuardClearsWhenDeliveryPanics(t *testing.T) {
	svc := &fakeService{results: []fakeResult{{resp: success("ok")}}}
	o := NewOrchestrator(svc, func(Request, Outcome) {
		panic("display surface went away")
	})
	o.retryDelay = time.Millisecond

	require.True(t, o.Submit(context.Background(), "text"))
	assert.Eventually(t, func() bool { return !o.InFlight() }, time.Second, time.Millisecond)

	// And the orchestrator still accepts new work.
	assert.True(t, o.Submit(context.Background(), "again"))
	assert.Eventually(t, func() bool { return !o.InFlight() }, time.Second, time.Millisecond)
}
