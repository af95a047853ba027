package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const apiBaseURL = "https://generativelanguage.googleapis.com/v1beta/models"

// requestTimeout bounds a single attempt; retries are the orchestrator's
// job.
const requestTimeout = 30 * time.Second

// DefaultModel is used when the config does not name one.
const DefaultModel = "gemini-2.0-flash"

type generateRequest struct {
	Contents []requestContent `json:"contents"`
}

type requestContent struct {
	Parts []requestPart `json:"parts"`
}

type requestPart struct {
	Text string `json:"text"`
}

// GenerateResponse is the subset of the generateContent response body the
// classifier needs.
type GenerateResponse struct {
	Candidates     []Candidate     `json:"candidates"`
	PromptFeedback *PromptFeedback `json:"promptFeedback"`
}

// PromptFeedback reports a prompt-level block, before any candidate was
// generated.
type PromptFeedback struct {
	BlockReason   string         `json:"blockReason"`
	SafetyRatings []SafetyRating `json:"safetyRatings"`
}

// SafetyRating is one safety category verdict.
type SafetyRating struct {
	Category string `json:"category"`
	Blocked  bool   `json:"blocked"`
}

// Candidate is one generated answer.
type Candidate struct {
	Content       *Content       `json:"content"`
	FinishReason  string         `json:"finishReason"`
	SafetyRatings []SafetyRating `json:"safetyRatings"`
}

// Content holds the candidate's text parts.
type Content struct {
	Parts []Part `json:"parts"`
}

// Part is one text segment of a candidate.
type Part struct {
	Text string `json:"text"`
}

// APIError is a non-2xx response from the provider.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Body)
}

// Temporary reports whether the request may succeed if retried. Only
// overload statuses qualify; any other rejection is final.
func (e *APIError) Temporary() bool {
	return e.Status == http.StatusTooManyRequests || e.Status == http.StatusServiceUnavailable
}

// TransportError is a failure to complete the HTTP exchange at all
// (connection refused, timeout, truncated body). Always retryable.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return "request failed: " + e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Service is the provider boundary the orchestrator drives.
type Service interface {
	Name() string
	Generate(ctx context.Context, text string) (*GenerateResponse, error)
}

// Client calls the Gemini generateContent endpoint.
type Client struct {
	apiKey     string
	model      string
	promptMode PromptMode
	baseURL    string
	client     *http.Client
}

// NewClient creates a Gemini client for the given model and prompt mode.
func NewClient(apiKey, model string, mode PromptMode) *Client {
	if model == "" {
		model = DefaultModel
	}
	return &Client{
		apiKey:     apiKey,
		model:      model,
		promptMode: mode,
		baseURL:    apiBaseURL,
		client:     &http.Client{Timeout: requestTimeout},
	}
}

// Name returns the provider name.
func (c *Client) Name() string {
	return "gemini"
}

// Model returns the configured model id.
func (c *Client) Model() string {
	return c.model
}

// Generate sends one translation request and returns the parsed response.
// Non-2xx statuses come back as *APIError, connection-level failures as
// *TransportError; a 200 with an unparseable body is a plain (fatal) error.
func (c *Client) Generate(ctx context.Context, text string) (*GenerateResponse, error) {
	reqBody := generateRequest{
		Contents: []requestContent{
			{Parts: []requestPart{{Text: BuildPrompt(c.promptMode, text)}}},
		},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	url := fmt.Sprintf("%s/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{Status: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	var out GenerateResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return &out, nil
}
