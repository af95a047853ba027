package translate

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// FallbackModels is offered when the model catalog cannot be fetched.
var FallbackModels = []string{
	"gemini-2.0-flash",
	"gemini-2.0-flash-lite",
	"gemini-1.5-flash",
	"gemini-1.5-pro",
}

// ModelInfo describes one entry of the provider's model catalog.
type ModelInfo struct {
	Name                       string   `json:"name"`
	DisplayName                string   `json:"displayName"`
	Description                string   `json:"description"`
	SupportedGenerationMethods []string `json:"supportedGenerationMethods"`
}

// ID strips the "models/" prefix the API puts on model names.
func (m ModelInfo) ID() string {
	return strings.TrimPrefix(m.Name, "models/")
}

// SupportsGenerateContent reports whether the model can serve translation
// requests.
func (m ModelInfo) SupportsGenerateContent() bool {
	for _, method := range m.SupportedGenerationMethods {
		if method == "generateContent" {
			return true
		}
	}
	return false
}

type listModelsResponse struct {
	Models []ModelInfo `json:"models"`
}

// ListModels fetches the model catalog, filtered to models that support
// generateContent.
func (c *Client) ListModels(ctx context.Context) ([]ModelInfo, error) {
	url := fmt.Sprintf("%s?key=%s&pageSize=100", c.baseURL, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

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

	var list listModelsResponse
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, fmt.Errorf("failed to parse models list: %w", err)
	}

	models := list.Models[:0]
	for _, m := range list.Models {
		if m.SupportsGenerateContent() {
			models = append(models, m)
		}
	}
	return models, nil
}
