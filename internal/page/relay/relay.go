// Package relay forwards user questions to the hosted Gemini API. Off-topic
// questions are refused before any upstream call is made.
package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const geminiAPIURL = "https://generativelanguage.googleapis.com/v1beta/models"

// RefusalText is the fixed reply for off-topic questions. The frontend
// recognizes this exact string.
const RefusalText = "i only gZama bro!"

// ErrNotConfigured means no API key is available for the upstream call.
var ErrNotConfigured = errors.New("relay api key not configured")

// AskResponse carries the model's answer plus the raw upstream payload.
type AskResponse struct {
	Text string          `json:"text"`
	Raw  json.RawMessage `json:"raw,omitempty"`
}

// Relay is an HTTP client for the Gemini generateContent endpoint.
type Relay struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

func New(apiKey, model string) *Relay {
	return NewWithEndpoint(apiKey, model, geminiAPIURL)
}

// NewWithEndpoint overrides the upstream base URL; tests point it at a stub.
func NewWithEndpoint(apiKey, model, baseURL string) *Relay {
	return &Relay{
		apiKey:  apiKey,
		model:   model,
		baseURL: baseURL,
		client:  &http.Client{Timeout: 120 * time.Second},
	}
}

// Ask answers a single question. Rate-limited upstream calls are retried
// with exponential backoff; auth errors are not.
func (r *Relay) Ask(ctx context.Context, query string) (*AskResponse, error) {
	if !IsRelevant(query) {
		return &AskResponse{Text: RefusalText}, nil
	}
	if r.apiKey == "" {
		return nil, ErrNotConfigured
	}

	url := fmt.Sprintf("%s/%s:generateContent?key=%s", r.baseURL, r.model, r.apiKey)

	body := geminiRequest{
		Contents: []geminiContent{
			{Parts: []geminiPart{{Text: query}}},
		},
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	var resp *AskResponse
	err = retryWithBackoff(ctx, 3, func() error {
		httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
		if err != nil {
			return fmt.Errorf("creating request: %w", err)
		}
		httpReq.Header.Set("Content-Type", "application/json")

		httpResp, err := r.client.Do(httpReq)
		if err != nil {
			return fmt.Errorf("sending request: %w", err)
		}
		defer httpResp.Body.Close()

		respBody, err := io.ReadAll(httpResp.Body)
		if err != nil {
			return fmt.Errorf("reading response: %w", err)
		}

		if httpResp.StatusCode == http.StatusTooManyRequests {
			return &rateLimitError{}
		}
		if httpResp.StatusCode == http.StatusUnauthorized || httpResp.StatusCode == http.StatusForbidden {
			return &authError{message: string(respBody)}
		}
		if httpResp.StatusCode != http.StatusOK {
			return fmt.Errorf("API error (status %d): %s", httpResp.StatusCode, string(respBody))
		}

		var result geminiResponse
		if err := json.Unmarshal(respBody, &result); err != nil {
			return fmt.Errorf("parsing response: %w", err)
		}

		var text string
		if len(result.Candidates) > 0 {
			for _, part := range result.Candidates[0].Content.Parts {
				text += part.Text
			}
		}

		resp = &AskResponse{Text: text, Raw: json.RawMessage(respBody)}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return resp, nil
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []geminiCandidate `json:"candidates"`
}

type geminiCandidate struct {
	Content geminiContent `json:"content"`
}
