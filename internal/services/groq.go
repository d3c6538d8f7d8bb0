// Groq chat-completion implementation of [Completer]
//
// Uses Groq's OpenAI-compatible REST API: https://console.groq.com/docs/api-reference
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/roastify/roastify/internal/shared"
)

const (
	groqBaseURL      = "https://api.groq.com/openai/v1"
	defaultGroqModel = "llama3-8b-8192"

	// Completion parameters are fixed: one short roast, a little spicy.
	groqTemperature = 0.7
	groqMaxTokens   = 200
)

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
	Stream      bool          `json:"stream"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// GroqService implements [Completer] against the Groq chat-completions endpoint.
type GroqService struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

// NewGroqService creates a Groq completion client. The model defaults to
// llama3-8b-8192 when empty. A missing API key is an init failure; callers
// run without a completion client and answer 503 until a key is supplied.
func NewGroqService(apiKey, model string) (*GroqService, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: missing Groq API key", shared.ErrClientInit)
	}
	if model == "" {
		model = defaultGroqModel
	}

	return &GroqService{
		apiKey:     apiKey,
		model:      model,
		baseURL:    groqBaseURL,
		httpClient: http.DefaultClient,
	}, nil
}

// Model returns the model identifier used for completions.
func (g *GroqService) Model() string {
	return g.model
}

// Complete sends a single completion request with one system and one user
// message and returns the generated text. No retries, no streaming.
func (g *GroqService) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	payload := chatRequest{
		Model: g.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		Temperature: groqTemperature,
		MaxTokens:   groqMaxTokens,
	}

	body, err := g.post(ctx, "/chat/completions", payload)
	if err != nil {
		return "", err
	}

	var resp chatResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("failed to decode completion response: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("completion response contained no choices")
	}

	return resp.Choices[0].Message.Content, nil
}

// post performs an authenticated POST request to the Groq API.
func (g *GroqService) post(ctx context.Context, path string, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.apiKey)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("groq API error: status %d: %s", resp.StatusCode, string(body))
	}

	return io.ReadAll(resp.Body)
}
