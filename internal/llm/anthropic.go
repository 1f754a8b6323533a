package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const (
	ProviderAnthropic = "anthropic"

	DefaultAnthropicEndpoint = "https://api.anthropic.com/v1/messages"
	DefaultAnthropicModel    = "claude-sonnet-4-20250514"
	DefaultAnthropicVersion  = "2023-06-01"
)

// Anthropic talks to the Messages API.
type Anthropic struct {
	endpoint   string
	model      string
	apiKey     string
	version    string
	maxTokens  int
	httpClient *http.Client
}

var _ Client = (*Anthropic)(nil)

type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	Messages  []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

// NewAnthropic builds a Messages API client from settings.
func NewAnthropic(s Settings) *Anthropic {
	c := &Anthropic{
		endpoint:   s.Endpoint,
		model:      s.Model,
		apiKey:     strings.TrimSpace(s.APIKey),
		version:    s.AnthropicVersion,
		maxTokens:  s.MaxTokens,
		httpClient: &http.Client{Timeout: s.Timeout},
	}
	if c.endpoint == "" {
		c.endpoint = DefaultAnthropicEndpoint
	}
	if c.model == "" {
		c.model = DefaultAnthropicModel
	}
	if c.version == "" {
		c.version = DefaultAnthropicVersion
	}
	return c
}

// Complete sends prompt as a single user message.
func (c *Anthropic) Complete(ctx context.Context, prompt string) (string, error) {
	if c.apiKey == "" {
		return "", ErrMissingAPIKey
	}

	body, err := json.Marshal(anthropicRequest{
		Model:     c.model,
		MaxTokens: c.maxTokens,
		Messages:  []anthropicMessage{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", fmt.Errorf("marshal anthropic payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", c.version)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("send prompt: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(payload))}
	}

	var decoded anthropicResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	for _, block := range decoded.Content {
		if block.Type == "text" || block.Type == "" {
			return block.Text, nil
		}
	}
	return "", errors.New("anthropic: response has no text content")
}
