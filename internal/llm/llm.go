package llm

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrMissingAPIKey marks a client that has no credential configured.
var ErrMissingAPIKey = errors.New("llm api key is not configured")

// StatusError is returned when the service answers with a non-success status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("llm returned status %d: %s", e.StatusCode, e.Body)
}

// Client sends a single-turn prompt and returns the generated text.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Settings configures a concrete client.
type Settings struct {
	Provider         string
	Endpoint         string
	Model            string
	APIKey           string
	MaxTokens        int
	Timeout          time.Duration
	AnthropicVersion string
}

// New builds the client for the configured provider.
// A missing API key is not an error: the returned client reports ErrMissingAPIKey on use.
func New(s Settings) (Client, error) {
	if s.Timeout <= 0 {
		s.Timeout = 60 * time.Second
	}
	if s.MaxTokens <= 0 {
		s.MaxTokens = 3000
	}

	switch s.Provider {
	case "", ProviderAnthropic:
		return NewAnthropic(s), nil
	case ProviderOpenAI:
		return NewOpenAI(s), nil
	default:
		return nil, fmt.Errorf("llm provider %s not supported", s.Provider)
	}
}
