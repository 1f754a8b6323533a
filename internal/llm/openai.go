package llm

import (
	"context"
	"errors"
	"strings"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const (
	ProviderOpenAI = "openai"

	DefaultOpenAIModel = "gpt-4o-mini"
)

// OpenAI implements Client using the official openai-go SDK (chat completions).
// Any OpenAI-compatible endpoint can be targeted through Settings.Endpoint.
type OpenAI struct {
	model     string
	maxTokens int
	hasKey    bool
	opts      []option.RequestOption
}

var _ Client = (*OpenAI)(nil)

func NewOpenAI(s Settings) *OpenAI {
	key := strings.TrimSpace(s.APIKey)
	opts := []option.RequestOption{
		option.WithAPIKey(key),
		option.WithRequestTimeout(s.Timeout),
		option.WithMaxRetries(0),
	}
	if s.Endpoint != "" {
		opts = append(opts, option.WithBaseURL(s.Endpoint))
	}

	model := s.Model
	if model == "" {
		model = DefaultOpenAIModel
	}
	return &OpenAI{model: model, maxTokens: s.MaxTokens, hasKey: key != "", opts: opts}
}

func (o *OpenAI) Complete(ctx context.Context, prompt string) (string, error) {
	if !o.hasKey {
		return "", ErrMissingAPIKey
	}

	client := openai.NewClient(o.opts...)
	resp, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:               openai.ChatModel(o.model),
		MaxCompletionTokens: openai.Int(int64(o.maxTokens)),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			return "", &StatusError{StatusCode: apiErr.StatusCode, Body: apiErr.Message}
		}
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai: empty choices")
	}
	return resp.Choices[0].Message.Content, nil
}
