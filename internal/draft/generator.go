package draft

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"blog_autopost/internal/category"
	"blog_autopost/internal/domain"
	"blog_autopost/internal/llm"
)

// Generator drafts an article through the text generation service and falls
// back to the deterministic template whenever that path fails.
type Generator struct {
	client llm.Client
	now    func() time.Time
	logger *slog.Logger
}

// NewGenerator builds a generator. client may be nil, which always selects the template.
func NewGenerator(client llm.Client, now func() time.Time, logger *slog.Logger) *Generator {
	if now == nil {
		now = time.Now
	}
	return &Generator{
		client: client,
		now:    now,
		logger: logger.With("component", "draft"),
	}
}

// Generate never fails: any problem on the generation path yields the fallback draft.
func (g *Generator) Generate(ctx context.Context, selected domain.NewsItem, news []domain.NewsItem, cat category.Category) Outcome {
	template := Fallback(selected, news, cat)

	if g.client == nil {
		g.logger.Info("no text generation client configured, using template")
		return fallback(template, ReasonNoCredential, llm.ErrMissingAPIKey)
	}

	prompt := BuildPrompt(selected, news, cat.Name, g.now())
	text, err := g.client.Complete(ctx, prompt)
	if err != nil {
		reason := classify(err)
		g.logger.Warn("text generation failed, using template", "reason", reason, "error", err)
		return fallback(template, reason, err)
	}

	parsed, err := parseResponse(text)
	if err != nil {
		g.logger.Warn("malformed generation response, using template", "error", err)
		return fallback(template, ReasonMalformedResponse, err)
	}

	d := domain.DraftContent{
		Title:   parsed.title(),
		Excerpt: parsed.excerpt(),
		Content: strings.TrimSpace(*parsed.Content) + "\n\n" + Disclaimer,
	}
	if d.Title == "" {
		d.Title = template.Title
	}
	if d.Excerpt == "" {
		d.Excerpt = template.Excerpt
	}

	g.logger.Info("draft generated", "title", d.Title)
	return generated(d)
}

func classify(err error) FallbackReason {
	if errors.Is(err, llm.ErrMissingAPIKey) {
		return ReasonNoCredential
	}
	var statusErr *llm.StatusError
	if errors.As(err, &statusErr) {
		return ReasonBadStatus
	}
	return ReasonRequestFailed
}
