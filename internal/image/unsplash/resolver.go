package unsplash

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"net/url"
	"strings"
	"time"

	"blog_autopost/internal/category"
)

const (
	DefaultBaseURL      = "https://source.unsplash.com"
	DefaultSize         = "1600x900"
	DefaultMaxRedirects = 5
)

var errTooManyRedirects = errors.New("too many redirects")

// Config holds image service configuration.
type Config struct {
	BaseURL      string
	Size         string
	Timeout      time.Duration
	MaxRedirects int
}

// Resolver turns a category into a concrete random illustration URL.
type Resolver struct {
	httpClient *http.Client
	baseURL    string
	size       string
	rng        *rand.Rand
	logger     *slog.Logger
}

// New creates a resolver. rng may be nil to use the global source.
func New(cfg Config, rng *rand.Rand, logger *slog.Logger) *Resolver {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Size == "" {
		cfg.Size = DefaultSize
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.MaxRedirects <= 0 {
		cfg.MaxRedirects = DefaultMaxRedirects
	}

	maxRedirects := cfg.MaxRedirects
	return &Resolver{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) > maxRedirects {
					return errTooManyRedirects
				}
				return nil
			},
		},
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		size:    cfg.Size,
		rng:     rng,
		logger:  logger.With("component", "unsplash"),
	}
}

// Resolve returns the final image URL after following redirects.
// The boolean is false on any failure; choosing a default image is up to the caller.
func (r *Resolver) Resolve(ctx context.Context, cat category.Category) (string, bool) {
	keyword := cat.RandomImageKeyword(r.rng)

	imageURL, err := r.resolve(ctx, keyword)
	if err != nil {
		r.logger.Warn("image resolution failed", "keyword", keyword, "error", err)
		return "", false
	}

	r.logger.Info("image resolved", "keyword", keyword, "url", imageURL)
	return imageURL, true
}

func (r *Resolver) resolve(ctx context.Context, keyword string) (string, error) {
	requestURL := fmt.Sprintf("%s/%s/?%s", r.baseURL, r.size, url.QueryEscape(keyword))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return "", fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	return resp.Request.URL.String(), nil
}
