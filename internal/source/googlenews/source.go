package googlenews

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed/rss"

	"blog_autopost/internal/domain"
)

const (
	DefaultBaseURL   = "https://news.google.com/rss/search"
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
	DefaultMaxItems  = 10
)

// Config holds Google News search configuration.
type Config struct {
	BaseURL   string
	Language  string
	Region    string
	Edition   string
	UserAgent string
	MaxItems  int
	Timeout   time.Duration
}

// Source searches the Google News RSS endpoint.
type Source struct {
	httpClient *http.Client
	cfg        Config
	logger     *slog.Logger
}

// New creates a new Google News source.
func New(cfg Config, logger *slog.Logger) *Source {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.MaxItems <= 0 {
		cfg.MaxItems = DefaultMaxItems
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}

	return &Source{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		cfg:    cfg,
		logger: logger.With("component", "googlenews"),
	}
}

// Search returns at most MaxItems news items matching query.
// Any failure is logged and reported as an empty result.
func (s *Source) Search(ctx context.Context, query string) []domain.NewsItem {
	items, err := s.search(ctx, query)
	if err != nil {
		s.logger.Warn("news search failed", "query", query, "error", err)
		return nil
	}

	s.logger.Debug("news search done", "query", query, "count", len(items))
	return items
}

func (s *Source) search(ctx context.Context, query string) ([]domain.NewsItem, error) {
	searchURL, err := s.buildURL(query)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", s.cfg.UserAgent)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	parser := rss.Parser{}
	feed, err := parser.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	return s.transform(feed.Items), nil
}

func (s *Source) buildURL(query string) (string, error) {
	parsed, err := url.Parse(s.cfg.BaseURL)
	if err != nil {
		return "", fmt.Errorf("invalid base url %s: %w", s.cfg.BaseURL, err)
	}

	q := parsed.Query()
	q.Set("q", query)
	if s.cfg.Language != "" {
		q.Set("hl", s.cfg.Language)
	}
	if s.cfg.Region != "" {
		q.Set("gl", s.cfg.Region)
	}
	if s.cfg.Edition != "" {
		q.Set("ceid", s.cfg.Edition)
	}
	parsed.RawQuery = q.Encode()
	return parsed.String(), nil
}

func (s *Source) transform(entries []*rss.Item) []domain.NewsItem {
	if len(entries) > s.cfg.MaxItems {
		entries = entries[:s.cfg.MaxItems]
	}

	items := make([]domain.NewsItem, 0, len(entries))
	for _, entry := range entries {
		if entry == nil {
			continue
		}

		item := domain.NewsItem{
			Title:       strings.TrimSpace(entry.Title),
			Link:        strings.TrimSpace(entry.Link),
			PublishedAt: strings.TrimSpace(entry.PubDate),
			Description: plainText(entry.Description),
		}
		if entry.Source != nil {
			item.Source = strings.TrimSpace(entry.Source.Title)
		}

		if item.Title == "" || item.Link == "" {
			s.logger.Debug("dropping incomplete entry", "title", item.Title, "link", item.Link)
			continue
		}
		items = append(items, item)
	}

	return items
}

// plainText flattens the HTML snippet Google News puts into descriptions.
func plainText(fragment string) string {
	fragment = strings.TrimSpace(fragment)
	if fragment == "" || !strings.Contains(fragment, "<") {
		return fragment
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return fragment
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}
