package service

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"blog_autopost/internal/category"
	"blog_autopost/internal/domain"
	"blog_autopost/internal/draft"
)

// NewsSource returns no items, rather than an error, when the feed is unavailable.
type NewsSource interface {
	Search(ctx context.Context, query string) []domain.NewsItem
}

type ImageResolver interface {
	Resolve(ctx context.Context, cat category.Category) (string, bool)
}

type DraftGenerator interface {
	Generate(ctx context.Context, selected domain.NewsItem, news []domain.NewsItem, cat category.Category) draft.Outcome
}

type PostStore interface {
	List(ctx context.Context) ([]domain.Post, error)
	Save(ctx context.Context, post *domain.Post) error
	Index(ctx context.Context) ([]string, error)
	UpdateIndex(ctx context.Context, filename string) error
}

type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type Publisher interface {
	PublishCreated(ctx context.Context, runID string, post *domain.Post) error
	Close() error
}
