package service

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"blog_autopost/internal/category"
	"blog_autopost/internal/domain"
	"blog_autopost/internal/guard"
	"blog_autopost/internal/ranking"
)

type Options struct {
	Rotation     category.Rotation
	DefaultImage string
	// Location defines the calendar day. Defaults to time.Local.
	Location *time.Location
	Now      func() time.Time
	Rand     *rand.Rand
}

// PipelineService produces at most one automatic post per calendar day.
type PipelineService struct {
	news      NewsSource
	images    ImageResolver
	drafts    DraftGenerator
	posts     PostStore
	txManager TransactionManager
	publisher Publisher
	logger    *slog.Logger

	rotation     category.Rotation
	defaultImage string
	location     *time.Location
	now          func() time.Time
	rng          *rand.Rand
}

// NewPipelineService wires the pipeline. publisher may be nil.
func NewPipelineService(
	news NewsSource,
	images ImageResolver,
	drafts DraftGenerator,
	posts PostStore,
	txManager TransactionManager,
	publisher Publisher,
	logger *slog.Logger,
	opts Options,
) *PipelineService {
	if len(opts.Rotation) == 0 {
		opts.Rotation = category.Default
	}
	if opts.DefaultImage == "" {
		opts.DefaultImage = "images/banner.png"
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	return &PipelineService{
		news:         news,
		images:       images,
		drafts:       drafts,
		posts:        posts,
		txManager:    txManager,
		publisher:    publisher,
		logger:       logger.With("component", "pipeline"),
		rotation:     opts.Rotation,
		defaultImage: opts.DefaultImage,
		location:     opts.Location,
		now:          opts.Now,
		rng:          opts.Rand,
	}
}

// Run executes the pipeline once. Skipped runs are reported through the
// result status, not as errors.
func (s *PipelineService) Run(ctx context.Context) (*domain.RunResult, error) {
	startTime := time.Now()
	now := s.now().In(s.location)

	result := &domain.RunResult{
		RunID: uuid.NewString(),
		Day:   now,
	}
	logger := s.logger.With("run_id", result.RunID, "date", now.Format(domain.DateLayout))
	logger.Info("starting pipeline")

	finish := func(status domain.RunStatus) (*domain.RunResult, error) {
		result.Status = status
		result.Duration = time.Since(startTime)
		logger.Info("pipeline finished",
			"status", status,
			"category", result.Category,
			"query", result.Query,
			"file", result.Filename,
			"fallback_reason", result.FallbackReason,
			"duration", result.Duration,
		)
		return result, nil
	}

	existing, err := s.posts.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	if guard.AlreadyPostedOn(existing, now.Format(domain.DateLayout)) {
		logger.Info("automatic post for today already exists")
		return finish(domain.RunSkippedAlreadyPosted)
	}

	cat := s.rotation.ForDate(now)
	result.Category = cat.Name
	result.Query = cat.RandomQuery(s.rng)
	logger.Info("category selected", "category", cat.Name, "query", result.Query)

	news := s.news.Search(ctx, result.Query)
	if len(news) == 0 {
		result.Query = cat.FallbackQuery()
		logger.Warn("no news found, retrying with fallback query", "query", result.Query)
		news = s.news.Search(ctx, result.Query)
	}

	best, ok := ranking.SelectBest(news)
	if !ok {
		logger.Warn("no news available, nothing to post")
		return finish(domain.RunSkippedNoContent)
	}
	logger.Info("news selected", "title", best.Title, "source", best.Source, "score", best.Score, "candidates", len(news))

	image, ok := s.images.Resolve(ctx, cat)
	if !ok {
		logger.Info("image unavailable, using default", "image", s.defaultImage)
		image = s.defaultImage
	}

	outcome := s.drafts.Generate(ctx, best.NewsItem, news, cat)
	result.FallbackReason = string(outcome.Reason)

	post := &domain.Post{
		ID:            domain.AutoPostID(now),
		Title:         outcome.Draft.Title,
		Category:      cat.Name,
		Date:          now.Format(domain.DateLayout),
		Image:         image,
		Excerpt:       outcome.Draft.Excerpt,
		Content:       outcome.Draft.Content,
		AutoGenerated: true,
		SourceNews: domain.SourceNews{
			Title:  best.Title,
			Link:   best.Link,
			Source: best.Source,
		},
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("run aborted before saving: %w", err)
	}

	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.posts.Save(txCtx, post); err != nil {
			return fmt.Errorf("save post: %w", err)
		}
		if err := s.posts.UpdateIndex(txCtx, post.Filename()); err != nil {
			return fmt.Errorf("update index: %w", err)
		}
		return nil
	})
	if err != nil {
		logger.Error("failed to persist post", "post_id", post.ID, "error", err)
		return nil, err
	}

	result.Post = post
	result.Filename = post.Filename()

	if s.publisher != nil {
		if err := s.publisher.PublishCreated(ctx, result.RunID, post); err != nil {
			logger.Warn("failed to publish post event", "post_id", post.ID, "error", err)
		}
	}

	return finish(domain.RunPosted)
}

// Index returns the post index, newest first.
func (s *PipelineService) Index(ctx context.Context) ([]string, error) {
	index, err := s.posts.Index(ctx)
	if err != nil {
		return nil, fmt.Errorf("read index: %w", err)
	}
	return index, nil
}
