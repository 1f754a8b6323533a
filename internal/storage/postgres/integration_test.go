//go:build integration

package postgres

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"blog_autopost/internal/domain"
)

type PostStoreIntegrationSuite struct {
	suite.Suite
	ctx       context.Context
	container *postgres.PostgresContainer
	db        *sqlx.DB
	store     *PostStore
	tm        *TransactionManager
}

func (s *PostStoreIntegrationSuite) SetupSuite() {
	s.ctx = context.Background()

	migrationsPath, err := filepath.Abs("../../../migrations")
	s.Require().NoError(err)

	container, err := postgres.Run(s.ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("blog_test"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		postgres.WithInitScripts(filepath.Join(migrationsPath, "001_create_posts.up.sql")),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	s.Require().NoError(err)
	s.container = container

	connStr, err := container.ConnectionString(s.ctx, "sslmode=disable")
	s.Require().NoError(err)

	db, err := Open(s.ctx, connStr)
	s.Require().NoError(err)
	s.db = db
	s.store = NewPostStore(db)
	s.tm = NewTransactionManager(db)
}

func (s *PostStoreIntegrationSuite) TearDownSuite() {
	if s.db != nil {
		s.db.Close()
	}
	if s.container != nil {
		_ = s.container.Terminate(s.ctx)
	}
}

func (s *PostStoreIntegrationSuite) SetupTest() {
	_, _ = s.db.ExecContext(s.ctx, "DELETE FROM post_index")
	_, _ = s.db.ExecContext(s.ctx, "DELETE FROM posts")
}

func TestPostStoreIntegrationSuite(t *testing.T) {
	suite.Run(t, new(PostStoreIntegrationSuite))
}

func samplePost(date string) *domain.Post {
	return &domain.Post{
		ID:            "daily-" + date,
		Title:         "🤖 AI 기술이 교육을 바꾼다",
		Category:      "AI",
		Date:          date,
		Image:         "images/banner.png",
		Excerpt:       "AI 분야 주요 소식: AI 기술이 교육을 바꾼다...",
		Content:       "<h2>AI</h2>",
		AutoGenerated: true,
		SourceNews:    domain.SourceNews{Title: "AI 기술이 교육을 바꾼다", Link: "https://x", Source: "Test"},
	}
}

func (s *PostStoreIntegrationSuite) TestSave_AndList() {
	post := samplePost("2026-01-01")
	s.Require().NoError(s.store.Save(s.ctx, post))

	posts, err := s.store.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(posts, 1)
	s.Equal(*post, posts[0])
}

func (s *PostStoreIntegrationSuite) TestSave_Overwrites() {
	post := samplePost("2026-01-01")
	s.Require().NoError(s.store.Save(s.ctx, post))

	post.Title = "updated"
	s.Require().NoError(s.store.Save(s.ctx, post))

	var title string
	s.Require().NoError(s.db.GetContext(s.ctx, &title, "SELECT title FROM posts WHERE id = $1", post.ID))
	s.Equal("updated", title)
}

func (s *PostStoreIntegrationSuite) TestSave_OneAutomaticPostPerDay() {
	s.Require().NoError(s.store.Save(s.ctx, samplePost("2026-01-01")))

	other := samplePost("2026-01-01")
	other.ID = "daily-2026-01-01-b"
	s.Error(s.store.Save(s.ctx, other))

	manual := samplePost("2026-01-01")
	manual.ID = "hello"
	manual.AutoGenerated = false
	s.NoError(s.store.Save(s.ctx, manual))
}

func (s *PostStoreIntegrationSuite) TestIndex_NewestFirstWithoutDuplicates() {
	s.Require().NoError(s.store.UpdateIndex(s.ctx, "daily-2025-12-31.json"))
	s.Require().NoError(s.store.UpdateIndex(s.ctx, "daily-2026-01-01.json"))
	s.Require().NoError(s.store.UpdateIndex(s.ctx, "daily-2026-01-01.json"))

	index, err := s.store.Index(s.ctx)
	s.Require().NoError(err)
	s.Equal([]string{"daily-2026-01-01.json", "daily-2025-12-31.json"}, index)
}

func (s *PostStoreIntegrationSuite) TestIndex_Empty() {
	index, err := s.store.Index(s.ctx)
	s.NoError(err)
	s.Empty(index)
}

func (s *PostStoreIntegrationSuite) TestTransaction_Commit() {
	post := samplePost("2026-01-02")

	err := s.tm.WithTransaction(s.ctx, func(ctx context.Context) error {
		if err := s.store.Save(ctx, post); err != nil {
			return err
		}
		return s.store.UpdateIndex(ctx, post.Filename())
	})
	s.Require().NoError(err)

	var count int
	s.Require().NoError(s.db.GetContext(s.ctx, &count, "SELECT COUNT(*) FROM posts WHERE id = $1", post.ID))
	s.Equal(1, count)

	index, err := s.store.Index(s.ctx)
	s.Require().NoError(err)
	s.Equal([]string{"daily-2026-01-02.json"}, index)
}

func (s *PostStoreIntegrationSuite) TestTransaction_Rollback() {
	post := samplePost("2026-01-03")
	boom := errors.New("index failed")

	err := s.tm.WithTransaction(s.ctx, func(ctx context.Context) error {
		if err := s.store.Save(ctx, post); err != nil {
			return err
		}
		return boom
	})
	s.ErrorIs(err, boom)

	var count int
	s.Require().NoError(s.db.GetContext(s.ctx, &count, "SELECT COUNT(*) FROM posts WHERE id = $1", post.ID))
	s.Equal(0, count)
}

func (s *PostStoreIntegrationSuite) TestTransaction_Nested() {
	post := samplePost("2026-01-04")

	err := s.tm.WithTransaction(s.ctx, func(ctx context.Context) error {
		outer := GetTxFromContext(ctx)
		return s.tm.WithTransaction(ctx, func(inner context.Context) error {
			s.Same(outer, GetTxFromContext(inner))
			return s.store.Save(inner, post)
		})
	})
	s.NoError(err)
}
