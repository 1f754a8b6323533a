package postgres

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"blog_autopost/internal/domain"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type postRow struct {
	ID            string `db:"id"`
	Title         string `db:"title"`
	Category      string `db:"category"`
	Date          string `db:"post_date"`
	Image         string `db:"image"`
	Excerpt       string `db:"excerpt"`
	Content       string `db:"content"`
	AutoGenerated bool   `db:"auto_generated"`
	SourceTitle   string `db:"source_title"`
	SourceLink    string `db:"source_link"`
	SourceName    string `db:"source_name"`
}

func (r postRow) toDomain() domain.Post {
	return domain.Post{
		ID:            r.ID,
		Title:         r.Title,
		Category:      r.Category,
		Date:          r.Date,
		Image:         r.Image,
		Excerpt:       r.Excerpt,
		Content:       r.Content,
		AutoGenerated: r.AutoGenerated,
		SourceNews: domain.SourceNews{
			Title:  r.SourceTitle,
			Link:   r.SourceLink,
			Source: r.SourceName,
		},
	}
}

// PostStore keeps posts and the post index in Postgres. Calls made inside
// TransactionManager.WithTransaction share its transaction.
type PostStore struct {
	db *sqlx.DB
}

func NewPostStore(db *sqlx.DB) *PostStore {
	return &PostStore{db: db}
}

func (s *PostStore) List(ctx context.Context) ([]domain.Post, error) {
	query, args, err := psql.
		Select("id", "title", "category", "to_char(post_date, 'YYYY-MM-DD') AS post_date", "image", "excerpt",
			"content", "auto_generated", "source_title", "source_link", "source_name").
		From("posts").
		OrderBy("post_date DESC", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list query: %w", err)
	}

	var rows []postRow
	if err := sqlx.SelectContext(ctx, GetExecutor(ctx, s.db), &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}

	posts := make([]domain.Post, 0, len(rows))
	for _, r := range rows {
		posts = append(posts, r.toDomain())
	}
	return posts, nil
}

func (s *PostStore) Save(ctx context.Context, post *domain.Post) error {
	query, args, err := psql.
		Insert("posts").
		Columns("id", "title", "category", "post_date", "image", "excerpt", "content",
			"auto_generated", "source_title", "source_link", "source_name").
		Values(post.ID, post.Title, post.Category, post.Date, post.Image, post.Excerpt, post.Content,
			post.AutoGenerated, post.SourceNews.Title, post.SourceNews.Link, post.SourceNews.Source).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			category = EXCLUDED.category,
			post_date = EXCLUDED.post_date,
			image = EXCLUDED.image,
			excerpt = EXCLUDED.excerpt,
			content = EXCLUDED.content,
			auto_generated = EXCLUDED.auto_generated,
			source_title = EXCLUDED.source_title,
			source_link = EXCLUDED.source_link,
			source_name = EXCLUDED.source_name`).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := GetExecutor(ctx, s.db).ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save post %s: %w", post.ID, err)
	}
	return nil
}

// Index returns filenames newest first.
func (s *PostStore) Index(ctx context.Context) ([]string, error) {
	query, args, err := psql.
		Select("filename").
		From("post_index").
		OrderBy("position DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build index query: %w", err)
	}

	index := []string{}
	if err := sqlx.SelectContext(ctx, GetExecutor(ctx, s.db), &index, query, args...); err != nil {
		return nil, fmt.Errorf("read index: %w", err)
	}
	return index, nil
}

// UpdateIndex appends filename as the newest entry unless it is already indexed.
func (s *PostStore) UpdateIndex(ctx context.Context, filename string) error {
	query, args, err := psql.
		Insert("post_index").
		Columns("filename").
		Values(filename).
		Suffix("ON CONFLICT (filename) DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("build index insert: %w", err)
	}

	if _, err := GetExecutor(ctx, s.db).ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update index: %w", err)
	}
	return nil
}
