// Package filestore keeps posts as one JSON document per post plus a JSON
// array index of filenames, newest first.
package filestore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"blog_autopost/internal/domain"
)

type Config struct {
	PostsDir  string
	IndexFile string
}

type Store struct {
	postsDir  string
	indexFile string
	logger    *slog.Logger
}

func New(cfg Config, logger *slog.Logger) *Store {
	if cfg.PostsDir == "" {
		cfg.PostsDir = "posts"
	}
	if cfg.IndexFile == "" {
		cfg.IndexFile = filepath.Join(cfg.PostsDir, "index.json")
	}
	return &Store{
		postsDir:  cfg.PostsDir,
		indexFile: cfg.IndexFile,
		logger:    logger.With("component", "filestore"),
	}
}

// List returns every post document in the posts directory. Files that are not
// JSON posts are skipped. A missing directory yields no posts.
func (s *Store) List(ctx context.Context) ([]domain.Post, error) {
	entries, err := os.ReadDir(s.postsDir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read posts dir: %w", err)
	}

	indexPath := filepath.Clean(s.indexFile)
	var posts []domain.Post
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		path := filepath.Join(s.postsDir, entry.Name())
		if path == indexPath {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			s.logger.Warn("skipping unreadable post", "file", entry.Name(), "error", err)
			continue
		}
		var post domain.Post
		if err := json.Unmarshal(data, &post); err != nil {
			s.logger.Debug("skipping malformed post", "file", entry.Name(), "error", err)
			continue
		}
		posts = append(posts, post)
	}

	return posts, nil
}

// Save writes the post to {id}.json, replacing any previous file atomically.
func (s *Store) Save(_ context.Context, post *domain.Post) error {
	if post.ID == "" {
		return errors.New("post id is empty")
	}
	if err := os.MkdirAll(s.postsDir, 0o755); err != nil {
		return fmt.Errorf("create posts dir: %w", err)
	}

	path := filepath.Join(s.postsDir, post.Filename())
	if err := writeJSON(path, post); err != nil {
		return fmt.Errorf("write post %s: %w", post.ID, err)
	}

	s.logger.Info("post saved", "file", path)
	return nil
}

// Index returns the filenames listed in the index. A missing or corrupt index
// is treated as empty.
func (s *Store) Index(_ context.Context) ([]string, error) {
	data, err := os.ReadFile(s.indexFile)
	if errors.Is(err, fs.ErrNotExist) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read index: %w", err)
	}

	var index []string
	if err := json.Unmarshal(data, &index); err != nil {
		s.logger.Warn("index is corrupt, starting from empty", "file", s.indexFile, "error", err)
		return []string{}, nil
	}
	if index == nil {
		index = []string{}
	}
	return index, nil
}

// UpdateIndex puts filename at the front of the index unless it is already listed.
func (s *Store) UpdateIndex(ctx context.Context, filename string) error {
	index, err := s.Index(ctx)
	if err != nil {
		return err
	}

	if slices.Contains(index, filename) {
		s.logger.Debug("index already lists file", "file", filename)
		return nil
	}
	index = slices.Insert(index, 0, filename)

	if dir := filepath.Dir(s.indexFile); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create index dir: %w", err)
		}
	}
	if err := writeJSON(s.indexFile, index); err != nil {
		return fmt.Errorf("write index: %w", err)
	}

	s.logger.Info("index updated", "file", filename, "entries", len(index))
	return nil
}

// writeJSON encodes v with two-space indentation and without HTML escaping,
// then renames a temp file over path.
func writeJSON(path string, v any) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+strings.TrimSuffix(filepath.Base(path), ".json")+"-*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
