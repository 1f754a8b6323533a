package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"blog_autopost/internal/category"
	"blog_autopost/internal/config"
	"blog_autopost/internal/draft"
	"blog_autopost/internal/image/unsplash"
	"blog_autopost/internal/llm"
	"blog_autopost/internal/publisher"
	"blog_autopost/internal/service"
	"blog_autopost/internal/source/googlenews"
	"blog_autopost/internal/storage/filestore"
	"blog_autopost/internal/storage/postgres"
)

type app struct {
	cfg      *config.Config
	logger   *slog.Logger
	pipeline *service.PipelineService
	closers  []func() error
}

func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// newApp wires the pipeline. now may be nil for the wall clock.
func newApp(ctx context.Context, cfg *config.Config, now func() time.Time) (*app, error) {
	logger := setupLogger(cfg.LogLevel)
	a := &app{cfg: cfg, logger: logger}

	posts, txManager, err := a.openStore(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}

	var events service.Publisher
	if cfg.RabbitMQ.Enabled {
		rabbitMQ, err := publisher.NewRabbitMQ(publisher.Config{
			URL:          cfg.RabbitMQ.URL,
			Exchange:     cfg.RabbitMQ.Exchange,
			ExchangeType: cfg.RabbitMQ.ExchangeType,
			RoutingKey:   cfg.RabbitMQ.RoutingKey,
			QueueName:    cfg.RabbitMQ.QueueName,
		}, logger)
		if err != nil {
			logger.Warn("rabbitmq unavailable, post events disabled", "error", err)
		} else {
			events = rabbitMQ
			a.closers = append(a.closers, rabbitMQ.Close)
		}
	}

	var client llm.Client
	if cfg.LLM.APIKey != "" {
		client, err = llm.New(llm.Settings{
			Provider:         cfg.LLM.Provider,
			Endpoint:         cfg.LLM.Endpoint,
			Model:            cfg.LLM.Model,
			APIKey:           cfg.LLM.APIKey,
			MaxTokens:        cfg.LLM.MaxTokens,
			Timeout:          cfg.LLM.Timeout,
			AnthropicVersion: cfg.LLM.AnthropicVersion,
		})
		if err != nil {
			a.Close()
			return nil, err
		}
	} else {
		logger.Info("no llm api key configured, drafts will use the template")
	}

	news := googlenews.New(googlenews.Config{
		BaseURL:   cfg.News.BaseURL,
		Language:  cfg.News.Language,
		Region:    cfg.News.Region,
		Edition:   cfg.News.Edition,
		UserAgent: cfg.News.UserAgent,
		MaxItems:  cfg.News.MaxItems,
		Timeout:   cfg.News.Timeout,
	}, logger)

	images := unsplash.New(unsplash.Config{
		BaseURL:      cfg.Image.BaseURL,
		Size:         cfg.Image.Size,
		Timeout:      cfg.Image.Timeout,
		MaxRedirects: cfg.Image.MaxRedirects,
	}, nil, logger)

	if now == nil {
		now = time.Now
	}

	a.pipeline = service.NewPipelineService(
		news,
		images,
		draft.NewGenerator(client, now, logger),
		posts,
		txManager,
		events,
		logger,
		service.Options{
			Rotation:     category.Default,
			DefaultImage: cfg.DefaultImage,
			Location:     cfg.Location(),
			Now:          now,
		},
	)

	return a, nil
}

func (a *app) openStore(ctx context.Context) (service.PostStore, service.TransactionManager, error) {
	switch a.cfg.Storage.Backend {
	case config.BackendPostgres:
		db, err := postgres.Open(ctx, a.cfg.Storage.Database.DSN())
		if err != nil {
			return nil, nil, err
		}
		a.closers = append(a.closers, db.Close)
		a.logger.Info("connected to database")
		return postgres.NewPostStore(db), postgres.NewTransactionManager(db), nil
	default:
		store := filestore.New(filestore.Config{
			PostsDir:  a.cfg.Storage.PostsDir,
			IndexFile: a.cfg.Storage.IndexFile,
		}, a.logger)
		return store, filestore.NewTransactionManager(), nil
	}
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.logger.Warn("close failed", "error", err)
		}
	}
	a.closers = nil
}
