package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/KirkDiggler/pokesearch/internal/clients/pokeapi"
	"github.com/KirkDiggler/pokesearch/internal/config"
	"github.com/KirkDiggler/pokesearch/internal/logging"
	"github.com/KirkDiggler/pokesearch/internal/orchestrators/lookup"
	"github.com/KirkDiggler/pokesearch/internal/redis"
	"github.com/KirkDiggler/pokesearch/internal/repositories/roster"
)

const redisPingTimeout = 2 * time.Second

// app holds the wired dependencies shared by every command
type app struct {
	logger  *zap.Logger
	service lookup.Service
	cleanup func()
}

func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	logger, closeLog, err := logging.New(cfg.Logging.Level, cfg.Logging.File)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	ok := false
	defer func() {
		if !ok {
			_ = closeLog()
		}
	}()

	client, err := pokeapi.New(&pokeapi.Config{
		BaseURL:     cfg.API.BaseURL,
		HTTPTimeout: cfg.API.HTTPTimeout,
		Logger:      logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create api client: %w", err)
	}

	client, err = pokeapi.NewRetrying(client, &pokeapi.RetryConfig{
		MaxAttempts: cfg.API.RetryAttempts,
		BaseDelay:   cfg.API.RetryBaseDelay,
		Logger:      logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create retrying client: %w", err)
	}

	rosterRepo, closeRoster := newRosterRepository(ctx, cfg, logger)

	service, err := lookup.NewOrchestrator(&lookup.Config{
		Client:         client,
		RosterRepo:     rosterRepo,
		Logger:         logger,
		MaxConcurrency: cfg.Lookup.MaxConcurrency,
		RosterLimit:    cfg.Lookup.RosterLimit,
		RosterTTL:      cfg.Lookup.RosterTTL,
	})
	if err != nil {
		closeRoster()
		return nil, fmt.Errorf("failed to create lookup service: %w", err)
	}

	ok = true
	return &app{
		logger:  logger,
		service: service,
		cleanup: func() {
			closeRoster()
			if err := closeLog(); err != nil {
				fmt.Fprintf(os.Stderr, "failed to close log: %v\n", err)
			}
		},
	}, nil
}

// newRosterRepository picks Redis when configured and reachable, memory otherwise
func newRosterRepository(ctx context.Context, cfg *config.Config, logger *zap.Logger) (roster.Repository, func()) {
	memory := func() (roster.Repository, func()) {
		return roster.NewInMemory(nil), func() {}
	}

	if cfg.Redis.Addr == "" {
		return memory()
	}

	client, err := redis.NewClient(cfg.Redis.Addr, &redis.Options{
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		logger.Warn("Invalid redis settings, keeping roster in memory", zap.Error(err))
		return memory()
	}

	if err := redis.Ping(ctx, client, redisPingTimeout); err != nil {
		logger.Warn("Redis unreachable, keeping roster in memory",
			zap.String("addr", cfg.Redis.Addr),
			zap.Error(err),
		)
		_ = client.Close()
		return memory()
	}

	repo, err := roster.NewRedis(&roster.RedisConfig{Client: client})
	if err != nil {
		_ = client.Close()
		logger.Warn("Failed to create redis roster, keeping roster in memory", zap.Error(err))
		return memory()
	}

	logger.Debug("Using redis roster store", zap.String("addr", cfg.Redis.Addr))
	return repo, func() { _ = client.Close() }
}
