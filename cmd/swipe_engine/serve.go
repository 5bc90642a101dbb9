package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/andrea/gig-matcher/internal/config"
	"github.com/andrea/gig-matcher/internal/logging"
	"github.com/andrea/gig-matcher/internal/server"
	"github.com/andrea/gig-matcher/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes the feed, swipe, rewind and limit endpoints.`,
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := logging.New(cfg.LogJSON, cfg.Debug)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pg, err := store.ConnectPostgres(ctx, cfg.DatabaseURL, cfg.DailySwipeLimit)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pg.Close()

	backend := server.Backend{
		Source:   pg,
		Profiles: pg,
		Swipes:   pg,
	}

	if cfg.RedisURL != "" {
		cache, err := store.NewRedisFeedCache(ctx, cfg.RedisURL, cfg.FeedCacheTTL)
		if err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		defer cache.Close()
		backend.Cache = cache
		log.Info("feed caching enabled", zap.Duration("ttl", cfg.FeedCacheTTL))
	} else {
		log.Info("feed caching disabled; REDIS_URL not set")
	}

	return server.New(cfg, backend, log).Start()
}
