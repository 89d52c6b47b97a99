package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"truthrecruit-engine/internal/config"
	"truthrecruit-engine/internal/events"
	"truthrecruit-engine/internal/provider"
	"truthrecruit-engine/internal/secrets"
	"truthrecruit-engine/internal/store"
)

func resolvePath(dataDir, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dataDir, p)
}

func openStore(ctx context.Context, cfg config.Config, dataDir string, logger *zap.Logger) (store.Store, error) {
	switch cfg.Store.Backend {
	case config.StoreSQLite:
		path := resolvePath(dataDir, cfg.Store.SQLitePath)
		db, err := store.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open report db %s: %w", path, err)
		}
		logger.Info("report store ready", zap.String("backend", "sqlite"), zap.String("path", path))
		return store.NewSQLite(db, cfg.Store.TTL, time.Now), nil

	case config.StoreRedis:
		pw, err := secrets.GetRedisPassword(cfg.Store.RedisKeyringAccount)
		if err != nil && !errors.Is(err, secrets.ErrNoPassword) {
			return nil, err
		}
		rs, err := store.NewRedis(ctx, cfg.Store.RedisURL, pw, cfg.Store.TTL)
		if err != nil {
			return nil, err
		}
		logger.Info("report store ready", zap.String("backend", "redis"))
		return rs, nil

	case config.StoreNone:
		return store.Noop{}, nil
	}
	return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
}

// openPublisher returns the hub publisher plus NATS when enabled. The returned
// func closes whatever was opened.
func openPublisher(cfg config.Config, hub *events.Hub, logger *zap.Logger) (events.Publisher, func(), error) {
	if !cfg.Events.NATSEnabled {
		return hub, func() {}, nil
	}
	nc, err := events.NewNATS(cfg.Events.NATSURL, logger)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("publishing events to nats", zap.String("url", cfg.Events.NATSURL))
	return events.Multi{hub, nc}, nc.Close, nil
}

func newProviders(cfg config.Config) provider.Set {
	return provider.Limit(
		provider.NewMockSet(cfg.Providers.Seed),
		provider.NewLimiter(cfg.Providers.RatePerSec, cfg.Providers.Burst),
	)
}
