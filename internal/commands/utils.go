package commands

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"propdesk/internal/config"
	"propdesk/internal/logging"
	"propdesk/internal/store"
)

func loadConfig() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}

	log, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, nil, err
	}
	return cfg, log, nil
}

func connect(ctx context.Context, cfg *config.Config, log *zap.Logger) (*store.Gateway, error) {
	gw, err := store.Connect(ctx, cfg, log)
	if err != nil {
		log.Error("database connection failed", zap.String("db_type", cfg.DBType), zap.Error(err))
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return gw, nil
}
