package main

import (
	"fmt"

	"tallerpro/internal/infrastructure/config"
	"tallerpro/internal/infrastructure/logger"

	"go.uber.org/zap"
)

func bootstrap() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Parse()
	if err != nil {
		return nil, nil, fmt.Errorf("configuration error: %w", err)
	}
	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("logger: %w", err)
	}
	return cfg, log, nil
}
