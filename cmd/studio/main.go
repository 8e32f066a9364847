// Package main is the entry point for the interactive garment studio.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/merchkit/internal/config"
	"github.com/Faultbox/merchkit/internal/logger"
	"github.com/Faultbox/merchkit/internal/studio"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== Merch Studio ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	s, err := studio.New(cfg)
	if err != nil {
		logger.Error("failed to create studio", zap.Error(err))
		os.Exit(1)
	}
	defer s.Close()

	if err := s.Run(); err != nil {
		logger.Error("studio error", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("studio closed normally")
}
