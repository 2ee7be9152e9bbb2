// Package main is the entry point for the interactive splat effect viewer.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/splatfx/internal/config"
	"github.com/Faultbox/splatfx/internal/logger"
	"github.com/Faultbox/splatfx/internal/viewer"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== splatview ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	field, err := cfg.Field.Build()
	if err != nil {
		// the viewer still starts; a field can be dropped onto the window
		logger.Warn("no initial field", zap.String("source", cfg.Field.Source), zap.Error(err))
		field = nil
	}

	v, err := viewer.New(cfg, field, logger.Log)
	if err != nil {
		logger.Error("failed to create viewer", zap.Error(err))
		os.Exit(1)
	}
	defer v.Close()

	if err := v.Run(); err != nil {
		logger.Error("viewer error", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("viewer closed normally")
}
