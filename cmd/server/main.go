package main

import (
	"log"

	"github.com/osmanylima/osmany-lima/internal/app"
	"github.com/osmanylima/osmany-lima/internal/config"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := app.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	application, err := app.New(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize application", zap.Error(err))
	}

	logger.Info("Starting Exchange API...",
		zap.String("url", "http://"+cfg.Server.Addr()+"/exchange/{amount}/{from}/{to}/{rate}"),
	)

	if err := application.Run(); err != nil {
		logger.Fatal("Server failed", zap.Error(err))
	}

	logger.Info("Stopped")
}
