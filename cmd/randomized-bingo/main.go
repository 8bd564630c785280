package main

import (
	"os"

	"randomized-bingo/internal/app"
	"randomized-bingo/internal/config"
	"randomized-bingo/internal/logger"
)

func main() {
	cfg, warnings := config.Load()

	log := logger.New(logger.Options{Level: cfg.LogLevel, JSON: cfg.JSONLogs})
	for _, w := range warnings {
		log.Warning("Config", w, nil)
	}

	log.Info("Main", "starting", map[string]interface{}{
		"version":   app.AppVersion,
		"log_level": cfg.LogLevel.String(),
	})

	application := app.NewApplication(cfg, log)
	if err := application.Run(); err != nil {
		log.Error("Main", err, nil)
		os.Exit(1)
	}

	log.Info("Main", "application terminated", nil)
}
