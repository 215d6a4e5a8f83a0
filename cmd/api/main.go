package main

import (
	"log"

	"posthoc/adapters/stats/engine"
	"posthoc/internal"
	"posthoc/internal/config"
	"posthoc/ui"

	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; real environments set variables directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := internal.NewDefaultLogger()
	eng := engine.New(nil, nil, logger)

	server := ui.NewServer(eng, logger, cfg.Server.GinMode)
	if err := server.Run(cfg.Server.Port); err != nil {
		log.Fatalf("server: %v", err)
	}
}
