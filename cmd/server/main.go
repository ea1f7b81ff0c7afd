// cmd/server/main.go
package main

import (
	"context"
	"log"
	"log/slog"

	"github.com/joho/godotenv"

	"policylens/internal/analyzer"
	"policylens/internal/cache"
	"policylens/internal/config"
	"policylens/internal/llm"
	"policylens/internal/server"
	"policylens/internal/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	ctx := context.Background()
	db, err := store.Connect(ctx, cfg.Database.URL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	provider := llm.NewPerplexity(&cfg.Perplexity)
	pipeline := analyzer.New(provider)
	analyses := cache.New(db, pipeline, cfg.Cache.TTL)

	srv := server.New(*cfg, analyses)
	slog.Info("starting server", "host", cfg.Server.Host, "port", cfg.Server.Port)
	if err := srv.Run(); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
