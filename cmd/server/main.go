package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/skycast/widget/internal/config"
	"github.com/skycast/widget/internal/delivery/http"
	"github.com/skycast/widget/internal/repository/postgres"
	"github.com/skycast/widget/internal/service"
)

func main() {
	cfg := config.Load()

	// Database connection
	var repo service.LookupRepository = postgres.NewMemoryRepository(100)
	if cfg.DatabaseURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err == nil {
			pgRepo := postgres.NewPostgresRepository(pool)
			if err = pgRepo.Migrate(ctx); err == nil {
				defer pool.Close()
				repo = pgRepo
				log.Println("Connected to PostgreSQL")
			} else {
				pool.Close()
			}
		}
		cancel()
		if err != nil {
			log.Printf("Warning: Could not use database: %v", err)
			log.Println("Keeping lookup history in memory")
		}
	}

	// The server is the local backend, so it always talks to the provider directly
	var upstream service.Fetcher = service.NewWeatherService(cfg.Fetch.ProviderBaseURL, cfg.Fetch.APIKey, cfg.Fetch.Timeout)
	if cfg.Fetch.APIKey == "" {
		log.Printf("Warning: none of %v is set, lookups will fail", config.APIKeyVars)
	}
	if cfg.UpstreamRPS > 0 {
		upstream = service.NewRateLimited(upstream, cfg.UpstreamRPS, cfg.UpstreamBurst)
		log.Printf("Upstream rate limited to %.2f req/s (burst %d)", cfg.UpstreamRPS, cfg.UpstreamBurst)
	}
	lookups := service.NewLookupService(upstream, repo)

	app := http.NewApp(lookups)

	// Graceful shutdown
	go func() {
		log.Printf("Server starting on :%s", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}
	lookups.WaitBackground()
	log.Println("Server exited gracefully")
}
