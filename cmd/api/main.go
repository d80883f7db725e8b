// Package main implements the Northwind graph API server.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/mossaab-byte/northwind-graph-api/engine/events"
	"github.com/mossaab-byte/northwind-graph-api/engine/store"
	"github.com/mossaab-byte/northwind-graph-api/pkg/metrics"
	"github.com/mossaab-byte/northwind-graph-api/pkg/mid"
)

// Config holds all environment-based configuration.
type Config struct {
	Port       string
	APIPrefix  string
	Neo4jURL   string
	Neo4jUser  string
	Neo4jPass  string
	NATSURL    string
	CORSOrigin string
	RateLimit  float64
	RateBurst  int
}

func loadConfig() Config {
	return Config{
		Port:       envOr("PORT", "8080"),
		APIPrefix:  envOr("API_PREFIX", "/api"),
		Neo4jURL:   envOr("NEO4J_URL", "neo4j://localhost:7687"),
		Neo4jUser:  envOr("NEO4J_USER", "neo4j"),
		Neo4jPass:  envOr("NEO4J_PASS", "password"),
		NATSURL:    os.Getenv("NATS_URL"),
		CORSOrigin: envOr("CORS_ORIGIN", "*"),
		RateLimit:  envFloat("RATE_LIMIT", 0),
		RateBurst:  envInt("RATE_BURST", 20),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg := loadConfig()

	if err := run(cfg, logger); err != nil {
		logger.Error("server exited with error", "err", err)
		os.Exit(1)
	}
}

func run(cfg Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Connect to Neo4j ---
	driver, err := neo4j.NewDriverWithContext(cfg.Neo4jURL, neo4j.BasicAuth(cfg.Neo4jUser, cfg.Neo4jPass, ""))
	if err != nil {
		return fmt.Errorf("neo4j driver: %w", err)
	}
	defer driver.Close(ctx)

	// --- Connect to NATS (optional) ---
	var pub events.Publisher = events.Nop{}
	if cfg.NATSURL != "" {
		nc, err := nats.Connect(cfg.NATSURL, nats.Name("northwind-api"))
		if err != nil {
			return fmt.Errorf("nats connect: %w", err)
		}
		defer nc.Drain()
		pub = events.NewNATS(nc)
		logger.Info("change events enabled", "url", cfg.NATSURL)
	}

	// --- Build HTTP server ---
	reg := metrics.New()
	srv := newServer(store.New(driver), pub, reg, logger)

	mux := srv.routes(cfg.APIPrefix)
	mux.Handle("GET /metrics", reg.Handler())

	chain := []mid.Middleware{
		mid.Recover(logger),
		mid.Logger(logger),
		mid.CORS(cfg.CORSOrigin),
		mid.OTel("northwind-api"),
		mid.Metrics(reg),
	}
	if cfg.RateLimit > 0 {
		chain = append(chain, mid.RateLimit(cfg.RateLimit, cfg.RateBurst))
	}
	handler := mid.Chain(mux, chain...)

	httpSrv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// --- Graceful shutdown ---
	errCh := make(chan error, 1)
	go func() {
		logger.Info("api server starting", "port", cfg.Port, "prefix", cfg.APIPrefix)
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return err
		}
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpSrv.Shutdown(shutCtx)
}
