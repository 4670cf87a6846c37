package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"transferguard/internal/countries"
	"transferguard/internal/engine"
	"transferguard/internal/engine/cache"
	"transferguard/internal/platform/config"
	"transferguard/internal/platform/httpserver"
	"transferguard/internal/platform/logger"
	"transferguard/internal/platform/metrics"
	platformredis "transferguard/internal/platform/redis"
	"transferguard/internal/review"
	"transferguard/internal/scc"
	"transferguard/internal/sources"
	"transferguard/internal/stats"
	httptransport "transferguard/internal/transport/http"
)

// main wires high-level dependencies, starts the evaluation poller, and keeps
// the server lifecycle small. Business logic lives in internal packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	redisClient, err := platformredis.New(cfg.RedisURL)
	if err != nil {
		log.Error("redis setup failed", "error", err)
		os.Exit(1)
	}

	var snapCache cache.Store = cache.NewInMemoryStore()
	var health httptransport.HealthChecker
	if redisClient != nil {
		snapCache = cache.NewRedisStore(redisClient.Client, cfg.SnapshotTTL)
		health = redisClient
		defer redisClient.Close()
	}

	client := sources.NewClient(cfg.UpstreamBaseURL, cfg.RequestTimeout)
	resolver := countries.DefaultResolver()
	coverage := scc.NewEvaluator(resolver)
	reconciler := review.NewReconciler(resolver, coverage, log)
	aggregator := stats.NewAggregator(resolver, coverage, reconciler)

	eng := engine.New(
		sources.NewEventClient(client),
		sources.NewRegistryClient(client),
		sources.NewQueueClient(client),
		sources.NewDecidedClient(client),
		reconciler,
		aggregator,
		log,
		engine.WithCache(snapCache),
		engine.WithMetrics(metrics.New()),
		engine.WithInterval(cfg.PollInterval),
		engine.WithCycleTimeout(cfg.CycleTimeout),
	)

	handler := httptransport.NewHandler(eng, health, log)
	srv := httpserver.New(cfg.Addr, httptransport.NewRouter(handler))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := eng.Run(ctx); err != nil && ctx.Err() == nil {
			log.Error("evaluation poller stopped", "error", err)
		}
	}()

	go func() {
		log.Info("starting transferguard", "addr", cfg.Addr, "poll_interval", cfg.PollInterval.String())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}
}
