// cmd/lookup-bot/main.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"client-lookup-bot/internal/chat"
	"client-lookup-bot/internal/common/config"
	"client-lookup-bot/internal/common/dedup"
	"client-lookup-bot/internal/common/logger"
	"client-lookup-bot/internal/common/observability"
	"client-lookup-bot/internal/directory"
	"client-lookup-bot/internal/dispatch"
	"client-lookup-bot/internal/document"
	"client-lookup-bot/internal/enrichment"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2 // Exponential backoff
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	bootLog := logger.New("info", "console")
	bootLog.Info("Starting client lookup bot...")

	cfg, err := config.Load()
	if err != nil {
		bootLog.Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Init dedup store; redis when configured, in-memory otherwise ---
	ttl := time.Duration(cfg.Dedup.TTL) * time.Second
	var dedupStore dedup.Store
	if cfg.Dedup.RedisAddress != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Dedup.RedisAddress,
			Password: cfg.Dedup.RedisPassword,
			DB:       cfg.Dedup.RedisDB,
		})

		err = retryWithBackoff(func() error {
			return redisClient.Ping(ctx).Err()
		}, 10, 2*time.Second, zapLog, "Redis connection")
		if err != nil {
			zapLog.Fatal("redis failed after retries", zap.Error(err))
		}

		dedupStore = dedup.NewRedisStore(redisClient, ttl)
		zapLog.Info("Redis dedup store connected successfully")
	} else {
		dedupStore = dedup.NewMemoryStore(ttl)
		zapLog.Info("Using in-memory dedup store")
	}
	defer dedupStore.Close()

	// --- Load the client directory ---
	store := directory.NewStore()
	loader := directory.NewLoader(store, cfg.Directory.CSVPath, log)
	if err := loader.Load(); err != nil {
		if !cfg.Directory.SampleFallback {
			zapLog.Fatal("directory load failed", zap.Error(err))
		}
		zapLog.Warn("directory load failed, using sample data",
			zap.String("csvPath", cfg.Directory.CSVPath),
			zap.Error(err),
		)
		loader.LoadSample()
	}
	stats := store.Stats()
	zapLog.Info("Client directory loaded",
		zap.Int("clients", stats.Clients),
		zap.Int("favourites", stats.Favourites),
	)

	// --- Enrichment, documents, outbound replies ---
	orch := enrichment.NewOrchestrator(
		enrichment.NewClient(enrichment.LoadConfig(cfg.Backends), log), log)

	documents := document.NewFetcher(
		cfg.Backends.Document.BaseURL,
		config.GetDuration(cfg.Backends.Document.Timeout),
		log,
	)

	messenger := chat.NewWebhookMessenger(
		cfg.Gateway.ReplyWebhookURL,
		config.GetDuration(cfg.Gateway.Timeout),
		log,
	)

	router := dispatch.NewRouter(store, loader, orch, documents, messenger, dedupStore, log)

	// --- Event Gateway + Health & Metrics Server ---
	mux := http.NewServeMux()
	chat.NewGateway(router, log).Routes(mux)

	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		processed, _ := dedupStore.Count(r.Context())
		stats := store.Stats()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":             "healthy",
			"time":               time.Now().Format(time.RFC3339),
			"clients":            stats.Clients,
			"favourites":         stats.Favourites,
			"processed_messages": processed,
		})
	})
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)

	server := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: mux,
	}

	go func() {
		zapLog.Info("Gateway/Health/Metrics server listening", zap.String("address", cfg.Server.Address))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Fatal("server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error shutting down server", zap.Error(err))
	}

	zapLog.Info("Client lookup bot stopped gracefully")
}
