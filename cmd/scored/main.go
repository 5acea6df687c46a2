package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spacesedan/prodpulse/config"
	"github.com/spacesedan/prodpulse/internal/clients"
	"github.com/spacesedan/prodpulse/internal/keywords"
	"github.com/spacesedan/prodpulse/internal/logging"
	"github.com/spacesedan/prodpulse/internal/models"
	"github.com/spacesedan/prodpulse/internal/scoring"
	"github.com/spacesedan/prodpulse/internal/sentiment"
	"github.com/spacesedan/prodpulse/internal/server"
	"github.com/spacesedan/prodpulse/internal/trends"
)

func main() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	config.LoadEnv(env)
	logging.InitLogger(config.LogLevel())

	settings := config.LoadSettings()

	extractor := keywords.NewExtractor()
	scorer := sentiment.NewScorer(settings.ModelPath, settings.VaderEnabled)

	var trendClient trends.TrendClient
	if settings.SerpAPIKey != "" {
		trendClient = clients.NewSerpAPIClient(settings.SerpAPIKey, settings.TrendTimeout)
	}

	var trendCache trends.Cache
	if settings.ValkeyAddress != "" {
		cache, err := clients.NewValkeyCache(settings.ValkeyAddress, settings.ValkeyPassword, settings.ValkeyTLS)
		if err != nil {
			slog.Warn("[main] Valkey unavailable, trend caching disabled",
				slog.String("error", err.Error()))
		} else {
			defer cache.Close()
			trendCache = cache
		}
	}

	estimator := trends.NewEstimator(trendClient, trendCache, settings.TrendsGeo)

	pipeline := scoring.NewPipeline(extractor, scorer, estimator, models.BlendWeights{
		Sentiment: settings.SentimentWeight,
		Trend:     settings.TrendWeight,
	})

	srv := &http.Server{
		Addr:              ":" + settings.Port,
		Handler:           server.New(pipeline).Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("[main] Scoring service listening",
			slog.String("port", settings.Port),
			slog.String("env", settings.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("[main] Server failed", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("[main] Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("[main] Shutdown error", slog.String("error", err.Error()))
	}
}
