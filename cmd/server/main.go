package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/srs-vsa/analytics-backend/internal/ai"
	"github.com/srs-vsa/analytics-backend/internal/analytics"
	"github.com/srs-vsa/analytics-backend/internal/config"
	"github.com/srs-vsa/analytics-backend/internal/db"
	httpapi "github.com/srs-vsa/analytics-backend/internal/http"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	zerolog.TimeFieldFormat = time.RFC3339
	level, _ := zerolog.ParseLevel(cfg.LogLevel)
	logger := log.Level(level).With().Str("service", "analytics-backend").Logger()

	ctx := context.Background()
	store, err := db.New(ctx, cfg.DatabaseURL, cfg.QueryTimeout)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect db")
	}
	defer store.Close()

	var classifier ai.Classifier
	if cfg.OpenAIAPIKey == "" {
		classifier = ai.MockClassifier{}
		logger.Info().Msg("using mock classifier")
	} else {
		classifier = ai.NewOpenAIClassifier(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.ClassifierTimeout)
		logger.Info().Str("model", cfg.OpenAIModel).Msg("using openai classifier")
	}

	svc := &analytics.Service{
		Store:                 store,
		Classifier:            classifier,
		Logger:                logger,
		ClassifierTimeout:     cfg.ClassifierTimeout,
		ClassifierConcurrency: cfg.ClassifierConcurrency,
	}

	router := httpapi.Router(cfg, store, svc, logger)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info().Str("port", cfg.Port).Msg("server started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctxShutdown)
	logger.Info().Msg("server stopped")
}
