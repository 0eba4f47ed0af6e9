package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/mzahan/vidshare/api"
	"github.com/mzahan/vidshare/config"
	"github.com/mzahan/vidshare/provider"
	"github.com/mzahan/vidshare/pubsub"
	"github.com/mzahan/vidshare/store"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()

	cfg := config.Load()

	// 1. Durable store. A missing or unreachable database is not fatal:
	// the gateway serves everything from memory until a restart.
	var durable store.Store
	if cfg.DatabaseURL != "" {
		pg, err := store.OpenPostgres(cfg.DatabaseURL)
		if err != nil {
			log.Warn().Err(err).Msg("database unavailable, using in-memory store only")
		} else {
			durable = pg
			log.Info().Msg("database connection established")
		}
	} else {
		log.Warn().Msg("DATABASE_URL not set, using in-memory store only")
	}
	gateway := store.NewGateway(durable, log)

	// 2. Status publisher (optional).
	publisher := pubsub.NewPublisher(cfg.RedisAddr, cfg.RedisPassword, log)
	defer publisher.Close()

	// 3. Transcoding provider. Without credentials there is no upload
	// path at all, so this one is fatal.
	if cfg.CloudinaryURL == "" {
		log.Fatal().Msg("CLOUDINARY_URL must be set")
	}
	cld, err := provider.NewCloudinary(cfg.CloudinaryURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to configure cloudinary")
	}

	// 4. HTTP server with graceful shutdown.
	server := api.NewServer(gateway, cld, publisher, cfg.TempDir, log)
	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           server.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info().Str("port", cfg.Port).Msg("API server starting")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received, stopping server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown did not complete cleanly")
	}
	log.Info().Msg("server stopped gracefully")
}
