package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/moodtrack/moodtrack/internal/api"
	"github.com/moodtrack/moodtrack/internal/auth"
	"github.com/moodtrack/moodtrack/internal/config"
	"github.com/moodtrack/moodtrack/internal/logger"
	"github.com/moodtrack/moodtrack/internal/services"
	"github.com/moodtrack/moodtrack/internal/store/factory"
	"github.com/moodtrack/moodtrack/internal/suggest"
)

func main() {
	// .env is a local-dev convenience; a missing file is not an error.
	_ = godotenv.Load()

	log := logger.New("mood-service")

	cfg, err := config.New()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	st, err := factory.NewStore(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Store unavailable")
	}

	var authn auth.Authenticator
	switch cfg.AuthMode {
	case "static":
		authn = auth.NewLocalDevAuthenticator()
	default:
		authn = auth.NewJWTAuthenticator(cfg.JWTSecret, cfg.JWTIssuer, time.Duration(cfg.JWTTTLHours)*time.Hour)
	}

	router := api.NewRouter(api.Deps{
		Auth:       authn,
		Store:      st,
		Moods:      services.NewMoodService(st),
		Onboarding: services.NewOnboardingService(st),
		Suggester:  suggest.NewGeminiSuggester(cfg.GeminiBaseURL, cfg.GeminiAPIKey, cfg.GeminiModel),
		CORSOrigin: cfg.CORSOrigin,
	})

	server := &http.Server{
		Addr:         cfg.GetHTTPAddr(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Int("port", cfg.HTTPPort).Msg("HTTP server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server")
	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited")
}
