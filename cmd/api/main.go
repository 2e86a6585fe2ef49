package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/glowdesk/glowdesk-api/internal/config"
	"github.com/glowdesk/glowdesk-api/internal/domain/catalog"
	"github.com/glowdesk/glowdesk-api/internal/domain/schedule"
	"github.com/glowdesk/glowdesk-api/internal/domain/settings"
	"github.com/glowdesk/glowdesk-api/internal/domain/staff"
	"github.com/glowdesk/glowdesk-api/internal/events"
	"github.com/glowdesk/glowdesk-api/internal/middleware"
	"github.com/glowdesk/glowdesk-api/internal/pkg/database"
	"github.com/glowdesk/glowdesk-api/internal/pkg/jwt"
	"github.com/glowdesk/glowdesk-api/internal/pkg/logger"
	"github.com/glowdesk/glowdesk-api/internal/pkg/readmodel"
	"github.com/glowdesk/glowdesk-api/internal/pkg/response"
)

func main() {
	cfg := config.Load()

	if err := logger.Init(logger.Config{
		Level:       cfg.LogLevel,
		Environment: cfg.Env,
		LogFile:     cfg.LogFile,
	}); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize logger")
	}

	log.Info().Str("env", cfg.Env).Msg("Starting glowdesk API")

	db, err := database.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer database.ClosePostgres(db)

	redisClient, err := database.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer database.CloseRedis(redisClient)

	verifier := jwt.NewVerifier(cfg.JWTSecret)

	hub := events.NewHub(redisClient)
	go hub.Run()
	defer hub.Stop()

	cache := readmodel.NewStore(redisClient, hub)

	// Repositories
	settingsRepo := settings.NewRepository(db)
	catalogRepo := catalog.NewRepository(db)
	staffRepo := staff.NewRepository(db)
	workdayRepo := schedule.NewWorkdayRepository(db)
	entryRepo := schedule.NewEntryRepository(db)

	scheduler := schedule.NewScheduler(workdayRepo, entryRepo, catalogRepo, settingsRepo, cache, hub)

	// Handlers
	settingsHandler := settings.NewHandler(settingsRepo)
	catalogHandler := catalog.NewHandler(catalogRepo, cache)
	staffHandler := staff.NewHandler(staffRepo)
	scheduleHandler := schedule.NewHandler(scheduler)
	eventsHandler := events.NewHandler(hub, cfg.AllowedOrigins)

	authMiddleware := middleware.Auth(verifier)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recover)
	r.Use(middleware.CORSHandler(cfg.AllowedOrigins))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		response.OK(w, map[string]string{"status": "ok"})
	})

	r.With(authMiddleware).Get("/ws", eventsHandler.WebSocket)

	r.Route("/api/v1", func(r chi.Router) {
		r.Mount("/settings", settingsHandler.Routes(authMiddleware))
		r.Mount("/catalog", catalogHandler.Routes(authMiddleware))
		r.Mount("/staff", staffHandler.Routes(authMiddleware))
		r.Mount("/schedule", scheduleHandler.Routes(authMiddleware))
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Graceful shutdown failed")
	}

	log.Info().Msg("Server stopped")
}
