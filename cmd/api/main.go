// Package main is the entry point for the Wayfarer API server.
// Its sole responsibility is wiring dependencies together and starting the server.
// No business logic belongs here.
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

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/wayfarer-app/backend/internal/config"
	"github.com/wayfarer-app/backend/internal/handler"
	"github.com/wayfarer-app/backend/internal/middleware"
	"github.com/wayfarer-app/backend/internal/repo"
	"github.com/wayfarer-app/backend/internal/service"
)

// maxBodySize caps request bodies at 1 MiB — generous for JSON payloads,
// small enough to stop accidental uploads.
const maxBodySize = 1 << 20

func main() {
	// --- Config -----------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	// log/slog is the stdlib structured logger introduced in Go 1.21.
	// JSON handler writes machine-readable output suitable for log aggregators.
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// --- Storage ----------------------------------------------------------
	// One CSV file per table under DATA_DIR, created with a header line on
	// first start. Each repo owns its file exclusively.
	users := repo.NewUserRepo(cfg.DataDir)
	itineraries := repo.NewItineraryRepo(cfg.DataDir)
	events := repo.NewEventRepo(cfg.DataDir)
	requests := repo.NewFriendRequestRepo(cfg.DataDir)

	for _, init := range []func() error{users.Init, itineraries.Init, events.Init, requests.Init} {
		if err := init(); err != nil {
			slog.Error("failed to initialize table file", "error", err)
			os.Exit(1)
		}
	}
	slog.Info("table files ready", "data_dir", cfg.DataDir)

	// --- Services ---------------------------------------------------------
	userSvc := service.NewUserService(users)
	itinerarySvc := service.NewItineraryService(itineraries, users, events)
	eventSvc := service.NewEventService(events, itineraries)
	friendSvc := service.NewFriendService(users, requests)

	// --- Router -----------------------------------------------------------
	// Middleware is applied in order: RequestID → RealIP → Logger → Recoverer
	// → CORS → RateLimit → MaxBodySize.
	// RequestID generates a unique trace ID per request.
	// RealIP sets r.RemoteAddr from X-Forwarded-For / X-Real-IP (safe behind a proxy).
	// SlogLogger writes one structured JSON log line per request.
	// Recoverer catches panics and returns HTTP 500 instead of crashing.
	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(limiter.Handler)
	r.Use(middleware.NewMaxBodySizeHandler(maxBodySize))

	srvHandlers := handler.NewServer(userSvc, itinerarySvc, eventSvc, friendSvc)
	r.Mount("/", srvHandlers.Routes())

	// --- HTTP Server ------------------------------------------------------
	// Explicit timeouts prevent slowloris and resource exhaustion attacks.
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown: wait for OS signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing. A file
	// rewrite in progress either completes or is discarded whole — the
	// temp-file-then-rename discipline never leaves a truncated table.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
