// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the nico-cal HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to Redis when a denylist is configured.
//  4. Build stores and services; seed demo/test data.
//  5. Wire HTTP handlers.
//  6. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/taibuivan/nicocal/internal/api"
	"github.com/taibuivan/nicocal/internal/auth"
	"github.com/taibuivan/nicocal/internal/diary"
	"github.com/taibuivan/nicocal/internal/platform/config"
	"github.com/taibuivan/nicocal/internal/platform/constants"
	redisstore "github.com/taibuivan/nicocal/internal/platform/redis"
	"github.com/taibuivan/nicocal/internal/platform/sec"
)

// Seeded accounts.
const (
	demoUserID   = "user1"
	demoPassword = "password123"
	testUserID   = "testuser"
	testPassword = "P@ssw0rd"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	log := newLogger(slog.LevelInfo)
	slog.SetDefault(log)

	log.Info("[nico-cal] service_initializing", slog.String("version", constants.AppVersion))

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		log = newLogger(slog.LevelDebug)
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.Bool("revocation_enabled", cfg.RevocationEnabled()),
	)

	if cfg.UsesDefaultSecret() {
		log.Warn("jwt_secret_not_set: sessions are signed with the built-in default secret")
	}

	// Bound dependency checks so misconfiguration is caught quickly rather
	// than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), constants.StartupTimeout)
	defer startupCancel()

	// ── 3. Redis (optional) ───────────────────────────────────────────────
	var (
		rdb         *goredis.Client
		revocations auth.RevocationList
	)
	if cfg.RevocationEnabled() {
		rdb, err = redisstore.NewClient(startupCtx, cfg.RedisURL, log)
		must(log, err, "connect to redis")
		defer func() {
			log.Info("closing redis client")
			if cerr := rdb.Close(); cerr != nil {
				log.Error("redis close error", slog.Any("error", cerr))
			}
		}()
		revocations = auth.NewRedisRevocationList(rdb)
	}

	// ── 4. Domain Wiring ──────────────────────────────────────────────────
	tokens, err := sec.NewTokenService(cfg.JWTSecret, constants.AuthIssuer)
	must(log, err, "initialize token service")

	users := auth.NewMemoryUserStore()
	authService := auth.NewService(users, auth.NewBcryptVerifier(users), tokens, revocations, constants.SessionTTL, log)

	diaryStore := diary.NewMemoryStore()
	diaryService := diary.NewService(diaryStore, log)

	// ── 5. Seed Data ──────────────────────────────────────────────────────
	if cfg.SeedDemoData {
		must(log, seedUser(startupCtx, authService, demoUserID, demoPassword), "seed demo user")
		must(log, diary.SeedDemo(startupCtx, diaryStore, demoUserID), "seed demo diary")
		log.Info("demo_data_seeded", slog.String("user_id", demoUserID))
	}

	if cfg.SeedTestData {
		must(log, seedUser(startupCtx, authService, testUserID, testPassword), "seed test user")

		now := time.Now()
		random := rand.New(rand.NewPCG(uint64(now.UnixNano()), uint64(os.Getpid())))
		_, err := diary.SeedMonth(startupCtx, diaryStore, random, testUserID, now.Year(), now.Month(), now.Location(), log)
		must(log, err, "seed test diaries")
	}

	// ── 6. Health handlers ────────────────────────────────────────────────
	healthDeps := api.HealthDependencies{}
	if rdb != nil {
		healthDeps.CheckCache = func(ctx context.Context) error {
			return redisstore.Ping(ctx, rdb)
		}
	}
	liveness, readiness := api.NewHealthHandlers(healthDeps, log)

	// ── 7. HTTP Server ────────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth: auth.NewHandler(authService, auth.HandlerOptions{
			SecureCookie: cfg.IsProduction(),
			StrictSchema: cfg.StrictLoginSchema,
		}),
		Diary: diary.NewHandler(diaryService),
	}

	server := api.NewServer(cfg, log, authService, handlers)

	// ── 8. Graceful Shutdown ──────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// newLogger builds the process-wide JSON logger tagged with the app name.
func newLogger(level slog.Level) *slog.Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With(slog.String("app", constants.AppName))
}

// seedUser registers a seeded account, tolerating one that already exists.
func seedUser(ctx context.Context, service *auth.Service, userID, password string) error {
	if err := service.Register(ctx, userID, password); err != nil && !errors.Is(err, auth.ErrUserExists) {
		return err
	}
	return nil
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is limited to startup wiring. After startup, all errors are returned
// and handled explicitly.
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
