// @title        Workday API
// @version      1.0
// @description  Time-tracking backend: users record daily workdays, admins manage accounts.
// @BasePath     /
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

	"github.com/fichaje/workday-api/internal/api"
	"github.com/fichaje/workday-api/internal/core/ports"
	"github.com/fichaje/workday-api/internal/core/service"
	"github.com/fichaje/workday-api/internal/infrastructure/db/redis"
	"github.com/fichaje/workday-api/internal/infrastructure/db/sqlite"
	"github.com/fichaje/workday-api/internal/pkg/config"
	"github.com/fichaje/workday-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		boot := logger.Init(logger.Options{})
		boot.Fatal().Err(err).Msg("failed to load config")
	}

	logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "workday-api",
	})
	log := logger.Get()

	if err := run(ctx, cfg, log); err != nil {
		log.Error().Err(err).Msg("server stopped with error")
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	// --- Storage ---
	db, err := sqlite.Connect(ctx, sqlite.Config{
		Path:        cfg.SQLite.Path,
		BusyTimeout: cfg.SQLite.BusyTimeout,
	})
	if err != nil {
		return err
	}
	defer db.Close()
	log.Info().Str("path", cfg.SQLite.Path).Msg("sqlite ready")

	rdb, err := redis.Connect(ctx, redis.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return err
	}

	var limiter ports.LoginLimiter = service.NopLimiter{}
	if rdb != nil {
		defer rdb.Close()
		limiter = redis.NewLoginLimiter(rdb, cfg.Login.MaxAttempts, cfg.Login.Lockout)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("login throttle enabled")
	}

	// --- Services ---
	userRepo := sqlite.NewUserRepository(db)
	workdayRepo := sqlite.NewWorkdayRepository(db)

	authService := service.NewAuthService(userRepo, limiter, logger.Component(log, "auth"))
	userService := service.NewUserService(userRepo, logger.Component(log, "users"))
	workdayService := service.NewWorkdayService(workdayRepo, logger.Component(log, "workdays"))

	if cfg.Admin.Password != "" {
		if err := userService.EnsureAdmin(ctx, cfg.Admin.DNI, cfg.Admin.Password); err != nil {
			return err
		}
	} else {
		log.Warn().Str("dni", cfg.Admin.DNI).Msg("ADMIN_PASSWORD not set, admin account not seeded")
	}

	// --- HTTP ---
	e := api.NewRouter(api.Deps{
		Log:            logger.Component(log, "http"),
		DB:             db,
		Redis:          rdb,
		AuthService:    authService,
		UserService:    userService,
		WorkdayService: workdayService,
		IdentityHeader: cfg.IdentityHeader,
		AdminDNI:       cfg.Admin.DNI,
		CORSOrigins:    cfg.CORSOrigins,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting workday api")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

