package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"availability-system/api"
	"availability-system/config"
	"availability-system/database"
	"availability-system/logger"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Error("server stopped", zap.Error(err))
		_ = log.Sync()
		os.Exit(1)
	}
}

// run serves until SIGINT/SIGTERM or a listener failure. Every resource it
// opens is closed before it returns.
func run(cfg *config.Config, log *zap.Logger) error {
	log.Info("attempting to connect to database...")
	db, err := database.Connect(cfg.Database.DSN, cfg.Database.MaxIdleConns)
	if err != nil {
		return fmt.Errorf("database connect: %w", err)
	}
	defer db.Close()

	if cfg.Database.Migrate {
		if err := database.Migrate(db, log); err != nil {
			return fmt.Errorf("database migrate: %w", err)
		}
	}
	log.Info("successfully connected to database")

	trustedProxies, err := api.ParseTrustedProxies(cfg.Server.TrustedProxies)
	if err != nil {
		return fmt.Errorf("server.trusted_proxies: %w", err)
	}

	limiter, closeLimiter := newLimiter(cfg, log)
	defer closeLimiter()

	service := api.NewAPI(db, api.Options{
		Logger:          log,
		MaxSlotDuration: cfg.Availability.MaxSlotDuration,
		AllowedOrigins:  cfg.Server.CORS.AllowOrigins,
		Limiter:         limiter,
		TrustedProxies:  trustedProxies,
	})
	service.RegisterRoutes()

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           service.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		log.Info("server starting", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case err := <-serveErr:
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// newLimiter prefers a Redis-backed limiter when redis.addr is set and
// reachable, and falls back to an in-process one otherwise.
func newLimiter(cfg *config.Config, log *zap.Logger) (api.Limiter, func()) {
	if cfg.RateLimit.Requests <= 0 {
		return nil, func() {}
	}

	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		err := rdb.Ping(ctx).Err()
		if err == nil {
			log.Info("rate limiting via redis", zap.String("addr", cfg.Redis.Addr))
			return api.NewRedisLimiter(rdb, cfg.RateLimit.Requests, cfg.RateLimit.Window, "availability"), func() { _ = rdb.Close() }
		}
		log.Warn("redis unreachable, rate limiting in memory", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
		_ = rdb.Close()
	}

	return api.NewMemoryLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Window), func() {}
}
