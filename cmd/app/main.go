package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"request-logger/internal/config"
	"request-logger/internal/handler"
	"request-logger/internal/interceptor"
	"request-logger/internal/logger"
	"request-logger/internal/settings"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	envErr := godotenv.Load()

	cfg, err := config.Load(getEnv("CONFIG_PATH", "config/config.yml"))
	if err != nil {
		log.Fatalf("ERROR: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("ERROR: %v", err)
	}

	zlog, err := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		log.Fatalf("ERROR: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	zlog.Info("starting application")
	if envErr != nil {
		zlog.Debug("no .env file loaded", zap.Error(envErr))
	}

	features, err := config.LoadFeatures(cfg.Features.Path)
	if err != nil {
		zlog.Fatal("failed to load request logging features", zap.Error(err))
	}
	snap, err := features.Snapshot()
	if err != nil {
		zlog.Fatal("invalid request logging features", zap.Error(err))
	}
	store := settings.NewStore(snap)

	if cfg.Features.Watch {
		features.Watch(func(next *settings.Snapshot, err error) {
			if err != nil {
				zlog.Error("feature reload rejected, keeping previous configuration", zap.Error(err))
				return
			}
			store.Register(next)
			zlog.Info("feature configuration reloaded", zap.String("path", cfg.Features.Path))
		})
	}

	var mw []func(http.Handler) http.Handler
	if cfg.App.TrustProxy {
		mw = append(mw, handler.TrustProxy)
	}
	if enabled, _ := snap.Bool(settings.KeyInterceptorEnabled); enabled {
		ic := interceptor.New(store, logger.NewZapSink(zlog), interceptor.WithLogger(zlog))
		mw = append(mw, ic.Handler)
	} else {
		zlog.Info("request logging disabled")
	}

	r := handler.NewRouter(handler.New(zlog), mw...)

	server := &http.Server{
		Addr:    ":" + cfg.App.Port,
		Handler: r,
	}

	go func() {
		zlog.Info("HTTP server started", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("server failed", zap.Error(err))
		}
	}()

	waitForShutdown(ctx, zlog, server, cfg.App.ShutdownTimeout)
}

func waitForShutdown(ctx context.Context, zlog *zap.Logger, server *http.Server, timeout time.Duration) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	<-stop
	zlog.Info("shutting down application")

	ctxShutdown, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := server.Shutdown(ctxShutdown); err != nil {
		zlog.Error("server shutdown failed", zap.Error(err))
	}

	zlog.Info("application stopped")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
