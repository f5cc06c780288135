package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"descrow/api"
	"descrow/auth"
	"descrow/config"
	"descrow/db"
	"descrow/deal"
	"descrow/ledger"
	"descrow/logx"
	"descrow/metrics"
	"descrow/middlewarex"
	"descrow/probe"
	"descrow/query"
	"descrow/registry"
)

const appName = "descrow"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load", "error", err)
		os.Exit(1)
	}

	log := logx.New(parseLevel(cfg.Log.Level), cfg.Log.Pretty)
	slog.SetDefault(log)

	if err := run(ctx, cfg, log); err != nil {
		log.Error("application failed", logx.Error(err))
		os.Exit(1)
	}

	log.Info("application stopped")
}

func run(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	pool, err := db.NewPool(ctx, cfg.Postgres)
	if err != nil {
		return fmt.Errorf("db.NewPool: %w", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		return fmt.Errorf("db ping: %w", err)
	}
	log.Info("database connection OK")

	led := ledger.New()
	registrySvc := registry.NewService(pool, nil)
	dealSvc := deal.NewService(pool, nil, led, deal.PartyPolicy{})
	facade := query.NewFacade(pool)
	authSvc := auth.NewService(auth.NewRepository(pool), cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTL)*time.Hour)

	server := api.NewServer(registrySvc, dealSvc, facade, authSvc, api.LedgerReader{Ledger: led, DB: pool}, log)

	router := chi.NewRouter()
	router.Use(middlewarex.Recovery(log))
	router.Use(middlewarex.RequestLogging(log))
	server.RegisterRoutes(router)

	httpServer := &http.Server{
		Addr:              cfg.Server.ListenAddress,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("api server started", slog.String("address", cfg.Server.ListenAddress))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("httpServer.ListenAndServe: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.Server.ShutdownTimeout)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	g.Go(func() error {
		return probe.NewServer(cfg.Server.ProbeListenAddress, probe.Options{Name: appName}, log).Run(ctx)
	})

	g.Go(func() error {
		return metrics.NewPrometheusServer(cfg.Server.MetricsListenAddress, log).Run(ctx)
	})

	return g.Wait()
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
