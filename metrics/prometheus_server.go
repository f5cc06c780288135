package metrics

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"descrow/logx"
)

const httpServerReadHeaderTimeout = 5 * time.Second

type PrometheusServer struct {
	listenAddress string
	log           *slog.Logger
}

func NewPrometheusServer(listenAddress string, log *slog.Logger) PrometheusServer {
	return PrometheusServer{
		listenAddress: listenAddress,
		log:           log,
	}
}

func (p PrometheusServer) Run(ctx context.Context) error {
	mux := http.NewServeMux()

	mux.Handle("/metrics", promhttp.Handler())

	httpServer := &http.Server{
		Addr:              p.listenAddress,
		Handler:           mux,
		ReadHeaderTimeout: httpServerReadHeaderTimeout,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		<-ctx.Done()

		if err := httpServer.Shutdown(context.WithoutCancel(ctx)); err != nil {
			p.log.Error("httpServer.Shutdown", logx.Error(err))
		}
	}()

	p.log.Info("prometheus server started", slog.String("address", p.listenAddress))

	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("httpServer.ListenAndServe: %w", err)
	}

	p.log.Info("prometheus server stopped")

	return nil
}
