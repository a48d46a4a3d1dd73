package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"golang.org/x/net/netutil"

	"github.com/entrhq/backnav/pkg/logging"
	"github.com/entrhq/backnav/pkg/metrics"
)

// startMetricsServer serves the collector on addr under /metrics. It returns
// the bound address and a function that shuts the server down.
func startMetricsServer(addr string, collector *metrics.Collector, logger *logging.Logger) (net.Addr, func(), error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", collector.Handler())

	srv := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Infof("metrics listening on %s", ln.Addr())
		if serveErr := srv.Serve(netutil.LimitListener(ln, maxMetricsConns)); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			logger.Errorf("metrics server stopped: %v", serveErr)
		}
	}()

	return ln.Addr(), func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if shutdownErr := srv.Shutdown(ctx); shutdownErr != nil {
			logger.Warnf("metrics server shutdown: %v", shutdownErr)
		}
	}, nil
}
