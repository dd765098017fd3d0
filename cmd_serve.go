package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	httpLayer "policy-illustrator/http"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the illustration HTTP API",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	rateLimiter := httpLayer.NewRateLimiter(a.cfg.RateLimit.Capacity, a.cfg.RateLimit.Refill)
	defer rateLimiter.Stop()

	handler := httpLayer.NewRouter(
		httpLayer.NewIllustrationHandler(a.illustrations, a.comparison, a.log),
		httpLayer.NewProductHandler(a.finder, a.log),
		httpLayer.NewHistoryHandler(a.history, a.log),
		rateLimiter,
		a.log,
	)

	server := &http.Server{
		Addr:         a.cfg.Server.HTTPAddr,
		Handler:      handler,
		ReadTimeout:  a.cfg.Server.ReadTimeout,
		WriteTimeout: a.cfg.Server.WriteTimeout,
		IdleTimeout:  a.cfg.Server.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		a.log.Info("http server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		a.log.Error("http server failed", zap.Error(err))
		return err
	case <-quit:
		a.log.Info("shutting down server")
	}

	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		a.log.Error("server shutdown", zap.Error(err))
		return err
	}

	a.log.Info("server exited")
	return nil
}
