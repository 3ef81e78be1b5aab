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

	"github.com/medipoint-hq/medipoint-gateway/internal/config"
	"github.com/medipoint-hq/medipoint-gateway/internal/fixtures"
	"github.com/medipoint-hq/medipoint-gateway/internal/logger"
	"github.com/medipoint-hq/medipoint-gateway/internal/mockapi"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "mockapi start failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.Init(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Close()

	set, err := fixtures.Load()
	if err != nil {
		return fmt.Errorf("load fixtures: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := mockapi.NewServer(set, mockapi.WithRequiredToken(cfg.MockToken), mockapi.WithLogger(log))
	server := &http.Server{
		Addr:              cfg.MockAddr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()
	log.InfoObj("mock api listening", "mock_config", map[string]any{
		"addr":           cfg.MockAddr,
		"token_required": cfg.MockToken != "",
		"topics":         len(set.Topics),
		"suggestions":    len(set.Suggestions),
		"samples":        len(set.Samples),
	})

	select {
	case <-ctx.Done():
		log.InfoObj("mock api shutting down", "reason", ctx.Err())
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	}
}
