package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	transporthttp "github.com/findr-api/internal/transport/http"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		b, err := openBackend(ctx, cfg)
		if err != nil {
			return fmt.Errorf("open %s store: %w", cfg.StoreBackend, err)
		}
		tokens, err := openTokens(cfg)
		if err != nil {
			return fmt.Errorf("jwt provider: %w", err)
		}
		bus := openEvents(cfg)
		defer bus.Close()

		srv := &http.Server{
			Addr:         fmt.Sprintf(":%s", cfg.AppPort),
			Handler:      transporthttp.NewRouter(ctx, cfg, buildDeps(ctx, cfg, b, tokens, bus)),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			log.Info().Str("port", cfg.AppPort).Str("env", cfg.AppEnv).Str("store", cfg.StoreBackend).Msg("server starting")
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
			close(errCh)
		}()

		select {
		case err := <-errCh:
			return fmt.Errorf("server error: %w", err)
		case <-ctx.Done():
		}

		log.Info().Msg("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("forced shutdown: %w", err)
		}
		log.Info().Msg("server stopped")
		return nil
	},
}
