package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"staff-scheduling/internal/admission"
	"staff-scheduling/internal/config"
	"staff-scheduling/internal/policy"
	"staff-scheduling/internal/store"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "engine",
		Short: "Shift-admission validation engine service",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context())
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := newLogger(cfg.AppEnv)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync()

	logger.Info("starting admission engine",
		zap.String("env", cfg.AppEnv),
		zap.String("listen_addr", cfg.ListenAddr))

	policies, err := policy.Load(cfg.PolicyFile)
	if err != nil {
		return fmt.Errorf("failed to load location policies: %w", err)
	}
	logger.Info("location policies loaded", zap.Strings("locations", policies.Codes()))

	conn, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer conn.Close()

	pingCtx, pingCancel := context.WithTimeout(ctx, 5*time.Second)
	defer pingCancel()
	if err := conn.PingContext(pingCtx); err != nil {
		return fmt.Errorf("failed to reach database: %w", err)
	}

	dataStore := store.NewPostgresStore(conn, logger)
	engine := admission.NewEngine(dataStore, policies, cfg.Limits, logger)

	srv := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: newServer(engine, dataStore, logger).routes(),
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func newLogger(env string) (*zap.Logger, error) {
	if env == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
