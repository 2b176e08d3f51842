package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ndewijer/RemitWise-Backend/internal/api"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	// Schedule the click digest
	scheduler := cron.New()
	if cfg.Stats.DigestSchedule != "" {
		_, err := scheduler.AddFunc(cfg.Stats.DigestSchedule, func() {
			a.services.Click.LogDigest(context.Background())
		})
		if err != nil {
			return err
		}
		scheduler.Start()
		logger.Info("click digest scheduled", zap.String("schedule", cfg.Stats.DigestSchedule))
	}

	router := api.NewRouter(a.services, logger.Named("http"), cfg)

	// A comparison may take every retry attempt plus the delays between them.
	attempts := time.Duration(cfg.Gemini.MaxRetries + 1)
	writeTimeout := attempts*(cfg.Gemini.Timeout+cfg.Gemini.RetryDelay) + 15*time.Second

	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: writeTimeout,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("starting server", zap.String("addr", cfg.Server.Addr), zap.String("model", cfg.Gemini.Model))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			return err
		}
	case <-ctx.Done():
	}

	logger.Info("shutting down server")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	<-scheduler.Stop().Done()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}

	logger.Info("server exited")
	return nil
}
