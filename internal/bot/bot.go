// Package bot wires the crossposter's long-running pieces together: the
// interval scheduler and the HTTP trigger server, both driving the same
// pipeline.
package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vkgram/vkgram/internal/pipeline"
)

// Runner triggers one fetch-transform-deliver cycle.
type Runner interface {
	Run(ctx context.Context) (*pipeline.Stats, error)
}

// Bot owns the application lifecycle.
type Bot struct {
	logger    *slog.Logger
	scheduler *Scheduler
	server    *http.Server
}

// NewBot creates the orchestrator around an already-built scheduler and
// trigger handler.
func NewBot(logger *slog.Logger, scheduler *Scheduler, handler http.Handler, addr string) *Bot {
	return &Bot{
		logger:    logger.With("component", "orchestrator"),
		scheduler: scheduler,
		server: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// Run starts both triggers and blocks until the context is cancelled or a
// component fails.
func (b *Bot) Run(ctx context.Context) error {
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		b.logger.Info("starting trigger server", "addr", b.server.Addr)
		if err := b.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("trigger server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		if err := b.scheduler.Start(); err != nil {
			return fmt.Errorf("start scheduler: %w", err)
		}

		<-gCtx.Done()
		b.logger.Info("shutdown signal received")

		if err := b.scheduler.Stop(); err != nil {
			b.logger.Error("error stopping scheduler", "error", err)
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := b.server.Shutdown(shutdownCtx); err != nil {
			b.logger.Error("error shutting down trigger server", "error", err)
		}
		return nil
	})

	err := g.Wait()
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
