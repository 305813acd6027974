// Package server exposes the on-demand HTTP trigger. Hitting the root path
// runs one full crosspost cycle; the response is always an empty success,
// outcomes surface in logs only.
package server

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vkgram/vkgram/internal/pipeline"
)

// Runner triggers one fetch-transform-deliver cycle.
type Runner interface {
	Run(ctx context.Context) (*pipeline.Stats, error)
}

// New builds the trigger router.
func New(runner Runner, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())

	log := logger.With("component", "trigger_server")

	// Browsers probe for a favicon; answer without triggering a run.
	r.GET("/favicon.ico", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	r.GET("/", func(c *gin.Context) {
		stats, err := runner.Run(c.Request.Context())
		if err != nil {
			log.Error("triggered run failed", "error", err)
		} else {
			log.Info("triggered run finished",
				"fetched", stats.Fetched,
				"skipped", stats.Skipped,
				"delivered", stats.Delivered,
				"failed", stats.Failed)
		}
		c.Status(http.StatusOK)
	})

	return r
}
