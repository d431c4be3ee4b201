package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"book-review-backend/pkg/container"
)

const healthTimeout = 2 * time.Second

type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Version   string            `json:"version"`
	Services  map[string]string `json:"services"`
}

func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		health := HealthResponse{
			Status:    "ok",
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Version:   appCtx.Config.App.Version,
			Services:  map[string]string{"database": "ok"},
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
		defer cancel()

		status := http.StatusOK
		if err := appCtx.HealthCheck(ctx); err != nil {
			log.Warn().Err(err).Msg("health check: store ping failed")
			health.Services["database"] = "unavailable"
			health.Status = "degraded"
			status = http.StatusServiceUnavailable
		}

		c.JSON(status, health)
	}
}
