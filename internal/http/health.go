package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const healthTimeout = 2 * time.Second

// HealthCheck probes one backing store; Name is the /health/:store path segment.
type HealthCheck struct {
	Name  string
	Label string
	Ping  func(ctx context.Context) error
}

func (h *Handler) healthCheck(c *gin.Context) {
	name := c.Param("store")
	for _, check := range h.health {
		if check.Name != name {
			continue
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
		defer cancel()

		if err := check.Ping(ctx); err != nil {
			h.log.WithError(err).WithField("store", name).Warn("health check failed")
			c.JSON(http.StatusInternalServerError, gin.H{
				"ok":      false,
				"message": fmt.Sprintf("%s ping failed: %v", check.Label, err),
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"ok":      true,
			"message": fmt.Sprintf("%s ping ok", check.Label),
		})
		return
	}

	c.JSON(http.StatusNotFound, gin.H{
		"ok":      false,
		"message": fmt.Sprintf("unknown store %q", name),
	})
}
