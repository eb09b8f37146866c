package api

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nitesh/trends_service/internal/metrics"
)

// requestLogger logs one line per request and records request metrics.
// Unmatched paths share a single route label.
func requestLogger(logger *slog.Logger, m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		dur := time.Since(start)

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()

		logger.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"latency", dur,
		)
		m.ObserveRequest(c.Request.Method, route, status, dur)
	}
}
