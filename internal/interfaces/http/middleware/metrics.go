package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"realty-crm.backend/pkg/metrics"
)

// MetricsMiddleware records request counts and latency per route. The
// route template is used instead of the raw path to keep cardinality low.
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())

		metrics.HTTPRequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		metrics.HTTPRequestDurationSeconds.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}
