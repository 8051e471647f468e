package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ghostlake/jobtrack/internal/logging"
)

// RequestLog logs one line per request with method, path, status and duration.
func RequestLog(log *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}
