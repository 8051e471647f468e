package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ghostlake/jobtrack/internal/apierr"
	"github.com/ghostlake/jobtrack/internal/logging"
)

// Errors is the centralized error handler: handlers attach typed errors via
// c.Error and this middleware renders the last one as the uniform
// {error, message} envelope. Unknown error types become 500 INTERNAL_ERROR
// with a generic message; full detail is logged, never sent to the client.
func Errors(log *logging.Logger, production bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err

		var appErr *apierr.Error
		if !errors.As(err, &appErr) {
			appErr = apierr.Internal("internal server error").WithCause(err)
		}

		if appErr.Status >= http.StatusInternalServerError || !production {
			log.Error("request failed",
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				"status", appErr.Status,
				"error", appErr.Error(),
			)
		}

		c.JSON(appErr.Status, appErr)
	}
}

// NotFoundHandler answers unmatched routes with the JSON envelope instead of
// gin's default plain-text 404.
func NotFoundHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusNotFound, apierr.NotFound("not found"))
	}
}
