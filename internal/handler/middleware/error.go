package middleware

import (
	"log/slog"
	"net/http"

	"dj-booking-engine/internal/handler/httperr"
	"dj-booking-engine/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

const stackLines = 8

// ErrorHandler writes the most recent public error if the handler left the body empty,
// and logs the cause of every 5xx with a short stack.
func ErrorHandler(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		for _, e := range c.Errors {
			if resp, ok := e.Meta.(httperr.Response); ok && resp.Status < http.StatusInternalServerError {
				continue
			}
			logger.Error("request failed",
				"request_id", GetRequestID(c),
				"route", c.FullPath(),
				"error", e.Err.Error(),
				"stack", errs.ExtractStackLines(e.Err, stackLines),
			)
		}

		if c.Writer.Written() {
			return
		}
		for i := len(c.Errors) - 1; i >= 0; i-- {
			e := c.Errors[i]
			if !e.IsType(gin.ErrorTypePublic) {
				continue
			}
			if resp, ok := e.Meta.(httperr.Response); ok {
				c.JSON(resp.Status, resp)
				return
			}
		}
		if status := c.Writer.Status(); status != http.StatusOK {
			c.Status(status)
			c.Writer.WriteHeaderNow()
			return
		}
		if len(c.Errors) > 0 {
			c.JSON(http.StatusInternalServerError, httperr.New(http.StatusInternalServerError, "Internal server error", nil))
		}
	}
}

// CustomRecovery turns a panic into a 500 using the standard error body.
func CustomRecovery(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("recovered from panic",
					"panic", r,
					"request_id", GetRequestID(c),
					"path", c.Request.URL.Path,
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError,
					httperr.New(http.StatusInternalServerError, "Internal server error", nil))
			}
		}()
		c.Next()
	}
}
