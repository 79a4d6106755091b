package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"storefront-checkout/internal/handler/httperr"
	"storefront-checkout/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

// ErrorHandler logs server-side failures recorded by httperr.AbortWithError and
// makes sure a request that aborted without a body still gets one.
func ErrorHandler(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		var last *httperr.Response
		for _, ginErr := range c.Errors.ByType(gin.ErrorTypePublic) {
			resp, ok := ginErr.Meta.(httperr.Response)
			if !ok {
				continue
			}
			last = &resp
			if resp.Status >= http.StatusInternalServerError {
				logger.Error("request failed",
					slog.String("request_id", GetRequestID(c)),
					slog.String("route", c.FullPath()),
					slog.Int("status", resp.Status),
					slog.String("error", ginErr.Err.Error()),
					slog.Any("stack", errs.ExtractStackLines(ginErr.Err, 5)))
			}
		}

		if c.Writer.Written() {
			return
		}
		switch {
		case last != nil:
			c.JSON(last.Status, last)
		case c.Writer.Status() != http.StatusOK:
			c.Writer.WriteHeaderNow()
		default:
			c.JSON(http.StatusInternalServerError, httperr.NewResponse(http.StatusInternalServerError, "Internal server error"))
		}
	}
}

// Recovery turns a panic into the standard 500 body. It sits outermost so it
// also covers the other middleware.
func Recovery(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if recovered := recover(); recovered != nil {
				logger.Error("panic while serving request",
					slog.Any("panic", recovered),
					slog.String("method", c.Request.Method),
					slog.String("path", c.Request.URL.Path),
					slog.String("stack", string(debug.Stack())))
				c.AbortWithStatusJSON(http.StatusInternalServerError,
					httperr.NewResponse(http.StatusInternalServerError, "Internal server error"))
			}
		}()
		c.Next()
	}
}
