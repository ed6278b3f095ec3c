package middleware

import (
	"log/slog"
	"net/http"

	"lashdiary/internal/handler/httperr"

	"github.com/gin-gonic/gin"
)

func internalError() httperr.Response {
	resp := httperr.Response{Status: http.StatusInternalServerError}
	resp.Error.Message = "Internal server error"
	resp.Detail = httperr.Detail{Reason: "internal"}
	return resp
}

// ErrorHandler renders the newest public error when a handler aborted
// without writing a body. Private errors are logged and reported as internal.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() || len(c.Errors) == 0 {
			return
		}
		for i := len(c.Errors) - 1; i >= 0; i-- {
			if resp, ok := c.Errors[i].Meta.(httperr.Response); ok && c.Errors[i].IsType(gin.ErrorTypePublic) {
				c.JSON(resp.Status, resp)
				return
			}
		}

		slog.Error("unhandled request error",
			"error", c.Errors.Last().Err,
			"route", routeOf(c),
			"request_id", GetRequestID(c))
		resp := internalError()
		c.JSON(resp.Status, resp)
	}
}

func CustomRecovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				slog.Error("recovered from panic", "error", err, "route", routeOf(c), "request_id", GetRequestID(c))
				resp := internalError()
				c.AbortWithStatusJSON(resp.Status, resp)
			}
		}()
		c.Next()
	}
}
