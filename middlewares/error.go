package middlewares

import (
	"foodorder/pkg/apperr"
	"foodorder/pkg/resp"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ErrorHandler turns the last error a handler attached with c.Error into the JSON error body.
// Unexpected errors are logged and answered with a generic 500.
func ErrorHandler(log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err
		status := apperr.Status(err)
		if status >= 500 {
			log.WithError(err).WithFields(logrus.Fields{
				"method":    c.Request.Method,
				"path":      c.FullPath(),
				"requestId": c.GetString(RequestIDKey),
			}).Error("request failed")
		}
		resp.Fail(c, status, apperr.Message(err))
	}
}
