package middleware

import (
	"errors"
	"net/http"

	apperrors "storefront-client/pkg/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorHandler renders the last error attached with c.Error as a StandardError, unless the
// handler already wrote a response (redirects to the error page, for instance).
func ErrorHandler(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		fields := []zap.Field{
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
			zap.String("session_id", GetSessionID(c)),
		}

		var stdErr *apperrors.StandardError
		if errors.As(err, &stdErr) {
			fields = append(fields,
				zap.String("error_code", stdErr.Code),
				zap.String("message", stdErr.Message),
				zap.String("details", stdErr.Details),
			)
			if stdErr.HTTPStatus() < http.StatusInternalServerError && stdErr.Code != "InvalidRequest" {
				// superseded views and stale item ids are routine while a user clicks quickly
				logger.Debug("Request error", fields...)
			} else {
				logger.Warn("Request error", fields...)
			}
			c.JSON(stdErr.HTTPStatus(), stdErr)
			return
		}

		logger.Error("Unhandled error", append(fields, zap.Error(err))...)
		c.JSON(http.StatusInternalServerError, apperrors.NewInternalError("internal server error", err))
	}
}

// RecoveryHandler is a panic recovery middleware
func RecoveryHandler(logger *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Error("Panic recovered",
			zap.Any("panic", recovered),
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
		)
		c.AbortWithStatusJSON(http.StatusInternalServerError, apperrors.NewInternalError("internal server error", nil))
	})
}
