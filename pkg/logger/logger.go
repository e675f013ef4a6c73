package logger

import (
	"time"

	"storefront-client/pkg/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ServiceName is attached to every log entry.
const ServiceName = "storefront-client"

// Gin context keys set by view handlers and read back into the request log line.
const (
	ViewContextKey       = "view"
	GenerationContextKey = "generation"
)

// Annotate names the view a request rendered and the fetch generation that produced it.
func Annotate(c *gin.Context, view string, generation uint64) {
	c.Set(ViewContextKey, view)
	c.Set(GenerationContextKey, generation)
}

// New creates a new logger instance
func New(environment string) *zap.Logger {
	var config zap.Config

	if environment == "production" {
		config = zap.NewProductionConfig()
		config.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	} else {
		config = zap.NewDevelopmentConfig()
		config.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := config.Build()
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}

	return logger.With(zap.String("service", ServiceName))
}

// GinMiddleware logs one line per request with its request, session and view identifiers.
// Server errors are logged at error level.
func GinMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		status := c.Writer.Status()
		fields := []zap.Field{
			zap.Int("status", status),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("query", query),
			zap.String("ip", c.ClientIP()),
			zap.Duration("latency", time.Since(start)),
		}
		if requestID := middleware.GetRequestID(c); requestID != "" {
			fields = append(fields, zap.String("request_id", requestID))
		}
		if sessionID := middleware.GetSessionID(c); sessionID != "" {
			fields = append(fields, zap.String("session_id", sessionID))
		}
		if view := c.GetString(ViewContextKey); view != "" {
			fields = append(fields,
				zap.String("view", view),
				zap.Uint64("generation", c.GetUint64(GenerationContextKey)),
			)
		}
		if location := c.Writer.Header().Get("Location"); location != "" {
			fields = append(fields, zap.String("location", location))
		}

		if status >= 500 {
			logger.Error("HTTP Request", fields...)
			return
		}
		logger.Info("HTTP Request", fields...)
	}
}
