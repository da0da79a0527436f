package api

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/stackmesa/backend-api/internal/metrics"
)

// RequestLogger creates a middleware that logs all HTTP requests using
// structured logging.
//
// Each request gets a generated UUID so log lines can be correlated, and the
// completion line is leveled by status code: 5xx logs as error, 4xx as warn,
// everything else as info.
func RequestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := uuid.New().String()
		start := time.Now()

		requestLogger := logger.With(
			zap.String("request_id", requestID),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("remote_addr", c.ClientIP()),
			zap.String("user_agent", c.Request.UserAgent()),
		)

		// Store logger and request ID in Gin context
		c.Set("logger", requestLogger)
		c.Set("request_id", requestID)

		c.Next()

		duration := time.Since(start)
		status := c.Writer.Status()

		fields := []zap.Field{
			zap.Int("status_code", status),
			zap.Duration("duration", duration),
			zap.Int("response_size", c.Writer.Size()),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}

		switch {
		case status >= 500:
			requestLogger.Error("request completed with server error", fields...)
		case status >= 400:
			requestLogger.Warn("request completed with client error", fields...)
		default:
			requestLogger.Info("request completed", fields...)
		}
	}
}

// MetricsMiddleware creates a middleware that collects Prometheus metrics
// for HTTP requests.
//
// It should be added early in the middleware chain so all requests are
// counted and timing stays accurate.
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		metrics.HTTPRequestsInFlight.Inc()
		defer metrics.HTTPRequestsInFlight.Dec()

		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()

		method := c.Request.Method
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path // Fallback for unmatched routes
		}
		status := strconv.Itoa(c.Writer.Status())
		responseSize := float64(c.Writer.Size())

		metrics.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)

		// Only record response size if we have a valid size
		if responseSize >= 0 {
			metrics.HTTPResponseSize.WithLabelValues(method, path).Observe(responseSize)
		}
	}
}

// GetLogger retrieves the request-scoped logger from Gin context.
// Returns a no-op logger if not found.
func GetLogger(c *gin.Context) *zap.Logger {
	if logger, exists := c.Get("logger"); exists {
		if l, ok := logger.(*zap.Logger); ok {
			return l
		}
	}
	return zap.NewNop()
}

// GetRequestID retrieves the request ID from Gin context.
// Returns empty string if not found.
func GetRequestID(c *gin.Context) string {
	if requestID, exists := c.Get("request_id"); exists {
		if id, ok := requestID.(string); ok {
			return id
		}
	}
	return ""
}
