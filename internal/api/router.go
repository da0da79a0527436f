package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/stackmesa/backend-api/internal/metrics"
)

// RouterConfig holds configuration for setting up the HTTP router.
type RouterConfig struct {
	// Logger is the Zap logger for request logging.
	Logger *zap.Logger

	// InstanceID identifies this task instance in probe responses.
	InstanceID string
}

// SetupRouter creates and configures the Gin HTTP router with all routes and
// middleware.
//
// This function sets up:
// - Global middleware (metrics, request logging)
// - The root endpoint serving the fixed payload
// - The health probe used by the load balancer target group
// - The Prometheus metrics endpoint
func SetupRouter(config *RouterConfig) *gin.Engine {
	// Create router
	router := gin.New()

	// Recovery middleware (recover from panics)
	router.Use(gin.Recovery())

	// Metrics middleware (should be early to capture all requests)
	router.Use(MetricsMiddleware())

	// Request logging middleware
	router.Use(RequestLogger(config.Logger))

	healthHandler := NewHealthHandler(config.InstanceID)

	// The one business endpoint this service exposes
	router.GET("/", Root)

	// Health probe (no authentication required)
	router.GET("/healthz", healthHandler.Liveness)

	// Metrics endpoint (no authentication required)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(
		metrics.Registry,
		promhttp.HandlerOpts{},
	)))

	// Everything else is a well-formed JSON 404
	router.NoRoute(func(c *gin.Context) {
		respondError(c, http.StatusNotFound, "not_found", "Resource not found")
	})

	return router
}
