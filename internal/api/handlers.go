// Package api provides the HTTP surface of the backend API.
//
// The service deliberately exposes a single business endpoint plus the
// operational endpoints every deployment needs: a health probe for the load
// balancer target group and a Prometheus scrape target.
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RootMessage is the fixed payload served at the root endpoint. The smoke
// tester keys on this exact string, so treat changes as breaking.
const RootMessage = "This is the root of the API"

// Root handles GET /.
//
// It returns 200 OK with the same JSON body no matter how often it is
// called. There is no state behind it; repeated calls observe nothing but
// the constant response.
func Root(c *gin.Context) {
	respondSuccessWithMessage(c, http.StatusOK, RootMessage)
}

// HealthHandler handles health probe endpoints.
type HealthHandler struct {
	instanceID string
}

// NewHealthHandler creates a new health probe handler.
//
// Parameters:
//   - instanceID: this task instance's UUID
func NewHealthHandler(instanceID string) *HealthHandler {
	return &HealthHandler{instanceID: instanceID}
}

// LivenessResponse represents the liveness probe response.
type LivenessResponse struct {
	Status     string `json:"status"`
	InstanceID string `json:"instance_id"`
}

// Liveness handles GET /healthz for load balancer health checks.
//
// This endpoint always returns 200 OK as long as the HTTP server is running.
// It indicates that the process is alive and can accept requests.
func (h *HealthHandler) Liveness(c *gin.Context) {
	respondSuccess(c, http.StatusOK, LivenessResponse{
		Status:     "ok",
		InstanceID: h.instanceID,
	})
}
