package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/stackmesa/backend-api/internal/metrics"
)

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	metrics.MustInit()

	return SetupRouter(&RouterConfig{
		Logger:     zap.NewNop(),
		InstanceID: "instance-123",
	})
}

func TestSetupRouter_Root(t *testing.T) {
	router := setupTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	expected := `{"message":"This is the root of the API"}`
	if w.Body.String() != expected {
		t.Errorf("Expected body %s, got %s", expected, w.Body.String())
	}
}

func TestSetupRouter_Healthz(t *testing.T) {
	router := setupTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
}

func TestSetupRouter_Metrics(t *testing.T) {
	router := setupTestRouter()

	// Generate one measured request so the request counter has a sample.
	warmup := httptest.NewRequest(http.MethodGet, "/", nil)
	router.ServeHTTP(httptest.NewRecorder(), warmup)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	body := w.Body.String()
	if !strings.Contains(body, "backend_api_http_requests_in_flight") {
		t.Error("Expected in-flight gauge in metrics output")
	}
	if !strings.Contains(body, "backend_api_http_requests_total") {
		t.Error("Expected request counter in metrics output")
	}
}

func TestSetupRouter_UnknownRouteReturnsJSON404(t *testing.T) {
	router := setupTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("Expected status 404, got %d", w.Code)
	}

	var response ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}

	if response.Error != "not_found" {
		t.Errorf("Expected error code not_found, got %q", response.Error)
	}
	if response.RequestID == "" {
		t.Error("Expected request ID in error response")
	}
}
