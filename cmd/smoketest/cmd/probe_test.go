package cmd

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/stackmesa/backend-api/internal/api"
	"github.com/stackmesa/backend-api/internal/metrics"
)

func newAPIServer(t *testing.T) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	metrics.MustInit()

	router := api.SetupRouter(&api.RouterConfig{
		Logger:     zap.NewNop(),
		InstanceID: "smoke-test",
	})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"http://lb.example.com", "http://lb.example.com"},
		{"http://lb.example.com/", "http://lb.example.com"},
		{"lb.example.com", "http://lb.example.com"},
		{"  lb.example.com/  ", "http://lb.example.com"},
		{"https://lb.example.com", "https://lb.example.com"},
	}

	for _, tt := range tests {
		if got := normalizeBaseURL(tt.raw); got != tt.want {
			t.Errorf("normalizeBaseURL(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestCheckRoot(t *testing.T) {
	srv := newAPIServer(t)

	if err := checkRoot(context.Background(), srv.Client(), srv.URL); err != nil {
		t.Errorf("checkRoot() error = %v", err)
	}
}

func TestCheckRoot_WrongPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message":"something else"}`))
	}))
	defer srv.Close()

	if err := checkRoot(context.Background(), srv.Client(), srv.URL); err == nil {
		t.Error("expected error for wrong payload")
	}
}

func TestCheckRoot_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	if err := checkRoot(context.Background(), srv.Client(), srv.URL); err == nil {
		t.Error("expected error for 500 response")
	}
}

func TestCheckRoot_NotJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>welcome</html>"))
	}))
	defer srv.Close()

	if err := checkRoot(context.Background(), srv.Client(), srv.URL); err == nil {
		t.Error("expected error for non-JSON response")
	}
}

func TestCheckHealth(t *testing.T) {
	srv := newAPIServer(t)

	if err := checkHealth(context.Background(), srv.Client(), srv.URL); err != nil {
		t.Errorf("checkHealth() error = %v", err)
	}
}

func TestCheckHealth_Unhealthy(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	if err := checkHealth(context.Background(), srv.Client(), srv.URL); err == nil {
		t.Error("expected error for unhealthy endpoint")
	}
}

func TestProbeEndpoints(t *testing.T) {
	srv := newAPIServer(t)

	if err := probeEndpoints(context.Background(), zap.NewNop(), srv.URL); err != nil {
		t.Errorf("probeEndpoints() error = %v", err)
	}
}

func TestProbeEndpoints_WrongPayloadFailsFast(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message":"something else"}`))
	}))
	defer srv.Close()

	// The wrong payload is a permanent failure, so this returns without
	// burning through the retry budget.
	done := make(chan error, 1)
	go func() {
		done <- probeEndpoints(context.Background(), zap.NewNop(), srv.URL)
	}()

	select {
	case err := <-done:
		if err == nil {
			t.Error("expected error for wrong payload")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("probeEndpoints did not fail fast on a wrong payload")
	}
}
