package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/samber/lo"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/stackmesa/backend-api/internal/api"
)

// rootProbes is how many times the root endpoint is fetched; the response
// must come back unchanged on every fetch.
const rootProbes = 3

type endpointCheck struct {
	name string
	fn   func(ctx context.Context, client *http.Client, baseURL string) error
}

// normalizeBaseURL trims trailing slashes and defaults to http, which is the
// scheme the load balancer listener speaks.
func normalizeBaseURL(raw string) string {
	u := strings.TrimRight(strings.TrimSpace(raw), "/")
	if !strings.Contains(u, "://") {
		u = "http://" + u
	}
	return u
}

// probeEndpoints runs all endpoint checks concurrently against the target.
// Transient failures (the load balancer may still be registering targets
// right after the service stabilizes) are retried with backoff until the
// context deadline; a wrong payload aborts immediately.
func probeEndpoints(ctx context.Context, logger *zap.Logger, baseURL string) error {
	checks := []endpointCheck{
		{name: "root", fn: checkRoot},
		{name: "health", fn: checkHealth},
	}

	logger.Info("probing endpoints",
		zap.String("base_url", baseURL),
		zap.Strings("checks", lo.Map(checks, func(c endpointCheck, _ int) string { return c.name })))

	client := &http.Client{Timeout: 10 * time.Second}

	g, ctx := errgroup.WithContext(ctx)
	for _, c := range checks {
		c := c
		g.Go(func() error {
			bo := backoff.NewExponentialBackOff()
			bo.InitialInterval = time.Second
			bo.MaxInterval = 10 * time.Second

			notify := func(err error, next time.Duration) {
				logger.Info("endpoint not ready",
					zap.String("check", c.name),
					zap.String("state", err.Error()),
					zap.Duration("next_check", next))
			}

			err := backoff.RetryNotify(func() error {
				return c.fn(ctx, client, baseURL)
			}, backoff.WithContext(bo, ctx), notify)
			if err != nil {
				return fmt.Errorf("%s: %w", c.name, err)
			}

			logger.Info("endpoint check passed", zap.String("check", c.name))
			return nil
		})
	}
	return g.Wait()
}

// checkRoot fetches GET / several times and verifies the fixed payload comes
// back identical each time.
func checkRoot(ctx context.Context, client *http.Client, baseURL string) error {
	bodies := make([]string, 0, rootProbes)
	for i := 0; i < rootProbes; i++ {
		body, err := fetch(ctx, client, baseURL+"/")
		if err != nil {
			return err
		}
		bodies = append(bodies, body)
	}

	// A reachable endpoint serving the wrong payload will not heal on its
	// own, so these failures are permanent rather than retried.
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal([]byte(bodies[0]), &payload); err != nil {
		return backoff.Permanent(fmt.Errorf("response is not valid JSON: %w", err))
	}
	if payload.Message != api.RootMessage {
		return backoff.Permanent(fmt.Errorf("unexpected message %q, want %q", payload.Message, api.RootMessage))
	}
	if !lo.EveryBy(bodies, func(b string) bool { return b == bodies[0] }) {
		return backoff.Permanent(fmt.Errorf("response changed between fetches"))
	}
	return nil
}

// checkHealth verifies the liveness endpoint responds.
func checkHealth(ctx context.Context, client *http.Client, baseURL string) error {
	_, err := fetch(ctx, client, baseURL+"/healthz")
	return err
}

// fetch performs a GET and returns the body, failing on any non-200 status.
func fetch(ctx context.Context, client *http.Client, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("GET %s returned status %d", url, resp.StatusCode)
	}
	return string(body), nil
}
