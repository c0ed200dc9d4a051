package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPrometheus(t *testing.T) (*PrometheusMiddleware, *prometheus.Registry) {
	t.Helper()
	// fresh registry per test to avoid duplicate registration
	reg := prometheus.NewRegistry()
	pm, err := NewPrometheusMiddleware(reg)
	require.NoError(t, err)
	return pm, reg
}

func TestPrometheusMiddleware(t *testing.T) {
	pm, _ := newTestPrometheus(t)

	app := fiber.New()
	app.Use(pm.Handler())

	app.Get("/test", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	app.Delete("/test", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	app.Post("/match", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusBadRequest, "bad request")
	})

	resp, _ := app.Test(httptest.NewRequest("GET", "/test", nil))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, 1.0, testutil.ToFloat64(pm.requestCount.WithLabelValues("GET", "/test", "200")))

	resp, _ = app.Test(httptest.NewRequest("DELETE", "/test", nil))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, 1.0, testutil.ToFloat64(pm.requestCount.WithLabelValues("DELETE", "/test", "200")))

	app.Test(httptest.NewRequest("POST", "/match", nil))
	assert.Equal(t, 1.0, testutil.ToFloat64(pm.requestCount.WithLabelValues("POST", "/match", "400")))
}

func TestPrometheusMiddleware_ExcludeMetrics(t *testing.T) {
	pm, reg := newTestPrometheus(t)

	app := fiber.New()
	app.Use(pm.Handler())
	app.Get("/metrics", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	app.Test(httptest.NewRequest("GET", "/metrics", nil))

	n, err := testutil.GatherAndCount(reg, "http_requests_total", "http_request_duration_seconds")
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestPrometheusMiddleware_PathPattern(t *testing.T) {
	pm, _ := newTestPrometheus(t)

	app := fiber.New()
	app.Use(pm.Handler())
	app.Get("/documents/:id", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	app.Test(httptest.NewRequest("GET", "/documents/123", nil))

	// /documents/:id as label, not /documents/123
	assert.Equal(t, 1.0, testutil.ToFloat64(pm.requestCount.WithLabelValues("GET", "/documents/:id", "200")))
	assert.Equal(t, 1, testutil.CollectAndCount(pm.requestDuration))
}

func TestNewPrometheusMiddleware_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewPrometheusMiddleware(reg)
	require.NoError(t, err)

	_, err = NewPrometheusMiddleware(reg)
	assert.Error(t, err)
}
