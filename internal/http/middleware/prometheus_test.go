package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMetricsApp(t *testing.T) (*fiber.App, *PrometheusMiddleware, *prometheus.Registry) {
	t.Helper()
	reg := prometheus.NewRegistry()
	m, err := NewPrometheusMiddleware(reg)
	require.NoError(t, err)

	app := fiber.New()
	app.Use(m.Handler())
	app.Get("/metrics", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })
	app.Get("/products/:id", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })
	app.Delete("/products/:id", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) })
	app.Get("/orders/:id", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusConflict, "insufficient stock")
	})
	return app, m, reg
}

func hit(t *testing.T, app *fiber.App, method, path string) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(method, path, nil))
	require.NoError(t, err)
	resp.Body.Close()
}

// histogramSamples returns the observation count per "method path" series.
func histogramSamples(t *testing.T, reg *prometheus.Registry) map[string]uint64 {
	t.Helper()
	mfs, err := reg.Gather()
	require.NoError(t, err)

	out := map[string]uint64{}
	for _, mf := range mfs {
		if mf.GetName() != "http_request_duration_seconds" {
			continue
		}
		for _, metric := range mf.GetMetric() {
			out[labelValue(metric, "method")+" "+labelValue(metric, "path")] = metric.GetHistogram().GetSampleCount()
		}
	}
	return out
}

func labelValue(m *dto.Metric, name string) string {
	for _, lp := range m.GetLabel() {
		if lp.GetName() == name {
			return lp.GetValue()
		}
	}
	return ""
}

func TestPrometheusMiddleware(t *testing.T) {
	app, m, reg := newMetricsApp(t)

	hit(t, app, "GET", "/products/1")
	hit(t, app, "GET", "/products/2")
	hit(t, app, "DELETE", "/products/3")
	hit(t, app, "GET", "/orders/9")

	tests := []struct {
		method, path, status string
		want                 float64
	}{
		{"GET", "/products/:id", "200", 2},
		{"DELETE", "/products/:id", "204", 1},
		{"GET", "/orders/:id", "409", 1},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, testutil.ToFloat64(m.requestCount.WithLabelValues(tt.method, tt.path, tt.status)))
		})
	}

	assert.Equal(t, 3, testutil.CollectAndCount(m.requestCount, "http_requests_total"))
	assert.Equal(t, 3, testutil.CollectAndCount(m.requestDuration, "http_request_duration_seconds"))
	assert.Equal(t, map[string]uint64{
		"GET /products/:id":    2,
		"DELETE /products/:id": 1,
		"GET /orders/:id":      1,
	}, histogramSamples(t, reg))
}

func TestPrometheusMiddleware_SkipsMetricsEndpoint(t *testing.T) {
	app, m, reg := newMetricsApp(t)

	hit(t, app, "GET", "/metrics")
	hit(t, app, "GET", "/metrics")

	assert.Equal(t, 0, testutil.CollectAndCount(m.requestCount))
	assert.Empty(t, histogramSamples(t, reg))
}

func TestPrometheusMiddleware_LabelsSurviveBufferReuse(t *testing.T) {
	app, m, reg := newMetricsApp(t)

	// fiber reuses request buffers between these calls
	for i := 0; i < 5; i++ {
		hit(t, app, "GET", "/products/1")
		hit(t, app, "DELETE", "/products/1")
	}

	assert.Equal(t, float64(5), testutil.ToFloat64(m.requestCount.WithLabelValues("GET", "/products/:id", "200")))
	assert.Equal(t, float64(5), testutil.ToFloat64(m.requestCount.WithLabelValues("DELETE", "/products/:id", "204")))
	assert.Equal(t, map[string]uint64{
		"GET /products/:id":    5,
		"DELETE /products/:id": 5,
	}, histogramSamples(t, reg))
}

func TestNewPrometheusMiddleware_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewPrometheusMiddleware(reg)
	require.NoError(t, err)

	_, err = NewPrometheusMiddleware(reg)
	var already prometheus.AlreadyRegisteredError
	assert.ErrorAs(t, err, &already)
}
