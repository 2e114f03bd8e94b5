package metrics_test

import (
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ecommerce-dashboard-api/internal/application/sales"
	"github.com/jhoicas/ecommerce-dashboard-api/internal/infrastructure/metrics"
)

func TestObserveSaleOpYPostal(t *testing.T) {
	m := metrics.New("test")
	m.ObserveSaleOp(sales.OpCreate, nil)
	m.ObserveSaleOp(sales.OpCreate, errors.New("boom"))
	m.ObserveSaleOp(sales.OpDelete, nil)
	m.ObservePostal(metrics.PostalHit)

	n, err := testutil.GatherAndCount(m.Registry(), "test_sale_operations_total", "test_postal_lookups_total")
	require.NoError(t, err)
	assert.Equal(t, 4, n)
}

func TestMiddlewareYHandler(t *testing.T) {
	m := metrics.New("api")
	app := fiber.New()
	app.Use(m.Middleware())
	app.Get("/metrics", m.Handler())
	app.Get("/items/:id", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) })

	for _, id := range []string{"1", "2"} {
		resp, err := app.Test(httptest.NewRequest("GET", "/items/"+id, nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	}

	resp, err := app.Test(httptest.NewRequest("GET", "/metrics", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), `api_http_requests_total{method="GET",path="/items/:id",status="204"} 2`)
}
