package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appanalytics "github.com/jhoicas/ecommerce-dashboard-api/internal/application/analytics"
	"github.com/jhoicas/ecommerce-dashboard-api/internal/application/sales"
	"github.com/jhoicas/ecommerce-dashboard-api/internal/application/usecase"
	"github.com/jhoicas/ecommerce-dashboard-api/internal/domain"
	"github.com/jhoicas/ecommerce-dashboard-api/internal/domain/entity"
	"github.com/jhoicas/ecommerce-dashboard-api/internal/infrastructure/memory"
	"github.com/jhoicas/ecommerce-dashboard-api/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/ecommerce-dashboard-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// stubPostal responde según el CEP recibido.
type stubPostal struct{}

func (stubPostal) Lookup(_ context.Context, cep string) (*entity.Address, error) {
	switch strings.ReplaceAll(cep, "-", "") {
	case "01310100":
		return &entity.Address{PostalCode: "01310-100", Street: "Avenida Paulista", City: "São Paulo", State: "SP"}, nil
	case "99999999":
		return nil, fmt.Errorf("%w: CEP 99999999", domain.ErrNotFound)
	case "88888888":
		return nil, fmt.Errorf("%w: HTTP 503", domain.ErrUpstream)
	default:
		return nil, fmt.Errorf("%w: CEP mal formado", domain.ErrInvalidInput)
	}
}

// buildApp arma la API completa sobre almacenamiento en memoria.
func buildApp(jwtSecret string) *fiber.App {
	loc := time.UTC
	store := memory.NewStore(loc)
	categoryRepo := memory.NewCategoryRepository(store)
	productRepo := memory.NewProductRepository(store)
	saleRepo := memory.NewSaleRepository(store)
	settingsRepo := memory.NewSettingsRepository(store)
	reportRepo := memory.NewReportRepository(store)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AppName:     "test-api",
		Version:     "test",
		CategoryUC:  usecase.NewCategoryUseCase(categoryRepo),
		ProductUC:   usecase.NewProductUseCase(productRepo, categoryRepo, saleRepo, memory.NewTxRunner(store)),
		Ledger:      sales.NewLedgerUseCase(memory.NewTxRunner(store), saleRepo, reportRepo, loc),
		DashboardUC: appanalytics.NewDashboardUseCase(reportRepo, loc),
		ReportUC: appanalytics.NewReportUseCase(
			reportRepo, saleRepo, productRepo, categoryRepo, settingsRepo, pdf.NewMarotoReportGenerator(), loc,
		),
		SettingsUC: usecase.NewSettingsUseCase(settingsRepo),
		PostalUC:   usecase.NewPostalUseCase(stubPostal{}),
		JWTSecret:  jwtSecret,
		JWTIssuer:  testIssuer,
	})
	return app
}

func do(t *testing.T, app *fiber.App, method, path string, body interface{}, headers ...string) (*http.Response, []byte) {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, out
}

func decode(t *testing.T, raw []byte) map[string]interface{} {
	t.Helper()
	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &m), string(raw))
	return m
}

func createProduct(t *testing.T, app *fiber.App, stock int) string {
	t.Helper()
	resp, raw := do(t, app, http.MethodPost, "/api/categories", map[string]interface{}{"name": "Bebidas " + fmt.Sprint(time.Now().UnixNano())})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(raw))
	catID := decode(t, raw)["id"].(string)

	resp, raw = do(t, app, http.MethodPost, "/api/products", map[string]interface{}{
		"name": "Café", "price": "12.50", "stock": stock, "category_id": catID,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(raw))
	return decode(t, raw)["id"].(string)
}

func productStock(t *testing.T, app *fiber.App, id string) float64 {
	t.Helper()
	resp, raw := do(t, app, http.MethodGet, "/api/products/"+id, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(raw))
	return decode(t, raw)["stock"].(float64)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestHealthYRaiz(t *testing.T) {
	app := buildApp("")

	resp, raw := do(t, app, http.MethodGet, "/health", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", decode(t, raw)["status"])

	resp, raw = do(t, app, http.MethodGet, "/api", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "test-api", decode(t, raw)["name"])
}

func TestCategorias_Duplicada(t *testing.T) {
	app := buildApp("")

	resp, _ := do(t, app, http.MethodPost, "/api/categories", map[string]interface{}{"name": "Ropa"})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp, raw := do(t, app, http.MethodPost, "/api/categories", map[string]interface{}{"name": "ropa"})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, "DUPLICATE", decode(t, raw)["code"])
}

func TestProductos_ValidacionDelCuerpo(t *testing.T) {
	app := buildApp("")

	resp, raw := do(t, app, http.MethodPost, "/api/products", map[string]interface{}{
		"name": "Sin precio", "price": "0", "category_id": "no-es-uuid",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	body := decode(t, raw)
	assert.Equal(t, "VALIDATION", body["code"])
	fields := body["fields"].(map[string]interface{})
	assert.Contains(t, fields, "price")
	assert.Contains(t, fields, "category_id")
}

func TestProductos_IDInvalido(t *testing.T) {
	app := buildApp("")
	resp, raw := do(t, app, http.MethodGet, "/api/products/123", nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", decode(t, raw)["code"])
}

func TestProductos_NoEncontrado(t *testing.T) {
	app := buildApp("")
	resp, raw := do(t, app, http.MethodGet, "/api/products/00000000-0000-0000-0000-000000000099", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", decode(t, raw)["code"])
}

func TestVentas_EscenarioStockCinco(t *testing.T) {
	app := buildApp("")
	productID := createProduct(t, app, 5)

	resp, raw := do(t, app, http.MethodPost, "/api/sales", map[string]interface{}{"product_id": productID, "quantity": 5})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(raw))
	first := decode(t, raw)
	assert.Equal(t, "62.5", first["total_value"])
	assert.Equal(t, float64(0), productStock(t, app, productID))

	resp, raw = do(t, app, http.MethodPost, "/api/sales", map[string]interface{}{"product_id": productID, "quantity": 1})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, "INSUFFICIENT_STOCK", decode(t, raw)["code"])
	assert.Equal(t, float64(0), productStock(t, app, productID))

	resp, _ = do(t, app, http.MethodDelete, "/api/sales/"+first["id"].(string), nil)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	assert.Equal(t, float64(5), productStock(t, app, productID))
}

func TestVentas_ActualizarRevalidaStock(t *testing.T) {
	app := buildApp("")
	productID := createProduct(t, app, 5)

	resp, raw := do(t, app, http.MethodPost, "/api/sales", map[string]interface{}{"product_id": productID, "quantity": 2})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	saleID := decode(t, raw)["id"].(string)

	resp, _ = do(t, app, http.MethodPut, "/api/sales/"+saleID, map[string]interface{}{"quantity": 6})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, float64(3), productStock(t, app, productID))

	resp, raw = do(t, app, http.MethodPut, "/api/sales/"+saleID, map[string]interface{}{"quantity": 5})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode, string(raw))
	assert.Equal(t, float64(0), productStock(t, app, productID))
}

func TestVentas_PrecioConMasDeDosDecimales(t *testing.T) {
	app := buildApp("")
	productID := createProduct(t, app, 5)

	resp, raw := do(t, app, http.MethodPost, "/api/sales",
		map[string]interface{}{"product_id": productID, "quantity": 3, "unit_price": "10.005"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode, string(raw))
	assert.Equal(t, "INVALID_INPUT", decode(t, raw)["code"])
	assert.Equal(t, float64(5), productStock(t, app, productID))

	resp, raw = do(t, app, http.MethodPost, "/api/sales",
		map[string]interface{}{"product_id": productID, "quantity": 3, "unit_price": "10.01"})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(raw))
	assert.Equal(t, "30.03", decode(t, raw)["total_value"])
}

func TestProductos_RenombrarConservaStock(t *testing.T) {
	app := buildApp("")
	productID := createProduct(t, app, 10)
	resp, _ := do(t, app, http.MethodPost, "/api/sales", map[string]interface{}{"product_id": productID, "quantity": 4})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp, raw := do(t, app, http.MethodPut, "/api/products/"+productID, map[string]interface{}{"name": "Renombrado"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(raw))
	assert.Equal(t, float64(6), decode(t, raw)["stock"])
	assert.Equal(t, float64(6), productStock(t, app, productID))
}

func TestVentas_ListadoConFiltros(t *testing.T) {
	app := buildApp("")
	productID := createProduct(t, app, 10)
	for _, q := range []int{1, 2} {
		resp, _ := do(t, app, http.MethodPost, "/api/sales", map[string]interface{}{"product_id": productID, "quantity": q})
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	}

	resp, raw := do(t, app, http.MethodGet, "/api/sales?product_id="+productID, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decode(t, raw)
	assert.Len(t, body["items"], 2)
	assert.Equal(t, float64(3), body["total_quantity"])

	resp, raw = do(t, app, http.MethodGet, "/api/sales?date_from=15-01-2024", nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", decode(t, raw)["code"])

	resp, _ = do(t, app, http.MethodGet, "/api/sales?date_from=2024-02-01&date_to=2024-01-01", nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestDashboard(t *testing.T) {
	app := buildApp("")

	resp, raw := do(t, app, http.MethodGet, "/api/dashboard/stats", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "N/A", decode(t, raw)["best_selling_product"])

	productID := createProduct(t, app, 3)
	resp, _ = do(t, app, http.MethodPost, "/api/sales", map[string]interface{}{"product_id": productID, "quantity": 1})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp, raw = do(t, app, http.MethodGet, "/api/dashboard/stats", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	stats := decode(t, raw)
	assert.Equal(t, "Café", stats["best_selling_product"])
	assert.Equal(t, float64(1), stats["low_stock_products"])

	for _, path := range []string{"/api/dashboard/sales-chart?days=7", "/api/dashboard/products-chart", "/api/dashboard/categories-chart"} {
		resp, _ = do(t, app, http.MethodGet, path, nil)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode, path)
	}
	resp, _ = do(t, app, http.MethodGet, "/api/dashboard/sales-chart?days=abc", nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestReportes(t *testing.T) {
	app := buildApp("")
	createProduct(t, app, 2)

	resp, raw := do(t, app, http.MethodGet, "/api/reports", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var list []map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &list))
	assert.Len(t, list, 2)

	for _, path := range []string{"/api/reports/stock/pdf?only_low=true", "/api/reports/sales/pdf?date_from=2024-01-01"} {
		resp, raw = do(t, app, http.MethodGet, path, nil)
		require.Equal(t, fiber.StatusOK, resp.StatusCode, path)
		assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
		assert.Contains(t, resp.Header.Get("Content-Disposition"), "attachment; filename=\"relatorio_")
		assert.Equal(t, "%PDF", string(raw[:4]))
	}

	resp, _ = do(t, app, http.MethodGet, "/api/reports/stock/pdf?only_low=talvez", nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestSettings(t *testing.T) {
	app := buildApp("")

	resp, raw := do(t, app, http.MethodGet, "/api/settings", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, entity.DefaultCompanyName, decode(t, raw)["company_name"])

	resp, raw = do(t, app, http.MethodPut, "/api/settings", map[string]interface{}{
		"company_name": "Loja", "postal_code": "01310100", "street": "Av. Paulista",
		"city": "São Paulo", "state": "sp", "tax_id": "11222333000181",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(raw))
	body := decode(t, raw)
	assert.Equal(t, "01310-100", body["postal_code"])
	assert.Equal(t, "SP", body["state"])
	assert.Equal(t, "11.222.333/0001-81", body["tax_id"])

	resp, raw = do(t, app, http.MethodPut, "/api/settings", map[string]interface{}{
		"company_name": "Loja", "postal_code": "0131", "street": "X", "city": "Y", "state": "SP",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_INPUT", decode(t, raw)["code"])

	resp, _ = do(t, app, http.MethodPut, "/api/settings", map[string]interface{}{"company_name": "Loja"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestPostalCodes(t *testing.T) {
	app := buildApp("")

	cases := []struct {
		path   string
		status int
	}{
		{"/api/postal-codes/01310-100", fiber.StatusOK},
		{"/api/postal-codes/123", fiber.StatusBadRequest},
		{"/api/postal-codes/99999999", fiber.StatusNotFound},
		{"/api/postal-codes/88888888", fiber.StatusBadGateway},
	}
	for _, tc := range cases {
		resp, _ := do(t, app, http.MethodGet, tc.path, nil)
		assert.Equal(t, tc.status, resp.StatusCode, tc.path)
	}

	resp, raw := do(t, app, http.MethodGet, "/api/postal-codes/health", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", decode(t, raw)["status"])
}
