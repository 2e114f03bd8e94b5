package http_test

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/ecommerce-dashboard-api/pkg/jwt"
)

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testIssuer    = "ecommerce-dashboard-test"
	testOperator  = "operador@tienda"
)

func bearer(t *testing.T, secret string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(secret, testOperator, testIssuer, 60)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

var newCategory = map[string]interface{}{"name": "Protegida"}

// Sin secret la API queda abierta.
func TestAuth_SinSecretAPIAbierta(t *testing.T) {
	app := buildApp("")
	resp, _ := do(t, app, http.MethodPost, "/api/categories", newCategory)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
}

// Las lecturas nunca requieren token.
func TestAuth_LecturasSinToken(t *testing.T) {
	app := buildApp(testJWTSecret)
	resp, _ := do(t, app, http.MethodGet, "/api/categories", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestAuth_EscrituraSinToken(t *testing.T) {
	app := buildApp(testJWTSecret)
	resp, raw := do(t, app, http.MethodPost, "/api/categories", newCategory)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "MISSING_TOKEN", decode(t, raw)["code"])
}

func TestAuth_TokensInvalidos(t *testing.T) {
	app := buildApp(testJWTSecret)
	cases := map[string]string{
		"sin prefijo Bearer": "Token abc",
		"firma incorrecta":   bearer(t, "otro-secreto"),
		"basura":             "Bearer no.es.jwt",
	}
	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			resp, raw := do(t, app, http.MethodPost, "/api/categories", newCategory, "Authorization", header)
			assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
			assert.Equal(t, "INVALID_TOKEN", decode(t, raw)["code"])
		})
	}
}

func TestAuth_TokenValido(t *testing.T) {
	app := buildApp(testJWTSecret)
	resp, raw := do(t, app, http.MethodPost, "/api/categories", newCategory, "Authorization", bearer(t, testJWTSecret))
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode, string(raw))
}
