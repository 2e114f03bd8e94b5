// Package viacep implementa la consulta de direcciones por CEP contra el servicio ViaCEP.
package viacep

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jhoicas/ecommerce-dashboard-api/internal/application/ports"
	"github.com/jhoicas/ecommerce-dashboard-api/internal/domain"
	"github.com/jhoicas/ecommerce-dashboard-api/internal/domain/entity"
	"github.com/jhoicas/ecommerce-dashboard-api/pkg/br"
)

// Verificar en tiempo de compilación que Client implementa PostalCodeLookup.
var _ ports.PostalCodeLookup = (*Client)(nil)

const (
	// DefaultBaseURL raíz del servicio público; la consulta es {base}/ws/{cep}/json/.
	DefaultBaseURL = "https://viacep.com.br"
	DefaultTimeout = 10 * time.Second
)

// Client adaptador HTTP del servicio ViaCEP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient construye el cliente. baseURL vacío usa el servicio público.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// viaCEPResponse cuerpo de la respuesta. "erro" llega como booleano o como string "true".
type viaCEPResponse struct {
	CEP         string          `json:"cep"`
	Logradouro  string          `json:"logradouro"`
	Complemento string          `json:"complemento"`
	Bairro      string          `json:"bairro"`
	Localidade  string          `json:"localidade"`
	UF          string          `json:"uf"`
	IBGE        string          `json:"ibge"`
	Erro        json.RawMessage `json:"erro"`
}

func (r *viaCEPResponse) notFound() bool {
	v := strings.Trim(strings.TrimSpace(string(r.Erro)), `"`)
	return v == "true"
}

// Lookup consulta la dirección del CEP (con o sin guion).
func (c *Client) Lookup(ctx context.Context, cep string) (*entity.Address, error) {
	digits, err := br.CEPDigits(cep)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	url := fmt.Sprintf("%s/ws/%s/json/", c.baseURL, digits)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("viacep: crear HTTP request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%w: viacep: timeout o cancelación: %v", domain.ErrUpstream, ctx.Err())
		}
		return nil, fmt.Errorf("%w: viacep: llamada HTTP fallida: %v", domain.ErrUpstream, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 16*1024))
	if err != nil {
		return nil, fmt.Errorf("%w: viacep: leer respuesta: %v", domain.ErrUpstream, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: viacep: HTTP %d", domain.ErrUpstream, resp.StatusCode)
	}

	var body viaCEPResponse
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, fmt.Errorf("%w: viacep: respuesta no es JSON válido: %v", domain.ErrUpstream, err)
	}
	if body.notFound() {
		return nil, fmt.Errorf("%w: CEP %s", domain.ErrNotFound, digits)
	}

	postal := body.CEP
	if postal == "" {
		postal, _ = br.NormalizeCEP(digits)
	}
	return &entity.Address{
		PostalCode: postal,
		Street:     body.Logradouro,
		Complement: body.Complemento,
		District:   body.Bairro,
		City:       body.Localidade,
		State:      body.UF,
		IBGECode:   body.IBGE,
	}, nil
}
