package viacep_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ecommerce-dashboard-api/internal/domain"
	"github.com/jhoicas/ecommerce-dashboard-api/internal/infrastructure/viacep"
)

func newServer(t *testing.T, handler http.HandlerFunc) *viacep.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return viacep.NewClient(srv.URL, 2*time.Second)
}

func TestLookup_OK(t *testing.T) {
	var path string
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"cep":"01310-100","logradouro":"Avenida Paulista","complemento":"de 612 a 1510 - lado par",
			"bairro":"Bela Vista","localidade":"São Paulo","uf":"SP","ibge":"3550308"}`))
	})

	addr, err := c.Lookup(context.Background(), "01310-100")
	require.NoError(t, err)
	assert.Equal(t, "/ws/01310100/json/", path)
	assert.Equal(t, "01310-100", addr.PostalCode)
	assert.Equal(t, "Avenida Paulista", addr.Street)
	assert.Equal(t, "Bela Vista", addr.District)
	assert.Equal(t, "São Paulo", addr.City)
	assert.Equal(t, "SP", addr.State)
	assert.Equal(t, "3550308", addr.IBGECode)
}

func TestLookup_CEPInvalidoNoLlamaAlServicio(t *testing.T) {
	var calls int32
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	})

	_, err := c.Lookup(context.Background(), "1234")
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
}

func TestLookup_NoEncontrado(t *testing.T) {
	for _, body := range []string{`{"erro": true}`, `{"erro": "true"}`} {
		c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(body))
		})
		_, err := c.Lookup(context.Background(), "99999999")
		assert.True(t, errors.Is(err, domain.ErrNotFound), body)
	}
}

func TestLookup_FallosDelServicio(t *testing.T) {
	cases := map[string]http.HandlerFunc{
		"http 500": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		},
		"json inválido": func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`<html>`))
		},
		"timeout": func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(300 * time.Millisecond)
		},
	}
	for name, h := range cases {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(h)
			defer srv.Close()
			c := viacep.NewClient(srv.URL, 100*time.Millisecond)

			_, err := c.Lookup(context.Background(), "01310100")
			assert.True(t, errors.Is(err, domain.ErrUpstream), err)
		})
	}
}
