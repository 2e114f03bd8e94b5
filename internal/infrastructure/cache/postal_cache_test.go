package cache_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ecommerce-dashboard-api/internal/domain"
	"github.com/jhoicas/ecommerce-dashboard-api/internal/domain/entity"
	"github.com/jhoicas/ecommerce-dashboard-api/internal/infrastructure/cache"
)

// fakeLookup cuenta las llamadas al adaptador envuelto.
type fakeLookup struct {
	calls int
	err   error
}

func (f *fakeLookup) Lookup(_ context.Context, cep string) (*entity.Address, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &entity.Address{PostalCode: "01310-100", City: "São Paulo", State: "SP"}, nil
}

type recorder struct{ results []string }

func (r *recorder) ObservePostal(result string) { r.results = append(r.results, result) }

// unreachableRedis apunta a un puerto cerrado: toda operación falla de inmediato.
func unreachableRedis(t *testing.T) *redis.Client {
	t.Helper()
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 200 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = rdb.Close() })
	return rdb
}

func TestPostalCache_RedisCaidoConsultaElServicio(t *testing.T) {
	inner := &fakeLookup{}
	rec := &recorder{}
	c := cache.NewPostalCache(inner, unreachableRedis(t), time.Hour, rec)

	addr, err := c.Lookup(context.Background(), "01310-100")
	require.NoError(t, err)
	assert.Equal(t, "São Paulo", addr.City)
	assert.Equal(t, 1, inner.calls)
	assert.Equal(t, []string{"error"}, rec.results)
}

func TestPostalCache_CEPInvalidoDelegaSinRedis(t *testing.T) {
	inner := &fakeLookup{err: fmt.Errorf("%w: cep", domain.ErrInvalidInput)}
	rec := &recorder{}
	c := cache.NewPostalCache(inner, unreachableRedis(t), 0, rec)

	_, err := c.Lookup(context.Background(), "12")
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	assert.Empty(t, rec.results)
}

func TestPostalCache_ErrorDelServicioSePropaga(t *testing.T) {
	inner := &fakeLookup{err: fmt.Errorf("%w: cep", domain.ErrNotFound)}
	c := cache.NewPostalCache(inner, unreachableRedis(t), 0, nil)

	_, err := c.Lookup(context.Background(), "99999-999")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
