package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/ecommerce-dashboard-api/internal/application/ports"
	"github.com/jhoicas/ecommerce-dashboard-api/internal/domain/entity"
	"github.com/jhoicas/ecommerce-dashboard-api/internal/infrastructure/metrics"
	"github.com/jhoicas/ecommerce-dashboard-api/pkg/br"
)

// DefaultPostalTTL vigencia de una dirección cacheada.
const DefaultPostalTTL = 24 * time.Hour

const postalKeyPrefix = "postal:cep:"

// PostalObserver recibe el resultado de cada consulta (hit | miss | error).
type PostalObserver interface {
	ObservePostal(result string)
}

type noopPostalObserver struct{}

func (noopPostalObserver) ObservePostal(string) {}

// PostalCache decorador cache-aside de ports.PostalCodeLookup.
// Solo se cachean consultas exitosas; si Redis falla se consulta directamente el servicio.
type PostalCache struct {
	next     ports.PostalCodeLookup
	rdb      redis.UniversalClient
	ttl      time.Duration
	observer PostalObserver
}

var _ ports.PostalCodeLookup = (*PostalCache)(nil)

// NewPostalCache envuelve next. observer puede ser nil.
func NewPostalCache(next ports.PostalCodeLookup, rdb redis.UniversalClient, ttl time.Duration, observer PostalObserver) *PostalCache {
	if ttl <= 0 {
		ttl = DefaultPostalTTL
	}
	if observer == nil {
		observer = noopPostalObserver{}
	}
	return &PostalCache{next: next, rdb: rdb, ttl: ttl, observer: observer}
}

type cachedAddress struct {
	PostalCode string `json:"postal_code"`
	Street     string `json:"street"`
	Complement string `json:"complement"`
	District   string `json:"district"`
	City       string `json:"city"`
	State      string `json:"state"`
	IBGECode   string `json:"ibge_code"`
}

// Lookup devuelve la dirección cacheada o consulta el adaptador envuelto.
func (c *PostalCache) Lookup(ctx context.Context, cep string) (*entity.Address, error) {
	digits, err := br.CEPDigits(cep)
	if err != nil {
		// el adaptador envuelto produce el error de validación
		return c.next.Lookup(ctx, cep)
	}
	key := postalKeyPrefix + digits

	raw, err := c.rdb.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var ca cachedAddress
		if jsonErr := json.Unmarshal(raw, &ca); jsonErr == nil {
			c.observer.ObservePostal(metrics.PostalHit)
			return &entity.Address{
				PostalCode: ca.PostalCode,
				Street:     ca.Street,
				Complement: ca.Complement,
				District:   ca.District,
				City:       ca.City,
				State:      ca.State,
				IBGECode:   ca.IBGECode,
			}, nil
		}
		log.Warn().Str("key", key).Msg("caché CEP: entrada corrupta, se descarta")
		c.observer.ObservePostal(metrics.PostalMiss)
	case errors.Is(err, redis.Nil):
		c.observer.ObservePostal(metrics.PostalMiss)
	default:
		log.Warn().Err(err).Msg("caché CEP: redis no disponible")
		c.observer.ObservePostal(metrics.PostalError)
	}

	addr, err := c.next.Lookup(ctx, cep)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(cachedAddress{
		PostalCode: addr.PostalCode,
		Street:     addr.Street,
		Complement: addr.Complement,
		District:   addr.District,
		City:       addr.City,
		State:      addr.State,
		IBGECode:   addr.IBGECode,
	})
	if err == nil {
		if setErr := c.rdb.Set(ctx, key, payload, c.ttl).Err(); setErr != nil {
			log.Warn().Err(setErr).Msg("caché CEP: no se pudo guardar")
		}
	}
	return addr, nil
}
