package ports

import (
	"context"

	"github.com/jhoicas/ecommerce-dashboard-api/internal/domain/entity"
)

// PostalCodeLookup define el puerto de salida para la consulta de direcciones por CEP.
// Adaptadores: cliente ViaCEP y decorador de caché Redis.
// Errores esperados: domain.ErrInvalidInput (CEP mal formado), domain.ErrNotFound
// (CEP inexistente) y domain.ErrUpstream (servicio externo caído o respuesta inválida).
// El contexto debe llevar un timeout para evitar bloqueos en llamadas externas.
type PostalCodeLookup interface {
	Lookup(ctx context.Context, cep string) (*entity.Address, error)
}
