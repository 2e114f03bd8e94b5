package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/ecommerce-dashboard-api/internal/application/dto"
	"github.com/jhoicas/ecommerce-dashboard-api/internal/application/ports"
	"github.com/jhoicas/ecommerce-dashboard-api/internal/domain/entity"
)

// HealthCheckPostalCode CEP conocido usado para verificar el servicio (Av. Paulista, São Paulo).
const HealthCheckPostalCode = "01310-100"

const postalLookupTimeout = 10 * time.Second

// PostalUseCase consulta de direcciones por CEP.
type PostalUseCase struct {
	lookup ports.PostalCodeLookup
	now    func() time.Time
}

// NewPostalUseCase construye el caso de uso.
func NewPostalUseCase(lookup ports.PostalCodeLookup) *PostalUseCase {
	return &PostalUseCase{lookup: lookup, now: time.Now}
}

// Lookup devuelve la dirección del CEP.
func (uc *PostalUseCase) Lookup(ctx context.Context, cep string) (*dto.AddressResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, postalLookupTimeout)
	defer cancel()

	addr, err := uc.lookup.Lookup(ctx, cep)
	if err != nil {
		return nil, err
	}
	return toAddressResponse(addr), nil
}

// Health consulta un CEP conocido e informa estado y latencia. Nunca devuelve error.
func (uc *PostalUseCase) Health(ctx context.Context) dto.PostalHealthResponse {
	out := dto.PostalHealthResponse{Status: "ok", PostalCode: HealthCheckPostalCode}
	start := uc.now()
	addr, err := uc.Lookup(ctx, HealthCheckPostalCode)
	out.LatencyMS = uc.now().Sub(start).Milliseconds()
	if err != nil {
		out.Status = "error"
		out.Error = err.Error()
		return out
	}
	out.Address = addr
	return out
}

func toAddressResponse(a *entity.Address) *dto.AddressResponse {
	return &dto.AddressResponse{
		PostalCode: a.PostalCode,
		Street:     a.Street,
		Complement: a.Complement,
		District:   a.District,
		City:       a.City,
		State:      a.State,
		IBGECode:   a.IBGECode,
	}
}
