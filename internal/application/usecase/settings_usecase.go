package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/ecommerce-dashboard-api/internal/application/dto"
	"github.com/jhoicas/ecommerce-dashboard-api/internal/domain"
	"github.com/jhoicas/ecommerce-dashboard-api/internal/domain/entity"
	"github.com/jhoicas/ecommerce-dashboard-api/internal/domain/repository"
	"github.com/jhoicas/ecommerce-dashboard-api/pkg/br"
)

// SettingsUseCase lee y actualiza la configuración única de la tienda.
type SettingsUseCase struct {
	repo repository.SettingsRepository
}

// NewSettingsUseCase construye el caso de uso.
func NewSettingsUseCase(repo repository.SettingsRepository) *SettingsUseCase {
	return &SettingsUseCase{repo: repo}
}

// Current devuelve la configuración; si no existe la crea con valores por defecto.
func (uc *SettingsUseCase) Current(ctx context.Context) (*entity.StoreSettings, error) {
	settings, err := uc.repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if settings != nil {
		return settings, nil
	}
	settings = entity.NewDefaultStoreSettings(time.Now())
	if err := uc.repo.Save(ctx, settings); err != nil {
		return nil, err
	}
	return settings, nil
}

// Get devuelve la configuración como DTO.
func (uc *SettingsUseCase) Get(ctx context.Context) (*dto.SettingsResponse, error) {
	settings, err := uc.Current(ctx)
	if err != nil {
		return nil, err
	}
	return toSettingsResponse(settings), nil
}

// Update reemplaza la configuración. CEP y CNPJ se guardan con máscara y la UF en mayúsculas.
func (uc *SettingsUseCase) Update(ctx context.Context, in dto.UpdateSettingsRequest) (*dto.SettingsResponse, error) {
	required := map[string]string{
		"company_name": in.CompanyName,
		"postal_code":  in.PostalCode,
		"street":       in.Street,
		"city":         in.City,
		"state":        in.State,
	}
	for field, value := range required {
		if strings.TrimSpace(value) == "" {
			return nil, fmt.Errorf("%w: el campo %s es obligatorio", domain.ErrInvalidInput, field)
		}
	}
	cep, err := br.NormalizeCEP(in.PostalCode)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	uf, err := br.NormalizeUF(in.State)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	var cnpj string
	if strings.TrimSpace(in.TaxID) != "" {
		if cnpj, err = br.NormalizeCNPJ(in.TaxID); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
	}
	settings := &entity.StoreSettings{
		CompanyName: strings.TrimSpace(in.CompanyName),
		TaxID:       cnpj,
		PostalCode:  cep,
		Street:      strings.TrimSpace(in.Street),
		Number:      strings.TrimSpace(in.Number),
		Complement:  strings.TrimSpace(in.Complement),
		District:    strings.TrimSpace(in.District),
		City:        strings.TrimSpace(in.City),
		State:       uf,
		Phone:       strings.TrimSpace(in.Phone),
		Email:       strings.TrimSpace(in.Email),
		UpdatedAt:   time.Now(),
	}
	if err := uc.repo.Save(ctx, settings); err != nil {
		return nil, err
	}
	return toSettingsResponse(settings), nil
}

func toSettingsResponse(s *entity.StoreSettings) *dto.SettingsResponse {
	return &dto.SettingsResponse{
		CompanyName: s.CompanyName,
		TaxID:       s.TaxID,
		PostalCode:  s.PostalCode,
		Street:      s.Street,
		Number:      s.Number,
		Complement:  s.Complement,
		District:    s.District,
		City:        s.City,
		State:       s.State,
		Phone:       s.Phone,
		Email:       s.Email,
		UpdatedAt:   s.UpdatedAt,
	}
}
