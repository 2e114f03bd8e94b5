package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/ecommerce-dashboard-api/internal/domain/entity"
	"github.com/jhoicas/ecommerce-dashboard-api/internal/domain/repository"
)

var _ repository.SettingsRepository = (*SettingsRepo)(nil)

// SettingsRepo persiste la fila única (id = 1) de store_settings.
type SettingsRepo struct {
	q Querier
}

// NewSettingsRepository construye el adaptador.
func NewSettingsRepository(q Querier) *SettingsRepo {
	return &SettingsRepo{q: q}
}

func (r *SettingsRepo) Get(ctx context.Context) (*entity.StoreSettings, error) {
	query := `
		SELECT company_name, tax_id, postal_code, street, number, complement, district,
		       city, state, phone, email, updated_at
		FROM store_settings WHERE id = $1`
	var s entity.StoreSettings
	err := r.q.QueryRow(ctx, query, entity.StoreSettingsID).Scan(
		&s.CompanyName, &s.TaxID, &s.PostalCode, &s.Street, &s.Number, &s.Complement, &s.District,
		&s.City, &s.State, &s.Phone, &s.Email, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get store settings: %w", err)
	}
	return &s, nil
}

// Save inserta o reemplaza la configuración (upsert sobre id = 1).
func (r *SettingsRepo) Save(ctx context.Context, s *entity.StoreSettings) error {
	query := `
		INSERT INTO store_settings (id, company_name, tax_id, postal_code, street, number, complement,
		                            district, city, state, phone, email, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (id) DO UPDATE SET
		    company_name = EXCLUDED.company_name, tax_id = EXCLUDED.tax_id,
		    postal_code = EXCLUDED.postal_code, street = EXCLUDED.street, number = EXCLUDED.number,
		    complement = EXCLUDED.complement, district = EXCLUDED.district, city = EXCLUDED.city,
		    state = EXCLUDED.state, phone = EXCLUDED.phone, email = EXCLUDED.email,
		    updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(ctx, query,
		entity.StoreSettingsID, s.CompanyName, s.TaxID, s.PostalCode, s.Street, s.Number, s.Complement,
		s.District, s.City, s.State, s.Phone, s.Email, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("save store settings: %w", err)
	}
	return nil
}
