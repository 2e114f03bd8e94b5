package repository

import (
	"context"

	"github.com/jhoicas/ecommerce-dashboard-api/internal/domain/entity"
)

// SettingsRepository persiste el registro único de configuración de la tienda.
// Get devuelve (nil, nil) si todavía no existe.
type SettingsRepository interface {
	Get(ctx context.Context) (*entity.StoreSettings, error)
	Save(ctx context.Context, settings *entity.StoreSettings) error
}
