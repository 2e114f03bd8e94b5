package memory

import (
	"context"

	"github.com/jhoicas/ecommerce-dashboard-api/internal/domain/entity"
	"github.com/jhoicas/ecommerce-dashboard-api/internal/domain/repository"
)

var _ repository.SettingsRepository = (*SettingsRepo)(nil)

// SettingsRepo implementación en memoria de SettingsRepository.
type SettingsRepo struct {
	s *Store
}

// NewSettingsRepository construye el repositorio.
func NewSettingsRepository(s *Store) *SettingsRepo {
	return &SettingsRepo{s: s}
}

func (r *SettingsRepo) Get(_ context.Context) (*entity.StoreSettings, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if r.s.settings == nil {
		return nil, nil
	}
	cp := *r.s.settings
	return &cp, nil
}

func (r *SettingsRepo) Save(_ context.Context, settings *entity.StoreSettings) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *settings
	r.s.settings = &cp
	return nil
}
