package repository

import (
	"context"

	"github.com/jhoicas/boutique-api/internal/domain/entity"
)

// SettingsRepository persiste la fila única de ajustes de la tienda.
type SettingsRepository interface {
	// Get devuelve nil, nil si aún no hay ajustes guardados.
	Get(ctx context.Context) (*entity.StoreSettings, error)
	Upsert(ctx context.Context, s *entity.StoreSettings) error
}
