package ports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/boutique-api/internal/domain/entity"
)

// SettingsProvider expone los ajustes de la tienda ya validados.
type SettingsProvider interface {
	Get(ctx context.Context) (*entity.StoreSettings, error)
	ShippingFee(ctx context.Context) (decimal.Decimal, error)
	FreeShippingThreshold(ctx context.Context) (decimal.Decimal, error)
	VATRate(ctx context.Context) (decimal.Decimal, error)
}

// SettingsCache caché de lectura de los ajustes (Redis o no-op).
type SettingsCache interface {
	// Get devuelve nil, nil si no hay valor en caché.
	Get(ctx context.Context) (*entity.StoreSettings, error)
	Set(ctx context.Context, s *entity.StoreSettings, ttl time.Duration) error
	Invalidate(ctx context.Context) error
}
