package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/boutique-api/internal/domain/entity"
)

// VariantRepository define el puerto de persistencia para variantes.
// Reserve, ConfirmDeduction, Release y Restore son atómicos por sí mismos (una sola sentencia con guarda)
// y devuelven la variante ya actualizada.
type VariantRepository interface {
	Create(ctx context.Context, v *entity.Variant) error
	GetByID(ctx context.Context, id string) (*entity.Variant, error)
	// GetForUpdate bloquea la fila hasta el fin de la transacción (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.Variant, error)
	ListByProduct(ctx context.Context, productID string) ([]*entity.Variant, error)
	ListByIDs(ctx context.Context, ids []string) (map[string]*entity.Variant, error)

	Reserve(ctx context.Context, id string, qty int) (*entity.Variant, error)
	ConfirmDeduction(ctx context.Context, id string, qty int) (*entity.Variant, error)
	Release(ctx context.Context, id string, qty int) (*entity.Variant, error)
	Restore(ctx context.Context, id string, qty int) (*entity.Variant, error)

	// UpdateStockAndCost fija stock y costo promedio (libro de costos, fila ya bloqueada).
	UpdateStockAndCost(ctx context.Context, id string, stock int, unitCost decimal.Decimal) error
}
