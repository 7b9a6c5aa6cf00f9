package repository

import (
	"context"

	"github.com/jhoicas/boutique-api/internal/domain/entity"
)

// InventoryLogRepository puerto del libro de movimientos de inventario (solo inserción).
type InventoryLogRepository interface {
	Create(ctx context.Context, e *entity.InventoryLogEntry) error
	GetByID(ctx context.Context, id string) (*entity.InventoryLogEntry, error)
	// CostChangedAfter indica si después del movimiento logID hubo otro que movió el costo promedio
	// de la variante: una compra o el reverso de una compra.
	CostChangedAfter(ctx context.Context, variantID, logID string) (bool, error)
	// IsReversed indica si ya existe el ajuste compensatorio de la compra purchaseID.
	IsReversed(ctx context.Context, purchaseID string) (bool, error)
	ListByVariant(ctx context.Context, variantID string, limit, offset int) ([]*entity.InventoryLogEntry, error)
}
