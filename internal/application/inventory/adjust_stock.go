package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/boutique-api/internal/application/ports"
	"github.com/jhoicas/boutique-api/internal/domain"
	"github.com/jhoicas/boutique-api/internal/domain/entity"
	"github.com/jhoicas/boutique-api/pkg/logger"
)

const defaultLogPageSize = 50

// AdjustStockUseCase correcciones manuales de stock (mermas, conteos) y consulta del libro.
type AdjustStockUseCase struct {
	txRunner ports.TxRunner
	repos    ports.Repos
	log      *logger.Logger
}

// NewAdjustStockUseCase construye el caso de uso. repos se usa solo para lecturas fuera de transacción.
func NewAdjustStockUseCase(txRunner ports.TxRunner, repos ports.Repos, log *logger.Logger) *AdjustStockUseCase {
	return &AdjustStockUseCase{txRunner: txRunner, repos: repos, log: log.Component("inventory")}
}

// AdjustStock suma delta (con signo) al stock sin cambiar el costo promedio. El stock resultante
// no puede quedar por debajo de lo reservado.
func (uc *AdjustStockUseCase) AdjustStock(ctx context.Context, variantID string, delta int, reason string) (*entity.Variant, error) {
	if variantID == "" || delta == 0 {
		return nil, domain.ErrInvalidQuantity
	}
	now := time.Now().UTC()

	var out *entity.Variant
	err := uc.txRunner.Run(ctx, func(r ports.Repos) error {
		v, err := r.Variants.GetForUpdate(ctx, variantID)
		if err != nil {
			return err
		}
		if v == nil {
			return domain.ErrVariantNotFound
		}
		newStock := v.Stock + delta
		if newStock < 0 || newStock < v.Reserved {
			return domain.ErrInsufficientStock
		}
		if reason == "" {
			reason = "Ajuste manual"
		}
		entry := entity.NewInventoryLogEntry(v, entity.LogKindAdjustment, delta, v.UnitCost, reason, "", now)
		entry.ID = uuid.New().String()
		if err := r.InventoryLogs.Create(ctx, entry); err != nil {
			return err
		}
		if err := r.Variants.UpdateStockAndCost(ctx, v.ID, newStock, v.UnitCost); err != nil {
			return err
		}
		v.Stock = newStock
		v.UpdatedAt = now
		out = v
		return nil
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("variant_id", variantID).Int("delta", delta).Msg("ajuste rechazado")
		return nil, err
	}
	uc.log.Info().Str("variant_id", variantID).Int("delta", delta).Int("stock", out.Stock).Msg("ajuste de stock")
	return out, nil
}

// ListLogs devuelve los movimientos de una variante, del más reciente al más antiguo.
func (uc *AdjustStockUseCase) ListLogs(ctx context.Context, variantID string, limit, offset int) ([]*entity.InventoryLogEntry, error) {
	v, err := uc.repos.Variants.GetByID(ctx, variantID)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, domain.ErrVariantNotFound
	}
	if limit <= 0 {
		limit = defaultLogPageSize
	}
	return uc.repos.InventoryLogs.ListByVariant(ctx, variantID, limit, offset)
}
