package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/boutique-api/internal/application/ports"
	"github.com/jhoicas/boutique-api/internal/domain"
	"github.com/jhoicas/boutique-api/internal/domain/entity"
	"github.com/jhoicas/boutique-api/internal/domain/inventory"
	"github.com/jhoicas/boutique-api/pkg/logger"
)

// RecordPurchaseUseCase registra entradas de mercancía con costo promedio ponderado,
// bloqueando la fila de la variante (SELECT FOR UPDATE) dentro de una sola transacción.
type RecordPurchaseUseCase struct {
	txRunner ports.TxRunner
	metrics  ports.Metrics
	log      *logger.Logger
}

// NewRecordPurchaseUseCase construye el caso de uso.
func NewRecordPurchaseUseCase(txRunner ports.TxRunner, metrics ports.Metrics, log *logger.Logger) *RecordPurchaseUseCase {
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	return &RecordPurchaseUseCase{txRunner: txRunner, metrics: metrics, log: log.Component("inventory")}
}

// PurchaseInput entrada de una compra manual.
type PurchaseInput struct {
	VariantID       string
	Quantity        int
	UnitCost        decimal.Decimal
	Description     string
	RegisterExpense bool // si true, se registra el egreso de caja (categoría inventory)
}

// PurchaseResult estado resultante de la compra.
type PurchaseResult struct {
	Variant *entity.Variant
	Log     *entity.InventoryLogEntry
	Expense *entity.FinanceEntry // nil si no se registró egreso
}

// RecordPurchase bloquea la variante, recalcula el costo promedio, agrega el movimiento al libro,
// actualiza stock/costo y, si corresponde, registra el egreso. Todo o nada.
func (uc *RecordPurchaseUseCase) RecordPurchase(ctx context.Context, in PurchaseInput) (*PurchaseResult, error) {
	if in.VariantID == "" || in.Quantity <= 0 || in.UnitCost.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidQuantity
	}
	now := time.Now().UTC()

	var res *PurchaseResult
	err := uc.txRunner.Run(ctx, func(r ports.Repos) error {
		v, err := r.Variants.GetForUpdate(ctx, in.VariantID)
		if err != nil {
			return err
		}
		if v == nil {
			return domain.ErrVariantNotFound
		}

		newCost := inventory.CostCalculator(v.Stock, v.UnitCost, in.Quantity, in.UnitCost)

		desc := in.Description
		if desc == "" {
			desc = "Compra de mercancía"
		}
		entry := entity.NewInventoryLogEntry(v, entity.LogKindPurchase, in.Quantity, in.UnitCost, desc, "", now)
		entry.ID = uuid.New().String()
		if err := r.InventoryLogs.Create(ctx, entry); err != nil {
			return err
		}

		newStock := v.Stock + in.Quantity
		if err := r.Variants.UpdateStockAndCost(ctx, v.ID, newStock, newCost); err != nil {
			return err
		}
		v.Stock = newStock
		v.UnitCost = newCost
		v.UpdatedAt = now

		res = &PurchaseResult{Variant: v, Log: entry}

		total := entry.TotalValue
		if in.RegisterExpense && total.GreaterThan(decimal.Zero) {
			logID := entry.ID
			expense := &entity.FinanceEntry{
				ID:          uuid.New().String(),
				Type:        entity.FinanceTypeExpense,
				Category:    entity.FinanceCategoryInventory,
				Amount:      total,
				Date:        now,
				Source:      entity.FinanceSourceSystemPurchase,
				RelatedID:   &logID,
				Description: fmt.Sprintf("Compra %s x%d", v.SKU, in.Quantity),
				CreatedAt:   now,
			}
			if err := r.Finance.Create(ctx, expense); err != nil {
				return err
			}
			res.Expense = expense
		}
		return nil
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("variant_id", in.VariantID).Int("qty", in.Quantity).Msg("compra rechazada")
		return nil, err
	}

	uc.metrics.InventoryPurchase()
	uc.log.Info().
		Str("variant_id", in.VariantID).
		Int("qty", in.Quantity).
		Str("unit_cost", in.UnitCost.String()).
		Str("new_avg_cost", res.Variant.UnitCost.String()).
		Msg("compra registrada")
	return res, nil
}

// ReversePurchase deshace una compra registrada sin egreso de caja. Las compras con egreso
// se reversan desde el libro de caja (ReverseTransaction) para que el egreso quede anulado también.
func (uc *RecordPurchaseUseCase) ReversePurchase(ctx context.Context, logID string) (*entity.Variant, error) {
	if logID == "" {
		return nil, domain.ErrEntryNotFound
	}
	now := time.Now().UTC()

	var v *entity.Variant
	err := uc.txRunner.Run(ctx, func(r ports.Repos) error {
		hasExpense, err := r.Finance.ExistsActive(ctx, entity.FinanceSourceSystemPurchase, logID)
		if err != nil {
			return err
		}
		if hasExpense {
			return domain.ErrPurchaseHasExpense
		}
		v, err = uc.ReversePurchaseInTx(ctx, r, logID, now)
		return err
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("log_id", logID).Msg("reverso de compra rechazado")
		return nil, err
	}
	uc.log.Info().Str("log_id", logID).Str("variant_id", v.ID).Str("unit_cost", v.UnitCost.String()).Msg("compra reversada")
	return v, nil
}

// ReversePurchaseInTx deshace una compra dentro de la transacción del llamador.
// Requiere que las unidades sigan libres (stock - qty >= reserved). Si después de la compra no hubo
// otra compra ni otro reverso de compra restaura el costo previo exacto; si no, deshace el promedio
// con la fórmula inversa. Agrega un movimiento de ajuste compensatorio (-qty).
func (uc *RecordPurchaseUseCase) ReversePurchaseInTx(ctx context.Context, r ports.Repos, logID string, now time.Time) (*entity.Variant, error) {
	purchase, err := r.InventoryLogs.GetByID(ctx, logID)
	if err != nil {
		return nil, err
	}
	if purchase == nil || purchase.Kind != entity.LogKindPurchase {
		return nil, domain.ErrEntryNotFound
	}

	v, err := r.Variants.GetForUpdate(ctx, purchase.VariantID)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, domain.ErrVariantNotFound
	}

	newStock := v.Stock - purchase.Quantity
	if newStock < v.Reserved {
		return nil, domain.ErrInsufficientStock
	}

	reversed, err := r.InventoryLogs.IsReversed(ctx, purchase.ID)
	if err != nil {
		return nil, err
	}
	if reversed {
		return nil, domain.ErrEntryNotFound
	}

	changed, err := r.InventoryLogs.CostChangedAfter(ctx, v.ID, purchase.ID)
	if err != nil {
		return nil, err
	}
	newCost := purchase.PrevUnitCost
	if changed {
		newCost = inventory.ReverseCost(v.Stock, v.UnitCost, purchase.Quantity, purchase.UnitCost)
	}

	adj := entity.NewInventoryLogEntry(v, entity.LogKindAdjustment, -purchase.Quantity, purchase.UnitCost,
		"Reverso de compra", purchase.ID, now)
	adj.ID = uuid.New().String()
	if err := r.InventoryLogs.Create(ctx, adj); err != nil {
		return nil, err
	}
	if err := r.Variants.UpdateStockAndCost(ctx, v.ID, newStock, newCost); err != nil {
		return nil, err
	}
	v.Stock = newStock
	v.UnitCost = newCost
	v.UpdatedAt = now
	return v, nil
}
