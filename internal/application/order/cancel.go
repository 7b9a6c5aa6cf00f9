package order

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/boutique-api/internal/application/ports"
	"github.com/jhoicas/boutique-api/internal/domain"
	"github.com/jhoicas/boutique-api/internal/domain/entity"
)

// CancelOrder cancela un pedido por decisión del operador.
// Pendiente: libera las reservas (no hubo cobro). Pagado o posterior: devuelve las unidades al stock,
// registra los reingresos en el libro de inventario y un egreso de reembolso por el total del pedido.
func (s *Service) CancelOrder(ctx context.Context, orderID, reason string) (*entity.Order, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		reason = "cancelled_by_operator"
	}
	o, _, err := s.apply(ctx, orderID, "cancel", func(ctx context.Context, r ports.Repos, o *entity.Order, now time.Time) (string, error) {
		if !o.Status.CanTransition(entity.OrderStatusCancelled) {
			return "", domain.ErrOrderNotCancellable
		}

		if o.Status.StockDeducted() {
			if err := s.restoreItems(ctx, r, o, now); err != nil {
				return "", err
			}
			if o.TotalAmount.GreaterThan(decimal.Zero) {
				related := o.ID
				if err := r.Finance.Create(ctx, &entity.FinanceEntry{
					ID:          uuid.New().String(),
					Type:        entity.FinanceTypeExpense,
					Category:    entity.FinanceCategoryRefund,
					Amount:      o.TotalAmount,
					Date:        now,
					Source:      entity.FinanceSourceSystemReturn,
					RelatedID:   &related,
					Description: "Reembolso pedido " + o.OrderNumber,
					CreatedAt:   now,
				}); err != nil {
					return "", err
				}
			}
		} else {
			for _, it := range sortedItems(o) {
				if _, err := s.variants.Release(ctx, r.Variants, it.VariantID, it.Quantity); err != nil {
					return "", err
				}
			}
		}

		o.Status = entity.OrderStatusCancelled
		o.CancelledAt = &now
		o.CancelledReason = reason
		return entity.EventOrderCancelled, nil
	})
	return o, err
}

// restoreItems reingresa al stock cada línea ya descontada y deja el movimiento return en el libro.
func (s *Service) restoreItems(ctx context.Context, r ports.Repos, o *entity.Order, now time.Time) error {
	for _, it := range sortedItems(o) {
		v, err := s.variants.Restore(ctx, r.Variants, it.VariantID, it.Quantity)
		if err != nil {
			return err
		}
		cost := it.Snapshot.UnitCost
		if cost.IsZero() {
			cost = v.UnitCost
		}
		entry := entity.NewInventoryLogEntry(v, entity.LogKindReturn, it.Quantity, cost,
			"Devolución pedido "+o.OrderNumber, o.ID, now)
		entry.ID = uuid.New().String()
		entry.PrevStock = v.Stock - it.Quantity
		if err := r.InventoryLogs.Create(ctx, entry); err != nil {
			return err
		}
	}
	return nil
}
