package order

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/boutique-api/internal/application/ports"
	"github.com/jhoicas/boutique-api/internal/domain"
	"github.com/jhoicas/boutique-api/internal/domain/entity"
)

// Motivo guardado en pedidos cancelados por la pasarela.
const reasonPaymentFailed = "payment_failed"

// HandlePayment procesa el resultado informado por la pasarela. Es idempotente: repetir el mismo
// resultado no vuelve a mover stock y devuelve changed=false. Un resultado contrario a un estado
// ya final devuelve ErrAlreadyFinalized.
func (s *Service) HandlePayment(ctx context.Context, orderID string, success bool) (*entity.Order, bool, error) {
	if success {
		return s.apply(ctx, orderID, "payment_success", s.confirmPayment)
	}
	return s.apply(ctx, orderID, "payment_failure", s.failPayment)
}

func (s *Service) confirmPayment(ctx context.Context, r ports.Repos, o *entity.Order, now time.Time) (string, error) {
	switch {
	case o.Status.IsRecognized():
		return "", nil
	case o.Status != entity.OrderStatusPending:
		return "", domain.ErrAlreadyFinalized
	}

	for _, it := range sortedItems(o) {
		v, err := s.variants.ConfirmDeduction(ctx, r.Variants, it.VariantID, it.Quantity)
		if err != nil {
			return "", err
		}
		entry := entity.NewInventoryLogEntry(v, entity.LogKindSale, -it.Quantity, v.UnitCost,
			"Venta pedido "+o.OrderNumber, o.ID, now)
		entry.ID = uuid.New().String()
		entry.PrevStock = v.Stock + it.Quantity
		if err := r.InventoryLogs.Create(ctx, entry); err != nil {
			return "", err
		}
	}

	o.Status = entity.OrderStatusPaid
	o.PaidAt = &now
	return entity.EventOrderPaid, nil
}

func (s *Service) failPayment(ctx context.Context, r ports.Repos, o *entity.Order, now time.Time) (string, error) {
	switch {
	case o.Status == entity.OrderStatusCancelled:
		return "", nil
	case o.Status != entity.OrderStatusPending:
		return "", domain.ErrAlreadyFinalized
	}

	for _, it := range sortedItems(o) {
		if _, err := s.variants.Release(ctx, r.Variants, it.VariantID, it.Quantity); err != nil {
			return "", err
		}
	}

	o.Status = entity.OrderStatusCancelled
	o.CancelledAt = &now
	o.CancelledReason = reasonPaymentFailed
	return entity.EventOrderPaymentFailed, nil
}
