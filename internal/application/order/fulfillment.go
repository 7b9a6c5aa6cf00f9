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

// MarkProcessing pasa un pedido pagado a preparación.
func (s *Service) MarkProcessing(ctx context.Context, orderID string) (*entity.Order, error) {
	o, _, err := s.apply(ctx, orderID, "processing", func(_ context.Context, _ ports.Repos, o *entity.Order, _ time.Time) (string, error) {
		if !o.Status.CanTransition(entity.OrderStatusProcessing) {
			return "", domain.ErrInvalidTransition
		}
		o.Status = entity.OrderStatusProcessing
		return entity.EventOrderProcessing, nil
	})
	return o, err
}

// ShipOrder despacha el pedido con su guía y registra el egreso de envío con la tarifa vigente.
// Solo puede ocurrir una vez por pedido.
func (s *Service) ShipOrder(ctx context.Context, orderID, trackingNumber string) (*entity.Order, error) {
	trackingNumber = strings.TrimSpace(trackingNumber)
	if trackingNumber == "" {
		return nil, domain.ErrInvalidInput
	}
	fee, err := s.settings.ShippingFee(ctx)
	if err != nil {
		return nil, err
	}

	o, _, err := s.apply(ctx, orderID, "ship", func(ctx context.Context, r ports.Repos, o *entity.Order, now time.Time) (string, error) {
		if !o.Status.CanTransition(entity.OrderStatusShipped) {
			return "", domain.ErrOrderNotShippable
		}
		exists, err := r.Finance.ExistsActive(ctx, entity.FinanceSourceSystemShipping, o.ID)
		if err != nil {
			return "", err
		}
		if exists {
			return "", domain.ErrOrderNotShippable
		}

		if fee.GreaterThan(decimal.Zero) {
			related := o.ID
			if err := r.Finance.Create(ctx, &entity.FinanceEntry{
				ID:          uuid.New().String(),
				Type:        entity.FinanceTypeExpense,
				Category:    entity.FinanceCategoryShipping,
				Amount:      fee,
				Date:        now,
				Source:      entity.FinanceSourceSystemShipping,
				RelatedID:   &related,
				Description: "Envío pedido " + o.OrderNumber,
				CreatedAt:   now,
			}); err != nil {
				return "", err
			}
		}

		actual := fee
		o.ShippingCostActual = &actual
		o.TrackingNumber = trackingNumber
		o.Status = entity.OrderStatusShipped
		o.ShippedAt = &now
		return entity.EventOrderShipped, nil
	})
	return o, err
}

// DeliverOrder confirma la entrega. No tiene efecto contable.
func (s *Service) DeliverOrder(ctx context.Context, orderID string) (*entity.Order, error) {
	o, _, err := s.apply(ctx, orderID, "deliver", func(_ context.Context, _ ports.Repos, o *entity.Order, now time.Time) (string, error) {
		if !o.Status.CanTransition(entity.OrderStatusDelivered) {
			return "", domain.ErrInvalidTransition
		}
		o.Status = entity.OrderStatusDelivered
		o.DeliveredAt = &now
		return entity.EventOrderDelivered, nil
	})
	return o, err
}
