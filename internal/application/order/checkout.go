package order

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/boutique-api/internal/application/ports"
	"github.com/jhoicas/boutique-api/internal/domain"
	"github.com/jhoicas/boutique-api/internal/domain/entity"
)

// CheckoutLine línea del carrito. Solo se aceptan variante y cantidad: precio y costo se leen del catálogo.
type CheckoutLine struct {
	VariantID string
	Quantity  int
}

// CheckoutInput carrito y datos del comprador.
type CheckoutInput struct {
	Customer entity.CustomerInfo
	Items    []CheckoutLine
}

// mergeLines suma cantidades por variante y devuelve los ids en orden ascendente.
func mergeLines(lines []CheckoutLine) ([]string, map[string]int, error) {
	if len(lines) == 0 {
		return nil, nil, domain.ErrInvalidInput
	}
	qty := make(map[string]int, len(lines))
	for _, l := range lines {
		if l.VariantID == "" || l.Quantity <= 0 {
			return nil, nil, domain.ErrInvalidInput
		}
		qty[l.VariantID] += l.Quantity
	}
	ids := make([]string, 0, len(qty))
	for id := range qty {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, qty, nil
}

func newOrderNumber(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:8])
	return fmt.Sprintf("ORD-%s-%s", now.Format("20060102"), suffix)
}

// CreateOrder reserva stock de cada línea y persiste el pedido pendiente con precios y costos congelados.
// Si alguna línea no tiene disponibilidad no queda ninguna reserva.
func (s *Service) CreateOrder(ctx context.Context, in CheckoutInput) (*entity.Order, error) {
	if strings.TrimSpace(in.Customer.Name) == "" || strings.TrimSpace(in.Customer.Email) == "" {
		return nil, domain.ErrInvalidInput
	}
	ids, qty, err := mergeLines(in.Items)
	if err != nil {
		return nil, err
	}
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	o := &entity.Order{
		ID:          uuid.New().String(),
		OrderNumber: newOrderNumber(now),
		Status:      entity.OrderStatusPending,
		Customer:    in.Customer,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = s.txRunner.Run(ctx, func(r ports.Repos) error {
		subtotal := decimal.Zero
		items := make([]*entity.OrderItem, 0, len(ids))
		for _, id := range ids {
			v, err := s.variants.Reserve(ctx, r.Variants, id, qty[id])
			if err != nil {
				return err
			}
			p, err := r.Products.GetByID(ctx, v.ProductID)
			if err != nil {
				return err
			}
			if p == nil || !p.Active {
				return domain.ErrProductNotFound
			}
			it := &entity.OrderItem{
				ID:        uuid.New().String(),
				OrderID:   o.ID,
				VariantID: v.ID,
				Quantity:  qty[id],
				UnitPrice: v.EffectivePrice(p),
				Snapshot: entity.ProductSnapshot{
					Name:     p.Name,
					ImageURL: p.ImageURL,
					SKU:      v.SKU,
					Size:     v.Size,
					Color:    v.Color,
					UnitCost: v.UnitCost,
				},
			}
			subtotal = subtotal.Add(it.LineTotal())
			items = append(items, it)
		}

		o.Items = items
		o.Subtotal = subtotal
		o.ShippingCost = settings.ShippingQuote(subtotal)
		o.TotalAmount = subtotal.Add(o.ShippingCost)

		if err := r.Orders.Create(ctx, o); err != nil {
			return err
		}
		return enqueue(ctx, r, entity.EventOrderCreated, o, now)
	})
	if err != nil {
		s.log.Warn().Err(err).Int("lines", len(ids)).Msg("checkout rechazado")
		return nil, err
	}

	s.log.Info().Str("order_id", o.ID).Str("order_number", o.OrderNumber).
		Str("total", o.TotalAmount.String()).Msg("pedido creado")
	return o, nil
}
