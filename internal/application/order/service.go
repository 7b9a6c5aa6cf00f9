// Package order implementa el ciclo de vida de los pedidos: checkout, pago, despacho, entrega y cancelación.
// Cada transición corre en una sola transacción junto con sus efectos en inventario, caja y outbox.
package order

import (
	"context"
	"sort"
	"time"

	appinventory "github.com/jhoicas/boutique-api/internal/application/inventory"
	"github.com/jhoicas/boutique-api/internal/application/ports"
	"github.com/jhoicas/boutique-api/internal/domain"
	"github.com/jhoicas/boutique-api/internal/domain/entity"
	"github.com/jhoicas/boutique-api/pkg/logger"
)

const defaultPageSize = 50

// Service máquina de estados de pedidos.
type Service struct {
	txRunner ports.TxRunner
	repos    ports.Repos
	variants *appinventory.VariantStore
	settings ports.SettingsProvider
	metrics  ports.Metrics
	log      *logger.Logger
	now      func() time.Time
}

// NewService construye el servicio de pedidos.
func NewService(
	txRunner ports.TxRunner,
	repos ports.Repos,
	variants *appinventory.VariantStore,
	settings ports.SettingsProvider,
	metrics ports.Metrics,
	log *logger.Logger,
) *Service {
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	return &Service{
		txRunner: txRunner,
		repos:    repos,
		variants: variants,
		settings: settings,
		metrics:  metrics,
		log:      log.Component("orders"),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// GetOrder devuelve un pedido con sus ítems.
func (s *Service) GetOrder(ctx context.Context, id string) (*entity.Order, error) {
	o, err := s.repos.Orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.ErrOrderNotFound
	}
	return o, nil
}

// ListOrders lista pedidos, opcionalmente filtrados por estado.
func (s *Service) ListOrders(ctx context.Context, status string, limit, offset int) ([]*entity.Order, error) {
	if status != "" && !entity.ValidOrderStatus(status) {
		return nil, domain.ErrInvalidInput
	}
	if limit <= 0 {
		limit = defaultPageSize
	}
	return s.repos.Orders.List(ctx, status, limit, offset)
}

// step aplica una transición sobre el pedido ya bloqueado. Devuelve el tipo de evento a publicar,
// o "" si no hubo cambio (llamada idempotente).
type step func(ctx context.Context, r ports.Repos, o *entity.Order, now time.Time) (event string, err error)

// apply bloquea el pedido, ejecuta la transición y persiste estado y evento en la misma transacción.
func (s *Service) apply(ctx context.Context, orderID, op string, fn step) (*entity.Order, bool, error) {
	now := s.now()
	var (
		out     *entity.Order
		from    entity.OrderStatus
		changed bool
	)
	err := s.txRunner.Run(ctx, func(r ports.Repos) error {
		o, err := r.Orders.GetForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if o == nil {
			return domain.ErrOrderNotFound
		}
		from = o.Status

		event, err := fn(ctx, r, o, now)
		if err != nil {
			return err
		}
		out = o
		if event == "" {
			return nil
		}
		changed = true
		o.UpdatedAt = now
		if err := r.Orders.UpdateStatus(ctx, o); err != nil {
			return err
		}
		return enqueue(ctx, r, event, o, now)
	})
	if err != nil {
		s.log.Warn().Err(err).Str("order_id", orderID).Str("op", op).Msg("transición rechazada")
		return nil, false, err
	}
	if changed {
		s.metrics.OrderTransition(from, out.Status)
		s.log.Info().Str("order_id", out.ID).Str("op", op).
			Str("from", string(from)).Str("to", string(out.Status)).Msg("transición de pedido")
	} else {
		s.log.Debug().Str("order_id", out.ID).Str("op", op).Str("status", string(out.Status)).Msg("transición sin cambios")
	}
	return out, changed, nil
}

// sortedItems devuelve los ítems ordenados por variante para bloquear filas siempre en el mismo orden.
func sortedItems(o *entity.Order) []*entity.OrderItem {
	items := append([]*entity.OrderItem(nil), o.Items...)
	sort.SliceStable(items, func(i, j int) bool { return items[i].VariantID < items[j].VariantID })
	return items
}
