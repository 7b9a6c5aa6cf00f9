package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/boutique-api/internal/domain/entity"
)

// OrderRepository define el puerto de persistencia para pedidos y sus líneas.
type OrderRepository interface {
	// Create persiste el pedido con sus ítems.
	Create(ctx context.Context, o *entity.Order) error
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	GetForUpdate(ctx context.Context, id string) (*entity.Order, error)
	List(ctx context.Context, status string, limit, offset int) ([]*entity.Order, error)
	// ListByStatusInRange devuelve pedidos (con ítems) en los estados dados creados en [from, to].
	ListByStatusInRange(ctx context.Context, statuses []entity.OrderStatus, from, to time.Time) ([]*entity.Order, error)
	// UpdateStatus persiste estado, timestamps, tracking, envío real y motivo de cancelación.
	UpdateStatus(ctx context.Context, o *entity.Order) error
	// SumTotalByStatus suma TotalAmount de todos los pedidos en esos estados (sin rango).
	SumTotalByStatus(ctx context.Context, statuses []entity.OrderStatus) (decimal.Decimal, error)
}
