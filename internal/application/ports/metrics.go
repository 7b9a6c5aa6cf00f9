package ports

import "github.com/jhoicas/boutique-api/internal/domain/entity"

// Metrics contadores de negocio. Las implementaciones no deben bloquear.
type Metrics interface {
	OrderTransition(from, to entity.OrderStatus)
	InventoryPurchase()
	FinanceReversal()
}

// NopMetrics descarta todas las mediciones.
type NopMetrics struct{}

func (NopMetrics) OrderTransition(_, _ entity.OrderStatus) {}
func (NopMetrics) InventoryPurchase()                      {}
func (NopMetrics) FinanceReversal()                        {}
