package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus estado del ciclo de vida de un pedido.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusPaid       OrderStatus = "paid"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// orderTransitions grafo de estados permitido. delivered y cancelled son terminales.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:    {OrderStatusPaid, OrderStatusCancelled},
	OrderStatusPaid:       {OrderStatusProcessing, OrderStatusShipped, OrderStatusCancelled},
	OrderStatusProcessing: {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:    {OrderStatusDelivered, OrderStatusCancelled},
	OrderStatusDelivered:  {},
	OrderStatusCancelled:  {},
}

// RecognizedStatuses estados cuyo total cuenta como ingreso (pagado o posterior, no cancelado).
var RecognizedStatuses = []OrderStatus{
	OrderStatusPaid, OrderStatusProcessing, OrderStatusShipped, OrderStatusDelivered,
}

// CanTransition indica si el grafo permite pasar de s a next.
func (s OrderStatus) CanTransition(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal indica si el estado no admite más transiciones.
func (s OrderStatus) IsTerminal() bool {
	return len(orderTransitions[s]) == 0
}

// StockDeducted indica si en este estado el stock ya se descontó de forma permanente.
func (s OrderStatus) StockDeducted() bool {
	return s.IsRecognized()
}

// IsRecognized indica si el pedido está pagado o en una etapa posterior.
func (s OrderStatus) IsRecognized() bool {
	for _, r := range RecognizedStatuses {
		if r == s {
			return true
		}
	}
	return false
}

// ValidOrderStatus valida un estado recibido desde afuera (filtros).
func ValidOrderStatus(s string) bool {
	_, ok := orderTransitions[OrderStatus(s)]
	return ok
}

// CustomerInfo datos de contacto y envío del comprador.
type CustomerInfo struct {
	Name            string
	Email           string
	Phone           string
	ShippingAddress string
}

// Order pedido de un cliente.
type Order struct {
	ID                 string
	OrderNumber        string
	Status             OrderStatus
	Customer           CustomerInfo
	Subtotal           decimal.Decimal
	ShippingCost       decimal.Decimal  // cotizado en el checkout
	ShippingCostActual *decimal.Decimal // cobrado al despachar
	TotalAmount        decimal.Decimal
	TrackingNumber     string
	CancelledReason    string
	Items              []*OrderItem
	CreatedAt          time.Time
	UpdatedAt          time.Time
	PaidAt             *time.Time
	ShippedAt          *time.Time
	DeliveredAt        *time.Time
	CancelledAt        *time.Time
}

// ProductSnapshot datos congelados del producto al momento de la venta.
type ProductSnapshot struct {
	Name     string
	ImageURL string
	SKU      string
	Size     string
	Color    string
	UnitCost decimal.Decimal
}

// OrderItem línea de un pedido. UnitPrice y Snapshot no cambian aunque cambie el catálogo.
type OrderItem struct {
	ID        string
	OrderID   string
	VariantID string
	Quantity  int
	UnitPrice decimal.Decimal
	Snapshot  ProductSnapshot
}

// LineTotal devuelve Quantity * UnitPrice.
func (i *OrderItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
