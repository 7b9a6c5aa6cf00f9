package entity

import (
	"encoding/json"
	"time"
)

// Tipos de evento de notificación de pedidos.
const (
	EventOrderCreated       = "order.created"
	EventOrderPaid          = "order.paid"
	EventOrderPaymentFailed = "order.payment_failed"
	EventOrderProcessing    = "order.processing"
	EventOrderShipped       = "order.shipped"
	EventOrderDelivered     = "order.delivered"
	EventOrderCancelled     = "order.cancelled"
)

// OutboxEvent notificación pendiente de publicar. Se escribe en la misma transacción que la transición.
type OutboxEvent struct {
	ID          string
	EventType   string
	AggregateID string
	Payload     json.RawMessage
	Attempts    int
	LastError   string
	CreatedAt   time.Time
	PublishedAt *time.Time
}
