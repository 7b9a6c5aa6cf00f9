package order

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/boutique-api/internal/application/ports"
	"github.com/jhoicas/boutique-api/internal/domain/entity"
)

// eventPayload cuerpo de las notificaciones de pedido que consume el despachador de correos.
type eventPayload struct {
	OrderID        string    `json:"order_id"`
	OrderNumber    string    `json:"order_number"`
	Status         string    `json:"status"`
	CustomerName   string    `json:"customer_name"`
	CustomerEmail  string    `json:"customer_email"`
	TotalAmount    string    `json:"total_amount"`
	TrackingNumber string    `json:"tracking_number,omitempty"`
	Reason         string    `json:"reason,omitempty"`
	OccurredAt     time.Time `json:"occurred_at"`
}

// enqueue escribe el evento en la bandeja de salida dentro de la transacción de la transición.
func enqueue(ctx context.Context, r ports.Repos, eventType string, o *entity.Order, now time.Time) error {
	payload, err := json.Marshal(eventPayload{
		OrderID:        o.ID,
		OrderNumber:    o.OrderNumber,
		Status:         string(o.Status),
		CustomerName:   o.Customer.Name,
		CustomerEmail:  o.Customer.Email,
		TotalAmount:    o.TotalAmount.StringFixed(2),
		TrackingNumber: o.TrackingNumber,
		Reason:         o.CancelledReason,
		OccurredAt:     now,
	})
	if err != nil {
		return fmt.Errorf("outbox: serializar evento: %w", err)
	}
	return r.Outbox.Create(ctx, &entity.OutboxEvent{
		ID:          uuid.New().String(),
		EventType:   eventType,
		AggregateID: o.ID,
		Payload:     payload,
		CreatedAt:   now,
	})
}
