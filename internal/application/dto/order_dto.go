package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CustomerDTO datos del comprador.
type CustomerDTO struct {
	Name            string `json:"name" validate:"required,max=200"`
	Email           string `json:"email" validate:"required,email"`
	Phone           string `json:"phone" validate:"max=40"`
	ShippingAddress string `json:"shipping_address" validate:"required,max=500"`
}

// CheckoutItemRequest línea del carrito. Cualquier precio enviado por el cliente se ignora.
type CheckoutItemRequest struct {
	VariantID string `json:"variant_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
}

// CheckoutRequest body para POST /api/checkout.
type CheckoutRequest struct {
	Customer CustomerDTO           `json:"customer" validate:"required"`
	Items    []CheckoutItemRequest `json:"items" validate:"required,min=1,dive"`
}

// PaymentWebhookRequest body que envía la pasarela de pagos.
type PaymentWebhookRequest struct {
	OrderID string `json:"order_id" validate:"required"`
	Success *bool  `json:"success" validate:"required"`
}

// PaymentWebhookResponse resultado del webhook; changed=false si el resultado ya estaba aplicado.
type PaymentWebhookResponse struct {
	OrderID string `json:"order_id"`
	Status  string `json:"status"`
	Changed bool   `json:"changed"`
}

// ShipOrderRequest body para POST /api/admin/orders/:id/ship.
type ShipOrderRequest struct {
	TrackingNumber string `json:"tracking_number" validate:"required,max=100"`
}

// CancelOrderRequest body para POST /api/admin/orders/:id/cancel.
type CancelOrderRequest struct {
	Reason string `json:"reason" validate:"max=500"`
}

// OrderItemResponse línea con precio y datos congelados.
type OrderItemResponse struct {
	VariantID   string          `json:"variant_id"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
	ProductName string          `json:"product_name"`
	ImageURL    string          `json:"image_url,omitempty"`
	SKU         string          `json:"sku"`
	Size        string          `json:"size"`
	Color       string          `json:"color"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
}

// OrderResponse pedido completo.
type OrderResponse struct {
	ID                 string              `json:"id"`
	OrderNumber        string              `json:"order_number"`
	Status             string              `json:"status"`
	Customer           CustomerDTO         `json:"customer"`
	Items              []OrderItemResponse `json:"items"`
	Subtotal           decimal.Decimal     `json:"subtotal"`
	ShippingCost       decimal.Decimal     `json:"shipping_cost"`
	ShippingCostActual *decimal.Decimal    `json:"shipping_cost_actual,omitempty"`
	TotalAmount        decimal.Decimal     `json:"total_amount"`
	TrackingNumber     string              `json:"tracking_number,omitempty"`
	CancelledReason    string              `json:"cancelled_reason,omitempty"`
	CreatedAt          time.Time           `json:"created_at"`
	UpdatedAt          time.Time           `json:"updated_at"`
	PaidAt             *time.Time          `json:"paid_at,omitempty"`
	ShippedAt          *time.Time          `json:"shipped_at,omitempty"`
	DeliveredAt        *time.Time          `json:"delivered_at,omitempty"`
	CancelledAt        *time.Time          `json:"cancelled_at,omitempty"`
}

// OrderListResponse lista paginada de pedidos.
type OrderListResponse struct {
	Items []OrderResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}
