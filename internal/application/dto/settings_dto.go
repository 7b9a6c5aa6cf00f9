package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// UpdateSettingsRequest cambios parciales a los ajustes de la tienda. vat_rate acepta 0.19 o 19.
type UpdateSettingsRequest struct {
	ShippingFee           *decimal.Decimal `json:"shipping_fee,omitempty"`
	FreeShippingThreshold *decimal.Decimal `json:"free_shipping_threshold,omitempty"`
	VATRate               *decimal.Decimal `json:"vat_rate,omitempty"`
}

// SettingsResponse ajustes vigentes.
type SettingsResponse struct {
	ShippingFee           decimal.Decimal `json:"shipping_fee"`
	FreeShippingThreshold decimal.Decimal `json:"free_shipping_threshold"`
	VATRate               decimal.Decimal `json:"vat_rate"`
	UpdatedAt             time.Time       `json:"updated_at,omitempty"`
}
