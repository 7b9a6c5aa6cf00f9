package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StoreSettings ajustes de la tienda que lee el motor (esquema fijo, validado en el proveedor).
type StoreSettings struct {
	ShippingFee           decimal.Decimal // costo de envío cotizado y cobrado al despachar
	FreeShippingThreshold decimal.Decimal // subtotal a partir del cual el envío es gratis (0 = nunca)
	VATRate               decimal.Decimal // fracción, ej. 0.19
	UpdatedAt             time.Time
}

// ShippingQuote devuelve el envío a cobrar para un subtotal.
func (s *StoreSettings) ShippingQuote(subtotal decimal.Decimal) decimal.Decimal {
	if s.FreeShippingThreshold.GreaterThan(decimal.Zero) && subtotal.GreaterThanOrEqual(s.FreeShippingThreshold) {
		return decimal.Zero
	}
	return s.ShippingFee
}
