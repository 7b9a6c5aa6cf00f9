package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Variant es una combinación talla/color de un producto: la unidad de control de stock.
// Stock y UnitCost solo cambian vía el libro de costos de inventario y las transiciones de pedidos.
type Variant struct {
	ID            string
	ProductID     string
	SKU           string
	Size          string
	Color         string
	Stock         int             // unidades físicas (>= 0)
	Reserved      int             // unidades apartadas por pedidos sin confirmar (0 <= Reserved <= Stock)
	UnitCost      decimal.Decimal // costo promedio ponderado
	PriceOverride *decimal.Decimal
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Available devuelve las unidades que se pueden reservar.
func (v *Variant) Available() int {
	return v.Stock - v.Reserved
}

// EffectivePrice devuelve el precio vigente de la variante: el override si existe, si no el del producto.
func (v *Variant) EffectivePrice(p *Product) decimal.Decimal {
	if v.PriceOverride != nil {
		return *v.PriceOverride
	}
	if p == nil {
		return decimal.Zero
	}
	return p.BasePrice
}
