package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento del libro de costos de inventario.
const (
	LogKindPurchase   = "purchase"   // entrada por compra (+)
	LogKindSale       = "sale"       // salida por venta confirmada (-)
	LogKindReturn     = "return"     // reingreso por cancelación posterior al pago (+)
	LogKindAdjustment = "adjustment" // ajuste manual o reverso (+/-)
)

// InventoryLogEntry registro inmutable de un movimiento de stock. Nunca se actualiza ni se borra.
type InventoryLogEntry struct {
	ID           string
	VariantID    string
	Kind         string
	Quantity     int             // con signo según el tipo
	UnitCost     decimal.Decimal // costo real del movimiento (en compras, el de la compra; no el promedio)
	TotalValue   decimal.Decimal // Quantity * UnitCost
	Description  string
	ReferenceID  string          // pedido o movimiento de origen (opcional)
	PrevStock    int             // stock de la variante antes del movimiento
	PrevUnitCost decimal.Decimal // costo promedio antes del movimiento
	CreatedAt    time.Time
}

// NewInventoryLogEntry arma un movimiento calculando TotalValue.
func NewInventoryLogEntry(v *Variant, kind string, qty int, unitCost decimal.Decimal, description, referenceID string, now time.Time) *InventoryLogEntry {
	return &InventoryLogEntry{
		VariantID:    v.ID,
		Kind:         kind,
		Quantity:     qty,
		UnitCost:     unitCost,
		TotalValue:   unitCost.Mul(decimal.NewFromInt(int64(qty))),
		Description:  description,
		ReferenceID:  referenceID,
		PrevStock:    v.Stock,
		PrevUnitCost: v.UnitCost,
		CreatedAt:    now,
	}
}
