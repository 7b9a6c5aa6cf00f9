package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo. El stock y el costo viven en sus variantes.
type Product struct {
	ID        string
	Name      string
	BasePrice decimal.Decimal // precio de venta con IVA incluido
	ImageURL  string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
