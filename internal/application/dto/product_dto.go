package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto del catálogo.
type CreateProductRequest struct {
	Name      string          `json:"name" validate:"required,min=1,max=200"`
	BasePrice decimal.Decimal `json:"base_price"`
	ImageURL  string          `json:"image_url" validate:"omitempty,url"`
	Active    *bool           `json:"active"`
}

// CreateVariantRequest entrada para crear una variante. Stock y costo arrancan en cero: entran por compras.
type CreateVariantRequest struct {
	SKU           string           `json:"sku" validate:"required,min=1,max=100"`
	Size          string           `json:"size" validate:"max=20"`
	Color         string           `json:"color" validate:"max=40"`
	PriceOverride *decimal.Decimal `json:"price_override,omitempty"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	BasePrice decimal.Decimal   `json:"base_price"`
	ImageURL  string            `json:"image_url,omitempty"`
	Active    bool              `json:"active"`
	Variants  []VariantResponse `json:"variants,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// VariantResponse salida de una variante con su stock y costo promedio.
type VariantResponse struct {
	ID            string           `json:"id"`
	ProductID     string           `json:"product_id"`
	SKU           string           `json:"sku"`
	Size          string           `json:"size"`
	Color         string           `json:"color"`
	Stock         int              `json:"stock"`
	Reserved      int              `json:"reserved"`
	Available     int              `json:"available"`
	UnitCost      decimal.Decimal  `json:"unit_cost"`
	PriceOverride *decimal.Decimal `json:"price_override,omitempty"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
