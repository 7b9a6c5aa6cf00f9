package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecordPurchaseRequest body para POST /api/admin/inventory/purchases.
type RecordPurchaseRequest struct {
	VariantID       string          `json:"variant_id" validate:"required"`
	Quantity        int             `json:"quantity" validate:"required,gt=0"`
	UnitCost        decimal.Decimal `json:"unit_cost"`
	Description     string          `json:"description" validate:"max=500"`
	RegisterExpense bool            `json:"register_expense"`
}

// AdjustStockRequest body para POST /api/admin/inventory/adjustments.
type AdjustStockRequest struct {
	VariantID string `json:"variant_id" validate:"required"`
	Delta     int    `json:"delta" validate:"required,ne=0"`
	Reason    string `json:"reason" validate:"max=500"`
}

// PurchaseResponse resultado de una compra.
type PurchaseResponse struct {
	Variant        VariantResponse      `json:"variant"`
	Log            InventoryLogResponse `json:"log"`
	FinanceEntryID string               `json:"finance_entry_id,omitempty"`
}

// InventoryLogResponse movimiento del libro de inventario.
type InventoryLogResponse struct {
	ID           string          `json:"id"`
	VariantID    string          `json:"variant_id"`
	Kind         string          `json:"kind"`
	Quantity     int             `json:"quantity"`
	UnitCost     decimal.Decimal `json:"unit_cost"`
	TotalValue   decimal.Decimal `json:"total_value"`
	Description  string          `json:"description"`
	ReferenceID  string          `json:"reference_id,omitempty"`
	PrevStock    int             `json:"prev_stock"`
	PrevUnitCost decimal.Decimal `json:"prev_unit_cost"`
	CreatedAt    time.Time       `json:"created_at"`
}

// InventoryLogListResponse lista paginada de movimientos.
type InventoryLogListResponse struct {
	Items []InventoryLogResponse `json:"items"`
	Page  PageResponse           `json:"page"`
}
