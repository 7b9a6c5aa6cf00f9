package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de caja.
const (
	FinanceTypeIncome  = "income"
	FinanceTypeExpense = "expense"
)

// Categorías de movimiento de caja.
const (
	FinanceCategorySale      = "sale"
	FinanceCategoryShipping  = "shipping"
	FinanceCategoryMarketing = "marketing"
	FinanceCategoryRent      = "rent"
	FinanceCategorySalary    = "salary"
	FinanceCategoryInventory = "inventory"
	FinanceCategoryRefund    = "refund"
	FinanceCategoryOther     = "other"
)

// Orígenes de un movimiento. Los system_* los genera el motor y tienen efectos físicos asociados.
const (
	FinanceSourceManual         = "manual"
	FinanceSourceSystemPurchase = "system_purchase"
	FinanceSourceSystemShipping = "system_shipping"
	FinanceSourceSystemReturn   = "system_return"
)

// FinanceEntry movimiento de caja inmutable. La única mutación permitida es marcarlo como reversado.
type FinanceEntry struct {
	ID          string
	Type        string
	Category    string
	Amount      decimal.Decimal // siempre > 0
	Date        time.Time
	Source      string
	RelatedID   *string // InventoryLogEntry u Order
	Description string
	CreatedAt   time.Time
	ReversedAt  *time.Time
}

// IsSystem indica si el movimiento lo generó el motor.
func (e *FinanceEntry) IsSystem() bool {
	return strings.HasPrefix(e.Source, "system_")
}

// IsReversed indica si el movimiento ya fue reversado.
func (e *FinanceEntry) IsReversed() bool {
	return e.ReversedAt != nil
}

// ValidFinanceType valida el tipo de movimiento.
func ValidFinanceType(t string) bool {
	return t == FinanceTypeIncome || t == FinanceTypeExpense
}

// ValidFinanceCategory valida la categoría de movimiento.
func ValidFinanceCategory(c string) bool {
	switch c {
	case FinanceCategorySale, FinanceCategoryShipping, FinanceCategoryMarketing, FinanceCategoryRent,
		FinanceCategorySalary, FinanceCategoryInventory, FinanceCategoryRefund, FinanceCategoryOther:
		return true
	}
	return false
}
