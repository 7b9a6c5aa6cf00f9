package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateFinanceEntryRequest body para POST /api/admin/finance/entries.
type CreateFinanceEntryRequest struct {
	Type        string          `json:"type" validate:"required,oneof=income expense"`
	Category    string          `json:"category" validate:"required,oneof=sale shipping marketing rent salary inventory refund other"`
	Amount      decimal.Decimal `json:"amount"`
	Date        *time.Time      `json:"date,omitempty"`
	Description string          `json:"description" validate:"max=500"`
}

// FinanceEntryResponse movimiento de caja.
type FinanceEntryResponse struct {
	ID          string          `json:"id"`
	Type        string          `json:"type"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	Date        time.Time       `json:"date"`
	Source      string          `json:"source"`
	RelatedID   *string         `json:"related_id,omitempty"`
	Description string          `json:"description"`
	CreatedAt   time.Time       `json:"created_at"`
	ReversedAt  *time.Time      `json:"reversed_at,omitempty"`
}

// FinanceEntryListResponse lista paginada de movimientos.
type FinanceEntryListResponse struct {
	Items []FinanceEntryResponse `json:"items"`
	Page  PageResponse           `json:"page"`
}

// StatsResponse estado de resultados del periodo. Montos con 2 decimales; margin en porcentaje.
type StatsResponse struct {
	From                time.Time       `json:"from"`
	To                  time.Time       `json:"to"`
	VATRate             decimal.Decimal `json:"vat_rate"`
	OrderCount          int             `json:"order_count"`
	OrderRevenue        decimal.Decimal `json:"order_revenue"`
	OtherIncome         decimal.Decimal `json:"other_income"`
	GrossRevenue        decimal.Decimal `json:"gross_revenue"`
	COGS                decimal.Decimal `json:"cogs"`
	VAT                 decimal.Decimal `json:"vat"`
	OperationalExpenses decimal.Decimal `json:"operational_expenses"`
	NetProfit           decimal.Decimal `json:"net_profit"`
	Margin              decimal.Decimal `json:"margin"`
	CashBalance         decimal.Decimal `json:"cash_balance"`
	PeriodIncome        decimal.Decimal `json:"period_income"`
	PeriodExpense       decimal.Decimal `json:"period_expense"`
}
