// Package finance contiene el cálculo puro del estado de resultados (P&L) de la tienda.
// No accede a la base de datos: recibe los datos ya consultados y devuelve el resumen.
package finance

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/boutique-api/internal/domain/entity"
)

// MoneyScale decimales de los montos reportados.
const MoneyScale = 2

var hundred = decimal.NewFromInt(100)

// Categorías fuera de cada agregado.
var (
	// OtherIncomeExcluded: las ventas se cuentan desde los pedidos, no desde el libro.
	OtherIncomeExcluded = []string{entity.FinanceCategorySale}
	// OperationalExcluded: compras de inventario (conversión de activo) y reembolsos (ya restados del ingreso).
	OperationalExcluded = []string{entity.FinanceCategoryInventory, entity.FinanceCategoryRefund}
	// CashIncomeExcluded: ingresos de caja que no suman al saldo histórico.
	CashIncomeExcluded = []string{entity.FinanceCategorySale, entity.FinanceCategoryRefund}
)

// Input datos consultados para un rango [From, To].
type Input struct {
	From, To time.Time
	VATRate  decimal.Decimal

	// Orders pedidos reconocidos (pagado o posterior) creados en el rango, con ítems.
	Orders []*entity.Order
	// VariantCosts costo promedio actual por variante, para ítems sin costo congelado.
	VariantCosts map[string]decimal.Decimal

	OtherIncome         decimal.Decimal
	OperationalExpenses decimal.Decimal
	PeriodIncome        decimal.Decimal
	PeriodExpense       decimal.Decimal

	// Acumulados de todo el histórico para el saldo de caja.
	AllTimeOrderRevenue decimal.Decimal
	AllTimeIncome       decimal.Decimal
	AllTimeExpense      decimal.Decimal
}

// Stats resumen del periodo. Montos a 2 decimales; Margin en porcentaje.
type Stats struct {
	From, To            time.Time
	VATRate             decimal.Decimal
	OrderCount          int
	OrderRevenue        decimal.Decimal
	OtherIncome         decimal.Decimal
	GrossRevenue        decimal.Decimal
	COGS                decimal.Decimal
	VAT                 decimal.Decimal
	OperationalExpenses decimal.Decimal
	NetProfit           decimal.Decimal
	Margin              decimal.Decimal
	CashBalance         decimal.Decimal
	PeriodIncome        decimal.Decimal
	PeriodExpense       decimal.Decimal
}

// COGS suma cantidad * costo de cada ítem: el costo congelado en la venta, o el costo actual de la variante si es cero.
func COGS(orders []*entity.Order, variantCosts map[string]decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, o := range orders {
		for _, it := range o.Items {
			cost := it.Snapshot.UnitCost
			if cost.IsZero() {
				cost = variantCosts[it.VariantID]
			}
			total = total.Add(cost.Mul(decimal.NewFromInt(int64(it.Quantity))))
		}
	}
	return total
}

// VATIncluded devuelve el IVA contenido en un monto con impuesto incluido.
func VATIncluded(amount, rate decimal.Decimal) decimal.Decimal {
	if amount.IsZero() {
		return decimal.Zero
	}
	return amount.Sub(amount.Div(decimal.NewFromInt(1).Add(rate)))
}

// ComputeStats arma el estado de resultados. Los reembolsos no restan en el periodo pero sí en el saldo de caja.
func ComputeStats(in Input) Stats {
	orderRevenue := decimal.Zero
	for _, o := range in.Orders {
		orderRevenue = orderRevenue.Add(o.TotalAmount)
	}
	cogs := COGS(in.Orders, in.VariantCosts)

	gross := orderRevenue.Add(in.OtherIncome)
	vat := VATIncluded(orderRevenue, in.VATRate)
	netRevenue := gross.Sub(vat)
	netProfit := netRevenue.Sub(cogs).Sub(in.OperationalExpenses)

	margin := decimal.Zero
	if !gross.IsZero() {
		margin = netProfit.Div(gross).Mul(hundred)
	}

	cash := in.AllTimeOrderRevenue.Add(in.AllTimeIncome).Sub(in.AllTimeExpense)

	return Stats{
		From:                in.From,
		To:                  in.To,
		VATRate:             in.VATRate,
		OrderCount:          len(in.Orders),
		OrderRevenue:        orderRevenue.Round(MoneyScale),
		OtherIncome:         in.OtherIncome.Round(MoneyScale),
		GrossRevenue:        gross.Round(MoneyScale),
		COGS:                cogs.Round(MoneyScale),
		VAT:                 vat.Round(MoneyScale),
		OperationalExpenses: in.OperationalExpenses.Round(MoneyScale),
		NetProfit:           netProfit.Round(MoneyScale),
		Margin:              margin.Round(MoneyScale),
		CashBalance:         cash.Round(MoneyScale),
		PeriodIncome:        in.PeriodIncome.Round(MoneyScale),
		PeriodExpense:       in.PeriodExpense.Round(MoneyScale),
	}
}
