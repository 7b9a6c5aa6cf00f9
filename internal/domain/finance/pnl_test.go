package finance

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/jhoicas/boutique-api/internal/domain/entity"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func paidOrder(total string, items ...*entity.OrderItem) *entity.Order {
	return &entity.Order{Status: entity.OrderStatusPaid, TotalAmount: dec(total), Items: items}
}

func TestComputeStats_PedidoPagadoUnico(t *testing.T) {
	o := paidOrder("1200", &entity.OrderItem{VariantID: "v1", Quantity: 1, Snapshot: entity.ProductSnapshot{UnitCost: dec("400")}})

	s := ComputeStats(Input{VATRate: dec("0.2"), Orders: []*entity.Order{o}})

	assert.Equal(t, "200.00", s.VAT.StringFixed(2))
	assert.True(t, s.COGS.Equal(dec("400")))
	assert.True(t, s.NetProfit.Equal(dec("600")))
	assert.True(t, s.Margin.Equal(dec("50")))
	assert.True(t, s.GrossRevenue.Equal(dec("1200")))
	assert.True(t, s.CashBalance.IsZero())
	assert.Equal(t, 1, s.OrderCount)
}

func TestComputeStats_SinIngresosMargenCero(t *testing.T) {
	s := ComputeStats(Input{VATRate: dec("0.19"), OperationalExpenses: dec("300")})
	assert.True(t, s.Margin.IsZero())
	assert.True(t, s.NetProfit.Equal(dec("-300")))
}

func TestComputeStats_CostoCeroUsaCostoActual(t *testing.T) {
	o := paidOrder("100", &entity.OrderItem{VariantID: "v1", Quantity: 3})
	s := ComputeStats(Input{
		Orders:       []*entity.Order{o},
		VariantCosts: map[string]decimal.Decimal{"v1": dec("12.5")},
	})
	assert.True(t, s.COGS.Equal(dec("37.5")))
}

func TestComputeStats_SaldoDeCajaRestaReembolsos(t *testing.T) {
	s := ComputeStats(Input{
		AllTimeOrderRevenue: dec("5000"),
		AllTimeIncome:       dec("250"),
		AllTimeExpense:      dec("1250.555"),
	})
	assert.Equal(t, "3999.45", s.CashBalance.StringFixed(2))
}

func TestComputeStats_OtrosIngresosSumanSinIVA(t *testing.T) {
	s := ComputeStats(Input{VATRate: dec("0.19"), OtherIncome: dec("100")})
	assert.True(t, s.VAT.IsZero())
	assert.True(t, s.GrossRevenue.Equal(dec("100")))
	assert.True(t, s.Margin.Equal(dec("100")))
}
