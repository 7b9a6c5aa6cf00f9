package inventory

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestCostCalculator_PromedioPonderado(t *testing.T) {
	got := CostCalculator(10, d("100"), 10, d("200"))
	assert.True(t, got.Equal(d("150.00")), "got %s", got)
}

func TestCostCalculator_SinStockUsaCostoEntrada(t *testing.T) {
	got := CostCalculator(0, d("999"), 7, d("12.5"))
	assert.True(t, got.Equal(d("12.5")), "got %s", got)
}

func TestCostCalculator_RedondeaACuatroDecimales(t *testing.T) {
	got := CostCalculator(1, d("10"), 2, d("11"))
	assert.Equal(t, "10.6667", got.StringFixed(4))
}

func TestCostCalculator_DenominadorNoPositivo(t *testing.T) {
	got := CostCalculator(-5, d("10"), 3, d("42"))
	assert.True(t, got.Equal(d("42")))
}

func TestReverseCost(t *testing.T) {
	// 10@100 + 10@200 = 20@150; quitar la segunda entrada vuelve a 100.
	assert.True(t, ReverseCost(20, d("150"), 10, d("200")).Equal(d("100")))
	// Si no quedan unidades, el costo es cero.
	assert.True(t, ReverseCost(10, d("200"), 10, d("200")).IsZero())
	// Nunca negativo.
	assert.True(t, ReverseCost(20, d("10"), 10, d("500")).IsZero())
}
