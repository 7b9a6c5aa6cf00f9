package inventory

import "github.com/shopspring/decimal"

// CostScale decimales con los que se guarda el costo promedio (columna NUMERIC(14,4)).
const CostScale = 4

// CostCalculator implementa la lógica de costo promedio ponderado (servicio de dominio).
// NuevoCosto = ((max(StockActual,0) * CostoActual) + (CantEntrada * CostoEntrada)) / (StockActual + CantEntrada)
// Si el denominador no es positivo, el nuevo costo es el de la entrada.
func CostCalculator(stockActual int, costoActual decimal.Decimal, cantEntrada int, costoEntrada decimal.Decimal) decimal.Decimal {
	sum := stockActual + cantEntrada
	if sum <= 0 {
		return costoEntrada
	}
	base := stockActual
	if base < 0 {
		base = 0
	}
	num := decimal.NewFromInt(int64(base)).Mul(costoActual).
		Add(decimal.NewFromInt(int64(cantEntrada)).Mul(costoEntrada))
	return num.Div(decimal.NewFromInt(int64(sum))).Round(CostScale)
}

// ReverseCost deshace el efecto de una entrada sobre el promedio cuando ya no se conoce el costo previo exacto
// (hubo compras posteriores). stockActual incluye las unidades de la entrada a reversar.
func ReverseCost(stockActual int, costoActual decimal.Decimal, cantEntrada int, costoEntrada decimal.Decimal) decimal.Decimal {
	rest := stockActual - cantEntrada
	if rest <= 0 {
		return decimal.Zero
	}
	num := decimal.NewFromInt(int64(stockActual)).Mul(costoActual).
		Sub(decimal.NewFromInt(int64(cantEntrada)).Mul(costoEntrada))
	if num.LessThan(decimal.Zero) {
		return decimal.Zero
	}
	return num.Div(decimal.NewFromInt(int64(rest))).Round(CostScale)
}
