package inventory

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/jhoicas/boutique-api/internal/application/ports"
	"github.com/jhoicas/boutique-api/internal/domain"
	"github.com/jhoicas/boutique-api/internal/domain/entity"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestRecordPurchase_PromedioPonderado(t *testing.T) {
	f := newFixture(t, 10, "100")

	res, err := f.purchase.RecordPurchase(context.Background(), PurchaseInput{
		VariantID: "v1", Quantity: 10, UnitCost: dec("200"), RegisterExpense: true,
	})
	require.NoError(t, err)

	v := f.variant(t)
	assert.Equal(t, 20, v.Stock)
	assert.True(t, v.UnitCost.Equal(dec("150")), "got %s", v.UnitCost)

	require.NotNil(t, res.Expense)
	assert.True(t, res.Expense.Amount.Equal(dec("2000")))
	assert.Equal(t, entity.FinanceSourceSystemPurchase, res.Expense.Source)
	assert.Equal(t, res.Log.ID, *res.Expense.RelatedID)

	assert.Equal(t, 10, res.Log.PrevStock)
	assert.True(t, res.Log.PrevUnitCost.Equal(dec("100")))
	assert.True(t, res.Log.TotalValue.Equal(dec("2000")))
}

func TestRecordPurchase_SinStockCostoExacto(t *testing.T) {
	f := newFixture(t, 0, "0")
	_, err := f.purchase.RecordPurchase(context.Background(), PurchaseInput{VariantID: "v1", Quantity: 3, UnitCost: dec("33.3333")})
	require.NoError(t, err)
	assert.True(t, f.variant(t).UnitCost.Equal(dec("33.3333")))
}

func TestRecordPurchase_SinEgresoNoCreaMovimiento(t *testing.T) {
	f := newFixture(t, 0, "0")
	res, err := f.purchase.RecordPurchase(context.Background(), PurchaseInput{VariantID: "v1", Quantity: 2, UnitCost: dec("10")})
	require.NoError(t, err)
	assert.Nil(t, res.Expense)

	// Costo cero: no hay egreso aunque se pida.
	res, err = f.purchase.RecordPurchase(context.Background(), PurchaseInput{VariantID: "v1", Quantity: 2, UnitCost: decimal.Zero, RegisterExpense: true})
	require.NoError(t, err)
	assert.Nil(t, res.Expense)

	list, err := f.store.Repos().Finance.ListInRange(context.Background(), nil, nil, 0, 0)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestRecordPurchase_EntradaInvalida(t *testing.T) {
	f := newFixture(t, 0, "0")
	ctx := context.Background()

	_, err := f.purchase.RecordPurchase(ctx, PurchaseInput{VariantID: "v1", Quantity: 0, UnitCost: dec("1")})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
	_, err = f.purchase.RecordPurchase(ctx, PurchaseInput{VariantID: "v1", Quantity: 1, UnitCost: dec("-1")})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
	_, err = f.purchase.RecordPurchase(ctx, PurchaseInput{VariantID: "nope", Quantity: 1, UnitCost: dec("1")})
	assert.ErrorIs(t, err, domain.ErrVariantNotFound)
}

func TestReversePurchaseInTx_UltimaCompraRestauraCostoExacto(t *testing.T) {
	f := newFixture(t, 7, "13.1234")
	ctx := context.Background()

	res, err := f.purchase.RecordPurchase(ctx, PurchaseInput{VariantID: "v1", Quantity: 3, UnitCost: dec("99.99")})
	require.NoError(t, err)

	err = f.runner.Run(ctx, func(r ports.Repos) error {
		_, err := f.purchase.ReversePurchaseInTx(ctx, r, res.Log.ID, time.Now())
		return err
	})
	require.NoError(t, err)

	v := f.variant(t)
	assert.Equal(t, 7, v.Stock)
	assert.Equal(t, "13.1234", v.UnitCost.String())

	logs, err := f.adjust.ListLogs(ctx, "v1", 0, 0)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, entity.LogKindAdjustment, logs[0].Kind)
	assert.Equal(t, -3, logs[0].Quantity)
	assert.Equal(t, res.Log.ID, logs[0].ReferenceID)
}

func TestReversePurchaseInTx_CompraAnteriorUsaFormulaInversa(t *testing.T) {
	f := newFixture(t, 10, "100")
	ctx := context.Background()

	first, err := f.purchase.RecordPurchase(ctx, PurchaseInput{VariantID: "v1", Quantity: 10, UnitCost: dec("200")})
	require.NoError(t, err)
	_, err = f.purchase.RecordPurchase(ctx, PurchaseInput{VariantID: "v1", Quantity: 20, UnitCost: dec("150")})
	require.NoError(t, err)
	require.True(t, f.variant(t).UnitCost.Equal(dec("150")))

	err = f.runner.Run(ctx, func(r ports.Repos) error {
		_, err := f.purchase.ReversePurchaseInTx(ctx, r, first.Log.ID, time.Now())
		return err
	})
	require.NoError(t, err)

	// (40*150 - 10*200) / 30 = 133.3333
	v := f.variant(t)
	assert.Equal(t, 30, v.Stock)
	assert.Equal(t, "133.3333", v.UnitCost.String())
}

func TestReversePurchaseInTx_UnidadesReservadas(t *testing.T) {
	f := newFixture(t, 0, "0")
	ctx := context.Background()

	res, err := f.purchase.RecordPurchase(ctx, PurchaseInput{VariantID: "v1", Quantity: 5, UnitCost: dec("10")})
	require.NoError(t, err)
	_, err = f.store.Repos().Variants.Reserve(ctx, "v1", 1)
	require.NoError(t, err)

	err = f.runner.Run(ctx, func(r ports.Repos) error {
		_, err := f.purchase.ReversePurchaseInTx(ctx, r, res.Log.ID, time.Now())
		return err
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 5, f.variant(t).Stock)
}

func TestReversePurchaseInTx_CadenaDeReversos(t *testing.T) {
	f := newFixture(t, 10, "50")
	ctx := context.Background()

	a, err := f.purchase.RecordPurchase(ctx, PurchaseInput{VariantID: "v1", Quantity: 10, UnitCost: dec("100")})
	require.NoError(t, err)
	b, err := f.purchase.RecordPurchase(ctx, PurchaseInput{VariantID: "v1", Quantity: 20, UnitCost: dec("200")})
	require.NoError(t, err)

	reverse := func(logID string) error {
		return f.runner.Run(ctx, func(r ports.Repos) error {
			_, err := f.purchase.ReversePurchaseInTx(ctx, r, logID, time.Now())
			return err
		})
	}
	require.NoError(t, reverse(a.Log.ID))
	require.NoError(t, reverse(b.Log.ID))

	v := f.variant(t)
	assert.Equal(t, 10, v.Stock)
	assert.True(t, v.UnitCost.Equal(dec("50")), "got %s", v.UnitCost)

	// Un reverso ya aplicado no se repite.
	assert.ErrorIs(t, reverse(b.Log.ID), domain.ErrEntryNotFound)
	assert.Equal(t, 10, f.variant(t).Stock)
}

func TestReversePurchase_SinEgreso(t *testing.T) {
	f := newFixture(t, 4, "25")
	ctx := context.Background()

	res, err := f.purchase.RecordPurchase(ctx, PurchaseInput{VariantID: "v1", Quantity: 6, UnitCost: dec("40")})
	require.NoError(t, err)
	require.Nil(t, res.Expense)

	v, err := f.purchase.ReversePurchase(ctx, res.Log.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, v.Stock)
	assert.True(t, v.UnitCost.Equal(dec("25")), "got %s", v.UnitCost)

	_, err = f.purchase.ReversePurchase(ctx, res.Log.ID)
	assert.ErrorIs(t, err, domain.ErrEntryNotFound)
	_, err = f.purchase.ReversePurchase(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrEntryNotFound)
}

func TestReversePurchase_ConEgresoSeReversaDesdeCaja(t *testing.T) {
	f := newFixture(t, 0, "0")
	ctx := context.Background()

	res, err := f.purchase.RecordPurchase(ctx, PurchaseInput{VariantID: "v1", Quantity: 2, UnitCost: dec("10"), RegisterExpense: true})
	require.NoError(t, err)
	require.NotNil(t, res.Expense)

	_, err = f.purchase.ReversePurchase(ctx, res.Log.ID)
	assert.ErrorIs(t, err, domain.ErrPurchaseHasExpense)
	assert.Equal(t, 2, f.variant(t).Stock)
}
