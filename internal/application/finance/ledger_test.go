package finance

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	appinventory "github.com/jhoicas/boutique-api/internal/application/inventory"
	"github.com/jhoicas/boutique-api/internal/domain"
	"github.com/jhoicas/boutique-api/internal/domain/entity"
	"github.com/jhoicas/boutique-api/internal/infrastructure/memory"
	"github.com/jhoicas/boutique-api/pkg/logger"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type ledgerFixture struct {
	store    *memory.Store
	ledger   *LedgerUseCase
	purchase *appinventory.RecordPurchaseUseCase
}

func newLedgerFixture(t *testing.T, stock int, cost string) *ledgerFixture {
	t.Helper()
	ctx := context.Background()
	s := memory.NewStore()
	repos := s.Repos()
	require.NoError(t, repos.Products.Create(ctx, &entity.Product{ID: "p1", Name: "Falda", BasePrice: dec("180"), Active: true}))
	require.NoError(t, repos.Variants.Create(ctx, &entity.Variant{ID: "v1", ProductID: "p1", SKU: "FA-S-VE", Stock: stock, UnitCost: dec(cost)}))

	runner := memory.NewTxRunner(s)
	purchase := appinventory.NewRecordPurchaseUseCase(runner, nil, logger.Nop())
	return &ledgerFixture{
		store:    s,
		ledger:   NewLedgerUseCase(runner, repos, purchase, nil, logger.Nop()),
		purchase: purchase,
	}
}

func (f *ledgerFixture) variant(t *testing.T) *entity.Variant {
	t.Helper()
	v, err := f.store.Repos().Variants.GetByID(context.Background(), "v1")
	require.NoError(t, err)
	return v
}

func TestAddManualEntry(t *testing.T) {
	f := newLedgerFixture(t, 0, "0")
	ctx := context.Background()

	date := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	e, err := f.ledger.AddManualEntry(ctx, ManualEntryInput{
		Type: entity.FinanceTypeExpense, Category: entity.FinanceCategoryRent, Amount: dec("1500000"), Date: &date, Description: "Arriendo marzo",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.FinanceSourceManual, e.Source)
	assert.Equal(t, date, e.Date)

	_, err = f.ledger.AddManualEntry(ctx, ManualEntryInput{Type: "gift", Category: entity.FinanceCategoryRent, Amount: dec("1")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = f.ledger.AddManualEntry(ctx, ManualEntryInput{Type: entity.FinanceTypeIncome, Category: "lottery", Amount: dec("1")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = f.ledger.AddManualEntry(ctx, ManualEntryInput{Type: entity.FinanceTypeIncome, Category: entity.FinanceCategoryOther, Amount: decimal.Zero})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	from := date.Add(-time.Hour)
	to := date.Add(time.Hour)
	list, err := f.ledger.ListEntries(ctx, &from, &to, 0, 0)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = f.ledger.ListEntries(ctx, &to, &from, 0, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestReverseTransaction_CompraVuelveAlEstadoExacto(t *testing.T) {
	f := newLedgerFixture(t, 13, "47.3917")
	ctx := context.Background()
	before := f.variant(t)

	res, err := f.purchase.RecordPurchase(ctx, appinventory.PurchaseInput{
		VariantID: "v1", Quantity: 7, UnitCost: dec("52.13"), RegisterExpense: true,
	})
	require.NoError(t, err)
	require.NotNil(t, res.Expense)
	require.False(t, f.variant(t).UnitCost.Equal(before.UnitCost))

	reversed, err := f.ledger.ReverseTransaction(ctx, res.Expense.ID)
	require.NoError(t, err)
	assert.NotNil(t, reversed.ReversedAt)

	after := f.variant(t)
	assert.Equal(t, before.Stock, after.Stock)
	assert.Equal(t, before.UnitCost.String(), after.UnitCost.String())
	assert.True(t, before.UnitCost.Equal(after.UnitCost))

	list, err := f.ledger.ListEntries(ctx, nil, nil, 0, 0)
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = f.ledger.ReverseTransaction(ctx, res.Expense.ID)
	assert.ErrorIs(t, err, domain.ErrEntryNotFound)
}

func TestReverseTransaction_UnidadesYaReservadas(t *testing.T) {
	f := newLedgerFixture(t, 0, "0")
	ctx := context.Background()

	res, err := f.purchase.RecordPurchase(ctx, appinventory.PurchaseInput{
		VariantID: "v1", Quantity: 2, UnitCost: dec("10"), RegisterExpense: true,
	})
	require.NoError(t, err)
	_, err = f.store.Repos().Variants.Reserve(ctx, "v1", 1)
	require.NoError(t, err)

	_, err = f.ledger.ReverseTransaction(ctx, res.Expense.ID)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	e, err := f.store.Repos().Finance.GetByID(ctx, res.Expense.ID)
	require.NoError(t, err)
	assert.False(t, e.IsReversed())
	assert.Equal(t, 2, f.variant(t).Stock)
}

func TestReverseTransaction_ManualSinEfectos(t *testing.T) {
	f := newLedgerFixture(t, 5, "10")
	ctx := context.Background()

	e, err := f.ledger.AddManualEntry(ctx, ManualEntryInput{Type: entity.FinanceTypeIncome, Category: entity.FinanceCategoryOther, Amount: dec("30")})
	require.NoError(t, err)
	_, err = f.ledger.ReverseTransaction(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, f.variant(t).Stock)

	_, err = f.ledger.ReverseTransaction(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrEntryNotFound)
}

func TestReverseTransaction_CompraAnteriorYLuegoPosterior(t *testing.T) {
	f := newLedgerFixture(t, 10, "50")
	ctx := context.Background()

	a, err := f.purchase.RecordPurchase(ctx, appinventory.PurchaseInput{VariantID: "v1", Quantity: 10, UnitCost: dec("100"), RegisterExpense: true})
	require.NoError(t, err)
	b, err := f.purchase.RecordPurchase(ctx, appinventory.PurchaseInput{VariantID: "v1", Quantity: 20, UnitCost: dec("200"), RegisterExpense: true})
	require.NoError(t, err)
	require.True(t, f.variant(t).UnitCost.Equal(dec("137.5")), "got %s", f.variant(t).UnitCost)

	_, err = f.ledger.ReverseTransaction(ctx, a.Expense.ID)
	require.NoError(t, err)
	v := f.variant(t)
	assert.Equal(t, 30, v.Stock)
	assert.True(t, v.UnitCost.Equal(dec("150")), "got %s", v.UnitCost)

	// B sigue siendo la última compra, pero su costo previo incluía a A.
	_, err = f.ledger.ReverseTransaction(ctx, b.Expense.ID)
	require.NoError(t, err)
	v = f.variant(t)
	assert.Equal(t, 10, v.Stock)
	assert.True(t, v.UnitCost.Equal(dec("50")), "got %s", v.UnitCost)
}

func TestReverseTransaction_PosteriorYLuegoAnteriorRestauraEstadoInicial(t *testing.T) {
	f := newLedgerFixture(t, 10, "50")
	ctx := context.Background()

	a, err := f.purchase.RecordPurchase(ctx, appinventory.PurchaseInput{VariantID: "v1", Quantity: 10, UnitCost: dec("100"), RegisterExpense: true})
	require.NoError(t, err)
	b, err := f.purchase.RecordPurchase(ctx, appinventory.PurchaseInput{VariantID: "v1", Quantity: 20, UnitCost: dec("200"), RegisterExpense: true})
	require.NoError(t, err)

	_, err = f.ledger.ReverseTransaction(ctx, b.Expense.ID)
	require.NoError(t, err)
	assert.True(t, f.variant(t).UnitCost.Equal(dec("75")), "got %s", f.variant(t).UnitCost)

	_, err = f.ledger.ReverseTransaction(ctx, a.Expense.ID)
	require.NoError(t, err)
	v := f.variant(t)
	assert.Equal(t, 10, v.Stock)
	assert.True(t, v.UnitCost.Equal(dec("50")), "got %s", v.UnitCost)
}
