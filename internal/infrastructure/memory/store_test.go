package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/jhoicas/boutique-api/internal/application/ports"
	"github.com/jhoicas/boutique-api/internal/domain"
	"github.com/jhoicas/boutique-api/internal/domain/entity"
)

func seedVariant(t *testing.T, s *Store, stock int) *entity.Variant {
	t.Helper()
	ctx := context.Background()
	repos := s.Repos()
	require.NoError(t, repos.Products.Create(ctx, &entity.Product{ID: "p1", Name: "Blusa", BasePrice: decimal.NewFromInt(100), Active: true}))
	v := &entity.Variant{ID: "v1", ProductID: "p1", SKU: "BL-S-RED", Size: "S", Color: "red", Stock: stock, UnitCost: decimal.NewFromInt(40)}
	require.NoError(t, repos.Variants.Create(ctx, v))
	return v
}

func TestTxRunner_RollbackRestauraEstado(t *testing.T) {
	s := NewStore()
	seedVariant(t, s, 5)
	runner := NewTxRunner(s)
	ctx := context.Background()
	boom := errors.New("boom")

	err := runner.Run(ctx, func(r ports.Repos) error {
		_, err := r.Variants.Reserve(ctx, "v1", 3)
		require.NoError(t, err)
		require.NoError(t, r.Finance.Create(ctx, &entity.FinanceEntry{ID: "f1", Type: entity.FinanceTypeExpense, Amount: decimal.NewFromInt(1)}))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	v, err := s.Repos().Variants.GetByID(ctx, "v1")
	require.NoError(t, err)
	assert.Equal(t, 0, v.Reserved)
	e, err := s.Repos().Finance.GetByID(ctx, "f1")
	require.NoError(t, err)
	assert.Nil(t, e)
}

func TestVariantRepo_GuardasDeStock(t *testing.T) {
	s := NewStore()
	seedVariant(t, s, 2)
	ctx := context.Background()
	variants := s.Repos().Variants

	_, err := variants.Reserve(ctx, "v1", 3)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	_, err = variants.ConfirmDeduction(ctx, "v1", 1)
	assert.ErrorIs(t, err, domain.ErrReservationMismatch)

	v, err := variants.Release(ctx, "v1", 10)
	require.NoError(t, err)
	assert.Equal(t, 0, v.Reserved)

	_, err = variants.Restore(ctx, "nope", 1)
	assert.ErrorIs(t, err, domain.ErrVariantNotFound)
}

func TestVariantRepo_ReservasConcurrentesNoSobrevenden(t *testing.T) {
	s := NewStore()
	seedVariant(t, s, 10)
	ctx := context.Background()
	variants := s.Repos().Variants

	var wg sync.WaitGroup
	var mu sync.Mutex
	ok := 0
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := variants.Reserve(ctx, "v1", 1); err == nil {
				mu.Lock()
				ok++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	v, err := variants.GetByID(ctx, "v1")
	require.NoError(t, err)
	assert.Equal(t, 10, ok)
	assert.Equal(t, 10, v.Reserved)
	assert.Equal(t, 10, v.Stock)
}

func TestFinanceEntryRepo_SumAmountIgnoraReversados(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	fin := s.Repos().Finance
	now := time.Now().UTC()

	require.NoError(t, fin.Create(ctx, &entity.FinanceEntry{ID: "a", Type: entity.FinanceTypeExpense, Category: entity.FinanceCategoryRent, Amount: decimal.NewFromInt(100), Date: now, Source: entity.FinanceSourceManual}))
	require.NoError(t, fin.Create(ctx, &entity.FinanceEntry{ID: "b", Type: entity.FinanceTypeExpense, Category: entity.FinanceCategoryInventory, Amount: decimal.NewFromInt(50), Date: now, Source: entity.FinanceSourceManual}))
	require.NoError(t, fin.Create(ctx, &entity.FinanceEntry{ID: "c", Type: entity.FinanceTypeExpense, Category: entity.FinanceCategoryRent, Amount: decimal.NewFromInt(7), Date: now, Source: entity.FinanceSourceManual}))
	require.NoError(t, fin.MarkReversed(ctx, "c", now))

	sum, err := fin.SumAmount(ctx, entity.FinanceTypeExpense, []string{entity.FinanceCategoryInventory}, nil, nil)
	require.NoError(t, err)
	assert.True(t, sum.Equal(decimal.NewFromInt(100)))

	assert.ErrorIs(t, fin.MarkReversed(ctx, "c", now), domain.ErrEntryNotFound)

	list, err := fin.ListInRange(ctx, nil, nil, 10, 0)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestFinanceEntryRepo_UnMovimientoDeSistemaPorRelacion(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	fin := s.Repos().Finance
	orderID := "o1"
	mk := func(id string) *entity.FinanceEntry {
		rel := orderID
		return &entity.FinanceEntry{ID: id, Type: entity.FinanceTypeExpense, Category: entity.FinanceCategoryShipping,
			Amount: decimal.NewFromInt(10), Source: entity.FinanceSourceSystemShipping, RelatedID: &rel}
	}
	require.NoError(t, fin.Create(ctx, mk("s1")))
	assert.ErrorIs(t, fin.Create(ctx, mk("s2")), domain.ErrDuplicate)

	exists, err := fin.ExistsActive(ctx, entity.FinanceSourceSystemShipping, orderID)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestOutboxRepo_FetchPendingRespetaIntentos(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	ob := s.Repos().Outbox
	require.NoError(t, ob.Create(ctx, &entity.OutboxEvent{ID: "e1", EventType: entity.EventOrderCreated}))
	require.NoError(t, ob.Create(ctx, &entity.OutboxEvent{ID: "e2", EventType: entity.EventOrderPaid}))

	require.NoError(t, ob.MarkFailed(ctx, "e1", "broker caído"))
	require.NoError(t, ob.MarkPublished(ctx, "e2", time.Now()))

	pending, err := ob.FetchPending(ctx, 10, 1)
	require.NoError(t, err)
	assert.Empty(t, pending)

	pending, err = ob.FetchPending(ctx, 10, 3)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "e1", pending[0].ID)
	assert.Equal(t, "broker caído", pending[0].LastError)
}
