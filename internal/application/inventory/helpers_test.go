package inventory

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/jhoicas/boutique-api/internal/domain/entity"
	"github.com/jhoicas/boutique-api/internal/infrastructure/memory"
	"github.com/jhoicas/boutique-api/pkg/logger"
)

type fixture struct {
	store    *memory.Store
	runner   *memory.TxRunner
	purchase *RecordPurchaseUseCase
	adjust   *AdjustStockUseCase
}

func newFixture(t *testing.T, stock int, cost string) *fixture {
	t.Helper()
	s := memory.NewStore()
	ctx := context.Background()
	repos := s.Repos()
	require.NoError(t, repos.Products.Create(ctx, &entity.Product{ID: "p1", Name: "Vestido", BasePrice: decimal.NewFromInt(300), Active: true}))
	require.NoError(t, repos.Variants.Create(ctx, &entity.Variant{
		ID: "v1", ProductID: "p1", SKU: "VS-M-BLK", Size: "M", Color: "black",
		Stock: stock, UnitCost: decimal.RequireFromString(cost),
	}))
	runner := memory.NewTxRunner(s)
	return &fixture{
		store:    s,
		runner:   runner,
		purchase: NewRecordPurchaseUseCase(runner, nil, logger.Nop()),
		adjust:   NewAdjustStockUseCase(runner, repos, logger.Nop()),
	}
}

func (f *fixture) variant(t *testing.T) *entity.Variant {
	t.Helper()
	v, err := f.store.Repos().Variants.GetByID(context.Background(), "v1")
	require.NoError(t, err)
	require.NotNil(t, v)
	return v
}
