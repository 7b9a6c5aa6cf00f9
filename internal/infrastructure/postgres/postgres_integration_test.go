package postgres

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	appfinance "github.com/jhoicas/boutique-api/internal/application/finance"
	appinventory "github.com/jhoicas/boutique-api/internal/application/inventory"
	"github.com/jhoicas/boutique-api/internal/application/order"
	"github.com/jhoicas/boutique-api/internal/application/settings"
	"github.com/jhoicas/boutique-api/internal/domain"
	"github.com/jhoicas/boutique-api/internal/domain/entity"
	"github.com/jhoicas/boutique-api/pkg/config"
	"github.com/jhoicas/boutique-api/pkg/logger"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	pool, _ := newTestDB(t)
	return pool
}

// newTestDB levanta un PostgreSQL efímero, aplica las migraciones y devuelve el pool y su DSN.
func newTestDB(t *testing.T) (*pgxpool.Pool, string) {
	t.Helper()
	if testing.Short() {
		t.Skip("integración con PostgreSQL omitida en -short")
	}
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("boutique_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	require.NoError(t, MigrateUp(dsn))

	pool, err := NewPool(ctx, config.DBConfig{DatabaseURL: dsn, MaxConns: 20})
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return pool, dsn
}

func seedVariant(t *testing.T, pool *pgxpool.Pool, stock int, cost string) (*entity.Product, *entity.Variant) {
	t.Helper()
	ctx := context.Background()
	now := time.Now().UTC()
	repos := NewRepos(pool)
	p := &entity.Product{ID: uuid.NewString(), Name: "Vestido lino", BasePrice: dec("250"), Active: true, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, repos.Products.Create(ctx, p))
	v := &entity.Variant{ID: uuid.NewString(), ProductID: p.ID, SKU: "VL-" + uuid.NewString()[:8], Size: "S", Color: "crudo",
		Stock: stock, UnitCost: dec(cost), CreatedAt: now, UpdatedAt: now}
	require.NoError(t, repos.Variants.Create(ctx, v))
	return p, v
}

func TestMigrations_DownUp(t *testing.T) {
	_, dsn := newTestDB(t)

	version, dirty, err := MigrateVersion(dsn)
	require.NoError(t, err)
	assert.EqualValues(t, 2, version)
	assert.False(t, dirty)

	require.NoError(t, MigrateDown(dsn))
	version, _, err = MigrateVersion(dsn)
	require.NoError(t, err)
	assert.EqualValues(t, 0, version)

	require.NoError(t, MigrateUp(dsn))
	require.NoError(t, MigrateUp(dsn))
}

func TestVariantRepo_ReservasConcurrentesNoSobrevenden(t *testing.T) {
	pool := newTestPool(t)
	_, v := seedVariant(t, pool, 10, "100")
	repo := NewVariantRepository(pool)

	var ok, rejected int32
	var wg sync.WaitGroup
	for i := 0; i < 30; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Reserve(context.Background(), v.ID, 1)
			switch {
			case err == nil:
				atomic.AddInt32(&ok, 1)
			case errors.Is(err, domain.ErrInsufficientStock):
				atomic.AddInt32(&rejected, 1)
			default:
				t.Errorf("error inesperado: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.EqualValues(t, 10, ok)
	assert.EqualValues(t, 20, rejected)
	got, err := repo.GetByID(context.Background(), v.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, got.Reserved)
	assert.Equal(t, 10, got.Stock)
}

func TestVariantRepo_Guardas(t *testing.T) {
	pool := newTestPool(t)
	_, v := seedVariant(t, pool, 3, "50")
	repo := NewVariantRepository(pool)
	ctx := context.Background()

	_, err := repo.ConfirmDeduction(ctx, v.ID, 1)
	assert.ErrorIs(t, err, domain.ErrReservationMismatch)

	_, err = repo.Reserve(ctx, uuid.NewString(), 1)
	assert.ErrorIs(t, err, domain.ErrVariantNotFound)

	got, err := repo.Release(ctx, v.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Reserved)

	_, err = repo.Reserve(ctx, v.ID, 2)
	require.NoError(t, err)
	assert.ErrorIs(t, repo.UpdateStockAndCost(ctx, v.ID, 1, dec("50")), domain.ErrInsufficientStock)

	missing, err := repo.GetByID(ctx, "no-es-uuid")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestFinanceEntryRepo_UnSoloMovimientoDeSistemaVigente(t *testing.T) {
	pool := newTestPool(t)
	repo := NewFinanceEntryRepository(pool)
	ctx := context.Background()
	now := time.Now().UTC()
	related := uuid.NewString()

	entry := func() *entity.FinanceEntry {
		return &entity.FinanceEntry{ID: uuid.NewString(), Type: entity.FinanceTypeExpense, Category: entity.FinanceCategoryShipping,
			Amount: dec("15000"), Date: now, Source: entity.FinanceSourceSystemShipping, RelatedID: &related, CreatedAt: now}
	}
	first := entry()
	require.NoError(t, repo.Create(ctx, first))
	assert.ErrorIs(t, repo.Create(ctx, entry()), domain.ErrDuplicate)

	require.NoError(t, repo.MarkReversed(ctx, first.ID, now))
	assert.ErrorIs(t, repo.MarkReversed(ctx, first.ID, now), domain.ErrEntryNotFound)
	require.NoError(t, repo.Create(ctx, entry()))

	total, err := repo.SumAmount(ctx, entity.FinanceTypeExpense, nil, nil, nil)
	require.NoError(t, err)
	assert.True(t, total.Equal(dec("15000")), "total %s", total)

	total, err = repo.SumAmount(ctx, entity.FinanceTypeExpense, []string{entity.FinanceCategoryShipping}, nil, nil)
	require.NoError(t, err)
	assert.True(t, total.IsZero())
}

func TestOrderFlow_SobrePostgres(t *testing.T) {
	pool := newTestPool(t)
	ctx := context.Background()
	_, v := seedVariant(t, pool, 0, "0")
	txRunner := NewTxRunner(pool)
	repos := NewRepos(pool)
	log := logger.Nop()

	purchases := appinventory.NewRecordPurchaseUseCase(txRunner, nil, log)
	_, err := purchases.RecordPurchase(ctx, appinventory.PurchaseInput{VariantID: v.ID, Quantity: 10, UnitCost: dec("100"), RegisterExpense: true})
	require.NoError(t, err)

	provider, err := settings.NewProvider(NewSettingsRepository(pool), nil, entity.StoreSettings{
		ShippingFee: dec("50"), FreeShippingThreshold: dec("1000"), VATRate: dec("0.19"),
	}, time.Minute, log)
	require.NoError(t, err)
	svc := order.NewService(txRunner, repos, appinventory.NewVariantStore(), provider, nil, log)

	o, err := svc.CreateOrder(ctx, order.CheckoutInput{
		Customer: entity.CustomerInfo{Name: "Ana", Email: "ana@example.com"},
		Items:    []order.CheckoutLine{{VariantID: v.ID, Quantity: 4}},
	})
	require.NoError(t, err)
	assert.True(t, o.TotalAmount.Equal(dec("1000")))

	_, changed, err := svc.HandlePayment(ctx, o.ID, true)
	require.NoError(t, err)
	assert.True(t, changed)

	_, err = svc.ShipOrder(ctx, o.ID, "GUIA-1")
	require.NoError(t, err)
	_, err = svc.ShipOrder(ctx, o.ID, "GUIA-2")
	assert.ErrorIs(t, err, domain.ErrOrderNotShippable)

	cancelled, err := svc.CancelOrder(ctx, o.ID, "devolución")
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusCancelled, cancelled.Status)
	require.Len(t, cancelled.Items, 1)

	got, err := repos.Variants.GetByID(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, got.Stock)
	assert.Equal(t, 0, got.Reserved)

	refunds, err := repos.Finance.SumAmount(ctx, entity.FinanceTypeExpense, []string{
		entity.FinanceCategoryInventory, entity.FinanceCategoryShipping,
	}, nil, nil)
	require.NoError(t, err)
	assert.True(t, refunds.Equal(dec("1000")), "refund %s", refunds)

	pending, err := repos.Outbox.FetchPending(ctx, 0, 10)
	require.NoError(t, err)
	assert.Len(t, pending, 4) // created, paid, shipped, cancelled
}

func TestUserRepo_EmailUnicoSinMayusculas(t *testing.T) {
	pool := newTestPool(t)
	ctx := context.Background()
	repo := NewUserRepository(pool)
	now := time.Now().UTC()

	u := &entity.User{ID: uuid.New().String(), Email: "Admin@Boutique.co", PasswordHash: "x", Name: "Admin",
		Role: entity.RoleAdmin, Status: entity.UserStatusActive, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, repo.Create(ctx, u))

	dup := *u
	dup.ID = uuid.New().String()
	dup.Email = "admin@boutique.co"
	assert.ErrorIs(t, repo.Create(ctx, &dup), domain.ErrEmailAlreadyExists)

	got, err := repo.GetByEmail(ctx, "ADMIN@boutique.co")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, u.ID, got.ID)

	require.NoError(t, repo.UpdateStatus(ctx, u.ID, entity.UserStatusDisabled))
	assert.ErrorIs(t, repo.UpdateStatus(ctx, uuid.New().String(), entity.UserStatusDisabled), domain.ErrUserNotFound)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestReversoDeComprasEnCadena_SobrePostgres(t *testing.T) {
	pool := newTestPool(t)
	ctx := context.Background()
	_, v := seedVariant(t, pool, 10, "50")
	txRunner := NewTxRunner(pool)
	repos := NewRepos(pool)
	log := logger.Nop()

	purchases := appinventory.NewRecordPurchaseUseCase(txRunner, nil, log)
	ledger := appfinance.NewLedgerUseCase(txRunner, repos, purchases, nil, log)

	a, err := purchases.RecordPurchase(ctx, appinventory.PurchaseInput{VariantID: v.ID, Quantity: 10, UnitCost: dec("100"), RegisterExpense: true})
	require.NoError(t, err)
	b, err := purchases.RecordPurchase(ctx, appinventory.PurchaseInput{VariantID: v.ID, Quantity: 20, UnitCost: dec("200"), RegisterExpense: true})
	require.NoError(t, err)

	changed, err := repos.InventoryLogs.CostChangedAfter(ctx, v.ID, b.Log.ID)
	require.NoError(t, err)
	assert.False(t, changed)

	_, err = ledger.ReverseTransaction(ctx, a.Expense.ID)
	require.NoError(t, err)

	changed, err = repos.InventoryLogs.CostChangedAfter(ctx, v.ID, b.Log.ID)
	require.NoError(t, err)
	assert.True(t, changed)
	reversed, err := repos.InventoryLogs.IsReversed(ctx, a.Log.ID)
	require.NoError(t, err)
	assert.True(t, reversed)

	_, err = ledger.ReverseTransaction(ctx, b.Expense.ID)
	require.NoError(t, err)

	got, err := repos.Variants.GetByID(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, got.Stock)
	assert.True(t, got.UnitCost.Equal(dec("50")), "unit cost %s", got.UnitCost)
}
