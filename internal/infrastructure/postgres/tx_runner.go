package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/boutique-api/internal/application/ports"
)

var _ ports.TxRunner = (*TxRunner)(nil)

// NewRepos arma el juego de repositorios sobre un Querier (pool para lecturas sueltas, tx dentro de Run).
func NewRepos(q Querier) ports.Repos {
	return ports.Repos{
		Products:      NewProductRepository(q),
		Variants:      NewVariantRepository(q),
		InventoryLogs: NewInventoryLogRepository(q),
		Finance:       NewFinanceEntryRepository(q),
		Orders:        NewOrderRepository(q),
		Outbox:        NewOutboxRepository(q),
	}
}

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
// READ COMMITTED alcanza: las filas en disputa se bloquean con FOR UPDATE o se actualizan con guarda.
func (r *TxRunner) Run(ctx context.Context, fn func(r ports.Repos) error) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewRepos(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
