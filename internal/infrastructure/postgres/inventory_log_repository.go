package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/boutique-api/internal/domain"
	"github.com/jhoicas/boutique-api/internal/domain/entity"
	"github.com/jhoicas/boutique-api/internal/domain/repository"
)

var _ repository.InventoryLogRepository = (*InventoryLogRepo)(nil)

// InventoryLogRepo libro de inventario (solo INSERT). El orden total lo da la columna seq.
type InventoryLogRepo struct {
	q Querier
}

// NewInventoryLogRepository construye el adaptador del libro de inventario.
func NewInventoryLogRepository(q Querier) *InventoryLogRepo {
	return &InventoryLogRepo{q: q}
}

const logColumns = `id, variant_id, kind, quantity, unit_cost, total_value, description, reference_id, prev_stock, prev_unit_cost, created_at`

func scanLog(row pgx.Row) (*entity.InventoryLogEntry, error) {
	var e entity.InventoryLogEntry
	err := row.Scan(&e.ID, &e.VariantID, &e.Kind, &e.Quantity, &e.UnitCost, &e.TotalValue,
		&e.Description, &e.ReferenceID, &e.PrevStock, &e.PrevUnitCost, &e.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *InventoryLogRepo) Create(ctx context.Context, e *entity.InventoryLogEntry) error {
	query := `
		INSERT INTO inventory_logs (` + logColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		e.ID, e.VariantID, e.Kind, e.Quantity, e.UnitCost, e.TotalValue,
		e.Description, e.ReferenceID, e.PrevStock, e.PrevUnitCost, e.CreatedAt,
	)
	if err != nil {
		switch {
		case isForeignKeyViolation(err):
			return domain.ErrVariantNotFound
		case isUniqueViolation(err):
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert inventory log: %w", err)
	}
	return nil
}

func (r *InventoryLogRepo) one(ctx context.Context, query string, arg string) (*entity.InventoryLogEntry, error) {
	e, err := scanLog(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory log: %w", err)
	}
	return e, nil
}

func (r *InventoryLogRepo) GetByID(ctx context.Context, id string) (*entity.InventoryLogEntry, error) {
	return r.one(ctx, `SELECT `+logColumns+` FROM inventory_logs WHERE id = $1`, id)
}

// CostChangedAfter compras o reversos de compra de la variante con seq posterior al de logID.
func (r *InventoryLogRepo) CostChangedAfter(ctx context.Context, variantID, logID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM inventory_logs l
			JOIN inventory_logs ref ON ref.id = $2
			WHERE l.variant_id = $1 AND l.seq > ref.seq
			  AND (l.kind = 'purchase'
			       OR (l.kind = 'adjustment' AND EXISTS (
			           SELECT 1 FROM inventory_logs p
			           WHERE p.id::text = l.reference_id AND p.kind = 'purchase'))))`
	var changed bool
	if err := r.q.QueryRow(ctx, query, variantID, logID).Scan(&changed); err != nil {
		return false, fmt.Errorf("cost changed after: %w", err)
	}
	return changed, nil
}

func (r *InventoryLogRepo) IsReversed(ctx context.Context, purchaseID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM inventory_logs
			WHERE kind = 'adjustment' AND reference_id = $1)`
	var reversed bool
	if err := r.q.QueryRow(ctx, query, purchaseID).Scan(&reversed); err != nil {
		return false, fmt.Errorf("purchase reversed: %w", err)
	}
	return reversed, nil
}

func (r *InventoryLogRepo) ListByVariant(ctx context.Context, variantID string, limit, offset int) ([]*entity.InventoryLogEntry, error) {
	query := `
		SELECT ` + logColumns + ` FROM inventory_logs
		WHERE variant_id = $1
		ORDER BY seq DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, variantID, limitArg(limit), offsetArg(offset))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("list inventory logs: %w", err)
	}
	defer rows.Close()

	var list []*entity.InventoryLogEntry
	for rows.Next() {
		e, err := scanLog(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inventory log: %w", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}
