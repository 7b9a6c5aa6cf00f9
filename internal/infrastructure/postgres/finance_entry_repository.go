package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/boutique-api/internal/domain"
	"github.com/jhoicas/boutique-api/internal/domain/entity"
	"github.com/jhoicas/boutique-api/internal/domain/repository"
)

var _ repository.FinanceEntryRepository = (*FinanceEntryRepo)(nil)

// FinanceEntryRepo libro de caja. Solo se actualiza reversed_at; las lecturas agregadas ignoran lo reversado.
type FinanceEntryRepo struct {
	q Querier
}

// NewFinanceEntryRepository construye el adaptador del libro de caja.
func NewFinanceEntryRepository(q Querier) *FinanceEntryRepo {
	return &FinanceEntryRepo{q: q}
}

const financeColumns = `id, type, category, amount, date, source, related_id, description, created_at, reversed_at`

func scanFinanceEntry(row pgx.Row) (*entity.FinanceEntry, error) {
	var e entity.FinanceEntry
	err := row.Scan(&e.ID, &e.Type, &e.Category, &e.Amount, &e.Date, &e.Source,
		&e.RelatedID, &e.Description, &e.CreatedAt, &e.ReversedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// Create inserta el movimiento. El índice único parcial rechaza un segundo movimiento de sistema vigente por relación.
func (r *FinanceEntryRepo) Create(ctx context.Context, e *entity.FinanceEntry) error {
	query := `
		INSERT INTO finance_entries (` + financeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		e.ID, e.Type, e.Category, e.Amount, e.Date, e.Source,
		e.RelatedID, e.Description, e.CreatedAt, e.ReversedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert finance entry: %w", err)
	}
	return nil
}

func (r *FinanceEntryRepo) get(ctx context.Context, query, id string) (*entity.FinanceEntry, error) {
	e, err := scanFinanceEntry(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get finance entry: %w", err)
	}
	return e, nil
}

func (r *FinanceEntryRepo) GetByID(ctx context.Context, id string) (*entity.FinanceEntry, error) {
	return r.get(ctx, `SELECT `+financeColumns+` FROM finance_entries WHERE id = $1`, id)
}

func (r *FinanceEntryRepo) GetForUpdate(ctx context.Context, id string) (*entity.FinanceEntry, error) {
	return r.get(ctx, `SELECT `+financeColumns+` FROM finance_entries WHERE id = $1 FOR UPDATE`, id)
}

func (r *FinanceEntryRepo) ExistsActive(ctx context.Context, source, relatedID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM finance_entries
			WHERE source = $1 AND related_id = $2 AND reversed_at IS NULL
		)`
	var exists bool
	if err := r.q.QueryRow(ctx, query, source, relatedID).Scan(&exists); err != nil {
		return false, fmt.Errorf("exists finance entry: %w", err)
	}
	return exists, nil
}

func (r *FinanceEntryRepo) MarkReversed(ctx context.Context, id string, at time.Time) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE finance_entries SET reversed_at = $2 WHERE id = $1 AND reversed_at IS NULL`, id, at)
	if err != nil {
		if isNoRows(err) {
			return domain.ErrEntryNotFound
		}
		return fmt.Errorf("reverse finance entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrEntryNotFound
	}
	return nil
}

func (r *FinanceEntryRepo) ListInRange(ctx context.Context, from, to *time.Time, limit, offset int) ([]*entity.FinanceEntry, error) {
	query := `
		SELECT ` + financeColumns + ` FROM finance_entries
		WHERE reversed_at IS NULL
		  AND ($1::timestamptz IS NULL OR date >= $1)
		  AND ($2::timestamptz IS NULL OR date <= $2)
		ORDER BY date DESC, created_at DESC
		LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(ctx, query, from, to, limitArg(limit), offsetArg(offset))
	if err != nil {
		return nil, fmt.Errorf("list finance entries: %w", err)
	}
	defer rows.Close()

	var list []*entity.FinanceEntry
	for rows.Next() {
		e, err := scanFinanceEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan finance entry: %w", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

func (r *FinanceEntryRepo) SumAmount(ctx context.Context, typ string, excludeCategories []string, from, to *time.Time) (decimal.Decimal, error) {
	if excludeCategories == nil {
		// ANY(NULL) anularía todo el filtro.
		excludeCategories = []string{}
	}
	query := `
		SELECT COALESCE(SUM(amount), 0) FROM finance_entries
		WHERE reversed_at IS NULL
		  AND type = $1
		  AND NOT (category = ANY($2))
		  AND ($3::timestamptz IS NULL OR date >= $3)
		  AND ($4::timestamptz IS NULL OR date <= $4)`
	var total decimal.Decimal
	if err := r.q.QueryRow(ctx, query, typ, excludeCategories, from, to).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("sum finance entries: %w", err)
	}
	return total, nil
}
