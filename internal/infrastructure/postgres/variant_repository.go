package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/boutique-api/internal/domain"
	"github.com/jhoicas/boutique-api/internal/domain/entity"
	"github.com/jhoicas/boutique-api/internal/domain/repository"
)

var _ repository.VariantRepository = (*VariantRepo)(nil)

// VariantRepo variantes sobre PostgreSQL. Cada operación de stock es un UPDATE condicional:
// la guarda va en el WHERE, así dos reservas concurrentes nunca dejan reserved > stock.
type VariantRepo struct {
	q Querier
}

// NewVariantRepository construye el adaptador de variantes (pool o tx).
func NewVariantRepository(q Querier) *VariantRepo {
	return &VariantRepo{q: q}
}

const variantColumns = `id, product_id, sku, size, color, stock, reserved, unit_cost, price_override, created_at, updated_at`

func scanVariant(row pgx.Row) (*entity.Variant, error) {
	var v entity.Variant
	err := row.Scan(&v.ID, &v.ProductID, &v.SKU, &v.Size, &v.Color, &v.Stock, &v.Reserved,
		&v.UnitCost, &v.PriceOverride, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *VariantRepo) Create(ctx context.Context, v *entity.Variant) error {
	query := `
		INSERT INTO variants (` + variantColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		v.ID, v.ProductID, v.SKU, v.Size, v.Color, v.Stock, v.Reserved,
		v.UnitCost, v.PriceOverride, v.CreatedAt, v.UpdatedAt,
	)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return domain.ErrDuplicate
		case isForeignKeyViolation(err):
			return domain.ErrProductNotFound
		}
		return fmt.Errorf("insert variant: %w", err)
	}
	return nil
}

func (r *VariantRepo) get(ctx context.Context, query, id string) (*entity.Variant, error) {
	v, err := scanVariant(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get variant: %w", err)
	}
	return v, nil
}

func (r *VariantRepo) GetByID(ctx context.Context, id string) (*entity.Variant, error) {
	return r.get(ctx, `SELECT `+variantColumns+` FROM variants WHERE id = $1`, id)
}

func (r *VariantRepo) GetForUpdate(ctx context.Context, id string) (*entity.Variant, error) {
	return r.get(ctx, `SELECT `+variantColumns+` FROM variants WHERE id = $1 FOR UPDATE`, id)
}

func (r *VariantRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.Variant, error) {
	rows, err := r.q.Query(ctx, `SELECT `+variantColumns+` FROM variants WHERE product_id = $1 ORDER BY sku`, productID)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("list variants: %w", err)
	}
	defer rows.Close()

	var list []*entity.Variant
	for rows.Next() {
		v, err := scanVariant(rows)
		if err != nil {
			return nil, fmt.Errorf("scan variant: %w", err)
		}
		list = append(list, v)
	}
	return list, rows.Err()
}

func (r *VariantRepo) ListByIDs(ctx context.Context, ids []string) (map[string]*entity.Variant, error) {
	out := make(map[string]*entity.Variant, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	rows, err := r.q.Query(ctx, `SELECT `+variantColumns+` FROM variants WHERE id::text = ANY($1)`, ids)
	if err != nil {
		return nil, fmt.Errorf("list variants by id: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		v, err := scanVariant(rows)
		if err != nil {
			return nil, fmt.Errorf("scan variant: %w", err)
		}
		out[v.ID] = v
	}
	return out, rows.Err()
}

// guarded ejecuta un UPDATE ... RETURNING. Si no afecta filas distingue variante inexistente de guarda incumplida.
func (r *VariantRepo) guarded(ctx context.Context, op, set, guard string, id string, qty int, guardErr error) (*entity.Variant, error) {
	query := `UPDATE variants SET ` + set + `, updated_at = now() WHERE id = $1`
	if guard != "" {
		query += ` AND ` + guard
	}
	query += ` RETURNING ` + variantColumns
	v, err := scanVariant(r.q.QueryRow(ctx, query, id, qty))
	if err == nil {
		return v, nil
	}
	if !isNoRows(err) {
		if isCheckViolation(err) {
			return nil, guardErr
		}
		return nil, fmt.Errorf("%s variant: %w", op, err)
	}
	existing, gerr := r.GetByID(ctx, id)
	if gerr != nil {
		return nil, gerr
	}
	if existing == nil {
		return nil, domain.ErrVariantNotFound
	}
	if guardErr == nil {
		return nil, errors.New(op + " variant: sin filas afectadas")
	}
	return nil, guardErr
}

func (r *VariantRepo) Reserve(ctx context.Context, id string, qty int) (*entity.Variant, error) {
	return r.guarded(ctx, "reserve", `reserved = reserved + $2`, `stock - reserved >= $2`, id, qty, domain.ErrInsufficientStock)
}

func (r *VariantRepo) ConfirmDeduction(ctx context.Context, id string, qty int) (*entity.Variant, error) {
	return r.guarded(ctx, "confirm", `stock = stock - $2, reserved = reserved - $2`, `reserved >= $2 AND stock >= $2`, id, qty, domain.ErrReservationMismatch)
}

// Release nunca deja reserved negativo.
func (r *VariantRepo) Release(ctx context.Context, id string, qty int) (*entity.Variant, error) {
	return r.guarded(ctx, "release", `reserved = GREATEST(reserved - $2, 0)`, "", id, qty, nil)
}

func (r *VariantRepo) Restore(ctx context.Context, id string, qty int) (*entity.Variant, error) {
	return r.guarded(ctx, "restore", `stock = stock + $2`, "", id, qty, nil)
}

func (r *VariantRepo) UpdateStockAndCost(ctx context.Context, id string, stock int, unitCost decimal.Decimal) error {
	query := `
		UPDATE variants SET stock = $2, unit_cost = $3, updated_at = now()
		WHERE id = $1 AND reserved <= $2`
	tag, err := r.q.Exec(ctx, query, id, stock, unitCost)
	if err != nil {
		if isCheckViolation(err) {
			return domain.ErrInsufficientStock
		}
		return fmt.Errorf("update variant stock: %w", err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}
	existing, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return domain.ErrVariantNotFound
	}
	return domain.ErrInsufficientStock
}
