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

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo pedidos y sus líneas. Las líneas se escriben una vez en Create y no cambian.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador de pedidos.
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

const orderColumns = `id, order_number, status, customer_name, customer_email, customer_phone, shipping_address,
	subtotal, shipping_cost, shipping_cost_actual, total_amount, tracking_number, cancelled_reason,
	created_at, updated_at, paid_at, shipped_at, delivered_at, cancelled_at`

const orderItemColumns = `id, order_id, variant_id, quantity, unit_price, product_name, image_url, sku, size, color, unit_cost`

func scanOrder(row pgx.Row) (*entity.Order, error) {
	var o entity.Order
	var status string
	err := row.Scan(&o.ID, &o.OrderNumber, &status,
		&o.Customer.Name, &o.Customer.Email, &o.Customer.Phone, &o.Customer.ShippingAddress,
		&o.Subtotal, &o.ShippingCost, &o.ShippingCostActual, &o.TotalAmount, &o.TrackingNumber, &o.CancelledReason,
		&o.CreatedAt, &o.UpdatedAt, &o.PaidAt, &o.ShippedAt, &o.DeliveredAt, &o.CancelledAt)
	if err != nil {
		return nil, err
	}
	o.Status = entity.OrderStatus(status)
	return &o, nil
}

func statusStrings(statuses []entity.OrderStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}

// Create inserta cabecera y líneas. Llamar dentro de una transacción.
func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	query := `
		INSERT INTO orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`
	_, err := r.q.Exec(ctx, query,
		o.ID, o.OrderNumber, string(o.Status),
		o.Customer.Name, o.Customer.Email, o.Customer.Phone, o.Customer.ShippingAddress,
		o.Subtotal, o.ShippingCost, o.ShippingCostActual, o.TotalAmount, o.TrackingNumber, o.CancelledReason,
		o.CreatedAt, o.UpdatedAt, o.PaidAt, o.ShippedAt, o.DeliveredAt, o.CancelledAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert order: %w", err)
	}

	itemQuery := `
		INSERT INTO order_items (` + orderItemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	for _, it := range o.Items {
		_, err := r.q.Exec(ctx, itemQuery,
			it.ID, o.ID, it.VariantID, it.Quantity, it.UnitPrice,
			it.Snapshot.Name, it.Snapshot.ImageURL, it.Snapshot.SKU, it.Snapshot.Size, it.Snapshot.Color, it.Snapshot.UnitCost,
		)
		if err != nil {
			if isForeignKeyViolation(err) {
				return domain.ErrVariantNotFound
			}
			return fmt.Errorf("insert order item: %w", err)
		}
	}
	return nil
}

func (r *OrderRepo) get(ctx context.Context, query, id string) (*entity.Order, error) {
	o, err := scanOrder(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	if err := r.loadItems(ctx, []*entity.Order{o}); err != nil {
		return nil, err
	}
	return o, nil
}

func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	return r.get(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
}

// GetForUpdate bloquea la cabecera; todas las transiciones pasan por aquí.
func (r *OrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.Order, error) {
	return r.get(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1 FOR UPDATE`, id)
}

func (r *OrderRepo) List(ctx context.Context, status string, limit, offset int) ([]*entity.Order, error) {
	query := `
		SELECT ` + orderColumns + ` FROM orders
		WHERE ($1 = '' OR status = $1)
		ORDER BY created_at DESC, id
		LIMIT $2 OFFSET $3`
	return r.list(ctx, query, status, limitArg(limit), offsetArg(offset))
}

func (r *OrderRepo) ListByStatusInRange(ctx context.Context, statuses []entity.OrderStatus, from, to time.Time) ([]*entity.Order, error) {
	query := `
		SELECT ` + orderColumns + ` FROM orders
		WHERE status = ANY($1) AND created_at >= $2 AND created_at <= $3
		ORDER BY created_at`
	return r.list(ctx, query, statusStrings(statuses), from, to)
}

func (r *OrderRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Order, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	var list []*entity.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, o)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	if err := r.loadItems(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

// loadItems carga las líneas de varios pedidos con una sola consulta.
func (r *OrderRepo) loadItems(ctx context.Context, orders []*entity.Order) error {
	if len(orders) == 0 {
		return nil
	}
	byID := make(map[string]*entity.Order, len(orders))
	ids := make([]string, 0, len(orders))
	for _, o := range orders {
		byID[o.ID] = o
		ids = append(ids, o.ID)
	}
	rows, err := r.q.Query(ctx,
		`SELECT `+orderItemColumns+` FROM order_items WHERE order_id::text = ANY($1) ORDER BY variant_id`, ids)
	if err != nil {
		return fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.OrderItem
		err := rows.Scan(&it.ID, &it.OrderID, &it.VariantID, &it.Quantity, &it.UnitPrice,
			&it.Snapshot.Name, &it.Snapshot.ImageURL, &it.Snapshot.SKU, &it.Snapshot.Size, &it.Snapshot.Color, &it.Snapshot.UnitCost)
		if err != nil {
			return fmt.Errorf("scan order item: %w", err)
		}
		if o := byID[it.OrderID]; o != nil {
			o.Items = append(o.Items, &it)
		}
	}
	return rows.Err()
}

// UpdateStatus persiste solo los campos que cambian con las transiciones; líneas y montos del checkout quedan fijos.
func (r *OrderRepo) UpdateStatus(ctx context.Context, o *entity.Order) error {
	query := `
		UPDATE orders SET
			status = $2, tracking_number = $3, shipping_cost_actual = $4, cancelled_reason = $5,
			updated_at = $6, paid_at = $7, shipped_at = $8, delivered_at = $9, cancelled_at = $10
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		o.ID, string(o.Status), o.TrackingNumber, o.ShippingCostActual, o.CancelledReason,
		o.UpdatedAt, o.PaidAt, o.ShippedAt, o.DeliveredAt, o.CancelledAt,
	)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

func (r *OrderRepo) SumTotalByStatus(ctx context.Context, statuses []entity.OrderStatus) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.q.QueryRow(ctx,
		`SELECT COALESCE(SUM(total_amount), 0) FROM orders WHERE status = ANY($1)`, statusStrings(statuses)).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum orders: %w", err)
	}
	return total, nil
}
