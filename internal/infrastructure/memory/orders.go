package memory

import (
	"context"
	"slices"
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/boutique-api/internal/domain"
	"github.com/jhoicas/boutique-api/internal/domain/entity"
	"github.com/jhoicas/boutique-api/internal/domain/repository"
)

var (
	_ repository.OrderRepository    = (*OrderRepo)(nil)
	_ repository.OutboxRepository   = (*OutboxRepo)(nil)
	_ repository.SettingsRepository = (*SettingsRepo)(nil)
)

// OrderRepo pedidos en memoria.
type OrderRepo struct{ view }

func (r *OrderRepo) find(st *state, id string) *entity.Order {
	for _, o := range st.orders {
		if o.ID == id {
			return o
		}
	}
	return nil
}

func (r *OrderRepo) Create(_ context.Context, o *entity.Order) error {
	return r.do(func(st *state) error {
		for _, existing := range st.orders {
			if existing.ID == o.ID || existing.OrderNumber == o.OrderNumber {
				return domain.ErrDuplicate
			}
		}
		for _, it := range o.Items {
			if _, ok := st.variants[it.VariantID]; !ok {
				return domain.ErrVariantNotFound
			}
		}
		st.orders = append(st.orders, cloneOrder(o))
		return nil
	})
}

func (r *OrderRepo) GetByID(_ context.Context, id string) (*entity.Order, error) {
	var out *entity.Order
	err := r.do(func(st *state) error {
		if o := r.find(st, id); o != nil {
			out = cloneOrder(o)
		}
		return nil
	})
	return out, err
}

func (r *OrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.Order, error) {
	return r.GetByID(ctx, id)
}

// List del más reciente al más antiguo; status vacío = todos.
func (r *OrderRepo) List(_ context.Context, status string, limit, offset int) ([]*entity.Order, error) {
	var out []*entity.Order
	err := r.do(func(st *state) error {
		var all []*entity.Order
		for i := len(st.orders) - 1; i >= 0; i-- {
			if status == "" || string(st.orders[i].Status) == status {
				all = append(all, st.orders[i])
			}
		}
		lo, hi := page(len(all), limit, offset)
		for _, o := range all[lo:hi] {
			out = append(out, cloneOrder(o))
		}
		return nil
	})
	return out, err
}

func (r *OrderRepo) ListByStatusInRange(_ context.Context, statuses []entity.OrderStatus, from, to time.Time) ([]*entity.Order, error) {
	var out []*entity.Order
	err := r.do(func(st *state) error {
		for _, o := range st.orders {
			if slices.Contains(statuses, o.Status) && inRange(o.CreatedAt, &from, &to) {
				out = append(out, cloneOrder(o))
			}
		}
		return nil
	})
	return out, err
}

func (r *OrderRepo) UpdateStatus(_ context.Context, o *entity.Order) error {
	return r.do(func(st *state) error {
		cur := r.find(st, o.ID)
		if cur == nil {
			return domain.ErrOrderNotFound
		}
		next := cloneOrder(o)
		// Las líneas y montos del checkout no cambian.
		next.Items = cur.Items
		next.Subtotal = cur.Subtotal
		next.ShippingCost = cur.ShippingCost
		next.TotalAmount = cur.TotalAmount
		next.CreatedAt = cur.CreatedAt
		*cur = *next
		return nil
	})
}

func (r *OrderRepo) SumTotalByStatus(_ context.Context, statuses []entity.OrderStatus) (decimal.Decimal, error) {
	total := decimal.Zero
	err := r.do(func(st *state) error {
		for _, o := range st.orders {
			if slices.Contains(statuses, o.Status) {
				total = total.Add(o.TotalAmount)
			}
		}
		return nil
	})
	return total, err
}

// OutboxRepo bandeja de salida en memoria.
type OutboxRepo struct{ view }

func (r *OutboxRepo) Create(_ context.Context, e *entity.OutboxEvent) error {
	return r.do(func(st *state) error {
		st.outbox = append(st.outbox, cloneEvent(e))
		return nil
	})
}

func (r *OutboxRepo) FetchPending(_ context.Context, limit, maxAttempts int) ([]*entity.OutboxEvent, error) {
	var out []*entity.OutboxEvent
	err := r.do(func(st *state) error {
		for _, e := range st.outbox {
			if e.PublishedAt != nil || (maxAttempts > 0 && e.Attempts >= maxAttempts) {
				continue
			}
			out = append(out, cloneEvent(e))
			if limit > 0 && len(out) == limit {
				break
			}
		}
		return nil
	})
	return out, err
}

func (r *OutboxRepo) update(id string, fn func(e *entity.OutboxEvent)) error {
	return r.do(func(st *state) error {
		for _, e := range st.outbox {
			if e.ID == id {
				fn(e)
				return nil
			}
		}
		return domain.ErrNotFound
	})
}

func (r *OutboxRepo) MarkPublished(_ context.Context, id string, at time.Time) error {
	return r.update(id, func(e *entity.OutboxEvent) {
		t := at
		e.PublishedAt = &t
		e.Attempts++
		e.LastError = ""
	})
}

func (r *OutboxRepo) MarkFailed(_ context.Context, id string, lastError string) error {
	return r.update(id, func(e *entity.OutboxEvent) {
		e.Attempts++
		e.LastError = lastError
	})
}

// SettingsRepo fila única de ajustes en memoria.
type SettingsRepo struct{ view }

func (r *SettingsRepo) Get(_ context.Context) (*entity.StoreSettings, error) {
	var out *entity.StoreSettings
	err := r.do(func(st *state) error {
		if st.settings != nil {
			s := *st.settings
			out = &s
		}
		return nil
	})
	return out, err
}

func (r *SettingsRepo) Upsert(_ context.Context, s *entity.StoreSettings) error {
	return r.do(func(st *state) error {
		c := *s
		st.settings = &c
		return nil
	})
}
