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
	_ repository.InventoryLogRepository = (*InventoryLogRepo)(nil)
	_ repository.FinanceEntryRepository = (*FinanceEntryRepo)(nil)
)

// InventoryLogRepo libro de inventario en memoria (orden de inserción).
type InventoryLogRepo struct{ view }

func (r *InventoryLogRepo) Create(_ context.Context, e *entity.InventoryLogEntry) error {
	return r.do(func(st *state) error {
		if _, ok := st.variants[e.VariantID]; !ok {
			return domain.ErrVariantNotFound
		}
		st.logs = append(st.logs, cloneLog(e))
		return nil
	})
}

func (r *InventoryLogRepo) GetByID(_ context.Context, id string) (*entity.InventoryLogEntry, error) {
	var out *entity.InventoryLogEntry
	err := r.do(func(st *state) error {
		for _, l := range st.logs {
			if l.ID == id {
				out = cloneLog(l)
				break
			}
		}
		return nil
	})
	return out, err
}

func (r *InventoryLogRepo) CostChangedAfter(_ context.Context, variantID, logID string) (bool, error) {
	changed := false
	err := r.do(func(st *state) error {
		kinds := make(map[string]string, len(st.logs))
		after := false
		for _, l := range st.logs {
			kinds[l.ID] = l.Kind
			if l.ID == logID {
				after = true
				continue
			}
			if !after || l.VariantID != variantID {
				continue
			}
			if l.Kind == entity.LogKindPurchase ||
				(l.Kind == entity.LogKindAdjustment && kinds[l.ReferenceID] == entity.LogKindPurchase) {
				changed = true
				return nil
			}
		}
		return nil
	})
	return changed, err
}

func (r *InventoryLogRepo) IsReversed(_ context.Context, purchaseID string) (bool, error) {
	reversed := false
	err := r.do(func(st *state) error {
		for _, l := range st.logs {
			if l.Kind == entity.LogKindAdjustment && l.ReferenceID == purchaseID {
				reversed = true
				break
			}
		}
		return nil
	})
	return reversed, err
}

// ListByVariant del más reciente al más antiguo.
func (r *InventoryLogRepo) ListByVariant(_ context.Context, variantID string, limit, offset int) ([]*entity.InventoryLogEntry, error) {
	var out []*entity.InventoryLogEntry
	err := r.do(func(st *state) error {
		var all []*entity.InventoryLogEntry
		for i := len(st.logs) - 1; i >= 0; i-- {
			if st.logs[i].VariantID == variantID {
				all = append(all, st.logs[i])
			}
		}
		from, to := page(len(all), limit, offset)
		for _, l := range all[from:to] {
			out = append(out, cloneLog(l))
		}
		return nil
	})
	return out, err
}

// FinanceEntryRepo libro de caja en memoria.
type FinanceEntryRepo struct{ view }

func (r *FinanceEntryRepo) Create(_ context.Context, e *entity.FinanceEntry) error {
	return r.do(func(st *state) error {
		for _, existing := range st.finance {
			if existing.ID == e.ID {
				return domain.ErrDuplicate
			}
			// Mismo índice único parcial que en PostgreSQL: un movimiento de sistema vigente por relación.
			if e.IsSystem() && e.RelatedID != nil && existing.RelatedID != nil && existing.ReversedAt == nil &&
				existing.Source == e.Source && *existing.RelatedID == *e.RelatedID {
				return domain.ErrDuplicate
			}
		}
		st.finance = append(st.finance, cloneEntry(e))
		return nil
	})
}

func (r *FinanceEntryRepo) find(st *state, id string) *entity.FinanceEntry {
	for _, e := range st.finance {
		if e.ID == id {
			return e
		}
	}
	return nil
}

func (r *FinanceEntryRepo) GetByID(_ context.Context, id string) (*entity.FinanceEntry, error) {
	var out *entity.FinanceEntry
	err := r.do(func(st *state) error {
		if e := r.find(st, id); e != nil {
			out = cloneEntry(e)
		}
		return nil
	})
	return out, err
}

func (r *FinanceEntryRepo) GetForUpdate(ctx context.Context, id string) (*entity.FinanceEntry, error) {
	return r.GetByID(ctx, id)
}

func (r *FinanceEntryRepo) ExistsActive(_ context.Context, source, relatedID string) (bool, error) {
	found := false
	err := r.do(func(st *state) error {
		for _, e := range st.finance {
			if e.ReversedAt == nil && e.Source == source && e.RelatedID != nil && *e.RelatedID == relatedID {
				found = true
				break
			}
		}
		return nil
	})
	return found, err
}

func (r *FinanceEntryRepo) MarkReversed(_ context.Context, id string, at time.Time) error {
	return r.do(func(st *state) error {
		e := r.find(st, id)
		if e == nil || e.ReversedAt != nil {
			return domain.ErrEntryNotFound
		}
		t := at
		e.ReversedAt = &t
		return nil
	})
}

func inRange(t time.Time, from, to *time.Time) bool {
	if from != nil && t.Before(*from) {
		return false
	}
	if to != nil && t.After(*to) {
		return false
	}
	return true
}

// ListInRange movimientos vigentes ordenados por fecha descendente.
func (r *FinanceEntryRepo) ListInRange(_ context.Context, from, to *time.Time, limit, offset int) ([]*entity.FinanceEntry, error) {
	var out []*entity.FinanceEntry
	err := r.do(func(st *state) error {
		var all []*entity.FinanceEntry
		for _, e := range st.finance {
			if e.ReversedAt == nil && inRange(e.Date, from, to) {
				all = append(all, e)
			}
		}
		slices.SortStableFunc(all, func(a, b *entity.FinanceEntry) int { return b.Date.Compare(a.Date) })
		lo, hi := page(len(all), limit, offset)
		for _, e := range all[lo:hi] {
			out = append(out, cloneEntry(e))
		}
		return nil
	})
	return out, err
}

func (r *FinanceEntryRepo) SumAmount(_ context.Context, typ string, excludeCategories []string, from, to *time.Time) (decimal.Decimal, error) {
	total := decimal.Zero
	err := r.do(func(st *state) error {
		for _, e := range st.finance {
			if e.ReversedAt != nil || e.Type != typ || slices.Contains(excludeCategories, e.Category) {
				continue
			}
			if inRange(e.Date, from, to) {
				total = total.Add(e.Amount)
			}
		}
		return nil
	})
	return total, err
}
