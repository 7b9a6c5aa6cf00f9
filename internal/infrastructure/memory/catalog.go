package memory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/boutique-api/internal/domain"
	"github.com/jhoicas/boutique-api/internal/domain/entity"
	"github.com/jhoicas/boutique-api/internal/domain/repository"
)

var (
	_ repository.ProductRepository = (*ProductRepo)(nil)
	_ repository.VariantRepository = (*VariantRepo)(nil)
)

// ProductRepo productos en memoria.
type ProductRepo struct{ view }

func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	return r.do(func(st *state) error {
		if _, ok := st.products[p.ID]; ok {
			return domain.ErrDuplicate
		}
		st.products[p.ID] = cloneProduct(p)
		return nil
	})
}

func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	var out *entity.Product
	err := r.do(func(st *state) error {
		if p, ok := st.products[id]; ok {
			out = cloneProduct(p)
		}
		return nil
	})
	return out, err
}

func (r *ProductRepo) List(_ context.Context, limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	err := r.do(func(st *state) error {
		all := make([]*entity.Product, 0, len(st.products))
		for _, p := range st.products {
			all = append(all, p)
		}
		sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
		from, to := page(len(all), limit, offset)
		for _, p := range all[from:to] {
			out = append(out, cloneProduct(p))
		}
		return nil
	})
	return out, err
}

// VariantRepo variantes en memoria. Cada operación de stock es una sola sección crítica.
type VariantRepo struct{ view }

func (r *VariantRepo) Create(_ context.Context, v *entity.Variant) error {
	return r.do(func(st *state) error {
		if _, ok := st.products[v.ProductID]; !ok {
			return domain.ErrProductNotFound
		}
		for _, existing := range st.variants {
			if existing.ID == v.ID || existing.SKU == v.SKU {
				return domain.ErrDuplicate
			}
		}
		st.variants[v.ID] = cloneVariant(v)
		return nil
	})
}

func (r *VariantRepo) GetByID(_ context.Context, id string) (*entity.Variant, error) {
	var out *entity.Variant
	err := r.do(func(st *state) error {
		if v, ok := st.variants[id]; ok {
			out = cloneVariant(v)
		}
		return nil
	})
	return out, err
}

// GetForUpdate en memoria equivale a GetByID: la transacción ya tiene el almacén bloqueado.
func (r *VariantRepo) GetForUpdate(ctx context.Context, id string) (*entity.Variant, error) {
	return r.GetByID(ctx, id)
}

func (r *VariantRepo) ListByProduct(_ context.Context, productID string) ([]*entity.Variant, error) {
	var out []*entity.Variant
	err := r.do(func(st *state) error {
		for _, v := range st.variants {
			if v.ProductID == productID {
				out = append(out, cloneVariant(v))
			}
		}
		sort.Slice(out, func(i, j int) bool { return out[i].SKU < out[j].SKU })
		return nil
	})
	return out, err
}

func (r *VariantRepo) ListByIDs(_ context.Context, ids []string) (map[string]*entity.Variant, error) {
	out := make(map[string]*entity.Variant, len(ids))
	err := r.do(func(st *state) error {
		for _, id := range ids {
			if v, ok := st.variants[id]; ok {
				out[id] = cloneVariant(v)
			}
		}
		return nil
	})
	return out, err
}

// mutate aplica fn a la variante bajo el mutex y devuelve una copia del resultado.
func (r *VariantRepo) mutate(id string, fn func(v *entity.Variant) error) (*entity.Variant, error) {
	var out *entity.Variant
	err := r.do(func(st *state) error {
		v, ok := st.variants[id]
		if !ok {
			return domain.ErrVariantNotFound
		}
		next := cloneVariant(v)
		if err := fn(next); err != nil {
			return err
		}
		next.UpdatedAt = time.Now().UTC()
		st.variants[id] = next
		out = cloneVariant(next)
		return nil
	})
	return out, err
}

func (r *VariantRepo) Reserve(_ context.Context, id string, qty int) (*entity.Variant, error) {
	return r.mutate(id, func(v *entity.Variant) error {
		if v.Available() < qty {
			return domain.ErrInsufficientStock
		}
		v.Reserved += qty
		return nil
	})
}

func (r *VariantRepo) ConfirmDeduction(_ context.Context, id string, qty int) (*entity.Variant, error) {
	return r.mutate(id, func(v *entity.Variant) error {
		if v.Reserved < qty || v.Stock < qty {
			return domain.ErrReservationMismatch
		}
		v.Stock -= qty
		v.Reserved -= qty
		return nil
	})
}

func (r *VariantRepo) Release(_ context.Context, id string, qty int) (*entity.Variant, error) {
	return r.mutate(id, func(v *entity.Variant) error {
		v.Reserved -= qty
		if v.Reserved < 0 {
			v.Reserved = 0
		}
		return nil
	})
}

func (r *VariantRepo) Restore(_ context.Context, id string, qty int) (*entity.Variant, error) {
	return r.mutate(id, func(v *entity.Variant) error {
		v.Stock += qty
		return nil
	})
}

func (r *VariantRepo) UpdateStockAndCost(_ context.Context, id string, stock int, unitCost decimal.Decimal) error {
	_, err := r.mutate(id, func(v *entity.Variant) error {
		if stock < v.Reserved {
			return domain.ErrInsufficientStock
		}
		v.Stock = stock
		v.UnitCost = unitCost
		return nil
	})
	return err
}
