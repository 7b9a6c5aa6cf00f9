package inventory

import (
	"context"

	"github.com/jhoicas/boutique-api/internal/domain"
	"github.com/jhoicas/boutique-api/internal/domain/entity"
	"github.com/jhoicas/boutique-api/internal/domain/repository"
)

// VariantStore operaciones atómicas sobre stock y reservas de una variante.
// Siempre reciben el repositorio atado a la transacción del llamador; cada operación es una sola
// sentencia condicional, así que dos llamadas concurrentes sobre la misma variante nunca leen un valor viejo.
type VariantStore struct{}

// NewVariantStore construye el store.
func NewVariantStore() *VariantStore { return &VariantStore{} }

func checkQty(variantID string, qty int) error {
	if variantID == "" || qty <= 0 {
		return domain.ErrInvalidQuantity
	}
	return nil
}

// Reserve aparta qty unidades si stock - reserved >= qty; si no, ErrInsufficientStock.
func (s *VariantStore) Reserve(ctx context.Context, variants repository.VariantRepository, variantID string, qty int) (*entity.Variant, error) {
	if err := checkQty(variantID, qty); err != nil {
		return nil, err
	}
	return variants.Reserve(ctx, variantID, qty)
}

// ConfirmDeduction descuenta de forma permanente unidades ya reservadas (stock y reserved bajan en qty).
func (s *VariantStore) ConfirmDeduction(ctx context.Context, variants repository.VariantRepository, variantID string, qty int) (*entity.Variant, error) {
	if err := checkQty(variantID, qty); err != nil {
		return nil, err
	}
	return variants.ConfirmDeduction(ctx, variantID, qty)
}

// Release libera una reserva; reserved nunca queda negativo.
func (s *VariantStore) Release(ctx context.Context, variants repository.VariantRepository, variantID string, qty int) (*entity.Variant, error) {
	if err := checkQty(variantID, qty); err != nil {
		return nil, err
	}
	return variants.Release(ctx, variantID, qty)
}

// Restore devuelve al stock unidades ya descontadas (cancelación posterior al pago).
func (s *VariantStore) Restore(ctx context.Context, variants repository.VariantRepository, variantID string, qty int) (*entity.Variant, error) {
	if err := checkQty(variantID, qty); err != nil {
		return nil, err
	}
	return variants.Restore(ctx, variantID, qty)
}
