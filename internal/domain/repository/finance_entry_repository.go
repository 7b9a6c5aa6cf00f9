package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/boutique-api/internal/domain/entity"
)

// FinanceEntryRepository puerto del libro de caja. Las consultas de lectura ignoran los movimientos reversados.
type FinanceEntryRepository interface {
	Create(ctx context.Context, e *entity.FinanceEntry) error
	// GetByID incluye movimientos reversados (el llamador decide).
	GetByID(ctx context.Context, id string) (*entity.FinanceEntry, error)
	GetForUpdate(ctx context.Context, id string) (*entity.FinanceEntry, error)
	// ExistsActive indica si hay un movimiento vigente con ese origen y relación.
	ExistsActive(ctx context.Context, source, relatedID string) (bool, error)
	MarkReversed(ctx context.Context, id string, at time.Time) error
	ListInRange(ctx context.Context, from, to *time.Time, limit, offset int) ([]*entity.FinanceEntry, error)
	// SumAmount suma los movimientos vigentes del tipo dado, excluyendo categorías; from/to nil = sin límite.
	SumAmount(ctx context.Context, typ string, excludeCategories []string, from, to *time.Time) (decimal.Decimal, error)
}
