// Package finance contiene los casos de uso del libro de caja y del estado de resultados.
package finance

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/boutique-api/internal/application/ports"
	"github.com/jhoicas/boutique-api/internal/domain"
	"github.com/jhoicas/boutique-api/internal/domain/entity"
	"github.com/jhoicas/boutique-api/pkg/logger"
)

const defaultPageSize = 50

// PurchaseReverser deshace el efecto físico de una compra dentro de la transacción del llamador.
type PurchaseReverser interface {
	ReversePurchaseInTx(ctx context.Context, r ports.Repos, logID string, now time.Time) (*entity.Variant, error)
}

// LedgerUseCase movimientos de caja manuales, listado y reverso compensatorio.
type LedgerUseCase struct {
	txRunner  ports.TxRunner
	repos     ports.Repos
	purchases PurchaseReverser
	metrics   ports.Metrics
	log       *logger.Logger
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(txRunner ports.TxRunner, repos ports.Repos, purchases PurchaseReverser, metrics ports.Metrics, log *logger.Logger) *LedgerUseCase {
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	return &LedgerUseCase{
		txRunner:  txRunner,
		repos:     repos,
		purchases: purchases,
		metrics:   metrics,
		log:       log.Component("finance"),
	}
}

// ManualEntryInput datos de un movimiento manual. Date nil = ahora.
type ManualEntryInput struct {
	Type        string
	Category    string
	Amount      decimal.Decimal
	Date        *time.Time
	Description string
}

// AddManualEntry registra un movimiento con origen manual.
func (uc *LedgerUseCase) AddManualEntry(ctx context.Context, in ManualEntryInput) (*entity.FinanceEntry, error) {
	if !entity.ValidFinanceType(in.Type) || !entity.ValidFinanceCategory(in.Category) || !in.Amount.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now().UTC()
	date := now
	if in.Date != nil {
		date = in.Date.UTC()
	}
	e := &entity.FinanceEntry{
		ID:          uuid.New().String(),
		Type:        in.Type,
		Category:    in.Category,
		Amount:      in.Amount,
		Date:        date,
		Source:      entity.FinanceSourceManual,
		Description: in.Description,
		CreatedAt:   now,
	}
	if err := uc.repos.Finance.Create(ctx, e); err != nil {
		return nil, err
	}
	uc.log.Info().Str("entry_id", e.ID).Str("type", e.Type).Str("category", e.Category).
		Str("amount", e.Amount.String()).Msg("movimiento manual registrado")
	return e, nil
}

// ListEntries lista movimientos vigentes en [from, to] (nil = sin límite), del más reciente al más antiguo.
func (uc *LedgerUseCase) ListEntries(ctx context.Context, from, to *time.Time, limit, offset int) ([]*entity.FinanceEntry, error) {
	if from != nil && to != nil && from.After(*to) {
		return nil, domain.ErrInvalidInput
	}
	if limit <= 0 {
		limit = defaultPageSize
	}
	return uc.repos.Finance.ListInRange(ctx, from, to, limit, offset)
}

// ReverseTransaction marca el movimiento como reversado y, si es una compra del sistema, deshace
// el stock y el costo que generó. Todo dentro de una transacción.
func (uc *LedgerUseCase) ReverseTransaction(ctx context.Context, entryID string) (*entity.FinanceEntry, error) {
	if entryID == "" {
		return nil, domain.ErrEntryNotFound
	}
	now := time.Now().UTC()

	var out *entity.FinanceEntry
	err := uc.txRunner.Run(ctx, func(r ports.Repos) error {
		e, err := r.Finance.GetForUpdate(ctx, entryID)
		if err != nil {
			return err
		}
		if e == nil || e.IsReversed() {
			return domain.ErrEntryNotFound
		}

		// system_shipping, system_return y manual no tienen efecto físico que deshacer.
		if e.Source == entity.FinanceSourceSystemPurchase && e.RelatedID != nil {
			if _, err := uc.purchases.ReversePurchaseInTx(ctx, r, *e.RelatedID, now); err != nil {
				return err
			}
		}

		if err := r.Finance.MarkReversed(ctx, e.ID, now); err != nil {
			return err
		}
		e.ReversedAt = &now
		out = e
		return nil
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("entry_id", entryID).Msg("reverso rechazado")
		return nil, err
	}

	uc.metrics.FinanceReversal()
	uc.log.Info().Str("entry_id", entryID).Str("source", out.Source).Msg("movimiento reversado")
	return out, nil
}
