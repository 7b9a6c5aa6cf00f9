package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/boutique-api/internal/domain/entity"
	"github.com/jhoicas/boutique-api/internal/domain/repository"
)

var _ repository.SettingsRepository = (*SettingsRepo)(nil)

// SettingsRepo fila única (id = 1) de store_settings.
type SettingsRepo struct {
	q Querier
}

// NewSettingsRepository construye el adaptador de ajustes.
func NewSettingsRepository(q Querier) *SettingsRepo {
	return &SettingsRepo{q: q}
}

func (r *SettingsRepo) Get(ctx context.Context) (*entity.StoreSettings, error) {
	var s entity.StoreSettings
	err := r.q.QueryRow(ctx,
		`SELECT shipping_fee, free_shipping_threshold, vat_rate, updated_at FROM store_settings WHERE id = 1`,
	).Scan(&s.ShippingFee, &s.FreeShippingThreshold, &s.VATRate, &s.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get settings: %w", err)
	}
	return &s, nil
}

func (r *SettingsRepo) Upsert(ctx context.Context, s *entity.StoreSettings) error {
	query := `
		INSERT INTO store_settings (id, shipping_fee, free_shipping_threshold, vat_rate, updated_at)
		VALUES (1, $1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET
			shipping_fee = EXCLUDED.shipping_fee,
			free_shipping_threshold = EXCLUDED.free_shipping_threshold,
			vat_rate = EXCLUDED.vat_rate,
			updated_at = EXCLUDED.updated_at`
	if _, err := r.q.Exec(ctx, query, s.ShippingFee, s.FreeShippingThreshold, s.VATRate, s.UpdatedAt); err != nil {
		return fmt.Errorf("upsert settings: %w", err)
	}
	return nil
}
