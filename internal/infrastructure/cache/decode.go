package cache

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/boutique-api/internal/domain/entity"
)

func (cs cachedSettings) toEntity() (*entity.StoreSettings, error) {
	fee, err := decimal.NewFromString(cs.ShippingFee)
	if err != nil {
		return nil, fmt.Errorf("decode shipping_fee: %w", err)
	}
	threshold, err := decimal.NewFromString(cs.FreeShippingThreshold)
	if err != nil {
		return nil, fmt.Errorf("decode free_shipping_threshold: %w", err)
	}
	vat, err := decimal.NewFromString(cs.VATRate)
	if err != nil {
		return nil, fmt.Errorf("decode vat_rate: %w", err)
	}
	return &entity.StoreSettings{
		ShippingFee:           fee,
		FreeShippingThreshold: threshold,
		VATRate:               vat,
		UpdatedAt:             cs.UpdatedAt,
	}, nil
}
