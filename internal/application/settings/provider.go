// Package settings expone los ajustes de la tienda (envío e IVA) con esquema fijo y valores por defecto.
package settings

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/boutique-api/internal/application/ports"
	"github.com/jhoicas/boutique-api/internal/domain"
	"github.com/jhoicas/boutique-api/internal/domain/entity"
	"github.com/jhoicas/boutique-api/internal/domain/repository"
	"github.com/jhoicas/boutique-api/pkg/logger"
)

var _ ports.SettingsProvider = (*Provider)(nil)

var (
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
)

// Provider lee los ajustes persistidos (o los valores por defecto si no hay fila) a través de la caché.
// Update escribe la fila y luego invalida la caché para que el cambio se vea de inmediato.
type Provider struct {
	repo     repository.SettingsRepository
	cache    ports.SettingsCache
	defaults entity.StoreSettings
	ttl      time.Duration
	log      *logger.Logger
}

// NewProvider valida los valores por defecto y construye el proveedor. cache nil = sin caché.
func NewProvider(repo repository.SettingsRepository, cache ports.SettingsCache, defaults entity.StoreSettings, ttl time.Duration, log *logger.Logger) (*Provider, error) {
	Normalize(&defaults)
	if err := Validate(&defaults); err != nil {
		return nil, err
	}
	return &Provider{repo: repo, cache: cache, defaults: defaults, ttl: ttl, log: log.Component("settings")}, nil
}

// Normalize convierte un IVA expresado como porcentaje (19) en fracción (0.19).
func Normalize(s *entity.StoreSettings) {
	if s.VATRate.GreaterThan(one) {
		s.VATRate = s.VATRate.Div(hundred)
	}
}

// Validate exige envío y umbral no negativos e IVA en [0, 1).
func Validate(s *entity.StoreSettings) error {
	if s.ShippingFee.IsNegative() || s.FreeShippingThreshold.IsNegative() {
		return domain.ErrInvalidInput
	}
	if s.VATRate.IsNegative() || s.VATRate.GreaterThanOrEqual(one) {
		return domain.ErrInvalidInput
	}
	return nil
}

// Get devuelve los ajustes vigentes.
func (p *Provider) Get(ctx context.Context) (*entity.StoreSettings, error) {
	if p.cache != nil {
		cached, err := p.cache.Get(ctx)
		if err != nil {
			p.log.Warn().Err(err).Msg("caché de ajustes no disponible")
		} else if cached != nil {
			return cached, nil
		}
	}

	s, err := p.repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if s == nil {
		d := p.defaults
		s = &d
	}
	Normalize(s)

	if p.cache != nil {
		if err := p.cache.Set(ctx, s, p.ttl); err != nil {
			p.log.Warn().Err(err).Msg("no se pudo guardar ajustes en caché")
		}
	}
	return s, nil
}

// ShippingFee costo de envío vigente.
func (p *Provider) ShippingFee(ctx context.Context) (decimal.Decimal, error) {
	s, err := p.Get(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	return s.ShippingFee, nil
}

// FreeShippingThreshold subtotal desde el cual el envío es gratis (0 = nunca).
func (p *Provider) FreeShippingThreshold(ctx context.Context) (decimal.Decimal, error) {
	s, err := p.Get(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	return s.FreeShippingThreshold, nil
}

// VATRate tasa de IVA como fracción.
func (p *Provider) VATRate(ctx context.Context) (decimal.Decimal, error) {
	s, err := p.Get(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	return s.VATRate, nil
}

// UpdateInput cambios parciales; nil = conservar el valor actual.
type UpdateInput struct {
	ShippingFee           *decimal.Decimal
	FreeShippingThreshold *decimal.Decimal
	VATRate               *decimal.Decimal
}

// Update aplica los cambios, valida y persiste.
func (p *Provider) Update(ctx context.Context, in UpdateInput) (*entity.StoreSettings, error) {
	cur, err := p.Get(ctx)
	if err != nil {
		return nil, err
	}
	next := *cur
	if in.ShippingFee != nil {
		next.ShippingFee = *in.ShippingFee
	}
	if in.FreeShippingThreshold != nil {
		next.FreeShippingThreshold = *in.FreeShippingThreshold
	}
	if in.VATRate != nil {
		next.VATRate = *in.VATRate
	}
	Normalize(&next)
	if err := Validate(&next); err != nil {
		return nil, err
	}
	next.UpdatedAt = time.Now().UTC()

	if err := p.repo.Upsert(ctx, &next); err != nil {
		return nil, err
	}
	if p.cache != nil {
		if err := p.cache.Invalidate(ctx); err != nil {
			p.log.Error().Err(err).Msg("no se pudo invalidar la caché de ajustes")
		}
	}
	p.log.Info().
		Str("shipping_fee", next.ShippingFee.String()).
		Str("free_shipping_threshold", next.FreeShippingThreshold.String()).
		Str("vat_rate", next.VATRate.String()).
		Msg("ajustes actualizados")
	return &next, nil
}
