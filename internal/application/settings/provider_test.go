package settings

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/jhoicas/boutique-api/internal/domain"
	"github.com/jhoicas/boutique-api/internal/domain/entity"
	"github.com/jhoicas/boutique-api/internal/infrastructure/memory"
	"github.com/jhoicas/boutique-api/pkg/logger"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// fakeCache caché en memoria para verificar lecturas e invalidaciones.
type fakeCache struct {
	value       *entity.StoreSettings
	sets        int
	invalidated int
}

func (c *fakeCache) Get(_ context.Context) (*entity.StoreSettings, error) { return c.value, nil }
func (c *fakeCache) Set(_ context.Context, s *entity.StoreSettings, _ time.Duration) error {
	v := *s
	c.value = &v
	c.sets++
	return nil
}
func (c *fakeCache) Invalidate(_ context.Context) error {
	c.value = nil
	c.invalidated++
	return nil
}

func defaults() entity.StoreSettings {
	return entity.StoreSettings{ShippingFee: dec("15000"), FreeShippingThreshold: dec("200000"), VATRate: dec("19")}
}

func TestProvider_ValoresPorDefectoNormalizados(t *testing.T) {
	p, err := NewProvider(memory.NewStore().Settings(), nil, defaults(), time.Minute, logger.Nop())
	require.NoError(t, err)

	vat, err := p.VATRate(context.Background())
	require.NoError(t, err)
	assert.True(t, vat.Equal(dec("0.19")))

	fee, err := p.ShippingFee(context.Background())
	require.NoError(t, err)
	assert.True(t, fee.Equal(dec("15000")))
}

func TestProvider_DefectoInvalido(t *testing.T) {
	d := defaults()
	d.ShippingFee = dec("-1")
	_, err := NewProvider(memory.NewStore().Settings(), nil, d, time.Minute, logger.Nop())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProvider_UpdateInvalidaCache(t *testing.T) {
	cache := &fakeCache{}
	p, err := NewProvider(memory.NewStore().Settings(), cache, defaults(), time.Minute, logger.Nop())
	require.NoError(t, err)
	ctx := context.Background()

	_, err = p.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.sets)

	fee := dec("9000")
	updated, err := p.Update(ctx, UpdateInput{ShippingFee: &fee})
	require.NoError(t, err)
	assert.True(t, updated.ShippingFee.Equal(fee))
	assert.True(t, updated.VATRate.Equal(dec("0.19")))
	assert.Equal(t, 1, cache.invalidated)

	got, err := p.ShippingFee(ctx)
	require.NoError(t, err)
	assert.True(t, got.Equal(fee))
}

func TestProvider_UpdateRechazaIVAFueraDeRango(t *testing.T) {
	p, err := NewProvider(memory.NewStore().Settings(), nil, defaults(), time.Minute, logger.Nop())
	require.NoError(t, err)

	vat := dec("100")
	_, err = p.Update(context.Background(), UpdateInput{VATRate: &vat})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	neg := dec("-5")
	_, err = p.Update(context.Background(), UpdateInput{FreeShippingThreshold: &neg})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
