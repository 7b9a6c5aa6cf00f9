package cache

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"github.com/jhoicas/boutique-api/internal/domain/entity"
)

func TestCachedSettings_ToEntity(t *testing.T) {
	cs := cachedSettings{ShippingFee: "15000", FreeShippingThreshold: "200000.50", VATRate: "0.19"}
	s, err := cs.toEntity()
	require.NoError(t, err)
	assert.Equal(t, "200000.5", s.FreeShippingThreshold.String())
	assert.True(t, s.VATRate.Equal(decimal.RequireFromString("0.19")))

	_, err = cachedSettings{ShippingFee: "x", FreeShippingThreshold: "0", VATRate: "0"}.toEntity()
	assert.Error(t, err)
}

func TestRedisSettingsCache(t *testing.T) {
	if testing.Short() {
		t.Skip("integración con Redis omitida en -short")
	}
	ctx := context.Background()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	endpoint, err := container.Endpoint(ctx, "")
	require.NoError(t, err)
	c := NewRedisSettingsCache(endpoint, "", 0)
	t.Cleanup(func() { _ = c.Close() })
	require.NoError(t, c.Ping(ctx))

	miss, err := c.Get(ctx)
	require.NoError(t, err)
	assert.Nil(t, miss)

	in := &entity.StoreSettings{
		ShippingFee:           decimal.RequireFromString("15000"),
		FreeShippingThreshold: decimal.RequireFromString("200000"),
		VATRate:               decimal.RequireFromString("0.19"),
		UpdatedAt:             time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}
	require.NoError(t, c.Set(ctx, in, time.Minute))
	got, err := c.Get(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.ShippingFee.Equal(in.ShippingFee))
	assert.True(t, got.VATRate.Equal(in.VATRate))
	assert.True(t, got.UpdatedAt.Equal(in.UpdatedAt))

	require.NoError(t, c.Invalidate(ctx))
	got, err = c.Get(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)
}
