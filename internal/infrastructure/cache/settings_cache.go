package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	redis "github.com/redis/go-redis/v9"
	"github.com/jhoicas/boutique-api/internal/application/ports"
	"github.com/jhoicas/boutique-api/internal/domain/entity"
)

var _ ports.SettingsCache = (*RedisSettingsCache)(nil)

// SettingsKey clave única de los ajustes en Redis.
const SettingsKey = "boutique:store_settings"

// RedisSettingsCache guarda los ajustes de la tienda como JSON con TTL.
type RedisSettingsCache struct {
	client *redis.Client
	key    string
}

// NewRedisSettingsCache abre el cliente; no verifica conexión (usar Ping).
func NewRedisSettingsCache(addr, password string, db int) *RedisSettingsCache {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &RedisSettingsCache{client: client, key: SettingsKey}
}

func (c *RedisSettingsCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisSettingsCache) Close() error {
	return c.client.Close()
}

// cachedSettings forma serializada; los decimales viajan como texto para no perder precisión.
type cachedSettings struct {
	ShippingFee           string    `json:"shipping_fee"`
	FreeShippingThreshold string    `json:"free_shipping_threshold"`
	VATRate               string    `json:"vat_rate"`
	UpdatedAt             time.Time `json:"updated_at"`
}

func (c *RedisSettingsCache) Get(ctx context.Context) (*entity.StoreSettings, error) {
	val, err := c.client.Get(ctx, c.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get settings: %w", err)
	}
	var cs cachedSettings
	if err := json.Unmarshal(val, &cs); err != nil {
		return nil, fmt.Errorf("decode settings: %w", err)
	}
	return cs.toEntity()
}

func (c *RedisSettingsCache) Set(ctx context.Context, s *entity.StoreSettings, ttl time.Duration) error {
	if s == nil {
		return nil
	}
	payload, err := json.Marshal(cachedSettings{
		ShippingFee:           s.ShippingFee.String(),
		FreeShippingThreshold: s.FreeShippingThreshold.String(),
		VATRate:               s.VATRate.String(),
		UpdatedAt:             s.UpdatedAt,
	})
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key, payload, ttl).Err()
}

func (c *RedisSettingsCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, c.key).Err()
}
