// Package redis persiste la selección de tienda activa y los tokens revocados.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/MultiTienda-api/internal/domain/repository"
	"github.com/jhoicas/MultiTienda-api/pkg/config"
)

const (
	keyNamespace     = "mt"
	activeShopPrefix = "active_shop"
	revokedPrefix    = "revoked_token"
)

var (
	_ repository.ActiveShopStore      = (*Client)(nil)
	_ repository.TokenRevocationStore = (*Client)(nil)
)

type cmdable interface {
	Ping(context.Context) *redis.StatusCmd
	Set(context.Context, string, any, time.Duration) *redis.StatusCmd
	Get(context.Context, string) *redis.StringCmd
	Exists(context.Context, ...string) *redis.IntCmd
	Del(context.Context, ...string) *redis.IntCmd
}

// Client adaptador de sesión sobre Redis.
type Client struct {
	store cmdable
	raw   *redis.Client
	now   func() time.Time
}

// New conecta y verifica con PING.
func New(ctx context.Context, cfg config.RedisConfig) (*Client, error) {
	opts, err := optionsFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	raw := redis.NewClient(opts)
	if err := raw.Ping(ctx).Err(); err != nil {
		_ = raw.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &Client{store: raw, raw: raw, now: time.Now}, nil
}

func optionsFromConfig(cfg config.RedisConfig) (*redis.Options, error) {
	if !cfg.Enabled() {
		return nil, errors.New("redis: se requiere REDIS_URL o REDIS_ADDR")
	}
	if cfg.URL != "" {
		opts, err := redis.ParseURL(cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("parsing redis url: %w", err)
		}
		return opts, nil
	}
	return &redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	}, nil
}

// Ping verifica la conexión (health check).
func (c *Client) Ping(ctx context.Context) error {
	return c.store.Ping(ctx).Err()
}

// Close cierra la conexión subyacente.
func (c *Client) Close() error {
	if c.raw == nil {
		return nil
	}
	return c.raw.Close()
}

// Get tienda activa del propietario; "" si no hay.
func (c *Client) Get(ctx context.Context, ownerID string) (string, error) {
	v, err := c.store.Get(ctx, key(activeShopPrefix, ownerID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("redis get active shop: %w", err)
	}
	return v, nil
}

// Set persiste la tienda activa sin expiración.
func (c *Client) Set(ctx context.Context, ownerID, shopID string) error {
	if err := c.store.Set(ctx, key(activeShopPrefix, ownerID), shopID, 0).Err(); err != nil {
		return fmt.Errorf("redis set active shop: %w", err)
	}
	return nil
}

// Clear elimina la selección.
func (c *Client) Clear(ctx context.Context, ownerID string) error {
	if err := c.store.Del(ctx, key(activeShopPrefix, ownerID)).Err(); err != nil {
		return fmt.Errorf("redis clear active shop: %w", err)
	}
	return nil
}

// Revoke marca el jti como revocado con TTL hasta el vencimiento del token.
func (c *Client) Revoke(ctx context.Context, jti string, until time.Time) error {
	ttl := until.Sub(c.now())
	if ttl <= 0 {
		return nil
	}
	if err := c.store.Set(ctx, key(revokedPrefix, jti), "1", ttl).Err(); err != nil {
		return fmt.Errorf("redis revoke token: %w", err)
	}
	return nil
}

// IsRevoked true si el jti sigue en la lista.
func (c *Client) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := c.store.Exists(ctx, key(revokedPrefix, jti)).Result()
	if err != nil {
		return false, fmt.Errorf("redis is revoked: %w", err)
	}
	return n > 0, nil
}

func key(prefix, id string) string {
	return keyNamespace + ":" + prefix + ":" + id
}
