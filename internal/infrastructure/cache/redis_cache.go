package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/inventario-dashboard/internal/application/ports"
)

var _ ports.QueryCache = (*RedisCache)(nil)

var errStaleVersion = errors.New("generación de caché desactualizada")

// RedisCache caché de consultas sobre Redis. Los valores se guardan como JSON bajo prefix+key
// y la generación de cada clave bajo prefix+key+":gen" (sin TTL).
type RedisCache struct {
	rdb    redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// NewRedisCache construye el adaptador. ttl <= 0 usa ports.DefaultCacheTTL.
func NewRedisCache(rdb redis.UniversalClient, prefix string, ttl time.Duration) *RedisCache {
	if ttl <= 0 {
		ttl = ports.DefaultCacheTTL
	}
	return &RedisCache{rdb: rdb, prefix: prefix, ttl: ttl}
}

// NewRedisClient abre el cliente y verifica la conexión con PING.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return rdb, nil
}

func (c *RedisCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	raw, err := c.rdb.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("redis get %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, fmt.Errorf("redis decode %s: %w", key, err)
	}
	return true, nil
}

// Version lee la generación de key; una clave sin generación vale 0.
func (c *RedisCache) Version(ctx context.Context, key string) (uint64, error) {
	v, err := c.rdb.Get(ctx, c.genKey(key)).Uint64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("redis version %s: %w", key, err)
	}
	return v, nil
}

// Set escribe el valor con WATCH sobre la generación: si cambió (o cambia antes del EXEC)
// el valor se descarta sin error.
func (c *RedisCache) Set(ctx context.Context, key string, version uint64, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("redis encode %s: %w", key, err)
	}
	gen := c.genKey(key)
	err = c.rdb.Watch(ctx, func(tx *redis.Tx) error {
		cur, err := tx.Get(ctx, gen).Uint64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if cur != version {
			return errStaleVersion
		}
		_, err = tx.TxPipelined(ctx, func(p redis.Pipeliner) error {
			p.Set(ctx, c.prefix+key, raw, c.ttl)
			return nil
		})
		return err
	}, gen)
	switch {
	case err == nil, errors.Is(err, errStaleVersion), errors.Is(err, redis.TxFailedErr):
		return nil
	default:
		return fmt.Errorf("redis set %s: %w", key, err)
	}
}

// Invalidate borra los valores e incrementa sus generaciones en una transacción MULTI.
func (c *RedisCache) Invalidate(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	_, err := c.rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		for _, k := range keys {
			p.Del(ctx, c.prefix+k)
			p.Incr(ctx, c.genKey(k))
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis invalidate: %w", err)
	}
	return nil
}

func (c *RedisCache) genKey(key string) string { return c.prefix + key + ":gen" }
