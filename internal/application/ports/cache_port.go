package ports

import (
	"context"
	"time"
)

// Claves de caché por tipo de entidad. Toda escritura invalida la(s) clave(s) afectada(s).
const (
	CacheKeyProducts       = "products"
	CacheKeyStockMovements = "stock_movements"
)

// QueryCache define el puerto de salida para la caché de consultas.
// Los adaptadores (Redis, memoria) serializan el valor; Get decodifica en dest.
//
// Cada clave tiene una generación que Invalidate incrementa. El lector toma Version
// ANTES de consultar el store y la pasa a Set: si hubo una invalidación entre medio,
// Set descarta el valor y la lectura vieja nunca queda en caché.
type QueryCache interface {
	// Get devuelve hit=false sin error cuando la clave no existe o expiró.
	Get(ctx context.Context, key string, dest interface{}) (hit bool, err error)
	Version(ctx context.Context, key string) (uint64, error)
	// Set guarda value solo si la generación de key sigue siendo version.
	Set(ctx context.Context, key string, version uint64, value interface{}) error
	Invalidate(ctx context.Context, keys ...string) error
}

// NopCache caché desactivada: nunca hay hit.
type NopCache struct{}

func (NopCache) Get(context.Context, string, interface{}) (bool, error) { return false, nil }
func (NopCache) Version(context.Context, string) (uint64, error)        { return 0, nil }
func (NopCache) Set(context.Context, string, uint64, interface{}) error { return nil }
func (NopCache) Invalidate(context.Context, ...string) error            { return nil }

// DefaultCacheTTL se usa si el adaptador recibe TTL <= 0.
const DefaultCacheTTL = 2 * time.Minute
