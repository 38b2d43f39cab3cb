package analytics

import (
	"context"

	"github.com/jhoicas/inventario-dashboard/internal/domain/entity"
)

// ProductSource listado completo de productos (más reciente primero), normalmente cacheado.
type ProductSource interface {
	Products(ctx context.Context) ([]*entity.Product, error)
}

// SalesSource unidades vendidas por producto, agregadas en una sola lectura.
type SalesSource interface {
	UnitsSoldByProduct(ctx context.Context) (map[string]int, error)
}

// MovementSource últimos movimientos del libro (más reciente primero).
type MovementSource interface {
	RecentMovements(ctx context.Context) ([]*entity.StockMovement, error)
}
