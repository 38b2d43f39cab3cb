package repository

import (
	"context"

	"github.com/jhoicas/inventario-dashboard/internal/domain/entity"
)

// StockMovementRepository puerto del libro de movimientos (solo inserción y lectura).
// Las lecturas traen ProductName y van de más reciente a más antiguo.
type StockMovementRepository interface {
	// Create asigna CreatedAt en el servidor y lo escribe de vuelta en m.
	Create(ctx context.Context, m *entity.StockMovement) error
	ListRecent(ctx context.Context, limit int) ([]*entity.StockMovement, error)
	ListByProduct(ctx context.Context, productID string) ([]*entity.StockMovement, error)
	// UnitsSoldByProduct total de unidades vendidas por producto en todo el libro.
	// Los productos sin ventas no aparecen.
	UnitsSoldByProduct(ctx context.Context) (map[string]int, error)
}
