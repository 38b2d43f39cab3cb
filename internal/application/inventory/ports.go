package inventory

import (
	"context"

	"github.com/jhoicas/inventario-dashboard/internal/domain/entity"
	"github.com/jhoicas/inventario-dashboard/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción, pasando repositorios atados a esa tx.
// Si fn devuelve error no queda ninguna escritura aplicada.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		movRepo repository.StockMovementRepository,
	) error) error
}

// MovementObserver recibe el resultado de cada intento de registrar un movimiento (métricas).
type MovementObserver interface {
	MovementRecorded(t entity.MovementType)
	MovementRejected(reason string)
}

type nopObserver struct{}

func (nopObserver) MovementRecorded(entity.MovementType) {}
func (nopObserver) MovementRejected(string)              {}
