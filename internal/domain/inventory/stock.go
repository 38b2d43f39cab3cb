package inventory

import (
	"fmt"

	"github.com/jhoicas/inventario-dashboard/internal/domain"
	"github.com/jhoicas/inventario-dashboard/internal/domain/entity"
)

// QuantityDelta devuelve el efecto de un movimiento sobre la cantidad en stock.
// Venta resta la magnitud, reposición la suma y ajuste respeta el signo recibido.
func QuantityDelta(t entity.MovementType, change int) (int, error) {
	switch t {
	case entity.MovementSale:
		return -abs(change), nil
	case entity.MovementRestock:
		return abs(change), nil
	case entity.MovementAdjustment:
		return change, nil
	default:
		return 0, fmt.Errorf("%w: tipo de movimiento desconocido %q", domain.ErrInvalidInput, t)
	}
}

// ApplyMovement calcula la nueva cantidad. Devuelve domain.ErrNegativeStock si quedaría negativa.
func ApplyMovement(current int, t entity.MovementType, change int) (int, error) {
	delta, err := QuantityDelta(t, change)
	if err != nil {
		return 0, err
	}
	next := current + delta
	if next < 0 {
		return current, domain.ErrNegativeStock
	}
	return next, nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
