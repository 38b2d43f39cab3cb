package memory

import (
	"context"
	"fmt"

	"github.com/jhoicas/inventario-dashboard/internal/domain"
	"github.com/jhoicas/inventario-dashboard/internal/domain/entity"
	"github.com/jhoicas/inventario-dashboard/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo libro de movimientos en memoria.
type StockMovementRepo struct {
	s    *Store
	held bool
}

// NewStockMovementRepository construye el repositorio sobre el store.
func NewStockMovementRepository(s *Store) *StockMovementRepo {
	return &StockMovementRepo{s: s}
}

// Create valida la FK hacia products como lo haría la base de datos.
func (r *StockMovementRepo) Create(_ context.Context, m *entity.StockMovement) error {
	defer r.s.lock(r.held)()
	if _, ok := r.s.products[m.ProductID]; !ok {
		return fmt.Errorf("insert movement: %w", domain.ErrNotFound)
	}
	m.CreatedAt = r.s.tick()
	cp := *m
	cp.ProductName = ""
	r.s.movements = append(r.s.movements, &cp)
	return nil
}

func (r *StockMovementRepo) ListRecent(_ context.Context, limit int) ([]*entity.StockMovement, error) {
	defer r.s.lock(r.held)()
	return r.collect(limit, func(*entity.StockMovement) bool { return true }), nil
}

func (r *StockMovementRepo) ListByProduct(_ context.Context, productID string) ([]*entity.StockMovement, error) {
	defer r.s.lock(r.held)()
	return r.collect(-1, func(m *entity.StockMovement) bool { return m.ProductID == productID }), nil
}

// UnitsSoldByProduct una sola pasada por el libro.
func (r *StockMovementRepo) UnitsSoldByProduct(_ context.Context) (map[string]int, error) {
	defer r.s.lock(r.held)()
	out := make(map[string]int)
	for _, m := range r.s.movements {
		if m.Type != entity.MovementSale {
			continue
		}
		if m.QuantityChange < 0 {
			out[m.ProductID] -= m.QuantityChange
		} else {
			out[m.ProductID] += m.QuantityChange
		}
	}
	return out, nil
}

// collect recorre el libro del más nuevo al más viejo. limit < 0 = sin límite.
func (r *StockMovementRepo) collect(limit int, keep func(*entity.StockMovement) bool) []*entity.StockMovement {
	out := make([]*entity.StockMovement, 0)
	for i := len(r.s.movements) - 1; i >= 0; i-- {
		if limit >= 0 && len(out) >= limit {
			break
		}
		m := r.s.movements[i]
		if !keep(m) {
			continue
		}
		cp := *m
		if p, ok := r.s.products[m.ProductID]; ok {
			cp.ProductName = p.Name
		}
		out = append(out, &cp)
	}
	return out
}
