package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/inventario-dashboard/internal/domain"
	"github.com/jhoicas/inventario-dashboard/internal/domain/entity"
	"github.com/jhoicas/inventario-dashboard/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

const movementSelect = `
	SELECT m.id, m.product_id, p.name, m.type, m.quantity_change, COALESCE(m.notes, ''), m.created_at
	FROM stock_movements m
	JOIN products p ON p.id = m.product_id`

// StockMovementRepo libro de movimientos sobre PostgreSQL (usable con pool o tx).
type StockMovementRepo struct {
	q Querier
}

func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create inserta el movimiento; un product_id inexistente viola la FK y se traduce a ErrNotFound.
func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	if !validID(m.ProductID) {
		return fmt.Errorf("insert movement: %w", domain.ErrNotFound)
	}
	var notes *string
	if m.Notes != "" {
		notes = &m.Notes
	}
	err := r.q.QueryRow(ctx, `
		INSERT INTO stock_movements (id, product_id, type, quantity_change, notes)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`,
		m.ID, m.ProductID, string(m.Type), m.QuantityChange, notes,
	).Scan(&m.CreatedAt)
	if err != nil {
		return translate("insert movement", err)
	}
	return nil
}

func (r *StockMovementRepo) ListRecent(ctx context.Context, limit int) ([]*entity.StockMovement, error) {
	rows, err := r.q.Query(ctx, movementSelect+` ORDER BY m.created_at DESC, m.id LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	return scanMovements(rows)
}

func (r *StockMovementRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.StockMovement, error) {
	if !validID(productID) {
		return []*entity.StockMovement{}, nil
	}
	rows, err := r.q.Query(ctx, movementSelect+` WHERE m.product_id = $1 ORDER BY m.created_at DESC, m.id`, productID)
	if err != nil {
		return nil, fmt.Errorf("list product movements: %w", err)
	}
	return scanMovements(rows)
}

func (r *StockMovementRepo) UnitsSoldByProduct(ctx context.Context) (map[string]int, error) {
	rows, err := r.q.Query(ctx, `
		SELECT product_id, COALESCE(SUM(ABS(quantity_change)), 0)
		FROM stock_movements
		WHERE type = 'sale'
		GROUP BY product_id`)
	if err != nil {
		return nil, fmt.Errorf("units sold: %w", err)
	}
	defer rows.Close()
	out := make(map[string]int)
	for rows.Next() {
		var id string
		var units int64
		if err := rows.Scan(&id, &units); err != nil {
			return nil, fmt.Errorf("scan units sold: %w", err)
		}
		out[id] = int(units)
	}
	return out, rows.Err()
}

func scanMovements(rows pgx.Rows) ([]*entity.StockMovement, error) {
	defer rows.Close()
	list := make([]*entity.StockMovement, 0)
	for rows.Next() {
		var m entity.StockMovement
		var typ string
		if err := rows.Scan(&m.ID, &m.ProductID, &m.ProductName, &typ, &m.QuantityChange, &m.Notes, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		mt, err := entity.ParseMovementType(typ)
		if err != nil {
			return nil, fmt.Errorf("scan movement %s: %w", m.ID, err)
		}
		m.Type = mt
		list = append(list, &m)
	}
	return list, rows.Err()
}
