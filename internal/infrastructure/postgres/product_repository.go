package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/inventario-dashboard/internal/domain"
	"github.com/jhoicas/inventario-dashboard/internal/domain/entity"
	"github.com/jhoicas/inventario-dashboard/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, name, category, cost_price, selling_price, quantity, reorder_level, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un producto; created_at y updated_at los asigna la base.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO products (id, name, category, cost_price, selling_price, quantity, reorder_level)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at`,
		p.ID, p.Name, p.Category, p.CostPrice, p.SellingPrice, p.Quantity, p.ReorderLevel,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return translate("insert product", err)
	}
	return nil
}

func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	return r.get(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
}

// GetForUpdate bloquea la fila hasta commit/rollback. Solo tiene efecto dentro de una tx.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.get(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1 FOR UPDATE`, id)
}

func (r *ProductRepo) get(ctx context.Context, query, id string) (*entity.Product, error) {
	if !validID(id) {
		return nil, nil
	}
	p, err := scanProduct(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, translate("get product", err)
	}
	return p, nil
}

func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	if !validID(p.ID) {
		return domain.ErrNotFound
	}
	err := r.q.QueryRow(ctx, `
		UPDATE products
		SET name = $2, category = $3, cost_price = $4, selling_price = $5, quantity = $6, reorder_level = $7, updated_at = now()
		WHERE id = $1
		RETURNING updated_at`,
		p.ID, p.Name, p.Category, p.CostPrice, p.SellingPrice, p.Quantity, p.ReorderLevel,
	).Scan(&p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		return translate("update product", err)
	}
	return nil
}

func (r *ProductRepo) UpdateQuantity(ctx context.Context, id string, quantity int) error {
	if !validID(id) {
		return domain.ErrNotFound
	}
	cmd, err := r.q.Exec(ctx,
		`UPDATE products SET quantity = $2, updated_at = now() WHERE id = $1`, id, quantity)
	if err != nil {
		if pgCode(err) == codeCheckViolation {
			return domain.ErrNegativeStock
		}
		return fmt.Errorf("update product quantity: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ProductRepo) List(ctx context.Context) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, `SELECT `+productColumns+` FROM products ORDER BY updated_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	list := make([]*entity.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Delete borra el producto; stock_movements cae por ON DELETE CASCADE.
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return domain.ErrNotFound
	}
	cmd, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return translate("delete product", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	if err := row.Scan(&p.ID, &p.Name, &p.Category, &p.CostPrice, &p.SellingPrice,
		&p.Quantity, &p.ReorderLevel, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}
