package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/inventario-dashboard/internal/domain"
	"github.com/jhoicas/inventario-dashboard/internal/domain/entity"
	"github.com/jhoicas/inventario-dashboard/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo repositorio de productos en memoria.
type ProductRepo struct {
	s    *Store
	held bool // dentro de TxRunner.Run el mutex ya está tomado
}

// NewProductRepository construye el repositorio sobre el store.
func NewProductRepository(s *Store) *ProductRepo {
	return &ProductRepo{s: s}
}

func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	defer r.s.lock(r.held)()
	if _, ok := r.s.products[p.ID]; ok {
		return domain.ErrDuplicate
	}
	now := r.s.tick()
	p.CreatedAt, p.UpdatedAt = now, now
	r.s.products[p.ID] = cloneProduct(p)
	return nil
}

func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	defer r.s.lock(r.held)()
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	return cloneProduct(p), nil
}

// GetForUpdate equivale a GetByID: el mutex del store ya serializa la transacción.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *ProductRepo) Update(_ context.Context, p *entity.Product) error {
	defer r.s.lock(r.held)()
	cur, ok := r.s.products[p.ID]
	if !ok {
		return domain.ErrNotFound
	}
	p.CreatedAt = cur.CreatedAt
	p.UpdatedAt = r.s.tick()
	r.s.products[p.ID] = cloneProduct(p)
	return nil
}

func (r *ProductRepo) UpdateQuantity(_ context.Context, id string, quantity int) error {
	defer r.s.lock(r.held)()
	cur, ok := r.s.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	if quantity < 0 {
		return domain.ErrNegativeStock
	}
	cur.Quantity = quantity
	cur.UpdatedAt = r.s.tick()
	return nil
}

func (r *ProductRepo) List(_ context.Context) ([]*entity.Product, error) {
	defer r.s.lock(r.held)()
	list := make([]*entity.Product, 0, len(r.s.products))
	for _, p := range r.s.products {
		list = append(list, cloneProduct(p))
	}
	sort.Slice(list, func(i, j int) bool {
		if !list[i].UpdatedAt.Equal(list[j].UpdatedAt) {
			return list[i].UpdatedAt.After(list[j].UpdatedAt)
		}
		return list[i].ID < list[j].ID
	})
	return list, nil
}

// Delete borra el producto y, en cascada, sus movimientos.
func (r *ProductRepo) Delete(_ context.Context, id string) error {
	defer r.s.lock(r.held)()
	if _, ok := r.s.products[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.products, id)
	kept := r.s.movements[:0]
	for _, m := range r.s.movements {
		if m.ProductID != id {
			kept = append(kept, m)
		}
	}
	r.s.movements = kept
	return nil
}
