package repository

import (
	"context"

	"github.com/jhoicas/inventario-dashboard/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// GetByID y GetForUpdate devuelven (nil, nil) si el producto no existe.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// GetForUpdate bloquea la fila hasta el fin de la transacción (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
	// Update y Delete devuelven domain.ErrNotFound si el id no existe.
	Update(ctx context.Context, product *entity.Product) error
	UpdateQuantity(ctx context.Context, id string, quantity int) error
	// List ordena por updated_at descendente.
	List(ctx context.Context) ([]*entity.Product, error)
	Delete(ctx context.Context, id string) error
}
