package memory

import (
	"context"

	"github.com/jhoicas/inventario-dashboard/internal/application/inventory"
	"github.com/jhoicas/inventario-dashboard/internal/domain/repository"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta fn con el store bloqueado y revierte todo si fn falla.
type TxRunner struct {
	s *Store
}

func NewTxRunner(s *Store) *TxRunner {
	return &TxRunner{s: s}
}

func (r *TxRunner) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	movRepo repository.StockMovementRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	snap := r.s.snapshot()
	err := fn(
		&ProductRepo{s: r.s, held: true},
		&StockMovementRepo{s: r.s, held: true},
	)
	if err != nil {
		r.s.restore(snap)
		return err
	}
	return nil
}
