// Package memory implementa los puertos de persistencia en proceso.
// Se usa en tests y cuando no hay PostgreSQL configurado.
package memory

import (
	"sync"
	"time"

	"github.com/jhoicas/inventario-dashboard/internal/domain/entity"
)

// Store guarda productos y movimientos. Un único mutex serializa escrituras y transacciones.
type Store struct {
	mu        sync.Mutex
	products  map[string]*entity.Product
	movements []*entity.StockMovement // orden de inserción
	last      time.Time
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{products: make(map[string]*entity.Product)}
}

// tick devuelve una marca de tiempo estrictamente creciente. Requiere mu tomado.
func (s *Store) tick() time.Time {
	now := time.Now().UTC()
	if !now.After(s.last) {
		now = s.last.Add(time.Microsecond)
	}
	s.last = now
	return now
}

type snapshot struct {
	products  map[string]entity.Product
	movements int
}

func (s *Store) snapshot() snapshot {
	snap := snapshot{products: make(map[string]entity.Product, len(s.products)), movements: len(s.movements)}
	for id, p := range s.products {
		snap.products[id] = *p
	}
	return snap
}

// restore deshace todo lo escrito después de snap. El libro es append-only salvo borrados en
// cascada, que solo ocurren fuera de transacción.
func (s *Store) restore(snap snapshot) {
	s.products = make(map[string]*entity.Product, len(snap.products))
	for id, p := range snap.products {
		cp := p
		s.products[id] = &cp
	}
	s.movements = s.movements[:snap.movements]
}

func (s *Store) lock(held bool) func() {
	if held {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

func cloneProduct(p *entity.Product) *entity.Product {
	cp := *p
	return &cp
}
