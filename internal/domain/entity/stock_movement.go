package entity

import (
	"fmt"
	"time"
)

// MovementType tipo de movimiento de stock.
type MovementType string

const (
	MovementSale       MovementType = "sale"       // venta: resta |cantidad|
	MovementRestock    MovementType = "restock"    // reposición: suma |cantidad|
	MovementAdjustment MovementType = "adjustment" // ajuste: aplica la cantidad con su signo
)

// MovementTypes todos los tipos válidos, en orden de presentación.
var MovementTypes = []MovementType{MovementSale, MovementRestock, MovementAdjustment}

// ParseMovementType convierte un string en MovementType o falla si no es un tipo conocido.
func ParseMovementType(s string) (MovementType, error) {
	t := MovementType(s)
	if !t.Valid() {
		return "", fmt.Errorf("tipo de movimiento desconocido: %q", s)
	}
	return t, nil
}

// Valid reporta si t es uno de los tipos definidos.
func (t MovementType) Valid() bool {
	switch t {
	case MovementSale, MovementRestock, MovementAdjustment:
		return true
	default:
		return false
	}
}

// StockMovement entrada inmutable del libro de movimientos.
// QuantityChange se guarda tal como la envió el usuario.
type StockMovement struct {
	ID             string
	ProductID      string
	ProductName    string // solo lectura (JOIN con products)
	Type           MovementType
	QuantityChange int
	Notes          string
	CreatedAt      time.Time
}
