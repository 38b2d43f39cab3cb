package dto

import (
	"time"

	"github.com/jhoicas/inventario-dashboard/internal/domain/entity"
)

// RecordMovementRequest body para POST /api/movements.
// quantity_change: magnitud para sale/restock, con signo para adjustment.
type RecordMovementRequest struct {
	ProductID      string `json:"product_id"`
	Type           string `json:"type"`
	QuantityChange int    `json:"quantity_change"`
	Notes          string `json:"notes,omitempty"`
}

// MovementResponse un movimiento del libro con el nombre del producto.
type MovementResponse struct {
	ID             string    `json:"id"`
	ProductID      string    `json:"product_id"`
	ProductName    string    `json:"product_name"`
	Type           string    `json:"type"`
	QuantityChange int       `json:"quantity_change"`
	Notes          string    `json:"notes,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// RecordMovementResponse resultado de registrar un movimiento.
type RecordMovementResponse struct {
	Movement    MovementResponse `json:"movement"`
	NewQuantity int              `json:"new_quantity"`
}

// MovementListResponse lista de movimientos (más reciente primero).
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
}

func NewMovementResponse(m *entity.StockMovement) MovementResponse {
	return MovementResponse{
		ID:             m.ID,
		ProductID:      m.ProductID,
		ProductName:    m.ProductName,
		Type:           string(m.Type),
		QuantityChange: m.QuantityChange,
		Notes:          m.Notes,
		CreatedAt:      m.CreatedAt,
	}
}

func NewMovementResponses(movements []*entity.StockMovement) []MovementResponse {
	out := make([]MovementResponse, 0, len(movements))
	for _, m := range movements {
		out = append(out, NewMovementResponse(m))
	}
	return out
}
