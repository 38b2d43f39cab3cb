package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-dashboard/internal/domain/entity"
	"github.com/jhoicas/inventario-dashboard/internal/domain/inventory"
)

// CreateProductRequest entrada para crear un producto. Los precios aceptan número o string.
type CreateProductRequest struct {
	Name         string          `json:"name"`
	Category     string          `json:"category"`
	CostPrice    decimal.Decimal `json:"cost_price"`
	SellingPrice decimal.Decimal `json:"selling_price"`
	Quantity     int             `json:"quantity"`
	ReorderLevel *int            `json:"reorder_level,omitempty"` // nil = 10
}

// UpdateProductRequest actualización parcial: solo se aplican los campos presentes.
type UpdateProductRequest struct {
	Name         *string          `json:"name,omitempty"`
	Category     *string          `json:"category,omitempty"`
	CostPrice    *decimal.Decimal `json:"cost_price,omitempty"`
	SellingPrice *decimal.Decimal `json:"selling_price,omitempty"`
	Quantity     *int             `json:"quantity,omitempty"`
	ReorderLevel *int             `json:"reorder_level,omitempty"`
}

// ProductResponse salida de un producto con sus indicadores derivados.
type ProductResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Category     string          `json:"category"`
	CostPrice    decimal.Decimal `json:"cost_price"`
	SellingPrice decimal.Decimal `json:"selling_price"`
	Quantity     int             `json:"quantity"`
	ReorderLevel int             `json:"reorder_level"`
	UnitProfit   decimal.Decimal `json:"unit_profit"`
	ProfitMargin decimal.Decimal `json:"profit_margin"` // %
	StockValue   decimal.Decimal `json:"stock_value"`
	LowStock     bool            `json:"low_stock"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ProductListResponse lista de productos (más reciente primero).
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Total int               `json:"total"`
}

// NewProductResponse mapea la entidad a su representación HTTP.
func NewProductResponse(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:           p.ID,
		Name:         p.Name,
		Category:     p.Category,
		CostPrice:    p.CostPrice,
		SellingPrice: p.SellingPrice,
		Quantity:     p.Quantity,
		ReorderLevel: p.ReorderLevel,
		UnitProfit:   p.UnitProfit(),
		ProfitMargin: inventory.ProfitMargin(p).Round(2),
		StockValue:   p.StockValue(),
		LowStock:     p.IsLowStock(),
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

// NewProductResponses mapea una lista conservando el orden.
func NewProductResponses(products []*entity.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, NewProductResponse(p))
	}
	return out
}
