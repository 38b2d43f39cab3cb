package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReportDTO respuesta de GET /api/reports/summary y fuente del PDF.
type ReportDTO struct {
	GeneratedAt       time.Time       `json:"generated_at"`
	TotalProducts     int             `json:"total_products"`
	TotalStockValue   decimal.Decimal `json:"total_stock_value"`
	TotalSellingValue decimal.Decimal `json:"total_selling_value"`
	PotentialProfit   decimal.Decimal `json:"potential_profit"`
	ProfitMargin      decimal.Decimal `json:"profit_margin"` // % sobre costo
	LowStockCount     int             `json:"low_stock_count"`
	TotalSales        int             `json:"total_sales"`

	MovementCounts MovementCountsDTO  `json:"movement_counts"`
	Categories     []CategoryStatsDTO `json:"categories"`   // mayor valor primero
	TopProducts    []TopProductDTO    `json:"top_products"` // top 10 por ganancia
}

// MovementCountsDTO conteo de movimientos recientes por tipo.
type MovementCountsDTO struct {
	Sale       int `json:"sale"`
	Restock    int `json:"restock"`
	Adjustment int `json:"adjustment"`
}

type CategoryStatsDTO struct {
	Category        string          `json:"category"`
	Count           int             `json:"count"`
	TotalValue      decimal.Decimal `json:"total_value"`
	PotentialProfit decimal.Decimal `json:"potential_profit"`
}

type TopProductDTO struct {
	ProductID    string          `json:"product_id"`
	Name         string          `json:"name"`
	Category     string          `json:"category"`
	Quantity     int             `json:"quantity"`
	Profit       decimal.Decimal `json:"profit"`
	ProfitMargin decimal.Decimal `json:"profit_margin"`
}

// ReplenishmentSuggestionDTO sugerencia de reposición para un producto en o bajo su nivel de reorden.
type ReplenishmentSuggestionDTO struct {
	ProductID          string          `json:"product_id"`
	ProductName        string          `json:"product_name"`
	Category           string          `json:"category"`
	CurrentStock       int             `json:"current_stock"`
	ReorderLevel       int             `json:"reorder_level"`
	IdealStock         int             `json:"ideal_stock"`          // ceil(ReorderLevel * 1.5)
	SuggestedOrderQty  int             `json:"suggested_order_qty"`  // IdealStock - CurrentStock
	UnitCost           decimal.Decimal `json:"unit_cost"`
	EstimatedOrderCost decimal.Decimal `json:"estimated_order_cost"` // SuggestedOrderQty * UnitCost
	ProfitMargin       decimal.Decimal `json:"profit_margin"`
	UnitsSold          int             `json:"units_sold"` // ventas registradas en el libro
	Priority           int             `json:"priority"`   // 1 = más urgente
}
