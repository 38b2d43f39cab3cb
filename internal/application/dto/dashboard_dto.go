package dto

import "github.com/shopspring/decimal"

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
type DashboardSummaryDTO struct {
	TotalProducts   int             `json:"total_products"`
	TotalStockValue decimal.Decimal `json:"total_stock_value"` // Σ costo × cantidad
	PotentialProfit decimal.Decimal `json:"potential_profit"`  // Σ (venta - costo) × cantidad
	LowStockCount   int             `json:"low_stock_count"`

	// Últimos 5 productos actualizados
	RecentProducts   []ProductResponse `json:"recent_products"`
	LowStockProducts []ProductResponse `json:"low_stock_products"`
	// Últimos 5 movimientos del libro
	RecentMovements []MovementResponse `json:"recent_movements"`
}
