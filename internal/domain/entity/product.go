package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultReorderLevel umbral de reorden cuando no se especifica.
const DefaultReorderLevel = 10

// Product representa un producto del inventario.
// Quantity solo cambia por movimientos de stock o por edición directa y nunca es negativa.
type Product struct {
	ID           string
	Name         string
	Category     string
	CostPrice    decimal.Decimal
	SellingPrice decimal.Decimal
	Quantity     int
	ReorderLevel int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsLowStock reporta si la cantidad está en o por debajo del nivel de reorden.
func (p *Product) IsLowStock() bool {
	return p.Quantity <= p.ReorderLevel
}

// UnitProfit ganancia por unidad (venta - costo).
func (p *Product) UnitProfit() decimal.Decimal {
	return p.SellingPrice.Sub(p.CostPrice)
}

// StockValue valor del stock a costo.
func (p *Product) StockValue() decimal.Decimal {
	return p.CostPrice.Mul(decimal.NewFromInt(int64(p.Quantity)))
}

// Profit ganancia potencial del stock actual.
func (p *Product) Profit() decimal.Decimal {
	return p.UnitProfit().Mul(decimal.NewFromInt(int64(p.Quantity)))
}
