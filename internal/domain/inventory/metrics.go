// Package inventory contiene la lógica pura de stock: aritmética de movimientos
// y las métricas derivadas que alimentan el dashboard y los reportes.
package inventory

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-dashboard/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// CategoryStats agregado por categoría.
type CategoryStats struct {
	Category        string
	Count           int
	TotalValue      decimal.Decimal // Σ costo × cantidad
	PotentialProfit decimal.Decimal // Σ (venta - costo) × cantidad
}

// ProductProfit fila del ranking de rentabilidad.
type ProductProfit struct {
	Product *entity.Product
	Profit  decimal.Decimal
	Margin  decimal.Decimal
}

// TotalStockValue Σ costo × cantidad.
func TotalStockValue(products []*entity.Product) decimal.Decimal {
	total := decimal.Zero
	for _, p := range products {
		total = total.Add(p.StockValue())
	}
	return total
}

// TotalSellingValue Σ precio de venta × cantidad.
func TotalSellingValue(products []*entity.Product) decimal.Decimal {
	total := decimal.Zero
	for _, p := range products {
		total = total.Add(p.SellingPrice.Mul(decimal.NewFromInt(int64(p.Quantity))))
	}
	return total
}

// PotentialProfit Σ (venta - costo) × cantidad.
func PotentialProfit(products []*entity.Product) decimal.Decimal {
	total := decimal.Zero
	for _, p := range products {
		total = total.Add(p.Profit())
	}
	return total
}

// LowStockCount cantidad de productos con stock <= nivel de reorden.
func LowStockCount(products []*entity.Product) int {
	n := 0
	for _, p := range products {
		if p.IsLowStock() {
			n++
		}
	}
	return n
}

// LowStockProducts filtra los productos con stock bajo, conservando el orden de entrada.
func LowStockProducts(products []*entity.Product) []*entity.Product {
	out := make([]*entity.Product, 0)
	for _, p := range products {
		if p.IsLowStock() {
			out = append(out, p)
		}
	}
	return out
}

// ProfitMargin (venta - costo) / costo × 100. Con costo <= 0 el margen es 0.
func ProfitMargin(p *entity.Product) decimal.Decimal {
	if !p.CostPrice.IsPositive() {
		return decimal.Zero
	}
	return p.UnitProfit().Div(p.CostPrice).Mul(hundred)
}

// OverallProfitMargin ganancia potencial sobre valor del stock × 100, o 0 si no hay stock valorizado.
func OverallProfitMargin(products []*entity.Product) decimal.Decimal {
	cost := TotalStockValue(products)
	if !cost.IsPositive() {
		return decimal.Zero
	}
	return PotentialProfit(products).Div(cost).Mul(hundred)
}

// CategoryBreakdown agrupa por categoría, de mayor a menor valor de stock.
func CategoryBreakdown(products []*entity.Product) []CategoryStats {
	byCat := make(map[string]*CategoryStats)
	for _, p := range products {
		s, ok := byCat[p.Category]
		if !ok {
			s = &CategoryStats{Category: p.Category}
			byCat[p.Category] = s
		}
		s.Count++
		s.TotalValue = s.TotalValue.Add(p.StockValue())
		s.PotentialProfit = s.PotentialProfit.Add(p.Profit())
	}

	out := make([]CategoryStats, 0, len(byCat))
	for _, s := range byCat {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].TotalValue.Cmp(out[j].TotalValue); c != 0 {
			return c > 0
		}
		return out[i].Category < out[j].Category
	})
	return out
}

// TopProfitProducts los n productos con mayor ganancia potencial.
func TopProfitProducts(products []*entity.Product, n int) []ProductProfit {
	ranked := make([]ProductProfit, 0, len(products))
	for _, p := range products {
		ranked = append(ranked, ProductProfit{Product: p, Profit: p.Profit(), Margin: ProfitMargin(p)})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if c := ranked[i].Profit.Cmp(ranked[j].Profit); c != 0 {
			return c > 0
		}
		return ranked[i].Product.Name < ranked[j].Product.Name
	})
	if n >= 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// MovementCounts conteo por tipo; siempre incluye los tres tipos.
func MovementCounts(movements []*entity.StockMovement) map[entity.MovementType]int {
	counts := make(map[entity.MovementType]int, len(entity.MovementTypes))
	for _, t := range entity.MovementTypes {
		counts[t] = 0
	}
	for _, m := range movements {
		switch m.Type {
		case entity.MovementSale, entity.MovementRestock, entity.MovementAdjustment:
			counts[m.Type]++
		}
	}
	return counts
}

// SalesCount número de movimientos de venta.
func SalesCount(movements []*entity.StockMovement) int {
	return MovementCounts(movements)[entity.MovementSale]
}
