package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-dashboard/internal/domain/entity"
	"github.com/jhoicas/inventario-dashboard/internal/domain/inventory"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func product(name, category, cost, sell string, qty, reorder int) *entity.Product {
	return &entity.Product{
		ID: name, Name: name, Category: category,
		CostPrice: dec(cost), SellingPrice: dec(sell),
		Quantity: qty, ReorderLevel: reorder,
	}
}

func assertDec(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, dec(want).Equal(got), "esperado %s, obtenido %s", want, got.String())
}

func TestMetrics_ListaVacia(t *testing.T) {
	var none []*entity.Product
	assertDec(t, "0", inventory.TotalStockValue(none))
	assertDec(t, "0", inventory.TotalSellingValue(none))
	assertDec(t, "0", inventory.PotentialProfit(none))
	assertDec(t, "0", inventory.OverallProfitMargin(none))
	assert.Equal(t, 0, inventory.LowStockCount(none))
	assert.Empty(t, inventory.LowStockProducts(none))
	assert.Empty(t, inventory.CategoryBreakdown(none))
	assert.Empty(t, inventory.TopProfitProducts(none, 10))
}

func TestTotalesYGanancia(t *testing.T) {
	products := []*entity.Product{
		product("a", "A", "10", "15", 4, 0),
		product("b", "B", "2.50", "4", 10, 0),
	}
	assertDec(t, "65", inventory.TotalStockValue(products))
	assertDec(t, "100", inventory.TotalSellingValue(products))
	assertDec(t, "35", inventory.PotentialProfit(products))
	assertDec(t, "53.85", inventory.OverallProfitMargin(products).Round(2))
}

func TestPotentialProfit_AceptaPreciosNegativos(t *testing.T) {
	products := []*entity.Product{product("x", "X", "5", "-1", 2, 0)}
	assertDec(t, "-12", inventory.PotentialProfit(products))
}

func TestLowStock_LimiteInclusivo(t *testing.T) {
	products := []*entity.Product{
		product("igual", "A", "1", "1", 10, 10),
		product("debajo", "A", "1", "1", 3, 10),
		product("encima", "A", "1", "1", 11, 10),
		product("cero", "A", "1", "1", 0, 0),
	}
	assert.Equal(t, 3, inventory.LowStockCount(products), "cantidad == nivel de reorden cuenta como bajo")

	low := inventory.LowStockProducts(products)
	require.Len(t, low, 3)
	assert.Equal(t, "igual", low[0].Name)
	assert.Equal(t, "debajo", low[1].Name)
	assert.Equal(t, "cero", low[2].Name)
}

func TestProfitMargin(t *testing.T) {
	assertDec(t, "50", inventory.ProfitMargin(product("p", "A", "10", "15", 1, 0)))
	assertDec(t, "0", inventory.ProfitMargin(product("gratis", "A", "0", "99", 1, 0)))
	assertDec(t, "-20", inventory.ProfitMargin(product("pérdida", "A", "10", "8", 1, 0)))
}

func TestCategoryBreakdown(t *testing.T) {
	products := []*entity.Product{
		product("a1", "A", "100", "120", 1, 0),
		product("b1", "B", "50", "50", 1, 0),
		product("a2", "A", "30", "40", 1, 0),
	}
	got := inventory.CategoryBreakdown(products)
	require.Len(t, got, 2)

	assert.Equal(t, "A", got[0].Category)
	assert.Equal(t, 2, got[0].Count)
	assertDec(t, "130", got[0].TotalValue)
	assertDec(t, "30", got[0].PotentialProfit)

	assert.Equal(t, "B", got[1].Category)
	assert.Equal(t, 1, got[1].Count)
	assertDec(t, "50", got[1].TotalValue)
}

func TestCategoryBreakdown_EmpateOrdenaPorNombre(t *testing.T) {
	products := []*entity.Product{
		product("z", "Zeta", "10", "10", 1, 0),
		product("a", "Alfa", "10", "10", 1, 0),
	}
	got := inventory.CategoryBreakdown(products)
	require.Len(t, got, 2)
	assert.Equal(t, "Alfa", got[0].Category)
	assert.Equal(t, "Zeta", got[1].Category)
}

func TestTopProfitProducts(t *testing.T) {
	products := []*entity.Product{
		product("bajo", "A", "10", "11", 1, 0),  // 1
		product("alto", "A", "10", "20", 5, 0),  // 50
		product("medio", "A", "10", "15", 2, 0), // 10
	}
	top := inventory.TopProfitProducts(products, 2)
	require.Len(t, top, 2)
	assert.Equal(t, "alto", top[0].Product.Name)
	assertDec(t, "50", top[0].Profit)
	assertDec(t, "100", top[0].Margin)
	assert.Equal(t, "medio", top[1].Product.Name)
}

func TestMovementCounts(t *testing.T) {
	movs := []*entity.StockMovement{
		{Type: entity.MovementSale},
		{Type: entity.MovementSale},
		{Type: entity.MovementRestock},
	}
	counts := inventory.MovementCounts(movs)
	assert.Equal(t, 2, counts[entity.MovementSale])
	assert.Equal(t, 1, counts[entity.MovementRestock])
	assert.Equal(t, 0, counts[entity.MovementAdjustment])
	assert.Len(t, counts, 3)
	assert.Equal(t, 2, inventory.SalesCount(movs))
}
