package analytics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-dashboard/internal/application/dto"
	"github.com/jhoicas/inventario-dashboard/internal/domain/entity"
	"github.com/jhoicas/inventario-dashboard/internal/infrastructure/memory"
)

type fakeProducts struct {
	list []*entity.Product
	err  error
}

func (f fakeProducts) Products(context.Context) ([]*entity.Product, error) { return f.list, f.err }

type fakeMovements struct {
	list []*entity.StockMovement
	err  error
}

func (f fakeMovements) RecentMovements(context.Context) ([]*entity.StockMovement, error) {
	return f.list, f.err
}

type countingSales struct {
	units map[string]int
	err   error
	calls int
}

func (f *countingSales) UnitsSoldByProduct(context.Context) (map[string]int, error) {
	f.calls++
	return f.units, f.err
}

type fakeRenderer struct{ got *dto.ReportDTO }

func (f *fakeRenderer) Render(r *dto.ReportDTO) ([]byte, error) {
	f.got = r
	return []byte("%PDF-fake"), nil
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func p(id, cat, cost, sell string, qty, reorder int) *entity.Product {
	return &entity.Product{ID: id, Name: id, Category: cat, CostPrice: dec(cost), SellingPrice: dec(sell), Quantity: qty, ReorderLevel: reorder}
}

func sampleProducts() []*entity.Product {
	return []*entity.Product{
		p("p1", "A", "100", "150", 1, 0),
		p("p2", "B", "50", "60", 1, 5),
		p("p3", "A", "10", "13", 3, 10),
		p("p4", "C", "0", "5", 2, 2),
		p("p5", "C", "1", "1", 50, 10),
		p("p6", "C", "1", "2", 50, 10),
	}
}

func TestDashboard_GetSummary(t *testing.T) {
	movs := []*entity.StockMovement{
		{ID: "m1", Type: entity.MovementSale}, {ID: "m2", Type: entity.MovementRestock},
	}
	uc := NewDashboardUseCase(fakeProducts{list: sampleProducts()}, fakeMovements{list: movs})

	out, err := uc.GetSummary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 6, out.TotalProducts)
	assert.True(t, dec("280").Equal(out.TotalStockValue), out.TotalStockValue.String())
	assert.True(t, dec("129").Equal(out.PotentialProfit), out.PotentialProfit.String())
	assert.Equal(t, 3, out.LowStockCount)
	require.Len(t, out.RecentProducts, 5)
	assert.Equal(t, "p1", out.RecentProducts[0].ID)
	require.Len(t, out.LowStockProducts, 3)
	assert.Equal(t, "p2", out.LowStockProducts[0].ID)
	assert.Len(t, out.RecentMovements, 2)
}

func TestDashboard_PropagaErrores(t *testing.T) {
	boom := errors.New("store caído")
	uc := NewDashboardUseCase(fakeProducts{err: boom}, fakeMovements{})
	_, err := uc.GetSummary(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestReport_Build(t *testing.T) {
	movs := []*entity.StockMovement{
		{Type: entity.MovementSale}, {Type: entity.MovementSale}, {Type: entity.MovementAdjustment},
	}
	uc := NewReportUseCase(fakeProducts{list: sampleProducts()}, fakeMovements{list: movs}, nil)
	fixed := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	uc.now = func() time.Time { return fixed }

	r, err := uc.Build(context.Background())
	require.NoError(t, err)

	assert.Equal(t, fixed, r.GeneratedAt)
	assert.True(t, dec("280").Equal(r.TotalStockValue))
	assert.True(t, dec("409").Equal(r.TotalSellingValue), r.TotalSellingValue.String())
	assert.True(t, dec("46.07").Equal(r.ProfitMargin), r.ProfitMargin.String())
	assert.Equal(t, 2, r.TotalSales)
	assert.Equal(t, dto.MovementCountsDTO{Sale: 2, Restock: 0, Adjustment: 1}, r.MovementCounts)

	require.Len(t, r.Categories, 3)
	assert.Equal(t, "A", r.Categories[0].Category)
	assert.True(t, dec("130").Equal(r.Categories[0].TotalValue))
	assert.Equal(t, "C", r.Categories[1].Category)
	assert.Equal(t, "B", r.Categories[2].Category)

	require.Len(t, r.TopProducts, 6)
	assert.Equal(t, "p1", r.TopProducts[0].ProductID) // 50
	assert.Equal(t, "p6", r.TopProducts[1].ProductID) // 50, desempate por nombre
	assert.True(t, dec("50").Equal(r.TopProducts[0].ProfitMargin))
}

func TestReport_RenderPDF(t *testing.T) {
	renderer := &fakeRenderer{}
	uc := NewReportUseCase(fakeProducts{list: sampleProducts()}, fakeMovements{}, renderer)

	doc, err := uc.RenderPDF(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "%PDF-fake", string(doc))
	require.NotNil(t, renderer.got)
	assert.Equal(t, 6, renderer.got.TotalProducts)
}

func TestReport_RenderPDFSinGenerador(t *testing.T) {
	uc := NewReportUseCase(fakeProducts{}, fakeMovements{}, nil)
	_, err := uc.RenderPDF(context.Background())
	assert.Error(t, err)
}

func TestReport_ErrorDeMovimientos(t *testing.T) {
	boom := errors.New("timeout")
	uc := NewReportUseCase(fakeProducts{list: sampleProducts()}, fakeMovements{err: boom}, nil)
	_, err := uc.Build(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestReplenishment_Generate(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	products := memory.NewProductRepository(s)
	movements := memory.NewStockMovementRepository(s)

	low := []*entity.Product{
		p("agua", "Bebidas", "1", "2", 4, 10),  // margen 100
		p("pan", "Panadería", "1", "2", 0, 10), // margen 100, más ventas
		p("vino", "Bebidas", "10", "12", 1, 3), // margen 20
	}
	for _, prod := range append(low, p("lleno", "X", "1", "1", 100, 10)) {
		require.NoError(t, products.Create(ctx, prod))
	}
	require.NoError(t, movements.Create(ctx, &entity.StockMovement{ID: "m1", ProductID: "pan", Type: entity.MovementSale, QuantityChange: 6}))
	require.NoError(t, movements.Create(ctx, &entity.StockMovement{ID: "m2", ProductID: "pan", Type: entity.MovementRestock, QuantityChange: 6}))

	uc := NewReplenishmentUseCase(fakeProducts{list: low}, movements)
	out, err := uc.Generate(ctx)
	require.NoError(t, err)
	require.Len(t, out, 3)

	assert.Equal(t, "pan", out[0].ProductID)
	assert.Equal(t, 1, out[0].Priority)
	assert.Equal(t, 6, out[0].UnitsSold)
	assert.Equal(t, 15, out[0].IdealStock)
	assert.Equal(t, 15, out[0].SuggestedOrderQty)

	assert.Equal(t, "agua", out[1].ProductID)
	assert.Equal(t, 11, out[1].SuggestedOrderQty)
	assert.True(t, dec("11").Equal(out[1].EstimatedOrderCost))

	assert.Equal(t, "vino", out[2].ProductID)
	assert.Equal(t, 5, out[2].IdealStock, "ceil(3 × 1.5)")
	assert.Equal(t, 4, out[2].SuggestedOrderQty)
}

func TestReplenishment_UnaSolaLecturaDeVentas(t *testing.T) {
	low := []*entity.Product{
		p("a", "X", "1", "2", 0, 10),
		p("b", "X", "1", "2", 1, 10),
		p("c", "X", "1", "2", 2, 10),
		p("d", "X", "1", "2", 3, 10),
	}
	sales := &countingSales{units: map[string]int{"c": 7, "otro": 99}}
	out, err := NewReplenishmentUseCase(fakeProducts{list: low}, sales).Generate(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, sales.calls, "las ventas se agregan en una sola consulta")
	require.Len(t, out, 4)
	assert.Equal(t, "c", out[0].ProductID)
	assert.Equal(t, 7, out[0].UnitsSold)
	assert.Equal(t, 0, out[1].UnitsSold)
}

func TestReplenishment_SinStockBajoNoConsultaVentas(t *testing.T) {
	sales := &countingSales{}
	out, err := NewReplenishmentUseCase(fakeProducts{list: []*entity.Product{p("x", "X", "1", "2", 50, 10)}}, sales).
		Generate(context.Background())
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Zero(t, sales.calls)
}

func TestReplenishment_PropagaErrorDeVentas(t *testing.T) {
	boom := errors.New("consulta fallida")
	sales := &countingSales{err: boom}
	_, err := NewReplenishmentUseCase(fakeProducts{list: []*entity.Product{p("x", "X", "1", "2", 0, 10)}}, sales).
		Generate(context.Background())
	assert.ErrorIs(t, err, boom)
}
