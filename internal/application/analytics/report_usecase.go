package analytics

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/inventario-dashboard/internal/application/dto"
	"github.com/jhoicas/inventario-dashboard/internal/application/ports"
	"github.com/jhoicas/inventario-dashboard/internal/domain/entity"
	"github.com/jhoicas/inventario-dashboard/internal/domain/inventory"
)

const reportTopProducts = 10

// ReportUseCase arma el reporte de inventario (JSON y PDF).
type ReportUseCase struct {
	products  ProductSource
	movements MovementSource
	renderer  ports.ReportRenderer
	now       func() time.Time
}

// NewReportUseCase construye el caso de uso. renderer puede ser nil si no se exporta PDF.
func NewReportUseCase(products ProductSource, movements MovementSource, renderer ports.ReportRenderer) *ReportUseCase {
	return &ReportUseCase{products: products, movements: movements, renderer: renderer, now: time.Now}
}

// Build calcula todas las métricas del reporte. El conteo de movimientos cubre la ventana reciente.
func (uc *ReportUseCase) Build(ctx context.Context) (*dto.ReportDTO, error) {
	var (
		products  []*entity.Product
		movements []*entity.StockMovement
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		products, err = uc.products.Products(gctx)
		if err != nil {
			return fmt.Errorf("reporte: productos: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		movements, err = uc.movements.RecentMovements(gctx)
		if err != nil {
			return fmt.Errorf("reporte: movimientos: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	counts := inventory.MovementCounts(movements)
	report := &dto.ReportDTO{
		GeneratedAt:       uc.now(),
		TotalProducts:     len(products),
		TotalStockValue:   inventory.TotalStockValue(products).Round(2),
		TotalSellingValue: inventory.TotalSellingValue(products).Round(2),
		PotentialProfit:   inventory.PotentialProfit(products).Round(2),
		ProfitMargin:      inventory.OverallProfitMargin(products).Round(2),
		LowStockCount:     inventory.LowStockCount(products),
		TotalSales:        inventory.SalesCount(movements),
		MovementCounts: dto.MovementCountsDTO{
			Sale:       counts[entity.MovementSale],
			Restock:    counts[entity.MovementRestock],
			Adjustment: counts[entity.MovementAdjustment],
		},
	}

	breakdown := inventory.CategoryBreakdown(products)
	report.Categories = make([]dto.CategoryStatsDTO, 0, len(breakdown))
	for _, c := range breakdown {
		report.Categories = append(report.Categories, dto.CategoryStatsDTO{
			Category:        c.Category,
			Count:           c.Count,
			TotalValue:      c.TotalValue.Round(2),
			PotentialProfit: c.PotentialProfit.Round(2),
		})
	}

	top := inventory.TopProfitProducts(products, reportTopProducts)
	report.TopProducts = make([]dto.TopProductDTO, 0, len(top))
	for _, t := range top {
		report.TopProducts = append(report.TopProducts, dto.TopProductDTO{
			ProductID:    t.Product.ID,
			Name:         t.Product.Name,
			Category:     t.Product.Category,
			Quantity:     t.Product.Quantity,
			Profit:       t.Profit.Round(2),
			ProfitMargin: t.Margin.Round(2),
		})
	}
	return report, nil
}

// RenderPDF genera el reporte y lo entrega como PDF.
func (uc *ReportUseCase) RenderPDF(ctx context.Context) ([]byte, error) {
	if uc.renderer == nil {
		return nil, fmt.Errorf("reporte: generador PDF no configurado")
	}
	report, err := uc.Build(ctx)
	if err != nil {
		return nil, err
	}
	doc, err := uc.renderer.Render(report)
	if err != nil {
		return nil, fmt.Errorf("reporte: pdf: %w", err)
	}
	return doc, nil
}
