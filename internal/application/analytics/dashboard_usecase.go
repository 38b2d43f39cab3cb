// Package analytics contiene los casos de uso de lectura: dashboard, reporte
// de inventario y sugerencias de reposición.
package analytics

import (
	"context"
	"fmt"

	"github.com/jhoicas/inventario-dashboard/internal/application/dto"
	"github.com/jhoicas/inventario-dashboard/internal/domain/entity"
	"github.com/jhoicas/inventario-dashboard/internal/domain/inventory"
)

const (
	dashboardRecentProducts  = 5
	dashboardRecentMovements = 5
)

// DashboardUseCase genera el resumen del inventario para la pantalla principal.
type DashboardUseCase struct {
	products  ProductSource
	movements MovementSource
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(products ProductSource, movements MovementSource) *DashboardUseCase {
	return &DashboardUseCase{products: products, movements: movements}
}

// GetSummary carga productos y movimientos en paralelo y calcula los KPIs.
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	type productsResult struct {
		list []*entity.Product
		err  error
	}
	type movementsResult struct {
		list []*entity.StockMovement
		err  error
	}

	productsCh := make(chan productsResult, 1)
	movementsCh := make(chan movementsResult, 1)

	go func() {
		list, err := uc.products.Products(ctx)
		productsCh <- productsResult{list, err}
	}()
	go func() {
		list, err := uc.movements.RecentMovements(ctx)
		movementsCh <- movementsResult{list, err}
	}()

	products := <-productsCh
	movements := <-movementsCh

	if products.err != nil {
		return nil, fmt.Errorf("dashboard: productos: %w", products.err)
	}
	if movements.err != nil {
		return nil, fmt.Errorf("dashboard: movimientos: %w", movements.err)
	}

	return &dto.DashboardSummaryDTO{
		TotalProducts:    len(products.list),
		TotalStockValue:  inventory.TotalStockValue(products.list).Round(2),
		PotentialProfit:  inventory.PotentialProfit(products.list).Round(2),
		LowStockCount:    inventory.LowStockCount(products.list),
		RecentProducts:   dto.NewProductResponses(head(products.list, dashboardRecentProducts)),
		LowStockProducts: dto.NewProductResponses(inventory.LowStockProducts(products.list)),
		RecentMovements:  dto.NewMovementResponses(head(movements.list, dashboardRecentMovements)),
	}, nil
}

func head[T any](list []T, n int) []T {
	if len(list) > n {
		return list[:n]
	}
	return list
}
