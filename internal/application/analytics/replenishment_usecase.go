package analytics

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-dashboard/internal/application/dto"
	"github.com/jhoicas/inventario-dashboard/internal/domain/inventory"
)

// ReplenishmentUseCase lista de reposición para los productos en o bajo su nivel de reorden.
// Prioriza por margen, luego por unidades vendidas y por último por déficit.
type ReplenishmentUseCase struct {
	products ProductSource
	sales    SalesSource
}

func NewReplenishmentUseCase(products ProductSource, sales SalesSource) *ReplenishmentUseCase {
	return &ReplenishmentUseCase{products: products, sales: sales}
}

// Generate calcula stock ideal = ceil(reorden × 1.5) y la cantidad a pedir para llegar a él.
func (uc *ReplenishmentUseCase) Generate(ctx context.Context) ([]dto.ReplenishmentSuggestionDTO, error) {
	products, err := uc.products.Products(ctx)
	if err != nil {
		return nil, fmt.Errorf("reposición: productos: %w", err)
	}
	low := inventory.LowStockProducts(products)
	if len(low) == 0 {
		return []dto.ReplenishmentSuggestionDTO{}, nil
	}
	sold, err := uc.sales.UnitsSoldByProduct(ctx)
	if err != nil {
		return nil, fmt.Errorf("reposición: ventas: %w", err)
	}

	suggestions := make([]dto.ReplenishmentSuggestionDTO, 0, len(low))
	for _, p := range low {
		ideal := (p.ReorderLevel*3 + 1) / 2
		suggested := ideal - p.Quantity
		if suggested < 0 {
			suggested = 0
		}
		suggestions = append(suggestions, dto.ReplenishmentSuggestionDTO{
			ProductID:          p.ID,
			ProductName:        p.Name,
			Category:           p.Category,
			CurrentStock:       p.Quantity,
			ReorderLevel:       p.ReorderLevel,
			IdealStock:         ideal,
			SuggestedOrderQty:  suggested,
			UnitCost:           p.CostPrice,
			EstimatedOrderCost: p.CostPrice.Mul(decimal.NewFromInt(int64(suggested))).Round(2),
			ProfitMargin:       inventory.ProfitMargin(p).Round(2),
			UnitsSold:          sold[p.ID],
		})
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		a, b := suggestions[i], suggestions[j]
		if !a.ProfitMargin.Equal(b.ProfitMargin) {
			return a.ProfitMargin.GreaterThan(b.ProfitMargin)
		}
		if a.UnitsSold != b.UnitsSold {
			return a.UnitsSold > b.UnitsSold
		}
		return a.ReorderLevel-a.CurrentStock > b.ReorderLevel-b.CurrentStock
	})
	for i := range suggestions {
		suggestions[i].Priority = i + 1
	}
	return suggestions, nil
}
