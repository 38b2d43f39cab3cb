package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-dashboard/internal/application/dto"
	"github.com/jhoicas/inventario-dashboard/internal/application/inventory"
	"github.com/jhoicas/inventario-dashboard/internal/application/ports"
	"github.com/jhoicas/inventario-dashboard/internal/domain"
	"github.com/jhoicas/inventario-dashboard/internal/domain/entity"
	"github.com/jhoicas/inventario-dashboard/internal/domain/repository"
	"github.com/jhoicas/inventario-dashboard/pkg/logger"
)

// ProductUseCase casos de uso CRUD para productos.
// El listado pasa por la caché bajo la clave "products"; cada escritura la invalida.
type ProductUseCase struct {
	repo     repository.ProductRepository
	txRunner inventory.TxRunner
	cache    ports.QueryCache
	log      *logger.Logger
}

// NewProductUseCase construye el caso de uso. cache puede ser nil (sin caché).
func NewProductUseCase(
	repo repository.ProductRepository,
	txRunner inventory.TxRunner,
	cache ports.QueryCache,
	log *logger.Logger,
) *ProductUseCase {
	if cache == nil {
		cache = ports.NopCache{}
	}
	return &ProductUseCase{repo: repo, txRunner: txRunner, cache: cache, log: log.Named("products")}
}

// Create valida y persiste un producto nuevo. ReorderLevel vacío toma el valor por defecto (10).
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	reorder := entity.DefaultReorderLevel
	if in.ReorderLevel != nil {
		reorder = *in.ReorderLevel
	}
	product := &entity.Product{
		ID:           uuid.New().String(),
		Name:         strings.TrimSpace(in.Name),
		Category:     strings.TrimSpace(in.Category),
		CostPrice:    roundPrice(in.CostPrice),
		SellingPrice: roundPrice(in.SellingPrice),
		Quantity:     in.Quantity,
		ReorderLevel: reorder,
	}
	if err := validateProduct(product); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	uc.invalidate(ctx, ports.CacheKeyProducts)
	uc.log.Info().Str("product_id", product.ID).Str("name", product.Name).Msg("producto creado")

	out := dto.NewProductResponse(product)
	return &out, nil
}

// GetByID obtiene un producto; domain.ErrNotFound si no existe.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	out := dto.NewProductResponse(product)
	return &out, nil
}

// Update aplica solo los campos presentes y revalida el producto resultante.
// Lee y escribe bajo el mismo bloqueo de fila que Record, así una edición parcial
// nunca pisa la cantidad de un movimiento concurrente.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	var updated *entity.Product
	err := uc.txRunner.Run(ctx, func(productRepo repository.ProductRepository, _ repository.StockMovementRepository) error {
		product, err := productRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		applyUpdate(product, in)
		if err := validateProduct(product); err != nil {
			return err
		}
		if err := productRepo.Update(ctx, product); err != nil {
			return err
		}
		updated = product
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.invalidate(ctx, ports.CacheKeyProducts)

	out := dto.NewProductResponse(updated)
	return &out, nil
}

func applyUpdate(p *entity.Product, in dto.UpdateProductRequest) {
	if in.Name != nil {
		p.Name = strings.TrimSpace(*in.Name)
	}
	if in.Category != nil {
		p.Category = strings.TrimSpace(*in.Category)
	}
	if in.CostPrice != nil {
		p.CostPrice = roundPrice(*in.CostPrice)
	}
	if in.SellingPrice != nil {
		p.SellingPrice = roundPrice(*in.SellingPrice)
	}
	if in.Quantity != nil {
		p.Quantity = *in.Quantity
	}
	if in.ReorderLevel != nil {
		p.ReorderLevel = *in.ReorderLevel
	}
}

// Delete elimina el producto y su historial de movimientos.
// Un id inexistente (o ya borrado) devuelve domain.ErrNotFound.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.invalidate(ctx, ports.CacheKeyProducts, ports.CacheKeyStockMovements)
	uc.log.Info().Str("product_id", id).Msg("producto eliminado")
	return nil
}

// List devuelve todos los productos, el más recientemente actualizado primero.
func (uc *ProductUseCase) List(ctx context.Context) (*dto.ProductListResponse, error) {
	products, err := uc.Products(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.ProductListResponse{Items: dto.NewProductResponses(products), Total: len(products)}, nil
}

// Products listado en entidades para dashboard y reportes; usa la misma caché que List.
func (uc *ProductUseCase) Products(ctx context.Context) ([]*entity.Product, error) {
	var cached []*entity.Product
	hit, err := uc.cache.Get(ctx, ports.CacheKeyProducts, &cached)
	if err != nil {
		uc.log.Warn().Err(err).Str("key", ports.CacheKeyProducts).Msg("lectura de caché fallida")
	}
	if hit {
		return cached, nil
	}

	version, verErr := uc.cache.Version(ctx, ports.CacheKeyProducts)
	if verErr != nil {
		uc.log.Warn().Err(verErr).Str("key", ports.CacheKeyProducts).Msg("lectura de generación de caché fallida")
	}

	products, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	// Sin generación válida no se llena la caché: no habría forma de detectar una invalidación intermedia.
	if verErr == nil {
		if err := uc.cache.Set(ctx, ports.CacheKeyProducts, version, products); err != nil {
			uc.log.Warn().Err(err).Str("key", ports.CacheKeyProducts).Msg("escritura de caché fallida")
		}
	}
	return products, nil
}

func (uc *ProductUseCase) invalidate(ctx context.Context, keys ...string) {
	if err := uc.cache.Invalidate(ctx, keys...); err != nil {
		uc.log.Warn().Err(err).Strs("keys", keys).Msg("invalidación de caché fallida")
	}
}

// pricePlaces escala de cost_price y selling_price (NUMERIC(14,2) en PostgreSQL).
const pricePlaces = 2

// roundPrice deja el precio con la misma escala que guarda la base, para que la respuesta
// y ambos adaptadores coincidan.
func roundPrice(d decimal.Decimal) decimal.Decimal {
	return d.Round(pricePlaces)
}

func validateProduct(p *entity.Product) error {
	switch {
	case p.Name == "":
		return fmt.Errorf("%w: name es requerido", domain.ErrInvalidInput)
	case p.Category == "":
		return fmt.Errorf("%w: category es requerido", domain.ErrInvalidInput)
	case p.CostPrice.IsNegative():
		return fmt.Errorf("%w: cost_price no puede ser negativo", domain.ErrInvalidInput)
	case p.SellingPrice.IsNegative():
		return fmt.Errorf("%w: selling_price no puede ser negativo", domain.ErrInvalidInput)
	case p.Quantity < 0:
		return fmt.Errorf("%w: quantity no puede ser negativo", domain.ErrInvalidInput)
	case p.ReorderLevel < 0:
		return fmt.Errorf("%w: reorder_level no puede ser negativo", domain.ErrInvalidInput)
	}
	return nil
}
