package inventory

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/inventario-dashboard/internal/application/dto"
	"github.com/jhoicas/inventario-dashboard/internal/application/ports"
	"github.com/jhoicas/inventario-dashboard/internal/domain"
	"github.com/jhoicas/inventario-dashboard/internal/domain/entity"
	domaininv "github.com/jhoicas/inventario-dashboard/internal/domain/inventory"
	"github.com/jhoicas/inventario-dashboard/internal/domain/repository"
	"github.com/jhoicas/inventario-dashboard/pkg/logger"
)

// RecentMovementsLimit tamaño del listado de movimientos recientes.
const RecentMovementsLimit = 50

// MovementUseCase registra movimientos de stock y expone el libro.
// El registro bloquea la fila del producto (SELECT FOR UPDATE), actualiza la cantidad e inserta
// el movimiento en una sola transacción: o se aplican ambas escrituras o ninguna.
type MovementUseCase struct {
	txRunner  TxRunner
	movements repository.StockMovementRepository
	products  repository.ProductRepository
	cache     ports.QueryCache
	observer  MovementObserver
	log       *logger.Logger
}

// NewMovementUseCase construye el caso de uso. observer puede ser nil.
func NewMovementUseCase(
	txRunner TxRunner,
	products repository.ProductRepository,
	movements repository.StockMovementRepository,
	cache ports.QueryCache,
	observer MovementObserver,
	log *logger.Logger,
) *MovementUseCase {
	if observer == nil {
		observer = nopObserver{}
	}
	if cache == nil {
		cache = ports.NopCache{}
	}
	return &MovementUseCase{
		txRunner:  txRunner,
		movements: movements,
		products:  products,
		cache:     cache,
		observer:  observer,
		log:       log.Named("inventory"),
	}
}

// Record valida la entrada y aplica el movimiento de forma atómica.
func (uc *MovementUseCase) Record(ctx context.Context, in dto.RecordMovementRequest) (*dto.RecordMovementResponse, error) {
	mt, err := validateMovement(in)
	if err != nil {
		uc.observer.MovementRejected("validation")
		return nil, err
	}

	mov := &entity.StockMovement{
		ID:             uuid.New().String(),
		ProductID:      in.ProductID,
		Type:           mt,
		QuantityChange: in.QuantityChange,
		Notes:          in.Notes,
	}
	var newQty int

	err = uc.txRunner.Run(ctx, func(productRepo repository.ProductRepository, movRepo repository.StockMovementRepository) error {
		product, err := productRepo.GetForUpdate(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}

		newQty, err = domaininv.ApplyMovement(product.Quantity, mt, in.QuantityChange)
		if err != nil {
			return err
		}
		if err := productRepo.UpdateQuantity(ctx, product.ID, newQty); err != nil {
			return err
		}
		if err := movRepo.Create(ctx, mov); err != nil {
			return err
		}
		mov.ProductName = product.Name
		return nil
	})
	if err != nil {
		uc.observer.MovementRejected(rejectReason(err))
		return nil, err
	}

	uc.invalidate(ctx, ports.CacheKeyProducts, ports.CacheKeyStockMovements)
	uc.observer.MovementRecorded(mt)
	uc.log.Info().
		Str("product_id", mov.ProductID).
		Str("type", string(mt)).
		Int("quantity_change", mov.QuantityChange).
		Int("new_quantity", newQty).
		Msg("movimiento registrado")

	return &dto.RecordMovementResponse{Movement: dto.NewMovementResponse(mov), NewQuantity: newQty}, nil
}

// ListRecent devuelve los últimos movimientos (máx. 50) con el nombre del producto.
func (uc *MovementUseCase) ListRecent(ctx context.Context) (*dto.MovementListResponse, error) {
	movements, err := uc.recent(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.MovementListResponse{Items: dto.NewMovementResponses(movements)}, nil
}

// RecentMovements versión en entidades para analítica; pasa por la misma caché.
func (uc *MovementUseCase) RecentMovements(ctx context.Context) ([]*entity.StockMovement, error) {
	return uc.recent(ctx)
}

// ListByProduct historial completo de un producto. No se cachea.
func (uc *MovementUseCase) ListByProduct(ctx context.Context, productID string) (*dto.MovementListResponse, error) {
	product, err := uc.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	movements, err := uc.movements.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	return &dto.MovementListResponse{Items: dto.NewMovementResponses(movements)}, nil
}

func (uc *MovementUseCase) recent(ctx context.Context) ([]*entity.StockMovement, error) {
	var cached []*entity.StockMovement
	hit, err := uc.cache.Get(ctx, ports.CacheKeyStockMovements, &cached)
	if err != nil {
		uc.log.Warn().Err(err).Str("key", ports.CacheKeyStockMovements).Msg("lectura de caché fallida")
	}
	if hit {
		return cached, nil
	}

	// La generación se toma antes de leer el store: si una escritura invalida
	// mientras tanto, Set descarta esta lectura.
	version, verErr := uc.cache.Version(ctx, ports.CacheKeyStockMovements)
	if verErr != nil {
		uc.log.Warn().Err(verErr).Str("key", ports.CacheKeyStockMovements).Msg("lectura de generación de caché fallida")
	}

	movements, err := uc.movements.ListRecent(ctx, RecentMovementsLimit)
	if err != nil {
		return nil, err
	}
	if verErr == nil {
		if err := uc.cache.Set(ctx, ports.CacheKeyStockMovements, version, movements); err != nil {
			uc.log.Warn().Err(err).Str("key", ports.CacheKeyStockMovements).Msg("escritura de caché fallida")
		}
	}
	return movements, nil
}

func (uc *MovementUseCase) invalidate(ctx context.Context, keys ...string) {
	if err := uc.cache.Invalidate(ctx, keys...); err != nil {
		uc.log.Warn().Err(err).Strs("keys", keys).Msg("invalidación de caché fallida")
	}
}

func validateMovement(in dto.RecordMovementRequest) (entity.MovementType, error) {
	if in.ProductID == "" {
		return "", fmt.Errorf("%w: product_id es requerido", domain.ErrInvalidInput)
	}
	mt, err := entity.ParseMovementType(in.Type)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if in.QuantityChange == 0 {
		return "", fmt.Errorf("%w: quantity_change no puede ser 0", domain.ErrInvalidInput)
	}
	return mt, nil
}

func rejectReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrNegativeStock):
		return "negative_stock"
	case errors.Is(err, domain.ErrInvalidInput):
		return "validation"
	default:
		return "remote_failure"
	}
}
