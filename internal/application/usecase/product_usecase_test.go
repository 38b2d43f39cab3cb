package usecase_test

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-dashboard/internal/application/dto"
	"github.com/jhoicas/inventario-dashboard/internal/application/inventory"
	"github.com/jhoicas/inventario-dashboard/internal/application/ports"
	"github.com/jhoicas/inventario-dashboard/internal/application/usecase"
	"github.com/jhoicas/inventario-dashboard/internal/domain"
	"github.com/jhoicas/inventario-dashboard/internal/domain/entity"
	"github.com/jhoicas/inventario-dashboard/internal/infrastructure/cache"
	"github.com/jhoicas/inventario-dashboard/internal/infrastructure/memory"
	"github.com/jhoicas/inventario-dashboard/pkg/logger"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func intPtr(n int) *int { return &n }

func strPtr(s string) *string { return &s }

func newUseCase() (*usecase.ProductUseCase, *memory.Store, *cache.MemoryCache) {
	s := memory.NewStore()
	c := cache.NewMemoryCache(0)
	return usecase.NewProductUseCase(memory.NewProductRepository(s), memory.NewTxRunner(s), c, logger.Nop()), s, c
}

func validRequest(name string) dto.CreateProductRequest {
	return dto.CreateProductRequest{
		Name: name, Category: "Bebidas",
		CostPrice: dec("1.20"), SellingPrice: dec("2.00"), Quantity: 30,
	}
}

func TestCreate_ReorderLevelPorDefecto(t *testing.T) {
	uc, _, _ := newUseCase()
	out, err := uc.Create(context.Background(), validRequest("Agua"))
	require.NoError(t, err)

	assert.NotEmpty(t, out.ID)
	assert.Equal(t, 10, out.ReorderLevel)
	assert.True(t, dec("0.80").Equal(out.UnitProfit))
	assert.True(t, dec("66.67").Equal(out.ProfitMargin))
	assert.True(t, dec("36").Equal(out.StockValue))
	assert.False(t, out.LowStock)
	assert.False(t, out.CreatedAt.IsZero())
}

func TestCreate_ReorderLevelExplicitoCero(t *testing.T) {
	uc, _, _ := newUseCase()
	in := validRequest("Agua")
	in.ReorderLevel = intPtr(0)
	out, err := uc.Create(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, 0, out.ReorderLevel)
}

func TestCreate_Validaciones(t *testing.T) {
	uc, _, _ := newUseCase()
	cases := map[string]func(*dto.CreateProductRequest){
		"sin nombre":             func(r *dto.CreateProductRequest) { r.Name = "  " },
		"sin categoría":          func(r *dto.CreateProductRequest) { r.Category = "" },
		"costo negativo":         func(r *dto.CreateProductRequest) { r.CostPrice = dec("-1") },
		"precio negativo":        func(r *dto.CreateProductRequest) { r.SellingPrice = dec("-0.01") },
		"cantidad negativa":      func(r *dto.CreateProductRequest) { r.Quantity = -1 },
		"nivel reorden negativo": func(r *dto.CreateProductRequest) { r.ReorderLevel = intPtr(-5) },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			in := validRequest("Agua")
			mutate(&in)
			_, err := uc.Create(context.Background(), in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestUpdate_MezclaParcial(t *testing.T) {
	uc, _, _ := newUseCase()
	ctx := context.Background()
	created, err := uc.Create(ctx, validRequest("Agua"))
	require.NoError(t, err)

	price := dec("2.50")
	out, err := uc.Update(ctx, created.ID, dto.UpdateProductRequest{Name: strPtr("Agua mineral"), SellingPrice: &price})
	require.NoError(t, err)

	assert.Equal(t, "Agua mineral", out.Name)
	assert.Equal(t, "Bebidas", out.Category, "los campos ausentes no cambian")
	assert.True(t, price.Equal(out.SellingPrice))
	assert.Equal(t, 30, out.Quantity)
	assert.True(t, out.UpdatedAt.After(created.UpdatedAt))
}

func TestUpdate_Inexistente(t *testing.T) {
	uc, _, _ := newUseCase()
	_, err := uc.Update(context.Background(), "nada", dto.UpdateProductRequest{Name: strPtr("x")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdate_RechazaValoresInvalidos(t *testing.T) {
	uc, _, _ := newUseCase()
	ctx := context.Background()
	created, err := uc.Create(ctx, validRequest("Agua"))
	require.NoError(t, err)

	_, err = uc.Update(ctx, created.ID, dto.UpdateProductRequest{Quantity: intPtr(-1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	got, err := uc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 30, got.Quantity)
}

func TestDelete_DosVecesDevuelveNotFound(t *testing.T) {
	uc, _, _ := newUseCase()
	ctx := context.Background()
	created, err := uc.Create(ctx, validRequest("Agua"))
	require.NoError(t, err)

	require.NoError(t, uc.Delete(ctx, created.ID))
	assert.ErrorIs(t, uc.Delete(ctx, created.ID), domain.ErrNotFound)

	_, err = uc.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	list, err := uc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list.Items)
}

func TestDelete_BorraMovimientosEInvalidaCache(t *testing.T) {
	uc, s, c := newUseCase()
	ctx := context.Background()
	movements := inventory.NewMovementUseCase(memory.NewTxRunner(s), memory.NewProductRepository(s),
		memory.NewStockMovementRepository(s), c, nil, logger.Nop())

	created, err := uc.Create(ctx, validRequest("Agua"))
	require.NoError(t, err)
	_, err = movements.Record(ctx, dto.RecordMovementRequest{ProductID: created.ID, Type: "sale", QuantityChange: 1})
	require.NoError(t, err)

	recent, err := movements.ListRecent(ctx)
	require.NoError(t, err)
	require.Len(t, recent.Items, 1)

	require.NoError(t, uc.Delete(ctx, created.ID))

	recent, err = movements.ListRecent(ctx)
	require.NoError(t, err)
	assert.Empty(t, recent.Items, "el historial se borra en cascada y la caché se invalida")
}

func TestList_OrdenYCache(t *testing.T) {
	uc, _, c := newUseCase()
	ctx := context.Background()

	a, err := uc.Create(ctx, validRequest("A"))
	require.NoError(t, err)
	_, err = uc.Create(ctx, validRequest("B"))
	require.NoError(t, err)

	list, err := uc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list.Items, 2)
	assert.Equal(t, "B", list.Items[0].Name)

	var cached []interface{}
	hit, err := c.Get(ctx, ports.CacheKeyProducts, &cached)
	require.NoError(t, err)
	assert.True(t, hit, "el listado queda en caché")

	_, err = uc.Update(ctx, a.ID, dto.UpdateProductRequest{Quantity: intPtr(1)})
	require.NoError(t, err)

	list, err = uc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, "A", list.Items[0].Name, "la actualización invalida la caché y reordena")
	assert.True(t, list.Items[0].LowStock)
	assert.Equal(t, 2, list.Total)
}

func TestCreate_RedondeaPreciosADosDecimales(t *testing.T) {
	uc, _, _ := newUseCase()
	ctx := context.Background()
	in := validRequest("Agua")
	in.CostPrice = dec("1.125")
	in.SellingPrice = dec("2.3349")

	out, err := uc.Create(ctx, in)
	require.NoError(t, err)
	assert.True(t, dec("1.13").Equal(out.CostPrice))
	assert.True(t, dec("2.33").Equal(out.SellingPrice))

	got, err := uc.GetByID(ctx, out.ID)
	require.NoError(t, err)
	assert.True(t, dec("1.13").Equal(got.CostPrice), "lo guardado coincide con la respuesta")

	price := dec("9.999")
	upd, err := uc.Update(ctx, out.ID, dto.UpdateProductRequest{SellingPrice: &price})
	require.NoError(t, err)
	assert.True(t, dec("10").Equal(upd.SellingPrice))
}

// Una edición parcial concurrente con ventas no debe pisar la cantidad.
func TestUpdate_ParcialNoPierdeVentasConcurrentes(t *testing.T) {
	uc, s, c := newUseCase()
	ctx := context.Background()
	movements := inventory.NewMovementUseCase(memory.NewTxRunner(s), memory.NewProductRepository(s),
		memory.NewStockMovementRepository(s), c, nil, logger.Nop())

	created, err := uc.Create(ctx, validRequest("Agua"))
	require.NoError(t, err)

	const n = 20
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, err := movements.Record(ctx, dto.RecordMovementRequest{ProductID: created.ID, Type: "sale", QuantityChange: 1})
			assert.NoError(t, err)
		}()
		go func() {
			defer wg.Done()
			_, err := uc.Update(ctx, created.ID, dto.UpdateProductRequest{Name: strPtr("Agua mineral")})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err := uc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 30-n, got.Quantity, "cada venta se refleja en la cantidad")
	assert.Equal(t, "Agua mineral", got.Name)
}

// hookRepo ejecuta onList una sola vez después de que List leyó el store.
type hookRepo struct {
	*memory.ProductRepo
	once   sync.Once
	onList func()
}

func (r *hookRepo) List(ctx context.Context) ([]*entity.Product, error) {
	list, err := r.ProductRepo.List(ctx)
	r.once.Do(r.onList)
	return list, err
}

func TestProducts_LecturaObsoletaNoQuedaEnCache(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	c := cache.NewMemoryCache(0)
	repo := &hookRepo{ProductRepo: memory.NewProductRepository(s)}
	uc := usecase.NewProductUseCase(repo, memory.NewTxRunner(s), c, logger.Nop())

	// Un alta confirma e invalida entre la lectura del store y el llenado de la caché.
	repo.onList = func() {
		_, err := uc.Create(ctx, validRequest("Agua"))
		require.NoError(t, err)
	}

	first, err := uc.Products(ctx)
	require.NoError(t, err)
	assert.Empty(t, first, "la primera lectura es anterior al alta")

	second, err := uc.Products(ctx)
	require.NoError(t, err)
	assert.Len(t, second, 1, "la caché no debe servir el listado anterior al alta")
}
