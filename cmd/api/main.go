package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"

	_ "github.com/jhoicas/inventario-dashboard/docs"
	appanalytics "github.com/jhoicas/inventario-dashboard/internal/application/analytics"
	"github.com/jhoicas/inventario-dashboard/internal/application/inventory"
	"github.com/jhoicas/inventario-dashboard/internal/application/ports"
	"github.com/jhoicas/inventario-dashboard/internal/application/usecase"
	"github.com/jhoicas/inventario-dashboard/internal/domain/repository"
	infracache "github.com/jhoicas/inventario-dashboard/internal/infrastructure/cache"
	"github.com/jhoicas/inventario-dashboard/internal/infrastructure/memory"
	"github.com/jhoicas/inventario-dashboard/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/inventario-dashboard/internal/infrastructure/pdf"
	"github.com/jhoicas/inventario-dashboard/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/inventario-dashboard/internal/interfaces/http"
	"github.com/jhoicas/inventario-dashboard/pkg/config"
	"github.com/jhoicas/inventario-dashboard/pkg/logger"
)

// storage agrupa los adaptadores de persistencia elegidos al arrancar.
type storage struct {
	products  repository.ProductRepository
	movements repository.StockMovementRepository
	txRunner  inventory.TxRunner
	close     func()
}

// @title        Inventario Dashboard API
// @version      1.0
// @description  Productos, movimientos de stock, métricas y reportes de inventario.
// @BasePath     /
// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store := openStorage(ctx, cfg, log)
	defer store.close()

	cache, closeCache := openCache(ctx, cfg, log)
	defer closeCache()

	movementMetrics := metrics.NewMovementMetrics()

	productUC := usecase.NewProductUseCase(store.products, store.txRunner, cache, log)
	movementUC := inventory.NewMovementUseCase(store.txRunner, store.products, store.movements, cache, movementMetrics, log)
	dashboardUC := appanalytics.NewDashboardUseCase(productUC, movementUC)
	reportUC := appanalytics.NewReportUseCase(productUC, movementUC, infrapdf.NewMarotoReportGenerator(cfg.App.Name))
	replenishmentUC := appanalytics.NewReplenishmentUseCase(productUC, store.movements)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Inventario Dashboard API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", adaptor.HTTPHandler(movementMetrics.Handler()))

	var limiter *httpRouter.RateLimiter
	if cfg.RateLimit.RPS > 0 {
		limiter = httpRouter.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
		go limiter.Run(ctx)
	}
	if cfg.JWT.Secret == "" {
		log.Warn().Msg("JWT_SECRET vacío: rutas de escritura sin autenticación")
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:       productUC,
		MovementUC:      movementUC,
		DashboardUC:     dashboardUC,
		ReportUC:        reportUC,
		ReplenishmentUC: replenishmentUC,
		JWTSecret:       cfg.JWT.Secret,
		RateLimiter:     limiter,
		Log:             log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

// openStorage usa PostgreSQL si hay DATABASE_URL o DB_HOST; si no, el store en memoria.
func openStorage(ctx context.Context, cfg *config.Config, log *logger.Logger) storage {
	if !cfg.DB.Enabled() {
		log.Warn().Msg("sin base de datos configurada: usando almacenamiento en memoria")
		s := memory.NewStore()
		return storage{
			products:  memory.NewProductRepository(s),
			movements: memory.NewStockMovementRepository(s),
			txRunner:  memory.NewTxRunner(s),
			close:     func() {},
		}
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	if err := postgres.Migrate(ctx, pool); err != nil {
		pool.Close()
		log.Fatal().Err(err).Msg("aplicar esquema")
	}
	log.Info().Msg("PostgreSQL listo")
	return storage{
		products:  postgres.NewProductRepository(pool),
		movements: postgres.NewStockMovementRepository(pool),
		txRunner:  postgres.NewTxRunner(pool),
		close:     pool.Close,
	}
}

// openCache usa Redis si hay REDIS_ADDR; si falla o no está, caché en proceso.
// El func devuelto cierra el cliente Redis al apagar.
func openCache(ctx context.Context, cfg *config.Config, log *logger.Logger) (ports.QueryCache, func()) {
	ttl := time.Duration(cfg.Redis.TTLSeconds) * time.Second
	if cfg.Redis.Addr == "" {
		return infracache.NewMemoryCache(ttl), func() {}
	}
	rdb, err := infracache.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("Redis no disponible, usando caché en memoria")
		return infracache.NewMemoryCache(ttl), func() {}
	}
	log.Info().Str("addr", cfg.Redis.Addr).Msg("caché Redis conectada")
	return infracache.NewRedisCache(rdb, "inventario:", ttl), func() {
		if err := rdb.Close(); err != nil {
			log.Warn().Err(err).Msg("cerrar cliente Redis")
		}
	}
}
