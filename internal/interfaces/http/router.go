package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/inventario-dashboard/internal/application/analytics"
	"github.com/jhoicas/inventario-dashboard/internal/application/inventory"
	"github.com/jhoicas/inventario-dashboard/internal/application/usecase"
	"github.com/jhoicas/inventario-dashboard/pkg/logger"
)

// RoleAdmin único rol autorizado a eliminar productos.
const RoleAdmin = "admin"

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC       *usecase.ProductUseCase
	MovementUC      *inventory.MovementUseCase
	DashboardUC     *appanalytics.DashboardUseCase
	ReportUC        *appanalytics.ReportUseCase
	ReplenishmentUC *appanalytics.ReplenishmentUseCase
	// JWTSecret vacío deja las rutas de escritura abiertas.
	JWTSecret string
	// RateLimiter nil desactiva el límite por IP.
	RateLimiter *RateLimiter
	// Log recibe la auditoría de escrituras; nil la descarta.
	Log *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}

	// Middlewares de escritura: rate limit (si está activo), JWT (si hay secret) y auditoría.
	var write []fiber.Handler
	if deps.RateLimiter != nil {
		write = append(write, deps.RateLimiter.Middleware())
	}
	if deps.JWTSecret != "" {
		write = append(write, AuthMiddleware(deps.JWTSecret))
	}
	write = append(write, AuditLog(log))
	route := func(handlers ...fiber.Handler) []fiber.Handler {
		return append(append([]fiber.Handler{}, write...), handlers...)
	}

	productHandler := NewProductHandler(deps.ProductUC, deps.MovementUC)
	products := api.Group("/products")
	products.Get("/", productHandler.List)
	products.Post("/", route(productHandler.Create)...)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", route(productHandler.Update)...)
	if deps.JWTSecret != "" {
		products.Delete("/:id", route(RequireRole(RoleAdmin), productHandler.Delete)...)
	} else {
		products.Delete("/:id", route(productHandler.Delete)...)
	}
	products.Get("/:id/movements", productHandler.Movements)

	movementHandler := NewMovementHandler(deps.MovementUC)
	movements := api.Group("/movements")
	movements.Get("/", movementHandler.ListRecent)
	movements.Post("/", route(movementHandler.Record)...)

	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	api.Get("/dashboard/summary", dashboardHandler.GetSummary)

	reportHandler := NewReportHandler(deps.ReportUC, deps.ReplenishmentUC)
	reports := api.Group("/reports")
	reports.Get("/summary", reportHandler.Summary)
	reports.Get("/pdf", reportHandler.PDF)
	reports.Get("/replenishment", reportHandler.Replenishment)
}
