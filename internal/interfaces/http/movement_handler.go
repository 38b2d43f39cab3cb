package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-dashboard/internal/application/dto"
	"github.com/jhoicas/inventario-dashboard/internal/application/inventory"
)

// MovementHandler expone el libro de movimientos de stock.
type MovementHandler struct {
	uc *inventory.MovementUseCase
}

func NewMovementHandler(uc *inventory.MovementUseCase) *MovementHandler {
	return &MovementHandler{uc: uc}
}

// Record godoc
// @Summary      Registrar movimiento de stock
// @Description  sale y restock usan quantity_change como magnitud; adjustment lleva signo.
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordMovementRequest  true  "Movimiento"
// @Success      201   {object}  dto.RecordMovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/movements [post]
func (h *MovementHandler) Record(c *fiber.Ctx) error {
	var in dto.RecordMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Record(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListRecent godoc
// @Summary      Últimos 50 movimientos
// @Tags         movements
// @Produce      json
// @Success      200  {object}  dto.MovementListResponse
// @Router       /api/movements [get]
func (h *MovementHandler) ListRecent(c *fiber.Ctx) error {
	out, err := h.uc.ListRecent(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
