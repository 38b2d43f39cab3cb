package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/inventario-dashboard/internal/application/analytics"
)

// ReportHandler reportes de inventario (JSON, PDF y reposición).
type ReportHandler struct {
	report        *appanalytics.ReportUseCase
	replenishment *appanalytics.ReplenishmentUseCase
}

func NewReportHandler(report *appanalytics.ReportUseCase, replenishment *appanalytics.ReplenishmentUseCase) *ReportHandler {
	return &ReportHandler{report: report, replenishment: replenishment}
}

// Summary godoc
// @Summary      Reporte completo de inventario
// @Tags         reports
// @Produce      json
// @Success      200  {object}  dto.ReportDTO
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/reports/summary [get]
func (h *ReportHandler) Summary(c *fiber.Ctx) error {
	out, err := h.report.Build(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// PDF godoc
// @Summary      Reporte de inventario en PDF
// @Tags         reports
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/reports/pdf [get]
func (h *ReportHandler) PDF(c *fiber.Ctx) error {
	doc, err := h.report.RenderPDF(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="reporte-inventario.pdf"`)
	return c.Send(doc)
}

// Replenishment godoc
// @Summary      Sugerencias de reposición
// @Description  Productos en o bajo su nivel de reorden, ordenados por prioridad.
// @Tags         reports
// @Produce      json
// @Success      200  {array}   dto.ReplenishmentSuggestionDTO
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/reports/replenishment [get]
func (h *ReportHandler) Replenishment(c *fiber.Ctx) error {
	out, err := h.replenishment.Generate(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
