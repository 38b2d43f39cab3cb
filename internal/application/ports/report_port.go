package ports

import "github.com/jhoicas/inventario-dashboard/internal/application/dto"

// ReportRenderer genera el documento del reporte de inventario (PDF).
type ReportRenderer interface {
	Render(report *dto.ReportDTO) ([]byte, error)
}
