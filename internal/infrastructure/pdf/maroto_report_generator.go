// Package pdf genera el reporte de inventario en PDF con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: título + fecha de generación                       │
//	│  KPIs: valor stock | valor venta | ganancia | margen        │
//	│  MOVIMIENTOS: ventas / reposiciones / ajustes               │
//	│  TABLA CATEGORÍAS: categoría | productos | valor | ganancia │
//	│  TABLA TOP 10: producto | cantidad | ganancia | margen      │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strconv"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-dashboard/internal/application/dto"
	"github.com/jhoicas/inventario-dashboard/internal/application/ports"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ ports.ReportRenderer = (*MarotoReportGenerator)(nil)

// MarotoReportGenerator implementa ports.ReportRenderer.
type MarotoReportGenerator struct {
	author string
}

// NewMarotoReportGenerator construye el generador; author aparece en los metadatos del PDF.
func NewMarotoReportGenerator(author string) *MarotoReportGenerator {
	return &MarotoReportGenerator{author: author}
}

// Render genera el PDF y devuelve sus bytes.
func (g *MarotoReportGenerator) Render(report *dto.ReportDTO) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de inventario", true).
		WithAuthor(g.author, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(kpiRow(report))
	m.AddRows(movementsRow(report.MovementCounts, report.TotalSales))
	m.AddRows(line.NewRow(4))

	m.AddRows(sectionTitle("Desglose por categoría"))
	m.AddRows(tableHeader([]string{"Categoría", "Productos", "Valor en stock", "Ganancia potencial"}, []int{5, 2, 3, 2}))
	for _, c := range report.Categories {
		m.AddRows(tableRow([]int{5, 2, 3, 2},
			c.Category,
			strconv.Itoa(c.Count),
			formatMoney(c.TotalValue),
			formatMoney(c.PotentialProfit),
		))
	}
	m.AddRows(line.NewRow(4))

	m.AddRows(sectionTitle("Productos más rentables"))
	m.AddRows(tableHeader([]string{"Producto", "Categoría", "Cant.", "Ganancia", "Margen"}, []int{4, 3, 1, 2, 2}))
	for _, p := range report.TopProducts {
		m.AddRows(tableRow([]int{4, 3, 1, 2, 2},
			p.Name,
			p.Category,
			strconv.Itoa(p.Quantity),
			formatMoney(p.Profit),
			p.ProfitMargin.StringFixed(1)+"%",
		))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow(r *dto.ReportDTO) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New("REPORTE DE INVENTARIO", props.Text{
				Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 2,
			}),
		),
		col.New(4).Add(
			text.New("Generado: "+r.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 4, Color: colorGray,
			}),
			text.New(fmt.Sprintf("%d productos | %d con stock bajo", r.TotalProducts, r.LowStockCount), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

func kpiRow(r *dto.ReportDTO) core.Row {
	kpi := func(label, value string) core.Col {
		return col.New(3).Add(
			text.New(label, props.Text{Size: 7, Color: colorGray, Align: align.Center, Top: 2}),
			text.New(value, props.Text{Style: fontstyle.Bold, Size: 11, Align: align.Center, Top: 7}),
		)
	}
	return row.New(16).Add(
		kpi("Valor en stock (costo)", formatMoney(r.TotalStockValue)),
		kpi("Valor de venta", formatMoney(r.TotalSellingValue)),
		kpi("Ganancia potencial", formatMoney(r.PotentialProfit)),
		kpi("Margen", r.ProfitMargin.StringFixed(2)+"%"),
	)
}

func movementsRow(c dto.MovementCountsDTO, sales int) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(fmt.Sprintf("Movimientos recientes: %d ventas · %d reposiciones · %d ajustes (ventas totales: %d)",
			c.Sale, c.Restock, c.Adjustment, sales),
			props.Text{Size: 8, Color: colorGray, Top: 2}),
	))
}

func sectionTitle(title string) core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New(title, props.Text{Style: fontstyle.Bold, Size: 10, Color: colorPrimary, Top: 1}),
	))
}

func tableHeader(labels []string, sizes []int) core.Row {
	cols := make([]core.Col, 0, len(labels))
	for i, l := range labels {
		a := align.Right
		if i == 0 {
			a = align.Left
		}
		cols = append(cols, col.New(sizes[i]).Add(text.New(l, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Top: 1, Left: 1, Right: 1,
		})))
	}
	return row.New(6).Add(cols...)
}

func tableRow(sizes []int, values ...string) core.Row {
	cols := make([]core.Col, 0, len(values))
	for i, v := range values {
		a := align.Right
		if i == 0 {
			a = align.Left
		}
		cols = append(cols, col.New(sizes[i]).Add(text.New(v, props.Text{
			Size: 8, Align: a, Top: 1, Left: 1, Right: 1,
		})))
	}
	return row.New(6).Add(cols...)
}

// formatMoney formato "$1.234.567,89".
func formatMoney(d decimal.Decimal) string {
	s := d.StringFixed(2)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, _ := strings.Cut(s, ".")

	n := len(intPart)
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return sign + "$" + string(buf) + "," + frac
}
