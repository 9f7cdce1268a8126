// Package pdf genera el reporte de stock en PDF con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: título + fecha de generación                       │
//	│  RESUMEN: total | agotados | stock bajo | en stock | exceso │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Producto | Categoría | Stock | Mín | Máx | Estado | %│
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"
	"time"

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

	"github.com/jhoicas/lumina-inventario/internal/application/usecase"
	"github.com/jhoicas/lumina-inventario/internal/domain/entity"
	"github.com/jhoicas/lumina-inventario/internal/domain/stock"
)

var _ usecase.StockReportRenderer = (*StockReportGenerator)(nil)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorDanger  = &props.Color{Red: 176, Green: 32, Blue: 32}
	colorWarning = &props.Color{Red: 180, Green: 110, Blue: 0}
)

// StockReportGenerator reporte de una fila por producto con estado y nivel.
type StockReportGenerator struct{}

func NewStockReportGenerator() *StockReportGenerator { return &StockReportGenerator{} }

// Render genera el PDF y devuelve sus bytes.
func (g *StockReportGenerator) Render(_ context.Context, products []*entity.Product, generatedAt time.Time) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de Stock", true).
		Build()

	m := maroto.New(cfg)
	m.AddRows(headerRow(generatedAt))
	m.AddRows(summaryRow(products))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	m.AddRows(productRows(products)...)
	if len(products) == 0 {
		m.AddRows(row.New(10).Add(col.New(12).Add(
			text.New("No hay productos registrados", props.Text{Align: align.Center, Color: colorGray, Top: 3}),
		)))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow(generatedAt time.Time) core.Row {
	return row.New(16).Add(
		col.New(8).Add(text.New("REPORTE DE STOCK", props.Text{
			Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 2,
		})),
		col.New(4).Add(text.New("Generado: "+generatedAt.Format("02/01/2006 15:04"), props.Text{
			Size: 8, Align: align.Right, Color: colorGray, Top: 5,
		})),
	)
}

func summaryRow(products []*entity.Product) core.Row {
	counts := make(map[stock.Status]int, len(stock.Statuses))
	for _, p := range products {
		counts[stock.Classify(p.Stock, p.MinStock, p.MaxStock)]++
	}
	cell := func(label string, n int) core.Col {
		return col.New(2).Add(
			text.New(label, props.Text{Size: 7, Color: colorGray, Align: align.Center}),
			text.New(strconv.Itoa(n), props.Text{Style: fontstyle.Bold, Size: 11, Align: align.Center, Top: 4}),
		)
	}
	return row.New(14).Add(
		cell("Productos", len(products)),
		cell(stock.OutOfStock.Label(), counts[stock.OutOfStock]),
		cell(stock.LowStock.Label(), counts[stock.LowStock]),
		cell(stock.InStock.Label(), counts[stock.InStock]),
		cell(stock.OverStock.Label(), counts[stock.OverStock]),
		col.New(2),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Producto", 4, align.Left),
		h("Categoría", 2, align.Left),
		h("Stock", 1, align.Right),
		h("Mín", 1, align.Right),
		h("Máx", 1, align.Right),
		h("Estado", 2, align.Left),
		h("Nivel", 1, align.Right),
	)
}

func productRows(products []*entity.Product) []core.Row {
	rows := make([]core.Row, 0, len(products))
	for _, p := range products {
		status := stock.Classify(p.Stock, p.MinStock, p.MaxStock)
		level := p.Level()
		cell := func(s string, size int, a align.Type) core.Col {
			return col.New(size).Add(text.New(s, props.Text{Size: 8, Align: a, Top: 1, Left: 1, Right: 1}))
		}
		rows = append(rows, row.New(7).Add(
			cell(p.Name, 4, align.Left),
			cell(p.Category, 2, align.Left),
			cell(strconv.Itoa(p.Stock), 1, align.Right),
			cell(strconv.Itoa(p.MinStock), 1, align.Right),
			cell(strconv.Itoa(p.MaxStock), 1, align.Right),
			col.New(2).Add(text.New(status.Label(), props.Text{
				Size: 8, Top: 1, Left: 1, Style: fontstyle.Bold, Color: statusColor(status),
			})),
			cell(strconv.Itoa(level.Rounded())+"%", 1, align.Right),
		))
	}
	return rows
}

func statusColor(s stock.Status) *props.Color {
	switch s {
	case stock.OutOfStock:
		return colorDanger
	case stock.LowStock:
		return colorWarning
	default:
		return colorGray
	}
}
