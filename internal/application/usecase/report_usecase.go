package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/lumina-inventario/internal/domain"
	"github.com/jhoicas/lumina-inventario/internal/domain/entity"
)

// StockReportRenderer genera el documento del reporte de stock.
type StockReportRenderer interface {
	Render(ctx context.Context, products []*entity.Product, generatedAt time.Time) ([]byte, error)
}

// StockReportFileName nombre de descarga del reporte.
const StockReportFileName = "Reporte_Stock.pdf"

// ProductCatalog lectura completa del catálogo.
type ProductCatalog interface {
	ListAll(ctx context.Context) ([]*entity.Product, error)
}

// ReportUseCase reportes descargables del inventario.
type ReportUseCase struct {
	products ProductCatalog
	renderer StockReportRenderer
	now      func() time.Time
}

func NewReportUseCase(products ProductCatalog, renderer StockReportRenderer) *ReportUseCase {
	return &ReportUseCase{products: products, renderer: renderer, now: time.Now}
}

// StockPDF reporte con una fila por producto, estado y nivel.
func (uc *ReportUseCase) StockPDF(ctx context.Context) ([]byte, error) {
	products, err := uc.products.ListAll(ctx)
	if err != nil {
		return nil, &domain.StorageError{Op: "listar productos", Err: err}
	}
	for _, p := range products {
		p.Refresh()
	}
	doc, err := uc.renderer.Render(ctx, products, uc.now())
	if err != nil {
		return nil, err
	}
	return doc, nil
}
