package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/lumina-inventario/internal/domain"
	"github.com/jhoicas/lumina-inventario/internal/domain/entity"
	"github.com/jhoicas/lumina-inventario/internal/domain/stock"
	"github.com/jhoicas/lumina-inventario/internal/infrastructure/memory"
)

type recordingRenderer struct {
	got []*entity.Product
}

func (r *recordingRenderer) Render(_ context.Context, products []*entity.Product, _ time.Time) ([]byte, error) {
	r.got = products
	return []byte("%PDF-fake"), nil
}

type brokenCatalog struct{}

func (brokenCatalog) ListAll(context.Context) ([]*entity.Product, error) {
	return nil, errors.New("conexión perdida")
}

func TestStockPDF_RefreshesStatus(t *testing.T) {
	store := memory.New()
	ctx := context.Background()
	// estado guardado desactualizado: el reporte lo recalcula
	require.NoError(t, store.Products().Create(ctx, &entity.Product{Name: "Cable", Category: "Eléctrico", Stock: 60, MinStock: 10, MaxStock: 50, Status: stock.InStock}))

	r := &recordingRenderer{}
	doc, err := NewReportUseCase(store.Products(), r).StockPDF(ctx)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-fake", string(doc))
	require.Len(t, r.got, 1)
	assert.Equal(t, stock.OverStock, r.got[0].Status)
}

func TestStockPDF_StorageError(t *testing.T) {
	_, err := NewReportUseCase(brokenCatalog{}, &recordingRenderer{}).StockPDF(context.Background())
	assert.ErrorIs(t, err, domain.ErrStorage)
}
