package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/lumina-inventario/internal/application/dto"
	"github.com/jhoicas/lumina-inventario/internal/application/paging"
	"github.com/jhoicas/lumina-inventario/internal/domain"
	"github.com/jhoicas/lumina-inventario/internal/domain/entity"
	"github.com/jhoicas/lumina-inventario/internal/domain/repository"
	"github.com/jhoicas/lumina-inventario/internal/domain/stock"
	"github.com/jhoicas/lumina-inventario/internal/infrastructure/memory"
)

func newProductUC() (*ProductUseCase, *memory.Store) {
	s := memory.New()
	return NewProductUseCase(s.TxRunner(), s.Products(), zerolog.Nop()), s
}

func movements(t *testing.T, s *memory.Store) []*entity.MovementRecord {
	t.Helper()
	rows, _, err := s.Movements().List(context.Background(), repository.MovementFilter{})
	require.NoError(t, err)
	return rows
}

func TestCreateProduct_SeedsInitialEntry(t *testing.T) {
	uc, s := newProductUC()
	p, err := uc.Create(context.Background(), dto.CreateProductRequest{Name: " Teclado ", Category: "Periféricos", Stock: 15, MinStock: 5, MaxStock: 40}, "Ana")
	require.NoError(t, err)

	assert.Equal(t, "Teclado", p.Name)
	assert.Equal(t, stock.InStock, p.Status)
	ms := movements(t, s)
	require.Len(t, ms, 1)
	assert.Equal(t, entity.ActionEntry, ms[0].Action)
	assert.Equal(t, 15, ms[0].Quantity)
	assert.Equal(t, DetailProductCreated, ms[0].Details.InvoiceNumber)
	assert.Equal(t, "Ana", ms[0].UserName)
}

func TestCreateProduct_ZeroStockHasNoMovement(t *testing.T) {
	uc, s := newProductUC()
	p, err := uc.Create(context.Background(), dto.CreateProductRequest{Name: "Monitor", Category: "Pantallas", Stock: 0, MinStock: 1, MaxStock: 5}, "")
	require.NoError(t, err)
	assert.Equal(t, stock.OutOfStock, p.Status)
	assert.Empty(t, movements(t, s))
}

func TestCreateProduct_ValidationNeverTouchesStorage(t *testing.T) {
	uc, s := newProductUC()
	_, err := uc.Create(context.Background(), dto.CreateProductRequest{Name: "Monitor", Category: "Pantallas", MinStock: 10, MaxStock: 5}, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	all, _ := s.Products().ListAll(context.Background())
	assert.Empty(t, all)
}

func TestCreateProduct_HistoryFailureRemovesProduct(t *testing.T) {
	s := memory.New()
	uc := NewProductUseCase(&brokenTx{store: s, err: errors.New("insert falló")}, s.Products(), zerolog.Nop())

	_, err := uc.Create(context.Background(), dto.CreateProductRequest{Name: "Monitor", Category: "Pantallas", Stock: 3, MinStock: 1, MaxStock: 5}, "")
	assert.ErrorIs(t, err, domain.ErrStorage)
	all, _ := s.Products().ListAll(context.Background())
	assert.Empty(t, all, "el alta se compensa")
}

func TestUpdateProduct_StockChangeRecordsAdjustment(t *testing.T) {
	uc, s := newProductUC()
	ctx := context.Background()
	p, err := uc.Create(ctx, dto.CreateProductRequest{Name: "Mouse", Category: "Periféricos", Stock: 10, MinStock: 5, MaxStock: 40}, "")
	require.NoError(t, err)

	up, err := uc.Update(ctx, p.ID, dto.UpdateProductRequest{Name: "Mouse inalámbrico", Category: "Periféricos", Stock: 4, MinStock: 5, MaxStock: 40}, "Luis")
	require.NoError(t, err)
	assert.Equal(t, stock.LowStock, up.Status)
	assert.Equal(t, "Mouse inalámbrico", up.Name)

	ms := movements(t, s)
	require.Len(t, ms, 2)
	assert.Equal(t, entity.ActionExit, ms[0].Action)
	assert.Equal(t, 6, ms[0].Quantity)
	assert.Equal(t, DetailManualAdjust, ms[0].Details.Destination)
	assert.Equal(t, "Mouse inalámbrico", ms[0].ProductName)

	// sin cambio de stock no hay movimiento
	_, err = uc.Update(ctx, p.ID, dto.UpdateProductRequest{Name: "Mouse", Category: "Oficina", Stock: 4, MinStock: 2, MaxStock: 40}, "")
	require.NoError(t, err)
	assert.Len(t, movements(t, s), 2)
}

func TestUpdateProduct_NotFound(t *testing.T) {
	uc, _ := newProductUC()
	_, err := uc.Update(context.Background(), 77, dto.UpdateProductRequest{Name: "Mouse", Category: "Oficina", Stock: 1, MinStock: 1, MaxStock: 2}, "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteProduct_KeepsHistory(t *testing.T) {
	uc, s := newProductUC()
	ctx := context.Background()
	p, err := uc.Create(ctx, dto.CreateProductRequest{Name: "Mouse", Category: "Periféricos", Stock: 10, MinStock: 5, MaxStock: 40}, "")
	require.NoError(t, err)

	require.NoError(t, uc.Delete(ctx, p.ID))
	_, err = uc.Get(ctx, p.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, uc.Delete(ctx, p.ID), domain.ErrNotFound)

	ms := movements(t, s)
	require.Len(t, ms, 1)
	assert.Equal(t, "Mouse", ms[0].ProductName)
}

func TestListProducts(t *testing.T) {
	uc, _ := newProductUC()
	ctx := context.Background()
	for _, n := range []string{"Cable USB", "Cable HDMI", "Monitor"} {
		_, err := uc.Create(ctx, dto.CreateProductRequest{Name: n, Category: "Tecnología", Stock: 1, MinStock: 1, MaxStock: 5}, "")
		require.NoError(t, err)
	}
	res, err := uc.List(ctx, paging.Query{Search: "cable", PageSize: 1}, false)
	require.NoError(t, err)
	assert.Equal(t, 2, res.TotalCount)
	assert.Equal(t, 2, res.TotalPages)
	assert.Len(t, res.Rows, 1)

	_, err = uc.List(ctx, paging.Query{Sort: repository.Sort{Field: "password"}}, false)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSuggest_ShortInputSkipsStorage(t *testing.T) {
	s := memory.New()
	counting := &countingProducts{ProductRepository: s.Products()}
	uc := NewProductUseCase(s.TxRunner(), counting, zerolog.Nop())

	rows, err := uc.Suggest(context.Background(), " m ")
	require.NoError(t, err)
	assert.Empty(t, rows)
	assert.Equal(t, 0, counting.lists, "no se consulta el almacenamiento")

	ctx := context.Background()
	for i := 0; i < 7; i++ {
		_, err := uc.Create(ctx, dto.CreateProductRequest{Name: "Mouse", Category: "Periféricos", Stock: 1, MinStock: 1, MaxStock: 5}, "")
		require.NoError(t, err)
	}
	rows, err = uc.Suggest(ctx, "mo")
	require.NoError(t, err)
	assert.Len(t, rows, SuggestionLimit)
	assert.Equal(t, 1, counting.lists)
}
