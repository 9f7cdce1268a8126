package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/lumina-inventario/internal/application/inventory"
	"github.com/jhoicas/lumina-inventario/internal/application/paging"
	"github.com/jhoicas/lumina-inventario/internal/domain"
	"github.com/jhoicas/lumina-inventario/internal/domain/entity"
	"github.com/jhoicas/lumina-inventario/internal/domain/repository"
	"github.com/jhoicas/lumina-inventario/internal/infrastructure/memory"
)

func seedHistory(t *testing.T) (*HistoryUseCase, *memory.Store) {
	t.Helper()
	s := memory.New()
	ctx := context.Background()
	p := &entity.Product{Name: "Tóner", Category: "Impresión", Stock: 0, MinStock: 1, MaxStock: 100}
	require.NoError(t, s.Products().Create(ctx, p))

	rec := inventory.NewMovementRecorder(s.TxRunner(), s.Movements(), zerolog.Nop())
	_, err := rec.Record(ctx, inventory.RecordInput{ProductID: p.ID, Direction: inventory.DirectionIn, Quantity: 20, Detail: "F-10"})
	require.NoError(t, err)
	_, err = rec.Record(ctx, inventory.RecordInput{ProductID: p.ID, Direction: inventory.DirectionOut, Quantity: 5, Detail: "Piso 3"})
	require.NoError(t, err)
	_, err = rec.Record(ctx, inventory.RecordInput{ProductID: p.ID, Direction: inventory.DirectionIn, Quantity: 7})
	require.NoError(t, err)

	uc := NewHistoryUseCase(s.Movements(), csvExporter{})
	return uc, s
}

func TestHistoryListNewestFirstWithFilter(t *testing.T) {
	uc, _ := seedHistory(t)
	ctx := context.Background()

	res, err := uc.List(ctx, paging.Query{}, "")
	require.NoError(t, err)
	assert.Equal(t, 3, res.TotalCount)
	assert.Equal(t, 7, res.Rows[0].Quantity)

	res, err = uc.List(ctx, paging.Query{}, entity.ActionExit)
	require.NoError(t, err)
	assert.Equal(t, 1, res.TotalCount)
	assert.Equal(t, "Piso 3", res.Rows[0].Details.Destination)

	_, err = uc.List(ctx, paging.Query{}, "Traslado")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestHistoryListSearchAndSort(t *testing.T) {
	uc, _ := seedHistory(t)
	ctx := context.Background()

	res, err := uc.List(ctx, paging.Query{Search: "piso"}, "")
	require.NoError(t, err)
	require.Equal(t, 1, res.TotalCount)
	assert.Equal(t, 5, res.Rows[0].Quantity)

	res, err = uc.List(ctx, paging.Query{Search: "zzz-sin-coincidencias"}, "")
	require.NoError(t, err)
	assert.Equal(t, 0, res.TotalCount)
	assert.Empty(t, res.Rows)

	res, err = uc.List(ctx, paging.Query{Sort: repository.Sort{Field: repository.MovementSortQuantity}}, "")
	require.NoError(t, err)
	require.Len(t, res.Rows, 3)
	assert.Equal(t, []int{5, 7, 20}, []int{res.Rows[0].Quantity, res.Rows[1].Quantity, res.Rows[2].Quantity})

	res, err = uc.List(ctx, paging.Query{Sort: repository.Sort{Field: repository.MovementSortID}}, "")
	require.NoError(t, err)
	assert.Equal(t, 20, res.Rows[0].Quantity)

	_, err = uc.List(ctx, paging.Query{Sort: repository.Sort{Field: "user_password"}}, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestHistoryMetricsHonourFilter(t *testing.T) {
	uc, _ := seedHistory(t)
	ctx := context.Background()

	m, err := uc.Metrics(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, 3, m.Today)
	assert.Equal(t, 27, m.Entries)
	assert.Equal(t, 5, m.Exits)

	m, err = uc.Metrics(ctx, entity.ActionEntry)
	require.NoError(t, err)
	assert.Equal(t, 27, m.Entries)
	assert.Equal(t, 0, m.Exits)

	uc.now = func() time.Time { return time.Now().AddDate(0, 0, 1) }
	m, err = uc.Metrics(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, 0, m.Today)
}

func TestHistoryExport(t *testing.T) {
	uc, _ := seedHistory(t)
	f, err := uc.Export(context.Background(), entity.ActionEntry)
	require.NoError(t, err)
	assert.Equal(t, "Reporte_Historial_Entrada.xlsx", f.Name)
	assert.Equal(t, 2, f.Rows)
	assert.Equal(t, "Tóner;Entrada\nTóner;Entrada\n", string(f.Data))

	assert.Equal(t, "Reporte_Historial_Completo.xlsx", ExportFileName(""))
}
