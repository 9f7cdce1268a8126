package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/lumina-inventario/internal/domain"
	"github.com/jhoicas/lumina-inventario/internal/domain/entity"
	"github.com/jhoicas/lumina-inventario/internal/domain/repository"
)

func seedProducts(t *testing.T, s *Store, names ...[2]string) {
	t.Helper()
	base := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	for i, n := range names {
		p := &entity.Product{Name: n[0], Category: n[1], Stock: i, MinStock: 1, MaxStock: 10, CreatedAt: base.Add(time.Duration(i) * time.Minute)}
		p.Refresh()
		require.NoError(t, s.Products().Create(context.Background(), p))
	}
}

func TestProductListSearchIsCaseInsensitiveOnNameOrCategory(t *testing.T) {
	s := New()
	seedProducts(t, s,
		[2]string{"Mouse óptico", "Periféricos"},
		[2]string{"Teclado", "PERIFÉRICOS"},
		[2]string{"Monitor", "Pantallas"},
	)
	ctx := context.Background()

	rows, total, err := s.Products().List(ctx, repository.ProductFilter{Search: "periféricos"})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Len(t, rows, 2)

	rows, total, err = s.Products().List(ctx, repository.ProductFilter{Search: "ÓPTICO"})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, "Mouse óptico", rows[0].Name)
}

func TestProductListDefaultsToNewestFirstAndCountsFilteredSet(t *testing.T) {
	s := New()
	seedProducts(t, s,
		[2]string{"A", "x"}, [2]string{"B", "x"}, [2]string{"C", "x"}, [2]string{"D", "y"},
	)
	rows, total, err := s.Products().List(context.Background(), repository.ProductFilter{
		Search: "x",
		Window: repository.Window{Offset: 0, Limit: 2},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, total, "el total refleja el conjunto filtrado")
	require.Len(t, rows, 2)
	assert.Equal(t, "C", rows[0].Name)
	assert.Equal(t, "B", rows[1].Name)

	rows, total, err = s.Products().List(context.Background(), repository.ProductFilter{
		Search: "zzz",
	})
	require.NoError(t, err)
	assert.Equal(t, 0, total)
	assert.Empty(t, rows)
}

func TestProductListInStockOnly(t *testing.T) {
	s := New()
	seedProducts(t, s, [2]string{"Vacío", "x"}, [2]string{"Con stock", "x"})
	rows, total, err := s.Products().List(context.Background(), repository.ProductFilter{InStockOnly: true})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, "Con stock", rows[0].Name)
}

func TestProductReturnsCopies(t *testing.T) {
	s := New()
	seedProducts(t, s, [2]string{"A", "x"})
	p, err := s.Products().GetByID(context.Background(), 1)
	require.NoError(t, err)
	p.Stock = 999

	again, err := s.Products().GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 0, again.Stock)

	_, err = s.Products().GetByID(context.Background(), 42)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMovementsNewestFirstAndTotals(t *testing.T) {
	s := New()
	ctx := context.Background()
	repo := s.Movements()
	for _, m := range []entity.MovementRecord{
		{ProductID: 1, ProductName: "A", Action: entity.ActionEntry, Quantity: 10, Date: "2024-05-01"},
		{ProductID: 1, ProductName: "A", Action: entity.ActionExit, Quantity: 3, Date: "2024-05-02"},
		{ProductID: 2, ProductName: "B", Action: entity.ActionEntry, Quantity: 5, Date: "2024-05-02"},
	} {
		m := m
		require.NoError(t, repo.Append(ctx, &m))
	}

	rows, total, err := repo.List(ctx, repository.MovementFilter{})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Equal(t, int64(3), rows[0].ID)

	rows, _, err = repo.List(ctx, repository.MovementFilter{Action: entity.ActionEntry, ProductID: 1})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 10, rows[0].Quantity)

	tot, err := repo.Totals(ctx, repository.MovementFilter{}, "2024-05-02")
	require.NoError(t, err)
	assert.Equal(t, repository.MovementTotals{Today: 2, Entries: 15, Exits: 3}, tot)

	tot, err = repo.Totals(ctx, repository.MovementFilter{Action: entity.ActionExit}, "2024-05-02")
	require.NoError(t, err)
	assert.Equal(t, 0, tot.Entries, "el lado filtrado reporta 0")
	assert.Equal(t, 3, tot.Exits)
	assert.Equal(t, 2, tot.Today)
}

func TestReports(t *testing.T) {
	s := New()
	ctx := context.Background()
	for _, m := range []entity.MovementRecord{
		{ProductName: "A", Action: entity.ActionEntry, Quantity: 10, Date: "2024-04-10"},
		{ProductName: "B", Action: entity.ActionEntry, Quantity: 20, Date: "2024-05-01"},
		{ProductName: "A", Action: entity.ActionEntry, Quantity: 15, Date: "2024-05-03"},
		{ProductName: "A", Action: entity.ActionExit, Quantity: 4, Date: "2024-05-03"},
	} {
		m := m
		require.NoError(t, s.Movements().Append(ctx, &m))
	}

	monthly, err := s.Reports().MonthlyTotals(ctx, entity.ActionEntry, "2024-01-01")
	require.NoError(t, err)
	assert.Equal(t, []repository.MonthlyTotal{{Month: "2024-04", Total: 10}, {Month: "2024-05", Total: 35}}, monthly)

	top, err := s.Reports().TopProducts(ctx, entity.ActionEntry, 1)
	require.NoError(t, err)
	assert.Equal(t, []repository.ProductVolume{{ProductName: "A", TotalQuantity: 25}}, top)

	n, err := s.Reports().CountMovements(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
}

func TestUsersJoinAccessWithDefaults(t *testing.T) {
	s := New()
	ctx := context.Background()
	require.NoError(t, s.Users().Create(ctx, &entity.UserAccount{ID: "u1", Email: "ana@lumina.io", Role: entity.RoleAdmin, IsActive: true}))
	assert.ErrorIs(t, s.Users().Create(ctx, &entity.UserAccount{ID: "u2", Email: "ANA@lumina.io"}), domain.ErrEmailAlreadyExists)

	// cuenta sin registro de acceso
	s.users["u3"] = &entity.UserAccount{ID: "u3", Email: "luis@lumina.io"}
	u, err := s.Users().GetByID(ctx, "u3")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleUser, u.Role)
	assert.True(t, u.IsActive)

	require.NoError(t, s.Access().SetActive(ctx, "u1", false))
	u, err = s.Users().GetByEmail(ctx, "ana@lumina.io")
	require.NoError(t, err)
	assert.False(t, u.IsActive)
	assert.Equal(t, entity.RoleAdmin, u.Role)

	rows, total, err := s.Users().List(ctx, repository.UserFilter{Search: "LUIS"})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, "u3", rows[0].ID)
}

func TestTxRunnerIsNotAtomic(t *testing.T) {
	s := New()
	assert.False(t, s.TxRunner().Atomic())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := s.TxRunner().Run(ctx, func(repository.TxRepos) error { return nil })
	assert.ErrorIs(t, err, context.Canceled)
}
