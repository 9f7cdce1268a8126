package usecase

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/lumina-inventario/internal/domain/entity"
	"github.com/jhoicas/lumina-inventario/internal/domain/repository"
	"github.com/jhoicas/lumina-inventario/internal/infrastructure/memory"
)

// fakeAdmin ruta privilegiada sobre el almacén en memoria.
type fakeAdmin struct {
	store     *memory.Store
	nameErr   error
	resetErr  error
	passwords map[string]string
}

func newFakeAdmin(s *memory.Store) *fakeAdmin {
	return &fakeAdmin{store: s, passwords: map[string]string{}}
}

func (f *fakeAdmin) CreateAccount(ctx context.Context, in NewAccount) (*entity.UserAccount, error) {
	u := &entity.UserAccount{ID: uuid.NewString(), Email: in.Email, DisplayName: in.DisplayName, Role: in.Role, IsActive: true}
	if err := f.store.Users().Create(ctx, u); err != nil {
		return nil, err
	}
	f.passwords[u.ID] = in.Password
	return u, nil
}

func (f *fakeAdmin) ResetPassword(_ context.Context, userID, password string) error {
	if f.resetErr != nil {
		return f.resetErr
	}
	f.passwords[userID] = password
	return nil
}

func (f *fakeAdmin) UpdateDisplayName(ctx context.Context, userID, name string) error {
	if f.nameErr != nil {
		return f.nameErr
	}
	u, err := f.store.Users().GetByID(ctx, userID)
	if err != nil {
		return err
	}
	return f.store.Users().UpdateProfile(ctx, userID, name, u.Phone)
}

// csvExporter exportador mínimo para las pruebas.
type csvExporter struct{}

func (csvExporter) Export(rows []*entity.MovementRecord) ([]byte, error) {
	var b strings.Builder
	for _, r := range rows {
		b.WriteString(r.ProductName + ";" + r.Action + "\n")
	}
	return []byte(b.String()), nil
}

func (csvExporter) ContentType() string { return "text/csv" }

// countingProducts cuenta las llamadas a List.
type countingProducts struct {
	repository.ProductRepository
	lists int
}

func (c *countingProducts) List(ctx context.Context, f repository.ProductFilter) ([]*entity.Product, int, error) {
	c.lists++
	return c.ProductRepository.List(ctx, f)
}

// failingMovements falla al insertar.
type failingMovements struct {
	repository.MovementRepository
	err error
}

func (f *failingMovements) Append(context.Context, *entity.MovementRecord) error { return f.err }

// brokenTx runner no atómico cuyo historial siempre falla.
type brokenTx struct {
	store *memory.Store
	err   error
}

func (b *brokenTx) Run(_ context.Context, fn func(repository.TxRepos) error) error {
	return fn(repository.TxRepos{
		Products:  b.store.Products(),
		Movements: &failingMovements{MovementRepository: b.store.Movements(), err: b.err},
	})
}

func (b *brokenTx) Atomic() bool { return false }
