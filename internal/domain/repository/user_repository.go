package repository

import (
	"context"

	"github.com/jhoicas/lumina-inventario/internal/domain/entity"
)

// UserFilter Search busca en email O nombre visible.
type UserFilter struct {
	Search string
	Window Window
}

// UserRepository cuentas de usuario. Las lecturas devuelven Role e IsActive desde el registro
// de acceso, con los valores por defecto user/activo cuando no existe.
type UserRepository interface {
	// Create inserta la cuenta y su registro de acceso. domain.ErrEmailAlreadyExists si el email existe.
	Create(ctx context.Context, u *entity.UserAccount) error
	GetByID(ctx context.Context, id string) (*entity.UserAccount, error)
	GetByEmail(ctx context.Context, email string) (*entity.UserAccount, error)
	List(ctx context.Context, f UserFilter) ([]*entity.UserAccount, int, error)
	UpdateProfile(ctx context.Context, id, displayName, phone string) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
}

// AccessRepository registro de control de acceso (rol y activo) por usuario.
type AccessRepository interface {
	Get(ctx context.Context, userID string) (*entity.AccessRecord, error)
	SetRole(ctx context.Context, userID, role string) error
	SetActive(ctx context.Context, userID string, active bool) error
}
