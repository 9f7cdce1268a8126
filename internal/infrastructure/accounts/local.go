// Package accounts implementa la ruta privilegiada de gestión de cuentas (usecase.AccountAdmin).
// Local escribe directo en la base propia; Remote invoca las funciones HTTPS del proveedor de
// identidad y replica el resultado en la base propia.
package accounts

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/lumina-inventario/internal/application/usecase"
	"github.com/jhoicas/lumina-inventario/internal/domain"
	"github.com/jhoicas/lumina-inventario/internal/domain/entity"
	"github.com/jhoicas/lumina-inventario/internal/domain/repository"
)

var _ usecase.AccountAdmin = (*Local)(nil)

// Local cuentas con hash bcrypt en la tabla users.
type Local struct {
	users repository.UserRepository
	cost  int
	now   func() time.Time
}

// NewLocal construye el driver local. cost 0 usa bcrypt.DefaultCost.
func NewLocal(users repository.UserRepository, cost int) *Local {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &Local{users: users, cost: cost, now: time.Now}
}

// CreateAccount crea la cuenta activa con un ID nuevo.
func (l *Local) CreateAccount(ctx context.Context, in usecase.NewAccount) (*entity.UserAccount, error) {
	return l.create(ctx, uuid.NewString(), in)
}

func (l *Local) create(ctx context.Context, id string, in usecase.NewAccount) (*entity.UserAccount, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), l.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	role := in.Role
	if role == "" {
		role = entity.RoleUser
	}
	u := &entity.UserAccount{
		ID:           id,
		Email:        in.Email,
		PasswordHash: string(hash),
		DisplayName:  in.DisplayName,
		Role:         role,
		IsActive:     true,
		CreatedAt:    l.now(),
	}
	if err := l.users.Create(ctx, u); err != nil {
		if domain.IsDomainError(err) {
			return nil, err
		}
		return nil, &domain.StorageError{Op: "crear cuenta", Err: err}
	}
	u.PasswordHash = ""
	return u, nil
}

// ResetPassword guarda el hash de la nueva contraseña.
func (l *Local) ResetPassword(ctx context.Context, userID, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), l.cost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := l.users.UpdatePassword(ctx, userID, string(hash)); err != nil {
		if domain.IsDomainError(err) {
			return err
		}
		return &domain.StorageError{Op: "cambiar contraseña", Err: err}
	}
	return nil
}

// UpdateDisplayName cambia el nombre visible conservando el teléfono.
func (l *Local) UpdateDisplayName(ctx context.Context, userID, displayName string) error {
	u, err := l.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := l.users.UpdateProfile(ctx, userID, displayName, u.Phone); err != nil {
		return &domain.StorageError{Op: "actualizar nombre", Err: err}
	}
	return nil
}
