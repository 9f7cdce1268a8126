package usecase

import (
	"context"
	"strings"

	"github.com/jhoicas/lumina-inventario/internal/application/dto"
	"github.com/jhoicas/lumina-inventario/internal/domain"
	"github.com/jhoicas/lumina-inventario/internal/domain/entity"
	"github.com/jhoicas/lumina-inventario/internal/domain/repository"
)

// ProfileUseCase lectura y edición del perfil propio.
type ProfileUseCase struct {
	users repository.UserRepository
}

func NewProfileUseCase(users repository.UserRepository) *ProfileUseCase {
	return &ProfileUseCase{users: users}
}

func (uc *ProfileUseCase) Get(ctx context.Context, userID string) (*entity.UserAccount, error) {
	u, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, wrapStorage("leer perfil", err)
	}
	return u, nil
}

// Update cambia nombre visible y teléfono. El email es inmutable: domain.ErrImmutableField si se intenta cambiar.
func (uc *ProfileUseCase) Update(ctx context.Context, userID string, in dto.UpdateProfileRequest) (*entity.UserAccount, error) {
	in.DisplayName = strings.TrimSpace(in.DisplayName)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Email = strings.TrimSpace(in.Email)
	if err := dto.Validate(&in); err != nil {
		return nil, err
	}
	cur, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, wrapStorage("leer perfil", err)
	}
	if in.Email != "" && !strings.EqualFold(in.Email, cur.Email) {
		return nil, domain.ErrImmutableField
	}
	if err := uc.users.UpdateProfile(ctx, userID, in.DisplayName, in.Phone); err != nil {
		return nil, wrapStorage("actualizar perfil", err)
	}
	cur.DisplayName, cur.Phone = in.DisplayName, in.Phone
	return cur, nil
}
