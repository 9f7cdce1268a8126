package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jhoicas/lumina-inventario/internal/application/dto"
	"github.com/jhoicas/lumina-inventario/internal/application/paging"
	"github.com/jhoicas/lumina-inventario/internal/domain"
	"github.com/jhoicas/lumina-inventario/internal/domain/entity"
	"github.com/jhoicas/lumina-inventario/internal/domain/repository"
)

// UserUseCase gestión de cuentas por un administrador.
type UserUseCase struct {
	users  repository.UserRepository
	access repository.AccessRepository
	admin  AccountAdmin
	log    zerolog.Logger
}

func NewUserUseCase(users repository.UserRepository, access repository.AccessRepository, admin AccountAdmin, log zerolog.Logger) *UserUseCase {
	return &UserUseCase{
		users:  users,
		access: access,
		admin:  admin,
		log:    log.With().Str("component", "user_usecase").Logger(),
	}
}

// List página de usuarios con búsqueda en email o nombre visible.
func (uc *UserUseCase) List(ctx context.Context, q paging.Query) (paging.Result[*entity.UserAccount], error) {
	q = q.Normalize()
	rows, total, err := uc.users.List(ctx, repository.UserFilter{Search: q.Search, Window: q.Window()})
	if err != nil {
		return paging.Result[*entity.UserAccount]{}, &domain.StorageError{Op: "listar usuarios", Err: err}
	}
	return paging.NewResult(rows, total, q), nil
}

// UpdateUserResult resultado de Update. NameUpdated=false con Warning es un éxito parcial:
// el rol quedó aplicado pero el nombre no.
type UpdateUserResult struct {
	User        *entity.UserAccount
	RoleUpdated bool
	NameUpdated bool
	Warning     string
}

// Update cambia el rol en el registro de acceso y luego el nombre visible por la ruta privilegiada.
func (uc *UserUseCase) Update(ctx context.Context, id string, in dto.UpdateUserRequest) (*UpdateUserResult, error) {
	in.DisplayName = strings.TrimSpace(in.DisplayName)
	if err := dto.Validate(&in); err != nil {
		return nil, err
	}
	cur, err := uc.users.GetByID(ctx, id)
	if err != nil {
		return nil, wrapStorage("leer usuario", err)
	}

	res := &UpdateUserResult{}
	if cur.Role != in.Role {
		if err := uc.access.SetRole(ctx, id, in.Role); err != nil {
			return nil, &domain.StorageError{Op: "actualizar rol", Err: err}
		}
	}
	res.RoleUpdated = true

	if cur.DisplayName != in.DisplayName {
		if err := uc.admin.UpdateDisplayName(ctx, id, in.DisplayName); err != nil {
			res.Warning = "Rol actualizado, pero el nombre no pudo modificarse: " + err.Error()
			if errors.Is(err, domain.ErrPrivilegedUnavailable) {
				res.Warning = "Rol actualizado, pero el nombre no pudo modificarse: la ruta privilegiada no está disponible"
			}
			uc.log.Warn().Err(err).Str("user_id", id).Msg("nombre visible no actualizado")
		} else {
			res.NameUpdated = true
		}
	} else {
		res.NameUpdated = true
	}

	if res.User, err = uc.users.GetByID(ctx, id); err != nil {
		return nil, wrapStorage("leer usuario", err)
	}
	return res, nil
}

// SetActive activa o desactiva una cuenta. Un administrador no puede desactivarse a sí mismo.
func (uc *UserUseCase) SetActive(ctx context.Context, actorID, id string, active bool) (*entity.UserAccount, error) {
	if !active && actorID == id {
		return nil, domain.NewValidationError("is_active", "no puede desactivar su propia cuenta")
	}
	if _, err := uc.users.GetByID(ctx, id); err != nil {
		return nil, wrapStorage("leer usuario", err)
	}
	if err := uc.access.SetActive(ctx, id, active); err != nil {
		return nil, &domain.StorageError{Op: "actualizar estado", Err: err}
	}
	uc.log.Info().Str("user_id", id).Bool("active", active).Msg("estado de cuenta actualizado")
	u, err := uc.users.GetByID(ctx, id)
	if err != nil {
		return nil, wrapStorage("leer usuario", err)
	}
	return u, nil
}

// Create da de alta una cuenta por la ruta privilegiada.
func (uc *UserUseCase) Create(ctx context.Context, in dto.CreateUserRequest) (*entity.UserAccount, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.DisplayName = strings.TrimSpace(in.DisplayName)
	if err := dto.Validate(&in); err != nil {
		return nil, err
	}
	u, err := uc.admin.CreateAccount(ctx, NewAccount{
		Email:       in.Email,
		Password:    in.Password,
		DisplayName: in.DisplayName,
		Role:        in.Role,
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("user_id", u.ID).Str("role", u.Role).Msg("cuenta creada")
	return u, nil
}

// ResetPassword cambia la contraseña. Sin password se genera una de 12 caracteres
// y se devuelve para mostrarla una sola vez.
func (uc *UserUseCase) ResetPassword(ctx context.Context, id string, in dto.ResetPasswordRequest) (generated string, err error) {
	if err := dto.Validate(&in); err != nil {
		return "", err
	}
	if _, err := uc.users.GetByID(ctx, id); err != nil {
		return "", wrapStorage("leer usuario", err)
	}
	password := in.Password
	if password == "" {
		if password, err = GeneratePassword(GeneratedPasswordLength); err != nil {
			return "", err
		}
		generated = password
	}
	if err := uc.admin.ResetPassword(ctx, id, password); err != nil {
		return "", err
	}
	return generated, nil
}
