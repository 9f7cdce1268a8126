// Package auth inicio y cierre de sesión, y validación de la sesión en cada petición.
package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/lumina-inventario/internal/application/dto"
	"github.com/jhoicas/lumina-inventario/internal/domain"
	"github.com/jhoicas/lumina-inventario/internal/domain/entity"
	"github.com/jhoicas/lumina-inventario/internal/domain/repository"
	"github.com/jhoicas/lumina-inventario/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// Denylist tokens revocados por cierre de sesión, hasta su expiración.
type Denylist interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// Principal usuario autenticado de una petición, con rol y estado leídos del almacenamiento.
type Principal struct {
	UserID    string
	Email     string
	Name      string
	Role      string
	IsActive  bool
	Token     string
	TokenID   string
	ExpiresAt time.Time
}

// IsAdmin rol admin y cuenta activa.
func (p *Principal) IsAdmin() bool {
	return p.Role == entity.RoleAdmin && p.IsActive
}

// LoginResult token emitido y usuario.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      *entity.UserAccount
}

// AuthUseCase casos de uso de autenticación.
type AuthUseCase struct {
	users    repository.UserRepository
	denylist Denylist
	jwtCfg   JWTConfig
	now      func() time.Time
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(users repository.UserRepository, denylist Denylist, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{users: users, denylist: denylist, jwtCfg: jwtCfg, now: time.Now}
}

// Login verifica email/password y emite el token. Credenciales inválidas devuelven ErrUnauthorized;
// una cuenta desactivada, ErrForbidden.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*LoginResult, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if err := dto.Validate(&in); err != nil {
		return nil, err
	}
	user, err := uc.users.GetByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !user.IsActive {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Email, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	claims, err := jwt.Parse(uc.jwtCfg.Secret, token)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, ExpiresAt: claims.ExpiresAt.Time, User: user}, nil
}

// Authenticate valida el token y relee rol y estado de la cuenta, así una desactivación
// o un cambio de rol aplica en la siguiente petición.
func (uc *AuthUseCase) Authenticate(ctx context.Context, token string) (*Principal, error) {
	claims, err := jwt.Parse(uc.jwtCfg.Secret, token)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	if uc.denylist != nil && claims.ID != "" {
		revoked, err := uc.denylist.IsRevoked(ctx, claims.ID)
		if err != nil {
			return nil, err
		}
		if revoked {
			return nil, domain.ErrUnauthorized
		}
	}
	user, err := uc.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, domain.ErrForbidden
	}
	p := &Principal{
		UserID:   user.ID,
		Email:    user.Email,
		Name:     user.NameOrFallback(),
		Role:     user.Role,
		IsActive: user.IsActive,
		Token:    token,
		TokenID:  claims.ID,
	}
	if claims.ExpiresAt != nil {
		p.ExpiresAt = claims.ExpiresAt.Time
	}
	return p, nil
}

// Logout revoca el token de p hasta su expiración.
func (uc *AuthUseCase) Logout(ctx context.Context, p *Principal) error {
	if uc.denylist == nil || p.TokenID == "" {
		return nil
	}
	ttl := p.ExpiresAt.Sub(uc.now())
	if ttl <= 0 {
		return nil
	}
	return uc.denylist.Revoke(ctx, p.TokenID, ttl)
}

// Session usuario de la sesión actual.
func (uc *AuthUseCase) Session(ctx context.Context, p *Principal) (*entity.UserAccount, error) {
	return uc.users.GetByID(ctx, p.UserID)
}
