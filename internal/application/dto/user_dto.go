package dto

import (
	"time"

	"github.com/jhoicas/lumina-inventario/internal/domain/entity"
)

// LoginRequest entrada de inicio de sesión.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse token de sesión y usuario.
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      UserResponse `json:"user"`
}

// SessionResponse sesión actual.
type SessionResponse struct {
	User      UserResponse `json:"user"`
	IsAdmin   bool         `json:"is_admin"`
	ExpiresAt time.Time    `json:"expires_at"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	Phone       string    `json:"phone,omitempty"`
	Role        string    `json:"role"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewUserResponse(u *entity.UserAccount) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.NameOrFallback(),
		Phone:       u.Phone,
		Role:        u.Role,
		IsActive:    u.IsActive,
		CreatedAt:   u.CreatedAt,
	}
}

// UserListResponse página de usuarios.
type UserListResponse struct {
	Items []UserResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// CreateUserRequest alta de cuenta por un administrador.
type CreateUserRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=6,max=72"`
	DisplayName string `json:"display_name" validate:"required,min=2,max=200"`
	Role        string `json:"role" validate:"required,oneof=admin user viewer"`
}

// UpdateUserRequest cambio de rol y nombre visible.
type UpdateUserRequest struct {
	DisplayName string `json:"display_name" validate:"required,min=2,max=200"`
	Role        string `json:"role" validate:"required,oneof=admin user viewer"`
}

// UpdateUserResponse NameUpdated=false con Warning si el nombre no pudo cambiarse.
type UpdateUserResponse struct {
	User        UserResponse `json:"user"`
	RoleUpdated bool         `json:"role_updated"`
	NameUpdated bool         `json:"name_updated"`
	Warning     string       `json:"warning,omitempty"`
}

// SetActiveRequest activa o desactiva una cuenta.
type SetActiveRequest struct {
	IsActive *bool `json:"is_active" validate:"required"`
}

// ResetPasswordRequest sin password se genera una aleatoria.
type ResetPasswordRequest struct {
	Password string `json:"password" validate:"omitempty,min=6,max=72"`
}

// ResetPasswordResponse Password solo viene cuando fue generada por el servidor.
type ResetPasswordResponse struct {
	Message  string `json:"message"`
	Password string `json:"password,omitempty"`
}

// UpdateProfileRequest edición del propio perfil. Email es inmutable: si viene y difiere se rechaza.
type UpdateProfileRequest struct {
	DisplayName string `json:"display_name" validate:"required,min=2,max=200"`
	Phone       string `json:"phone" validate:"omitempty,max=30"`
	Email       string `json:"email" validate:"omitempty,email"`
}
