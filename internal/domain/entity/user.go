package entity

import (
	"strings"
	"time"
)

// Roles válidos para UserAccount.
const (
	RoleAdmin  = "admin"
	RoleUser   = "user"
	RoleViewer = "viewer"
)

// IsValidRole indica si r es uno de los roles conocidos.
func IsValidRole(r string) bool {
	return r == RoleAdmin || r == RoleUser || r == RoleViewer
}

// UserAccount cuenta de usuario. Email es inmutable una vez creado.
// Role e IsActive provienen del registro de control de acceso (user_roles).
type UserAccount struct {
	ID           string
	Email        string
	PasswordHash string
	DisplayName  string
	Phone        string
	Role         string
	IsActive     bool
	CreatedAt    time.Time
}

// NameOrFallback nombre visible; si está vacío, la parte local del email.
func (u *UserAccount) NameOrFallback() string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	if i := strings.Index(u.Email, "@"); i > 0 {
		return u.Email[:i]
	}
	if u.Email != "" {
		return u.Email
	}
	return "Sin nombre"
}

// IsAdmin rol admin con la cuenta activa.
func (u *UserAccount) IsAdmin() bool {
	return u.Role == RoleAdmin && u.IsActive
}

// AccessRecord registro de control de acceso de un usuario.
type AccessRecord struct {
	UserID    string
	Role      string
	IsActive  bool
	UpdatedAt time.Time
}
