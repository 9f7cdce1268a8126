package usecase

import (
	"context"

	"github.com/jhoicas/lumina-inventario/internal/domain/entity"
)

// NewAccount datos de alta de una cuenta.
type NewAccount struct {
	Email       string
	Password    string
	DisplayName string
	Role        string
}

// AccountAdmin ruta privilegiada de gestión de cuentas.
// UpdateDisplayName devuelve domain.ErrPrivilegedUnavailable si la ruta no está disponible.
type AccountAdmin interface {
	CreateAccount(ctx context.Context, in NewAccount) (*entity.UserAccount, error)
	ResetPassword(ctx context.Context, userID, password string) error
	UpdateDisplayName(ctx context.Context, userID, displayName string) error
}

// HistoryExporter genera el archivo descargable del historial.
type HistoryExporter interface {
	Export(rows []*entity.MovementRecord) ([]byte, error)
	ContentType() string
}
