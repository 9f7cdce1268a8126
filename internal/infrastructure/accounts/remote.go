package accounts

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/lumina-inventario/internal/application/auth"
	"github.com/jhoicas/lumina-inventario/internal/application/usecase"
	"github.com/jhoicas/lumina-inventario/internal/domain"
	"github.com/jhoicas/lumina-inventario/internal/domain/entity"
)

var _ usecase.AccountAdmin = (*Remote)(nil)

// Funciones remotas del proveedor de identidad.
const (
	fnCreateUser     = "create-user"
	fnChangePassword = "change-user-password"
	fnUpdateMetadata = "update-user-metadata"
)

// errNoSession no hay token de sesión en el contexto para autenticar la llamada.
var errNoSession = fmt.Errorf("%w: no hay sesión activa", domain.ErrUnauthorized)

// RemoteError la función respondió con error (HTTP no 2xx o success=false).
type RemoteError struct {
	Function string
	Status   int
	Message  string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("%s: %s (HTTP %d)", e.Function, e.Message, e.Status)
}

// Is se trata como fallo del almacenamiento remoto; el mensaje del servidor se conserva.
func (e *RemoteError) Is(target error) bool { return target == domain.ErrStorage }

// UserMessage mensaje del servidor tal cual, para mostrarlo al usuario.
func (e *RemoteError) UserMessage() string { return e.Message }

// Remote invoca las funciones HTTPS con el bearer de la sesión actual y, si responden bien,
// replica el cambio en la base propia a través de Local.
type Remote struct {
	baseURL    string
	local      *Local
	httpClient *http.Client
	log        zerolog.Logger
}

// NewRemote construye el driver remoto. baseURL sin barra final, ej. https://x.supabase.co/functions/v1.
func NewRemote(baseURL string, local *Local, timeout time.Duration, log zerolog.Logger) *Remote {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Remote{
		baseURL:    baseURL,
		local:      local,
		httpClient: &http.Client{Timeout: timeout},
		log:        log.With().Str("component", "accounts_remote").Logger(),
	}
}

type createUserRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`
}

type changePasswordRequest struct {
	UserID      string `json:"userId"`
	NewPassword string `json:"newPassword"`
}

type updateMetadataRequest struct {
	UserID      string `json:"userId"`
	DisplayName string `json:"display_name"`
}

type functionResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	User    *struct {
		ID string `json:"id"`
	} `json:"user"`
}

// CreateAccount crea la cuenta en el proveedor y luego la registra localmente con el mismo ID.
// Si el registro local falla la cuenta ya existe en el proveedor: se devuelve PartialFailureError.
func (r *Remote) CreateAccount(ctx context.Context, in usecase.NewAccount) (*entity.UserAccount, error) {
	resp, err := r.call(ctx, fnCreateUser, createUserRequest{
		Email:       in.Email,
		Password:    in.Password,
		DisplayName: in.DisplayName,
		Role:        in.Role,
	})
	if err != nil {
		return nil, err
	}
	var u *entity.UserAccount
	if resp.User == nil || resp.User.ID == "" {
		u, err = r.local.CreateAccount(ctx, in)
	} else {
		u, err = r.local.create(ctx, resp.User.ID, in)
	}
	if err != nil {
		r.log.Error().Err(err).Str("email", in.Email).Msg("cuenta creada en el proveedor pero no registrada localmente")
		return nil, &domain.PartialFailureError{Op: "crear usuario", Cause: err}
	}
	return u, nil
}

// ResetPassword cambia la contraseña remota y actualiza el hash local.
func (r *Remote) ResetPassword(ctx context.Context, userID, password string) error {
	if _, err := r.call(ctx, fnChangePassword, changePasswordRequest{UserID: userID, NewPassword: password}); err != nil {
		return err
	}
	return r.local.ResetPassword(ctx, userID, password)
}

// UpdateDisplayName 404 en la función significa que el despliegue no la tiene.
func (r *Remote) UpdateDisplayName(ctx context.Context, userID, displayName string) error {
	_, err := r.call(ctx, fnUpdateMetadata, updateMetadataRequest{UserID: userID, DisplayName: displayName})
	var re *RemoteError
	if errors.As(err, &re) && re.Status == http.StatusNotFound {
		return fmt.Errorf("%w: %s", domain.ErrPrivilegedUnavailable, re.Message)
	}
	if err != nil {
		return err
	}
	return r.local.UpdateDisplayName(ctx, userID, displayName)
}

func (r *Remote) call(ctx context.Context, fn string, payload any) (*functionResponse, error) {
	token := auth.SessionToken(ctx)
	if token == "" {
		return nil, fmt.Errorf("%s: %w", fn, errNoSession)
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%s: serializar request: %w", fn, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+"/"+fn, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%s: crear HTTP request: %w", fn, err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, &domain.StorageError{Op: fn, Err: ctx.Err()}
		}
		return nil, &domain.StorageError{Op: fn, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return nil, &domain.StorageError{Op: fn, Err: fmt.Errorf("leer respuesta: %w", err)}
	}

	var out functionResponse
	jsonErr := json.Unmarshal(raw, &out)
	if resp.StatusCode/100 != 2 || jsonErr != nil || !out.Success {
		msg := out.Error
		if msg == "" {
			msg = defaultMessage(fn)
		}
		r.log.Warn().Str("function", fn).Int("status", resp.StatusCode).Str("error", msg).Msg("función remota rechazó la llamada")
		return nil, &RemoteError{Function: fn, Status: resp.StatusCode, Message: msg}
	}
	return &out, nil
}

func defaultMessage(fn string) string {
	switch fn {
	case fnCreateUser:
		return "Error al crear el usuario"
	case fnChangePassword:
		return "Error al cambiar la contraseña"
	default:
		return "Error al actualizar el usuario"
	}
}
