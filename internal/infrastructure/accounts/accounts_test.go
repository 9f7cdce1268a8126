package accounts

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/lumina-inventario/internal/application/auth"
	"github.com/jhoicas/lumina-inventario/internal/application/usecase"
	"github.com/jhoicas/lumina-inventario/internal/domain"
	"github.com/jhoicas/lumina-inventario/internal/infrastructure/memory"
)

func TestLocal_CreateAndReset(t *testing.T) {
	store := memory.New()
	l := NewLocal(store.Users(), bcrypt.MinCost)
	ctx := context.Background()

	u, err := l.CreateAccount(ctx, usecase.NewAccount{Email: "ana@example.com", Password: "secreta", DisplayName: "Ana"})
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)
	assert.Equal(t, "user", u.Role)
	assert.True(t, u.IsActive)
	assert.Empty(t, u.PasswordHash)

	_, err = l.CreateAccount(ctx, usecase.NewAccount{Email: "ANA@example.com", Password: "otra123"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	require.NoError(t, l.ResetPassword(ctx, u.ID, "nueva-clave"))
	stored, err := store.Users().GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("nueva-clave")))

	assert.ErrorIs(t, l.ResetPassword(ctx, "nadie", "x"), domain.ErrUserNotFound)

	require.NoError(t, l.UpdateDisplayName(ctx, u.ID, "Ana María"))
	stored, _ = store.Users().GetByID(ctx, u.ID)
	assert.Equal(t, "Ana María", stored.DisplayName)
}

// functionServer simula las funciones remotas; handlers por nombre de función.
func functionServer(t *testing.T, handlers map[string]http.HandlerFunc) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	for name, h := range handlers {
		mux.HandleFunc("/"+name, h)
	}
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newRemote(t *testing.T, url string) (*Remote, *memory.Store) {
	store := memory.New()
	return NewRemote(url, NewLocal(store.Users(), bcrypt.MinCost), time.Second, zerolog.Nop()), store
}

func TestRemote_CreateAccountUsesRemoteID(t *testing.T) {
	var got createUserRequest
	srv := functionServer(t, map[string]http.HandlerFunc{
		fnCreateUser: func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			_, _ = w.Write([]byte(`{"success":true,"user":{"id":"remote-42"}}`))
		},
	})
	remote, store := newRemote(t, srv.URL)
	ctx := auth.WithSessionToken(context.Background(), "tok-1")

	u, err := remote.CreateAccount(ctx, usecase.NewAccount{Email: "luis@example.com", Password: "abcdef", DisplayName: "Luis", Role: "viewer"})
	require.NoError(t, err)
	assert.Equal(t, "remote-42", u.ID)
	assert.Equal(t, "luis@example.com", got.Email)
	assert.Equal(t, "viewer", got.Role)

	stored, err := store.Users().GetByID(ctx, "remote-42")
	require.NoError(t, err)
	assert.Equal(t, "viewer", stored.Role)
}

func TestRemote_ServerErrorSurfaces(t *testing.T) {
	srv := functionServer(t, map[string]http.HandlerFunc{
		fnChangePassword: func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`{"success":false,"error":"Solo administradores"}`))
		},
		fnCreateUser: func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"success":false}`))
		},
	})
	remote, _ := newRemote(t, srv.URL)
	ctx := auth.WithSessionToken(context.Background(), "tok")

	err := remote.ResetPassword(ctx, "u-1", "abcdef")
	var re *RemoteError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, http.StatusForbidden, re.Status)
	assert.Equal(t, "Solo administradores", re.Message)
	assert.ErrorIs(t, err, domain.ErrStorage)

	_, err = remote.CreateAccount(ctx, usecase.NewAccount{Email: "x@example.com", Password: "abcdef"})
	require.ErrorAs(t, err, &re)
	assert.Equal(t, "Error al crear el usuario", re.Message)
}

func TestRemote_UpdateDisplayNameUnavailable(t *testing.T) {
	srv := functionServer(t, map[string]http.HandlerFunc{})
	remote, _ := newRemote(t, srv.URL)
	ctx := auth.WithSessionToken(context.Background(), "tok")

	err := remote.UpdateDisplayName(ctx, "u-1", "Nuevo")
	assert.ErrorIs(t, err, domain.ErrPrivilegedUnavailable)
}

func TestRemote_RequiresSession(t *testing.T) {
	calls := 0
	srv := functionServer(t, map[string]http.HandlerFunc{
		fnChangePassword: func(w http.ResponseWriter, _ *http.Request) { calls++ },
	})
	remote, _ := newRemote(t, srv.URL)

	err := remote.ResetPassword(context.Background(), "u-1", "abcdef")
	assert.ErrorIs(t, err, errNoSession)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.Zero(t, calls)
}

func TestRemote_CreateAccountLocalFailureIsPartial(t *testing.T) {
	srv := functionServer(t, map[string]http.HandlerFunc{
		fnCreateUser: func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"success":true,"user":{"id":"remote-7"}}`))
		},
	})
	remote, store := newRemote(t, srv.URL)
	ctx := auth.WithSessionToken(context.Background(), "tok")

	_, err := NewLocal(store.Users(), bcrypt.MinCost).CreateAccount(ctx, usecase.NewAccount{Email: "eva@example.com", Password: "abcdef"})
	require.NoError(t, err)

	_, err = remote.CreateAccount(ctx, usecase.NewAccount{Email: "eva@example.com", Password: "abcdef"})
	var pfe *domain.PartialFailureError
	require.ErrorAs(t, err, &pfe)
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
	assert.Equal(t, "crear usuario", pfe.Op)
}

func TestRemoteErrorUserMessage(t *testing.T) {
	err := &RemoteError{Function: fnCreateUser, Status: http.StatusBadRequest, Message: "Email inválido"}
	assert.Equal(t, "Email inválido", err.UserMessage())
	assert.Contains(t, err.Error(), "HTTP 400")
}
