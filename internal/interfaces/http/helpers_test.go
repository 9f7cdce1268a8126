package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	appanalytics "github.com/jhoicas/lumina-inventario/internal/application/analytics"
	"github.com/jhoicas/lumina-inventario/internal/application/auth"
	"github.com/jhoicas/lumina-inventario/internal/application/dto"
	"github.com/jhoicas/lumina-inventario/internal/application/inventory"
	"github.com/jhoicas/lumina-inventario/internal/application/usecase"
	"github.com/jhoicas/lumina-inventario/internal/domain/entity"
	"github.com/jhoicas/lumina-inventario/internal/infrastructure/accounts"
	"github.com/jhoicas/lumina-inventario/internal/infrastructure/cache"
	"github.com/jhoicas/lumina-inventario/internal/infrastructure/memory"
	"github.com/jhoicas/lumina-inventario/internal/infrastructure/pdf"
	"github.com/jhoicas/lumina-inventario/internal/infrastructure/xlsx"
	apphttp "github.com/jhoicas/lumina-inventario/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testIssuer    = "lumina-inventario-test"
	testPassword  = "secreto1"
)

// testEnv aplicación completa sobre el almacenamiento en memoria.
type testEnv struct {
	app    *fiber.App
	store  *memory.Store
	center *inventory.NotificationCenter
	users  map[string]*entity.UserAccount // por rol
	tokens map[string]string              // "Bearer <jwt>" por rol
}

// envOption ajusta las dependencias antes de registrar las rutas.
type envOption func(s *memory.Store, deps *apphttp.RouterDeps)

func newTestEnv(t *testing.T, opts ...envOption) *testEnv {
	t.Helper()
	log := zerolog.Nop()
	s := memory.New()
	local := accounts.NewLocal(s.Users(), bcrypt.MinCost)

	authUC := auth.NewAuthUseCase(s.Users(), cache.NewMemoryDenylist(), auth.JWTConfig{
		Secret: testJWTSecret, ExpMinutes: 60, Issuer: testIssuer,
	})
	center := inventory.NewNotificationCenter(24 * time.Hour)

	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler})
	deps := apphttp.RouterDeps{
		AuthUC:        authUC,
		ProductUC:     usecase.NewProductUseCase(s.TxRunner(), s.Products(), log),
		Recorder:      inventory.NewMovementRecorder(s.TxRunner(), s.Movements(), log),
		HistoryUC:     usecase.NewHistoryUseCase(s.Movements(), xlsx.NewHistoryExporter()),
		UserUC:        usecase.NewUserUseCase(s.Users(), s.Access(), local, log),
		ProfileUC:     usecase.NewProfileUseCase(s.Users()),
		DashboardUC:   appanalytics.NewDashboardUseCase(s.Products(), s.Reports(), nil, 0, log),
		Notifications: center,
		ReportUC:      usecase.NewReportUseCase(s.Products(), pdf.NewStockReportGenerator()),
		OpenAPI:       `{"swagger":"2.0"}`,
	}
	for _, opt := range opts {
		opt(s, &deps)
	}
	apphttp.Router(app, deps)

	env := &testEnv{
		app:    app,
		store:  s,
		center: center,
		users:  map[string]*entity.UserAccount{},
		tokens: map[string]string{},
	}
	for _, role := range []string{entity.RoleAdmin, entity.RoleUser, entity.RoleViewer} {
		u, err := local.CreateAccount(context.Background(), usecase.NewAccount{
			Email:       role + "@lumina.io",
			Password:    testPassword,
			DisplayName: "Cuenta " + role,
			Role:        role,
		})
		require.NoError(t, err)
		res, err := authUC.Login(context.Background(), dto.LoginRequest{Email: u.Email, Password: testPassword})
		require.NoError(t, err)
		env.users[role] = u
		env.tokens[role] = "Bearer " + res.Token
	}
	return env
}

// do ejecuta la petición con el token del rol indicado ("" sin token).
func (e *testEnv) do(t *testing.T, method, path, role string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if role != "" {
		req.Header.Set("Authorization", e.tokens[role])
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// decode lee el cuerpo JSON de resp en out.
func decode(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

// errorCode extrae el campo "code" de una respuesta de error.
func errorCode(t *testing.T, resp *http.Response) string {
	t.Helper()
	var body dto.ErrorResponse
	decode(t, resp, &body)
	return body.Code
}

// createProduct da de alta un producto como admin y devuelve su respuesta.
func (e *testEnv) createProduct(t *testing.T, name string, stockQty, mn, mx int) dto.ProductResponse {
	t.Helper()
	resp := e.do(t, fiber.MethodPost, "/api/products", entity.RoleAdmin, dto.CreateProductRequest{
		Name: name, Category: "Bebidas", Stock: stockQty, MinStock: mn, MaxStock: mx,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var out dto.ProductResponse
	decode(t, resp, &out)
	return out
}
