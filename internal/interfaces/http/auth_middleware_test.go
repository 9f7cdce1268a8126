package http_test

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/lumina-inventario/internal/application/auth"
	"github.com/jhoicas/lumina-inventario/internal/application/dto"
	"github.com/jhoicas/lumina-inventario/internal/domain"
	"github.com/jhoicas/lumina-inventario/internal/domain/entity"
	apphttp "github.com/jhoicas/lumina-inventario/internal/interfaces/http"
)

// stubAuthenticator resuelve tokens fijos sin JWT real.
type stubAuthenticator map[string]*auth.Principal

func (s stubAuthenticator) Authenticate(_ context.Context, token string) (*auth.Principal, error) {
	switch token {
	case "disabled":
		return nil, domain.ErrForbidden
	case "broken":
		return nil, &domain.StorageError{Op: "leer usuario", Err: assert.AnError}
	}
	if p, ok := s[token]; ok {
		return p, nil
	}
	return nil, domain.ErrUnauthorized
}

// buildTestApp construye una aplicación Fiber mínima con:
//   - AuthMiddleware para validar el token y cargar el Principal
//   - RequireRole para autorizar el acceso
//   - Un handler dummy que devuelve 200 si pasa los middlewares
func buildTestApp(allowedRoles ...string) *fiber.App {
	authn := stubAuthenticator{
		"admin-token":  {UserID: "u1", Role: entity.RoleAdmin, IsActive: true},
		"user-token":   {UserID: "u2", Role: entity.RoleUser, IsActive: true},
		"viewer-token": {UserID: "u3", Role: entity.RoleViewer, IsActive: true},
	}
	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler})
	app.Get("/protected",
		apphttp.AuthMiddleware(authn),
		apphttp.RequireRole(allowedRoles...),
		func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{
				"role":  apphttp.GetRole(c),
				"user":  apphttp.GetUserID(c),
				"token": auth.SessionToken(c.UserContext()),
			})
		},
	)
	return app
}

func get(t *testing.T, app *fiber.App, header string) (int, string) {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodGet, "/protected", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	if resp.StatusCode == fiber.StatusOK {
		return resp.StatusCode, ""
	}
	var body dto.ErrorResponse
	decode(t, resp, &body)
	return resp.StatusCode, body.Code
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests de AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_RejectsMissingOrMalformedToken(t *testing.T) {
	app := buildTestApp(entity.RoleAdmin)

	tests := []struct {
		name, header, code string
		status             int
	}{
		{"sin cabecera", "", "MISSING_TOKEN", fiber.StatusUnauthorized},
		{"esquema incorrecto", "Basic abc", "INVALID_TOKEN", fiber.StatusUnauthorized},
		{"token desconocido", "Bearer nope", "INVALID_TOKEN", fiber.StatusUnauthorized},
		{"cuenta desactivada", "Bearer disabled", "ACCOUNT_DISABLED", fiber.StatusForbidden},
		{"almacenamiento caído", "Bearer broken", apphttp.CodeStorage, fiber.StatusBadGateway},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, code := get(t, app, tt.header)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.code, code)
		})
	}
}

func TestAuthMiddleware_LoadsPrincipalAndSessionToken(t *testing.T) {
	app := buildTestApp(entity.RoleAdmin)
	req := httptest.NewRequest(fiber.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "bearer admin-token")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body map[string]string
	decode(t, resp, &body)
	assert.Equal(t, entity.RoleAdmin, body["role"])
	assert.Equal(t, "u1", body["user"])
	assert.Equal(t, "admin-token", body["token"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests de RequireRole
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireRole(t *testing.T) {
	writers := buildTestApp(entity.RoleAdmin, entity.RoleUser)

	status, _ := get(t, writers, "Bearer admin-token")
	assert.Equal(t, fiber.StatusOK, status)
	status, _ = get(t, writers, "Bearer user-token")
	assert.Equal(t, fiber.StatusOK, status)
	status, code := get(t, writers, "Bearer viewer-token")
	assert.Equal(t, fiber.StatusForbidden, status)
	assert.Equal(t, apphttp.CodeForbidden, code)
}

func TestRequireRole_WithoutPrincipal(t *testing.T) {
	app := fiber.New()
	app.Get("/x", apphttp.RequireRole(entity.RoleAdmin), func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })
	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/x", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
