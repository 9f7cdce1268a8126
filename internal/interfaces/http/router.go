package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/lumina-inventario/internal/application/analytics"
	"github.com/jhoicas/lumina-inventario/internal/application/auth"
	"github.com/jhoicas/lumina-inventario/internal/application/inventory"
	"github.com/jhoicas/lumina-inventario/internal/application/usecase"
	"github.com/jhoicas/lumina-inventario/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	ProductUC     *usecase.ProductUseCase
	Recorder      *inventory.MovementRecorder
	HistoryUC     *usecase.HistoryUseCase
	UserUC        *usecase.UserUseCase
	ProfileUC     *usecase.ProfileUseCase
	DashboardUC   *appanalytics.DashboardUseCase
	Notifications *inventory.NotificationCenter
	ReportUC      *usecase.ReportUseCase
	// OpenAPI documento servido en /api/openapi.json; vacío lo omite.
	OpenAPI string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	if deps.OpenAPI != "" {
		api.Get("/openapi.json", func(c *fiber.Ctx) error {
			c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
			return c.SendString(deps.OpenAPI)
		})
	}

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.AuthUC))
	writers := RequireRole(entity.RoleAdmin, entity.RoleUser)
	admins := RequireRole(entity.RoleAdmin)
	refresh := InvalidateOnWrite(deps.DashboardUC)

	protected.Post("/auth/logout", authHandler.Logout)
	protected.Get("/auth/session", authHandler.Session)

	// Products
	productHandler := NewProductHandler(deps.ProductUC, deps.Recorder)
	products := protected.Group("/products")
	products.Get("/", productHandler.List)
	products.Get("/suggest", productHandler.Suggest)
	products.Get("/:id", productHandler.GetByID)
	products.Get("/:id/movements", productHandler.Recent)
	products.Post("/", writers, refresh, productHandler.Create)
	products.Put("/:id", writers, refresh, productHandler.Update)
	products.Delete("/:id", writers, refresh, productHandler.Delete)

	// Movimientos e historial
	inventoryHandler := NewInventoryHandler(deps.Recorder, deps.HistoryUC)
	protected.Post("/movements", writers, refresh, inventoryHandler.RecordMovement)
	history := protected.Group("/history")
	history.Get("/", inventoryHandler.History)
	history.Get("/metrics", inventoryHandler.Metrics)
	history.Get("/export", inventoryHandler.Export)

	// Dashboard, notificaciones y reportes
	dashboardHandler := NewDashboardHandler(deps.DashboardUC, deps.Notifications, deps.ReportUC)
	protected.Get("/dashboard", dashboardHandler.GetSummary)
	protected.Get("/notifications", dashboardHandler.Notifications)
	protected.Post("/notifications/read-all", dashboardHandler.MarkAllRead)
	protected.Post("/notifications/:id/read", dashboardHandler.MarkRead)
	protected.Get("/reports/stock.pdf", dashboardHandler.StockReport)

	// Perfil propio
	profileHandler := NewProfileHandler(deps.ProfileUC)
	protected.Get("/profile", profileHandler.Get)
	protected.Put("/profile", profileHandler.Update)

	// Usuarios (solo admin)
	userHandler := NewUserHandler(deps.UserUC)
	users := protected.Group("/users", admins)
	users.Get("/", userHandler.List)
	users.Post("/", userHandler.Create)
	users.Put("/:id", userHandler.Update)
	users.Put("/:id/active", userHandler.SetActive)
	users.Post("/:id/reset-password", userHandler.ResetPassword)
}
