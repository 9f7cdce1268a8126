package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/swaggo/swag"

	"github.com/jhoicas/lumina-inventario/docs"
	appanalytics "github.com/jhoicas/lumina-inventario/internal/application/analytics"
	"github.com/jhoicas/lumina-inventario/internal/application/auth"
	"github.com/jhoicas/lumina-inventario/internal/application/inventory"
	"github.com/jhoicas/lumina-inventario/internal/application/usecase"
	"github.com/jhoicas/lumina-inventario/internal/domain/repository"
	"github.com/jhoicas/lumina-inventario/internal/infrastructure/accounts"
	"github.com/jhoicas/lumina-inventario/internal/infrastructure/cache"
	"github.com/jhoicas/lumina-inventario/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/lumina-inventario/internal/infrastructure/pdf"
	"github.com/jhoicas/lumina-inventario/internal/infrastructure/postgres"
	"github.com/jhoicas/lumina-inventario/internal/infrastructure/xlsx"
	httpRouter "github.com/jhoicas/lumina-inventario/internal/interfaces/http"
	"github.com/jhoicas/lumina-inventario/pkg/config"
	"github.com/jhoicas/lumina-inventario/pkg/logger"
)

// stores repositorios del driver de almacenamiento elegido.
type stores struct {
	tx        repository.TxRunner
	products  repository.ProductRepository
	movements repository.MovementRepository
	reports   repository.ReportRepository
	users     repository.UserRepository
	access    repository.AccessRepository
	close     func()
}

func openStores(ctx context.Context, cfg *config.Config, log *logger.Logger) stores {
	if cfg.Storage.Driver == "memory" {
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
		m := memory.New()
		return stores{
			tx: m.TxRunner(), products: m.Products(), movements: m.Movements(),
			reports: m.Reports(), users: m.Users(), access: m.Access(),
			close: func() {},
		}
	}

	if cfg.Storage.AutoMigrate {
		if err := postgres.RunMigrations(cfg.DB.ConnectionString(), cfg.Storage.MigrationsPath, log.Component("migrate")); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
	}
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	return stores{
		tx:        postgres.NewTxRunner(pool),
		products:  postgres.NewProductRepository(pool),
		movements: postgres.NewMovementRepository(pool),
		reports:   postgres.NewReportRepository(pool),
		users:     postgres.NewUserRepository(pool),
		access:    postgres.NewAccessRepository(pool),
		close:     pool.Close,
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st := openStores(ctx, cfg, log)
	defer st.close()

	// Redis opcional: lista de tokens revocados y caché del dashboard
	var (
		denylist       auth.Denylist = cache.NewMemoryDenylist()
		dashboardCache appanalytics.Cache
	)
	if cfg.Redis.URL != "" {
		rdb, err := cache.NewRedisClient(ctx, cfg.Redis.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer rdb.Close()
		denylist = cache.NewRedisDenylist(rdb)
		dashboardCache = cache.NewDashboardCache(rdb, log.Component("dashboard_cache"))
	}

	local := accounts.NewLocal(st.users, 0)
	var accountAdmin usecase.AccountAdmin = local
	if cfg.Accounts.Driver == "remote" {
		accountAdmin = accounts.NewRemote(cfg.Accounts.FunctionsURL, local, cfg.Accounts.Timeout, log.Component("accounts"))
	}

	authUC := auth.NewAuthUseCase(st.users, denylist, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	productUC := usecase.NewProductUseCase(st.tx, st.products, log.Component("products"))
	recorder := inventory.NewMovementRecorder(st.tx, st.movements, log.Component("movements"))
	historyUC := usecase.NewHistoryUseCase(st.movements, xlsx.NewHistoryExporter())
	userUC := usecase.NewUserUseCase(st.users, st.access, accountAdmin, log.Component("users"))
	profileUC := usecase.NewProfileUseCase(st.users)
	dashboardUC := appanalytics.NewDashboardUseCase(st.products, st.reports, dashboardCache, cfg.Redis.DashboardCacheTTL, log.Component("dashboard"))
	reportUC := usecase.NewReportUseCase(st.products, infrapdf.NewStockReportGenerator())

	center := inventory.NewNotificationCenter(cfg.Notifications.Retention)
	pollerDone := inventory.NewStatusPoller(st.products, center, cfg.Notifications.Interval, log.Zerolog()).Start(ctx)

	openAPI, err := swag.ReadDoc(docs.SwaggerInfo.InstanceName())
	if err != nil {
		log.Fatal().Err(err).Msg("documento OpenAPI")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath:    "/",
		FileContent: []byte(openAPI),
		Path:        "docs",
		Title:       "Lumina Inventario API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		ProductUC:     productUC,
		Recorder:      recorder,
		HistoryUC:     historyUC,
		UserUC:        userUC,
		ProfileUC:     profileUC,
		DashboardUC:   dashboardUC,
		Notifications: center,
		ReportUC:      reportUC,
		OpenAPI:       openAPI,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	<-pollerDone

	log.Info().Msg("aplicación detenida")
}
