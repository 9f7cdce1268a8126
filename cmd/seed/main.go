// seed crea la cuenta administradora inicial y, opcionalmente, un catálogo de ejemplo.
//
// Uso: go run ./cmd/seed -email admin@empresa.co -password <clave> [-name "Administrador"] [-demo]
// Lee la conexión a PostgreSQL de la misma configuración que la API (DATABASE_URL, DB_*).
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/jhoicas/lumina-inventario/internal/application/dto"
	"github.com/jhoicas/lumina-inventario/internal/application/usecase"
	"github.com/jhoicas/lumina-inventario/internal/domain"
	"github.com/jhoicas/lumina-inventario/internal/domain/entity"
	"github.com/jhoicas/lumina-inventario/internal/infrastructure/accounts"
	"github.com/jhoicas/lumina-inventario/internal/infrastructure/postgres"
	"github.com/jhoicas/lumina-inventario/pkg/config"
	"github.com/jhoicas/lumina-inventario/pkg/logger"
)

// demoProducts catálogo de ejemplo: un producto por estado de stock.
var demoProducts = []dto.CreateProductRequest{
	{Name: "Agua mineral 600ml", Category: "Bebidas", Stock: 40, MinStock: 10, MaxStock: 80},
	{Name: "Café molido 500g", Category: "Despensa", Stock: 4, MinStock: 5, MaxStock: 30},
	{Name: "Arroz 1kg", Category: "Despensa", Stock: 0, MinStock: 10, MaxStock: 60},
	{Name: "Servilletas x100", Category: "Aseo", Stock: 120, MinStock: 20, MaxStock: 100},
}

func main() {
	email := flag.String("email", "", "email de la cuenta administradora")
	password := flag.String("password", "", "contraseña (mínimo 6 caracteres)")
	name := flag.String("name", "Administrador", "nombre visible")
	demo := flag.Bool("demo", false, "cargar productos de ejemplo")
	flag.Parse()

	if *email == "" || *password == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	if err := postgres.RunMigrations(cfg.DB.ConnectionString(), cfg.Storage.MigrationsPath, log.Component("migrate")); err != nil {
		fmt.Fprintf(os.Stderr, "Migraciones: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Conexión a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	users := postgres.NewUserRepository(pool)
	userUC := usecase.NewUserUseCase(users, postgres.NewAccessRepository(pool), accounts.NewLocal(users, 0), log.Component("seed"))
	u, err := userUC.Create(ctx, dto.CreateUserRequest{
		Email: *email, Password: *password, DisplayName: *name, Role: entity.RoleAdmin,
	})
	switch {
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		fmt.Printf("La cuenta %s ya existe, no se modifica\n", *email)
	case err != nil:
		fmt.Fprintf(os.Stderr, "Crear administrador: %v\n", err)
		os.Exit(1)
	default:
		fmt.Printf("Administrador creado: %s (%s)\n", u.Email, u.ID)
	}

	if !*demo {
		return
	}
	productUC := usecase.NewProductUseCase(postgres.NewTxRunner(pool), postgres.NewProductRepository(pool), log.Component("seed"))
	for _, in := range demoProducts {
		p, err := productUC.Create(ctx, in, *name)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Producto %q: %v\n", in.Name, err)
			continue
		}
		fmt.Printf("Producto %d %s: %s\n", p.ID, p.Name, p.Status.Label())
	}
}
