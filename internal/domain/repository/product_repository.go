package repository

import (
	"context"

	"github.com/jhoicas/lumina-inventario/internal/domain/entity"
	"github.com/jhoicas/lumina-inventario/internal/domain/stock"
)

// Campos de orden admitidos para productos.
const (
	ProductSortCreatedAt = "created_at"
	ProductSortName      = "name"
	ProductSortCategory  = "category"
	ProductSortStock     = "stock"
	ProductSortID        = "id"
)

// ProductFilter filtro de listado. Search busca sin distinguir mayúsculas en nombre O categoría.
type ProductFilter struct {
	Search      string
	InStockOnly bool
	Sort        Sort
	Window      Window
}

// ProductRepository define el puerto de persistencia para Product.
// Los métodos de lectura por ID devuelven domain.ErrNotFound si no existe.
type ProductRepository interface {
	Create(ctx context.Context, p *entity.Product) error
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
	// GetForUpdate lee el producto bloqueando la fila cuando el almacenamiento lo permite.
	GetForUpdate(ctx context.Context, id int64) (*entity.Product, error)
	Update(ctx context.Context, p *entity.Product) error
	UpdateStock(ctx context.Context, id int64, stock int, status stock.Status) error
	Delete(ctx context.Context, id int64) error
	// List devuelve la página pedida y el total del conjunto filtrado.
	List(ctx context.Context, f ProductFilter) ([]*entity.Product, int, error)
	ListAll(ctx context.Context) ([]*entity.Product, error)
}
