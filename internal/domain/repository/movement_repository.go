package repository

import (
	"context"

	"github.com/jhoicas/lumina-inventario/internal/domain/entity"
)

// Campos de orden admitidos en el historial.
const (
	MovementSortID          = "id"
	MovementSortProductName = "product_name"
	MovementSortQuantity    = "quantity"
)

// MovementFilter filtro del historial. Action vacío incluye ambos tipos; ProductID 0 incluye todos.
// Search busca en producto, usuario y detalles. Sin Sort.Field el orden es id descendente.
type MovementFilter struct {
	Action    string
	ProductID int64
	Search    string
	Sort      Sort
	Window    Window
}

// MovementTotals métricas del historial para un filtro.
type MovementTotals struct {
	Today   int
	Entries int
	Exits   int
}

// MovementRepository historial de movimientos de solo inserción.
type MovementRepository interface {
	// Append inserta el registro y completa ID y CreatedAt.
	Append(ctx context.Context, m *entity.MovementRecord) error
	List(ctx context.Context, f MovementFilter) ([]*entity.MovementRecord, int, error)
	// Totals cuenta todos los movimientos con fecha today (sin filtro) y suma las cantidades
	// de entradas y salidas que pasan el filtro de acción; ProductID y la ventana se ignoran.
	Totals(ctx context.Context, f MovementFilter, today string) (MovementTotals, error)
}
