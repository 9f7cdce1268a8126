package entity

import (
	"time"

	"github.com/jhoicas/lumina-inventario/internal/domain/stock"
)

// Product producto del inventario. Status se deriva siempre con stock.Classify.
type Product struct {
	ID        int64
	Name      string
	Category  string
	Stock     int
	MinStock  int
	MaxStock  int
	Status    stock.Status
	CreatedAt time.Time
}

// Refresh recalcula Status a partir de Stock, MinStock y MaxStock.
func (p *Product) Refresh() {
	p.Status = stock.Classify(p.Stock, p.MinStock, p.MaxStock)
}

// Level nivel de la barra de stock del producto.
func (p *Product) Level() stock.Level {
	return stock.Gauge(p.Stock, p.MinStock, p.MaxStock)
}
