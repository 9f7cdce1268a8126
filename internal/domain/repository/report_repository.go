package repository

import "context"

// MonthlyTotal cantidad movida en un mes ("2006-01").
type MonthlyTotal struct {
	Month string `json:"month"`
	Total int    `json:"total"`
}

// ProductVolume cantidad total movida por nombre de producto.
type ProductVolume struct {
	ProductName   string `json:"product_name"`
	TotalQuantity int    `json:"total_quantity"`
}

// ReportRepository agregados del historial para el tablero.
type ReportRepository interface {
	// MonthlyTotals suma por mes las cantidades de action desde since ("2006-01-02"), en orden ascendente.
	MonthlyTotals(ctx context.Context, action, since string) ([]MonthlyTotal, error)
	// TopProducts los limit productos con más cantidad movida para action.
	TopProducts(ctx context.Context, action string, limit int) ([]ProductVolume, error)
	CountMovements(ctx context.Context) (int, error)
}
