package dto

import (
	"time"

	"github.com/jhoicas/lumina-inventario/internal/application/inventory"
	"github.com/jhoicas/lumina-inventario/internal/domain/repository"
)

// DashboardResponse respuesta de GET /api/dashboard.
type DashboardResponse struct {
	TotalProducts  int                        `json:"total_products"`
	LowStock       int                        `json:"low_stock"`
	OutOfStock     int                        `json:"out_of_stock"`
	OverStock      int                        `json:"over_stock"`
	TotalMovements int                        `json:"total_movements"`
	MonthlyEntries []repository.MonthlyTotal  `json:"monthly_entries"`
	MonthlyExits   []repository.MonthlyTotal  `json:"monthly_exits"`
	TopEntries     []repository.ProductVolume `json:"top_entries"`
	TopExits       []repository.ProductVolume `json:"top_exits"`
	GeneratedAt    time.Time                  `json:"generated_at"`
}

// NotificationListResponse alertas del usuario y cantidad sin leer.
type NotificationListResponse struct {
	Items  []inventory.UserAlert `json:"items"`
	Unread int                   `json:"unread"`
}
