package dto

import (
	"strings"
	"time"

	"github.com/jhoicas/lumina-inventario/internal/domain/entity"
	"github.com/jhoicas/lumina-inventario/internal/domain/stock"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=200"`
	Category string `json:"category" validate:"required,min=2,max=100"`
	Stock    int    `json:"stock" validate:"gte=0"`
	MinStock int    `json:"min_stock" validate:"gt=0"`
	MaxStock int    `json:"max_stock" validate:"gt=0,gtefield=MinStock"`
}

// Trim quita espacios de los campos de texto antes de validar.
func (r *CreateProductRequest) Trim() {
	r.Name = strings.TrimSpace(r.Name)
	r.Category = strings.TrimSpace(r.Category)
}

// UpdateProductRequest reemplaza los campos editables del producto.
type UpdateProductRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=200"`
	Category string `json:"category" validate:"required,min=2,max=100"`
	Stock    int    `json:"stock" validate:"gte=0"`
	MinStock int    `json:"min_stock" validate:"gt=0"`
	MaxStock int    `json:"max_stock" validate:"gt=0,gtefield=MinStock"`
}

func (r *UpdateProductRequest) Trim() {
	r.Name = strings.TrimSpace(r.Name)
	r.Category = strings.TrimSpace(r.Category)
}

// ProductListQuery listado de productos; in_stock limita a productos con stock > 0.
type ProductListQuery struct {
	PageQuery
	InStock bool `query:"in_stock"`
}

// ProductResponse salida de un producto con estado y nivel derivados.
type ProductResponse struct {
	ID          int64        `json:"id"`
	Name        string       `json:"name"`
	Category    string       `json:"category"`
	Stock       int          `json:"stock"`
	MinStock    int          `json:"min_stock"`
	MaxStock    int          `json:"max_stock"`
	Status      stock.Status `json:"status"`
	StatusLabel string       `json:"status_label"`
	Level       stock.Level  `json:"level"`
	Indicator   string       `json:"indicator"`
	CreatedAt   time.Time    `json:"created_at"`
}

func NewProductResponse(p *entity.Product) ProductResponse {
	level := p.Level()
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Category:    p.Category,
		Stock:       p.Stock,
		MinStock:    p.MinStock,
		MaxStock:    p.MaxStock,
		Status:      p.Status,
		StatusLabel: p.Status.Label(),
		Level:       level,
		Indicator:   level.Indicator(),
		CreatedAt:   p.CreatedAt,
	}
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// SuggestionResponse sugerencia de la barra de búsqueda.
type SuggestionResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
}
