package dto

import (
	"strings"

	"github.com/jhoicas/lumina-inventario/internal/application/paging"
	"github.com/jhoicas/lumina-inventario/internal/domain/repository"
)

// PageQuery parámetros de paginación, búsqueda y orden de los listados.
type PageQuery struct {
	Page     int    `query:"page" validate:"omitempty,min=1"`
	PageSize int    `query:"page_size" validate:"omitempty,min=1,max=100"`
	Search   string `query:"search" validate:"omitempty,max=200"`
	Sort     string `query:"sort" validate:"omitempty,max=40"`
	Order    string `query:"order" validate:"omitempty,oneof=asc desc"`
}

// ToQuery consulta normalizada (página 1 y tamaño 10 por defecto).
func (p PageQuery) ToQuery() paging.Query {
	return paging.Query{
		Search:   p.Search,
		Page:     p.Page,
		PageSize: p.PageSize,
		Sort:     repository.Sort{Field: strings.TrimSpace(p.Sort), Desc: p.Order != "asc"},
	}.Normalize()
}

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
	TotalPages int `json:"total_pages"`
}

// NewPageResponse copia los metadatos de un resultado paginado.
func NewPageResponse[T any](r paging.Result[T]) PageResponse {
	return PageResponse{Page: r.Page, PageSize: r.PageSize, TotalCount: r.TotalCount, TotalPages: r.TotalPages}
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// MessageResponse respuesta simple con un mensaje.
type MessageResponse struct {
	Message string `json:"message"`
}
