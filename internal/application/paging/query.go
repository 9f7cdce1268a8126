// Package paging contiene el contrato de consulta paginada y los ayudantes de estado del cliente
// (paginador, debounce y guardia de respuestas obsoletas).
package paging

import (
	"strings"

	"github.com/jhoicas/lumina-inventario/internal/domain/repository"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
	// MinSearchLength longitud mínima del texto para lanzar una búsqueda de sugerencias.
	MinSearchLength = 2
)

// Query página pedida por el llamador.
type Query struct {
	Search   string
	Sort     repository.Sort
	Page     int
	PageSize int
}

// Normalize aplica valores por defecto: página 1, tamaño 10, tope 100 y búsqueda sin espacios.
func (q Query) Normalize() Query {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = DefaultPageSize
	}
	if q.PageSize > MaxPageSize {
		q.PageSize = MaxPageSize
	}
	q.Search = strings.TrimSpace(q.Search)
	return q
}

// Offset (page-1)*pageSize.
func (q Query) Offset() int {
	return (q.Page - 1) * q.PageSize
}

// Range rango inclusivo [offset, offset+pageSize-1].
func (q Query) Range() (from, to int) {
	from = q.Offset()
	return from, from + q.PageSize - 1
}

// Window ventana equivalente para los repositorios.
func (q Query) Window() repository.Window {
	return repository.Window{Offset: q.Offset(), Limit: q.PageSize}
}

// TotalPages ceil(total/size); 0 cuando no hay filas.
func TotalPages(total, size int) int {
	if total <= 0 || size <= 0 {
		return 0
	}
	return (total + size - 1) / size
}

// Result filas de la página y total del conjunto filtrado.
type Result[T any] struct {
	Rows       []T `json:"rows"`
	TotalCount int `json:"total_count"`
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalPages int `json:"total_pages"`
}

// NewResult arma el resultado; rows nil se devuelve como lista vacía.
func NewResult[T any](rows []T, total int, q Query) Result[T] {
	if rows == nil {
		rows = []T{}
	}
	return Result[T]{
		Rows:       rows,
		TotalCount: total,
		Page:       q.Page,
		PageSize:   q.PageSize,
		TotalPages: TotalPages(total, q.PageSize),
	}
}

// Map transforma las filas conservando los metadatos de paginación.
func Map[T, U any](r Result[T], fn func(T) U) Result[U] {
	out := make([]U, 0, len(r.Rows))
	for _, v := range r.Rows {
		out = append(out, fn(v))
	}
	return Result[U]{Rows: out, TotalCount: r.TotalCount, Page: r.Page, PageSize: r.PageSize, TotalPages: r.TotalPages}
}

// EscapeLike escapa los comodines de LIKE (%, _ y \) para que el texto se busque literal.
func EscapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
