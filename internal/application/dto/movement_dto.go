package dto

import (
	"strings"

	"github.com/jhoicas/lumina-inventario/internal/domain/entity"
)

// RecordMovementRequest entrada de una entrada (in) o salida (out) de stock.
// InvoiceNumber aplica a entradas y es opcional; Destination es obligatorio en salidas.
type RecordMovementRequest struct {
	ProductID     int64  `json:"product_id" validate:"required,gt=0"`
	Direction     string `json:"direction" validate:"required,oneof=in out"`
	Quantity      int    `json:"quantity" validate:"required,gt=0"`
	InvoiceNumber string `json:"invoice_number" validate:"omitempty,max=100"`
	Destination   string `json:"destination" validate:"required_if=Direction out,omitempty,min=2,max=200"`
}

// Detail detalle que corresponde a la dirección.
func (r RecordMovementRequest) Detail() string {
	if r.Direction == "out" {
		return strings.TrimSpace(r.Destination)
	}
	return strings.TrimSpace(r.InvoiceNumber)
}

// MovementResponse registro del historial.
type MovementResponse struct {
	ID          int64                  `json:"id"`
	ProductID   int64                  `json:"product_id"`
	ProductName string                 `json:"product_name"`
	ActionType  string                 `json:"action_type"`
	Quantity    int                    `json:"quantity"`
	Details     entity.MovementDetails `json:"details"`
	Summary     string                 `json:"summary"`
	Date        string                 `json:"date"`
	Time        string                 `json:"time"`
	UserName    string                 `json:"user_name"`
}

func NewMovementResponse(m *entity.MovementRecord) MovementResponse {
	return MovementResponse{
		ID:          m.ID,
		ProductID:   m.ProductID,
		ProductName: m.ProductName,
		ActionType:  m.Action,
		Quantity:    m.Quantity,
		Details:     m.Details,
		Summary:     m.Summary(),
		Date:        m.Date,
		Time:        m.Time,
		UserName:    m.UserName,
	}
}

// NewMovementResponses convierte una lista de registros.
func NewMovementResponses(ms []*entity.MovementRecord) []MovementResponse {
	out := make([]MovementResponse, 0, len(ms))
	for _, m := range ms {
		out = append(out, NewMovementResponse(m))
	}
	return out
}

// RecordMovementResponse producto actualizado y registro creado.
type RecordMovementResponse struct {
	Product  ProductResponse  `json:"product"`
	Movement MovementResponse `json:"movement"`
}

// HistoryQuery listado del historial. Action: all, Entrada o Salida.
type HistoryQuery struct {
	PageQuery
	Action string `query:"action" validate:"omitempty,oneof=all Entrada Salida"`
}

// ActionFilter filtro de acción para el repositorio ("" = todas).
func (q HistoryQuery) ActionFilter() string {
	if q.Action == "all" {
		return ""
	}
	return q.Action
}

// HistoryListResponse página del historial.
type HistoryListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// HistoryMetricsResponse métricas de la cabecera del historial.
type HistoryMetricsResponse struct {
	TodayMovements int `json:"today_movements"`
	TotalEntries   int `json:"total_entries"`
	TotalExits     int `json:"total_exits"`
}
