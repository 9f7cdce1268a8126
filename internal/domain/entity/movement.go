package entity

import "time"

// Tipos de acción del historial de movimientos.
const (
	ActionEntry = "Entrada"
	ActionExit  = "Salida"
)

// DefaultUserName nombre registrado cuando no hay usuario identificado.
const DefaultUserName = "Sistema"

// Formatos de fecha y hora guardados en el historial.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04:05"
)

// MovementDetails carga libre del movimiento: factura en entradas, destino en salidas.
type MovementDetails struct {
	InvoiceNumber string `json:"invoice_number,omitempty"`
	Destination   string `json:"destination,omitempty"`
}

// MovementRecord registro inmutable del historial. ProductName es una copia, no una FK:
// sobrevive al borrado o renombrado del producto. ID crece siempre (clave de orden).
type MovementRecord struct {
	ID          int64
	ProductID   int64
	ProductName string
	Action      string
	Quantity    int
	Details     MovementDetails
	Date        string
	Time        string
	UserName    string
	CreatedAt   time.Time
}

// Summary texto de detalle tal como se exporta ("Factura: ..." / "Destino: ...").
func (m *MovementRecord) Summary() string {
	if m.Action == ActionEntry {
		return "Factura: " + orNA(m.Details.InvoiceNumber)
	}
	return "Destino: " + orNA(m.Details.Destination)
}

// IsValidAction indica si a es Entrada o Salida.
func IsValidAction(a string) bool {
	return a == ActionEntry || a == ActionExit
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
