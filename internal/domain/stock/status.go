// Package stock contiene las reglas puras de estado y nivel de stock.
// Todas las pantallas y casos de uso derivan el estado y la barra de nivel desde aquí.
package stock

// Status estado derivado de un producto según su stock y su rango [min, max].
type Status string

const (
	OutOfStock Status = "Out of Stock"
	LowStock   Status = "Low Stock"
	InStock    Status = "In Stock"
	OverStock  Status = "Over Stock"
)

// Statuses lista los estados en orden de severidad decreciente.
var Statuses = []Status{OutOfStock, LowStock, InStock, OverStock}

// Classify aplica la regla ordenada (gana la primera que coincide):
//
//	stock > max -> Over Stock
//	stock > min -> In Stock
//	stock > 0   -> Low Stock
//	resto       -> Out of Stock
//
// No valida el rango; max >= min se exige al escribir el producto.
func Classify(stock, minStock, maxStock int) Status {
	switch {
	case stock > maxStock:
		return OverStock
	case stock > minStock:
		return InStock
	case stock > 0:
		return LowStock
	default:
		return OutOfStock
	}
}

// Label etiqueta en español para la interfaz.
func (s Status) Label() string {
	switch s {
	case OutOfStock:
		return "Sin Stock"
	case LowStock:
		return "Stock Bajo"
	case InStock:
		return "En Stock"
	case OverStock:
		return "Sobre Stock"
	}
	return string(s)
}

// Valid indica si s es uno de los cuatro estados conocidos.
func (s Status) Valid() bool {
	for _, v := range Statuses {
		if s == v {
			return true
		}
	}
	return false
}
