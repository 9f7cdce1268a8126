// Package repository define los puertos de persistencia del inventario (DIP).
// Los adaptadores viven en internal/infrastructure/postgres y internal/infrastructure/memory.
package repository

// Sort campo y dirección de orden. Cada adaptador admite solo los campos de su lista blanca.
type Sort struct {
	Field string
	Desc  bool
}

// Window ventana de filas a leer. Limit <= 0 significa sin límite.
type Window struct {
	Offset int
	Limit  int
}
