package repository

import "context"

// TxRepos repositorios atados a una misma unidad de trabajo.
type TxRepos struct {
	Products  ProductRepository
	Movements MovementRepository
}

// TxRunner ejecuta fn con repositorios atados a una transacción.
// Si fn devuelve error la unidad se descarta.
type TxRunner interface {
	Run(ctx context.Context, fn func(r TxRepos) error) error
	// Atomic indica si Run deshace por sí mismo las escrituras ante un error.
	// Con false el llamador debe compensar.
	Atomic() bool
}
