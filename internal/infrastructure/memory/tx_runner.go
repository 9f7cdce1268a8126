package memory

import (
	"context"

	"github.com/jhoicas/lumina-inventario/internal/domain/repository"
)

var _ repository.TxRunner = (*TxRunner)(nil)

// TxRunner serializa las unidades de trabajo pero no deshace escrituras: Atomic es false
// y el llamador compensa.
type TxRunner struct {
	s *Store
}

func (t *TxRunner) Run(ctx context.Context, fn func(r repository.TxRepos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t.s.txMu.Lock()
	defer t.s.txMu.Unlock()
	return fn(repository.TxRepos{
		Products:  t.s.Products(),
		Movements: t.s.Movements(),
	})
}

func (t *TxRunner) Atomic() bool { return false }
