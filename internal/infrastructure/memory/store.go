// Package memory implementa los puertos de persistencia en memoria del proceso.
// Se usa con STORAGE_DRIVER=memory y en las pruebas de los casos de uso.
package memory

import (
	"strings"
	"sync"
	"time"

	"golang.org/x/text/cases"

	"github.com/jhoicas/lumina-inventario/internal/domain/entity"
)

// Store datos compartidos por todos los repositorios en memoria.
type Store struct {
	mu sync.RWMutex
	// txMu serializa las unidades de trabajo de TxRunner.
	txMu sync.Mutex

	products      map[int64]*entity.Product
	nextProductID int64

	movements      []*entity.MovementRecord
	nextMovementID int64

	users  map[string]*entity.UserAccount
	access map[string]*entity.AccessRecord

	now func() time.Time
}

// New crea un almacén vacío.
func New() *Store {
	return &Store{
		products: make(map[int64]*entity.Product),
		users:    make(map[string]*entity.UserAccount),
		access:   make(map[string]*entity.AccessRecord),
		now:      time.Now,
	}
}

// SetClock reemplaza el reloj usado para CreatedAt.
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

func (s *Store) Products() *ProductRepo { return &ProductRepo{s: s} }
func (s *Store) Movements() *MovementRepo { return &MovementRepo{s: s} }
func (s *Store) Users() *UserRepo { return &UserRepo{s: s} }
func (s *Store) Access() *AccessRepo { return &AccessRepo{s: s} }
func (s *Store) Reports() *ReportRepo { return &ReportRepo{s: s} }
func (s *Store) TxRunner() *TxRunner { return &TxRunner{s: s} }

// contains búsqueda de subcadena sin distinguir mayúsculas (plegado Unicode).
// cases.Caser no es seguro entre goroutines; se crea uno por llamada.
func contains(haystack, needle string) bool {
	if needle == "" {
		return true
	}
	fold := cases.Fold()
	return strings.Contains(fold.String(haystack), fold.String(needle))
}

func window[T any](rows []T, offset, limit int) []T {
	if offset >= len(rows) {
		return []T{}
	}
	if offset < 0 {
		offset = 0
	}
	end := len(rows)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return rows[offset:end]
}
