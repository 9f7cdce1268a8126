package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/lumina-inventario/internal/domain/entity"
	"github.com/jhoicas/lumina-inventario/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo historial en memoria, en orden de inserción.
type MovementRepo struct {
	s *Store
}

func (r *MovementRepo) Append(_ context.Context, m *entity.MovementRecord) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.nextMovementID++
	m.ID = r.s.nextMovementID
	if m.CreatedAt.IsZero() {
		m.CreatedAt = r.s.now()
	}
	cp := *m
	r.s.movements = append(r.s.movements, &cp)
	return nil
}

// List del más nuevo al más antiguo salvo que f.Sort indique otro campo.
func (r *MovementRepo) List(_ context.Context, f repository.MovementFilter) ([]*entity.MovementRecord, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.MovementRecord, 0)
	for i := len(r.s.movements) - 1; i >= 0; i-- {
		m := r.s.movements[i]
		if f.Action != "" && m.Action != f.Action {
			continue
		}
		if f.ProductID != 0 && m.ProductID != f.ProductID {
			continue
		}
		if f.Search != "" && !matchesMovement(m, f.Search) {
			continue
		}
		cp := *m
		out = append(out, &cp)
	}
	sortMovements(out, f.Sort)
	return window(out, f.Window.Offset, f.Window.Limit), len(out), nil
}

func (r *MovementRepo) Totals(_ context.Context, f repository.MovementFilter, today string) (repository.MovementTotals, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var t repository.MovementTotals
	for _, m := range r.s.movements {
		if m.Date == today {
			t.Today++
		}
		if f.Action != "" && m.Action != f.Action {
			continue
		}
		switch m.Action {
		case entity.ActionEntry:
			t.Entries += m.Quantity
		case entity.ActionExit:
			t.Exits += m.Quantity
		}
	}
	return t, nil
}

func matchesMovement(m *entity.MovementRecord, search string) bool {
	return contains(m.ProductName, search) || contains(m.UserName, search) ||
		contains(m.Details.InvoiceNumber, search) || contains(m.Details.Destination, search)
}

// sortMovements out llega en id descendente; sin campo de orden se deja así.
func sortMovements(ms []*entity.MovementRecord, s repository.Sort) {
	if s.Field == "" || (s.Field == repository.MovementSortID && s.Desc) {
		return
	}
	less := func(a, b *entity.MovementRecord) bool {
		switch s.Field {
		case repository.MovementSortProductName:
			if a.ProductName != b.ProductName {
				return a.ProductName < b.ProductName
			}
		case repository.MovementSortQuantity:
			if a.Quantity != b.Quantity {
				return a.Quantity < b.Quantity
			}
		}
		return a.ID < b.ID
	}
	sort.SliceStable(ms, func(i, j int) bool {
		if s.Desc {
			return less(ms[j], ms[i])
		}
		return less(ms[i], ms[j])
	})
}
