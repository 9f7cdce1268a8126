package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/lumina-inventario/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo agregados calculados sobre el historial en memoria.
type ReportRepo struct {
	s *Store
}

func (r *ReportRepo) MonthlyTotals(_ context.Context, action, since string) ([]repository.MonthlyTotal, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	byMonth := map[string]int{}
	for _, m := range r.s.movements {
		if m.Action != action || m.Date < since || len(m.Date) < 7 {
			continue
		}
		byMonth[m.Date[:7]] += m.Quantity
	}
	out := make([]repository.MonthlyTotal, 0, len(byMonth))
	for month, total := range byMonth {
		out = append(out, repository.MonthlyTotal{Month: month, Total: total})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out, nil
}

func (r *ReportRepo) TopProducts(_ context.Context, action string, limit int) ([]repository.ProductVolume, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	byName := map[string]int{}
	for _, m := range r.s.movements {
		if m.Action == action {
			byName[m.ProductName] += m.Quantity
		}
	}
	out := make([]repository.ProductVolume, 0, len(byName))
	for name, total := range byName {
		out = append(out, repository.ProductVolume{ProductName: name, TotalQuantity: total})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalQuantity != out[j].TotalQuantity {
			return out[i].TotalQuantity > out[j].TotalQuantity
		}
		return out[i].ProductName < out[j].ProductName
	})
	return window(out, 0, limit), nil
}

func (r *ReportRepo) CountMovements(_ context.Context) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return len(r.s.movements), nil
}
