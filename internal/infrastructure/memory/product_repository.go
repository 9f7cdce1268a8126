package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/lumina-inventario/internal/domain"
	"github.com/jhoicas/lumina-inventario/internal/domain/entity"
	"github.com/jhoicas/lumina-inventario/internal/domain/repository"
	"github.com/jhoicas/lumina-inventario/internal/domain/stock"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo productos en memoria. Devuelve copias; nunca expone los punteros internos.
type ProductRepo struct {
	s *Store
}

func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.nextProductID++
	p.ID = r.s.nextProductID
	if p.CreatedAt.IsZero() {
		p.CreatedAt = r.s.now()
	}
	cp := *p
	r.s.products[p.ID] = &cp
	return nil
}

func (r *ProductRepo) GetByID(_ context.Context, id int64) (*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.products[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

// GetForUpdate igual que GetByID; el aislamiento lo da TxRunner.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *ProductRepo) Update(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.products[p.ID]
	if !ok {
		return domain.ErrNotFound
	}
	cp := *p
	cp.CreatedAt = cur.CreatedAt
	r.s.products[p.ID] = &cp
	return nil
}

func (r *ProductRepo) UpdateStock(_ context.Context, id int64, n int, status stock.Status) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Stock = n
	p.Status = status
	return nil
}

func (r *ProductRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.products, id)
	return nil
}

func (r *ProductRepo) List(_ context.Context, f repository.ProductFilter) ([]*entity.Product, int, error) {
	r.s.mu.RLock()
	matched := make([]*entity.Product, 0, len(r.s.products))
	for _, p := range r.s.products {
		if f.InStockOnly && p.Stock <= 0 {
			continue
		}
		if f.Search != "" && !contains(p.Name, f.Search) && !contains(p.Category, f.Search) {
			continue
		}
		cp := *p
		matched = append(matched, &cp)
	}
	r.s.mu.RUnlock()

	sortProducts(matched, f.Sort)
	return window(matched, f.Window.Offset, f.Window.Limit), len(matched), nil
}

func (r *ProductRepo) ListAll(ctx context.Context) ([]*entity.Product, error) {
	rows, _, err := r.List(ctx, repository.ProductFilter{})
	return rows, err
}

func sortProducts(ps []*entity.Product, s repository.Sort) {
	field := s.Field
	desc := s.Desc
	if field == "" {
		field, desc = repository.ProductSortCreatedAt, true
	}
	less := func(a, b *entity.Product) bool {
		switch field {
		case repository.ProductSortName:
			return a.Name < b.Name
		case repository.ProductSortCategory:
			return a.Category < b.Category
		case repository.ProductSortStock:
			return a.Stock < b.Stock
		case repository.ProductSortID:
			return a.ID < b.ID
		default:
			if !a.CreatedAt.Equal(b.CreatedAt) {
				return a.CreatedAt.Before(b.CreatedAt)
			}
			return a.ID < b.ID
		}
	}
	sort.SliceStable(ps, func(i, j int) bool {
		if desc {
			return less(ps[j], ps[i])
		}
		return less(ps[i], ps[j])
	})
}
