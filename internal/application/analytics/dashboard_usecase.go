// Package analytics contiene los agregados del tablero de inventario.
package analytics

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/lumina-inventario/internal/application/dto"
	"github.com/jhoicas/lumina-inventario/internal/domain"
	"github.com/jhoicas/lumina-inventario/internal/domain/entity"
	"github.com/jhoicas/lumina-inventario/internal/domain/repository"
	"github.com/jhoicas/lumina-inventario/internal/domain/stock"
)

const (
	dashboardTopProducts = 5  // productos en los rankings de entradas y salidas
	dashboardMonths      = 12 // meses de las series mensuales
)

// ProductLister lectura completa del catálogo.
type ProductLister interface {
	ListAll(ctx context.Context) ([]*entity.Product, error)
}

// Cache almacena el tablero ya calculado. Get devuelve false si no hay valor vigente.
type Cache interface {
	Get(ctx context.Context) (*dto.DashboardResponse, bool)
	Set(ctx context.Context, v *dto.DashboardResponse, ttl time.Duration)
	Delete(ctx context.Context)
}

// DashboardUseCase conteos por estado y agregados del historial.
type DashboardUseCase struct {
	products ProductLister
	reports  repository.ReportRepository
	cache    Cache
	ttl      time.Duration
	log      zerolog.Logger
	now      func() time.Time
}

// NewDashboardUseCase construye el caso de uso. cache puede ser nil.
func NewDashboardUseCase(products ProductLister, reports repository.ReportRepository, cache Cache, ttl time.Duration, log zerolog.Logger) *DashboardUseCase {
	return &DashboardUseCase{
		products: products,
		reports:  reports,
		cache:    cache,
		ttl:      ttl,
		log:      log.With().Str("component", "dashboard").Logger(),
		now:      time.Now,
	}
}

// Invalidate descarta el tablero en caché; se llama tras escribir productos o movimientos.
func (uc *DashboardUseCase) Invalidate(ctx context.Context) {
	if uc.cache != nil {
		uc.cache.Delete(ctx)
	}
}

// StatusCounts cantidad de productos por estado según stock.Classify.
func StatusCounts(products []*entity.Product) map[stock.Status]int {
	counts := make(map[stock.Status]int, len(stock.Statuses))
	for _, p := range products {
		counts[stock.Classify(p.Stock, p.MinStock, p.MaxStock)]++
	}
	return counts
}

// Get arma el tablero. Las seis consultas corren en paralelo:
//  1. ListAll            → total y conteos por estado
//  2. CountMovements     → total de movimientos
//  3. MonthlyTotals(x2)  → series de entradas y salidas
//  4. TopProducts(x2)    → top 5 por entradas y salidas
func (uc *DashboardUseCase) Get(ctx context.Context) (*dto.DashboardResponse, error) {
	if uc.cache != nil {
		if v, ok := uc.cache.Get(ctx); ok {
			return v, nil
		}
	}

	now := uc.now()
	since := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).
		AddDate(0, -(dashboardMonths - 1), 0).
		Format(entity.DateLayout)

	type productsResult struct {
		rows []*entity.Product
		err  error
	}
	type countResult struct {
		n   int
		err error
	}
	type monthlyResult struct {
		rows []repository.MonthlyTotal
		err  error
	}
	type topResult struct {
		rows []repository.ProductVolume
		err  error
	}

	productsCh := make(chan productsResult, 1)
	countCh := make(chan countResult, 1)
	entriesCh := make(chan monthlyResult, 1)
	exitsCh := make(chan monthlyResult, 1)
	topInCh := make(chan topResult, 1)
	topOutCh := make(chan topResult, 1)

	go func() {
		rows, err := uc.products.ListAll(ctx)
		productsCh <- productsResult{rows, err}
	}()
	go func() {
		n, err := uc.reports.CountMovements(ctx)
		countCh <- countResult{n, err}
	}()
	go func() {
		rows, err := uc.reports.MonthlyTotals(ctx, entity.ActionEntry, since)
		entriesCh <- monthlyResult{rows, err}
	}()
	go func() {
		rows, err := uc.reports.MonthlyTotals(ctx, entity.ActionExit, since)
		exitsCh <- monthlyResult{rows, err}
	}()
	go func() {
		rows, err := uc.reports.TopProducts(ctx, entity.ActionEntry, dashboardTopProducts)
		topInCh <- topResult{rows, err}
	}()
	go func() {
		rows, err := uc.reports.TopProducts(ctx, entity.ActionExit, dashboardTopProducts)
		topOutCh <- topResult{rows, err}
	}()

	products := <-productsCh
	count := <-countCh
	entries := <-entriesCh
	exits := <-exitsCh
	topIn := <-topInCh
	topOut := <-topOutCh

	for _, r := range []struct {
		op  string
		err error
	}{
		{"tablero: productos", products.err},
		{"tablero: total de movimientos", count.err},
		{"tablero: entradas mensuales", entries.err},
		{"tablero: salidas mensuales", exits.err},
		{"tablero: top entradas", topIn.err},
		{"tablero: top salidas", topOut.err},
	} {
		if r.err != nil {
			return nil, &domain.StorageError{Op: r.op, Err: r.err}
		}
	}

	counts := StatusCounts(products.rows)
	out := &dto.DashboardResponse{
		TotalProducts:  len(products.rows),
		LowStock:       counts[stock.LowStock],
		OutOfStock:     counts[stock.OutOfStock],
		OverStock:      counts[stock.OverStock],
		TotalMovements: count.n,
		MonthlyEntries: nonNil(entries.rows),
		MonthlyExits:   nonNil(exits.rows),
		TopEntries:     nonNil(topIn.rows),
		TopExits:       nonNil(topOut.rows),
		GeneratedAt:    now,
	}
	if uc.cache != nil && uc.ttl > 0 {
		uc.cache.Set(ctx, out, uc.ttl)
	}
	return out, nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
