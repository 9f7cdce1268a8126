package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/lumina-inventario/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo agregados del historial para el tablero.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el adaptador de reportes.
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// MonthlyTotals cantidades por mes ("YYYY-MM") desde since.
func (r *ReportRepo) MonthlyTotals(ctx context.Context, action, since string) ([]repository.MonthlyTotal, error) {
	query := `
		SELECT to_char(date, 'YYYY-MM') AS month, sum(quantity)
		FROM movement_history
		WHERE action_type = $1 AND date >= $2::text::date
		GROUP BY month
		ORDER BY month`
	rows, err := r.q.Query(ctx, query, action, since)
	if err != nil {
		return nil, fmt.Errorf("monthly totals: %w", err)
	}
	defer rows.Close()

	var list []repository.MonthlyTotal
	for rows.Next() {
		var m repository.MonthlyTotal
		if err := rows.Scan(&m.Month, &m.Total); err != nil {
			return nil, fmt.Errorf("scan monthly: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// TopProducts agrupa por nombre copiado, así cuentan también productos ya borrados.
func (r *ReportRepo) TopProducts(ctx context.Context, action string, limit int) ([]repository.ProductVolume, error) {
	query := `
		SELECT product_name, sum(quantity) AS total
		FROM movement_history
		WHERE action_type = $1
		GROUP BY product_name
		ORDER BY total DESC, product_name
		LIMIT $2`
	rows, err := r.q.Query(ctx, query, action, limit)
	if err != nil {
		return nil, fmt.Errorf("top products: %w", err)
	}
	defer rows.Close()

	var list []repository.ProductVolume
	for rows.Next() {
		var v repository.ProductVolume
		if err := rows.Scan(&v.ProductName, &v.TotalQuantity); err != nil {
			return nil, fmt.Errorf("scan top product: %w", err)
		}
		list = append(list, v)
	}
	return list, rows.Err()
}

func (r *ReportRepo) CountMovements(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM movement_history`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count movements: %w", err)
	}
	return n, nil
}
