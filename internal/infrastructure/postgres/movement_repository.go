package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/lumina-inventario/internal/domain/entity"
	"github.com/jhoicas/lumina-inventario/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

const movementColumns = `id, product_id, product_name, action_type, quantity, details,
	to_char(date, 'YYYY-MM-DD'), to_char(time, 'HH24:MI:SS'), user_name, created_at`

// MovementRepo historial de movimientos (movement_history). Solo inserta y lee.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Append inserta el registro; details se guarda como JSONB.
func (r *MovementRepo) Append(ctx context.Context, m *entity.MovementRecord) error {
	query := `
		INSERT INTO movement_history (product_id, product_name, action_type, quantity, details, date, time, user_name)
		VALUES ($1, $2, $3, $4, $5, $6::text::date, $7::text::time, $8)
		RETURNING id, created_at`
	err := r.q.QueryRow(ctx, query,
		m.ProductID, m.ProductName, m.Action, m.Quantity, m.Details, m.Date, m.Time, m.UserName,
	).Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

const movementWhere = `WHERE ($1::text = '' OR action_type = $1) AND ($2::bigint = 0 OR product_id = $2)
	AND ($3::text = '' OR product_name ILIKE $4 ESCAPE '\' OR user_name ILIKE $4 ESCAPE '\'
		OR details->>'invoice_number' ILIKE $4 ESCAPE '\' OR details->>'destination' ILIKE $4 ESCAPE '\')`

var movementSortColumns = map[string]string{
	repository.MovementSortID:          "id",
	repository.MovementSortProductName: "product_name",
	repository.MovementSortQuantity:    "quantity",
}

var defaultMovementSort = repository.Sort{Field: repository.MovementSortID, Desc: true}

// List página del historial (id descendente por defecto) y total filtrado.
func (r *MovementRepo) List(ctx context.Context, f repository.MovementFilter) ([]*entity.MovementRecord, int, error) {
	pattern := likePattern(f.Search)
	var total int
	err := r.q.QueryRow(ctx, `SELECT count(*) FROM movement_history `+movementWhere,
		f.Action, f.ProductID, f.Search, pattern).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count movements: %w", err)
	}

	query := `SELECT ` + movementColumns + ` FROM movement_history ` + movementWhere + `
		` + orderBy(f.Sort, movementSortColumns, defaultMovementSort) + `
		LIMIT $5 OFFSET $6`
	rows, err := r.q.Query(ctx, query, f.Action, f.ProductID, f.Search, pattern, limitArg(f.Window), f.Window.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()

	var list []*entity.MovementRecord
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, m)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list movements: %w", err)
	}
	return list, total, nil
}

// Totals una sola pasada: movimientos de hoy sin filtrar y sumas por tipo según el filtro.
func (r *MovementRepo) Totals(ctx context.Context, f repository.MovementFilter, today string) (repository.MovementTotals, error) {
	query := `
		SELECT
			count(*) FILTER (WHERE date = $1::text::date),
			COALESCE(sum(quantity) FILTER (WHERE action_type = 'Entrada' AND $2::text IN ('', 'Entrada')), 0),
			COALESCE(sum(quantity) FILTER (WHERE action_type = 'Salida' AND $2::text IN ('', 'Salida')), 0)
		FROM movement_history`
	var t repository.MovementTotals
	if err := r.q.QueryRow(ctx, query, today, f.Action).Scan(&t.Today, &t.Entries, &t.Exits); err != nil {
		return repository.MovementTotals{}, fmt.Errorf("movement totals: %w", err)
	}
	return t, nil
}

func scanMovement(row pgx.Row) (*entity.MovementRecord, error) {
	var m entity.MovementRecord
	var productID *int64
	err := row.Scan(&m.ID, &productID, &m.ProductName, &m.Action, &m.Quantity, &m.Details,
		&m.Date, &m.Time, &m.UserName, &m.CreatedAt)
	if err != nil {
		return nil, err
	}
	if productID != nil {
		m.ProductID = *productID
	}
	return &m, nil
}
