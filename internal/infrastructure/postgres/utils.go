package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/lumina-inventario/internal/application/paging"
	"github.com/jhoicas/lumina-inventario/internal/domain/repository"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// likePattern patrón ILIKE "contiene" con los comodines del usuario escapados.
func likePattern(search string) string {
	return "%" + paging.EscapeLike(search) + "%"
}

// limitArg LIMIT NULL equivale a sin límite en PostgreSQL.
func limitArg(w repository.Window) any {
	if w.Limit <= 0 {
		return nil
	}
	return w.Limit
}

// orderBy arma la cláusula ORDER BY desde una lista blanca; nunca interpola texto del cliente.
// El id desempata para que la paginación sea estable.
func orderBy(s repository.Sort, columns map[string]string, def repository.Sort) string {
	col, ok := columns[s.Field]
	if !ok {
		s = def
		col = columns[def.Field]
	}
	dir := "ASC"
	if s.Desc {
		dir = "DESC"
	}
	if col == "id" {
		return "ORDER BY id " + dir
	}
	return "ORDER BY " + col + " " + dir + ", id " + dir
}

// isForeignKeyViolation 23503: la fila referenciada no existe.
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}
