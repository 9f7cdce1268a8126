package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/lumina-inventario/internal/domain"
	"github.com/jhoicas/lumina-inventario/internal/domain/entity"
	"github.com/jhoicas/lumina-inventario/internal/domain/repository"
)

var (
	_ repository.UserRepository   = (*UserRepo)(nil)
	_ repository.AccessRepository = (*AccessRepo)(nil)
)

// Sin fila en user_roles la cuenta se lee como user activo.
const userSelect = `
	SELECT u.id, u.email, u.password_hash, u.display_name, u.phone,
		COALESCE(r.role, 'user'), COALESCE(r.is_active, true), u.created_at
	FROM users u
	LEFT JOIN user_roles r ON r.user_id = u.id`

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// Create inserta la cuenta y su registro de acceso en una sola sentencia.
func (r *UserRepo) Create(ctx context.Context, u *entity.UserAccount) error {
	if u.Role == "" {
		u.Role = entity.RoleUser
	}
	query := `
		WITH nu AS (
			INSERT INTO users (id, email, password_hash, display_name, phone)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id, created_at
		)
		INSERT INTO user_roles (user_id, role, is_active, updated_at)
		SELECT id, $6, $7, created_at FROM nu
		RETURNING updated_at`
	err := r.q.QueryRow(ctx, query,
		u.ID, u.Email, u.PasswordHash, u.DisplayName, u.Phone, u.Role, u.IsActive,
	).Scan(&u.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.UserAccount, error) {
	return r.get(ctx, userSelect+` WHERE u.id = $1`, id)
}

// GetByEmail busca sin distinguir mayúsculas.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.UserAccount, error) {
	return r.get(ctx, userSelect+` WHERE lower(u.email) = lower($1) LIMIT 1`, email)
}

func (r *UserRepo) get(ctx context.Context, query, arg string) (*entity.UserAccount, error) {
	u, err := scanUser(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

// List filtra por email o nombre visible; los más recientes primero.
func (r *UserRepo) List(ctx context.Context, f repository.UserFilter) ([]*entity.UserAccount, int, error) {
	where := ` WHERE ($1 = '' OR u.email ILIKE $2 ESCAPE '\' OR u.display_name ILIKE $2 ESCAPE '\')`
	args := []any{f.Search, likePattern(f.Search)}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM users u`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	query := userSelect + where + `
		ORDER BY u.created_at DESC, u.email
		LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(ctx, query, append(args, limitArg(f.Window), f.Window.Offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var list []*entity.UserAccount
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	return list, total, nil
}

func (r *UserRepo) UpdateProfile(ctx context.Context, id, displayName, phone string) error {
	return r.exec(ctx, `UPDATE users SET display_name = $2, phone = $3 WHERE id = $1`, id, displayName, phone)
}

func (r *UserRepo) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	return r.exec(ctx, `UPDATE users SET password_hash = $2 WHERE id = $1`, id, passwordHash)
}

func (r *UserRepo) exec(ctx context.Context, query string, args ...any) error {
	tag, err := r.q.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func scanUser(row pgx.Row) (*entity.UserAccount, error) {
	var u entity.UserAccount
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.DisplayName, &u.Phone, &u.Role, &u.IsActive, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// AccessRepo tabla user_roles. Las escrituras son upsert: una cuenta sin registro lo obtiene al primer cambio.
type AccessRepo struct {
	q Querier
}

// NewAccessRepository construye el adaptador de control de acceso.
func NewAccessRepository(q Querier) *AccessRepo {
	return &AccessRepo{q: q}
}

func (r *AccessRepo) Get(ctx context.Context, userID string) (*entity.AccessRecord, error) {
	var a entity.AccessRecord
	err := r.q.QueryRow(ctx,
		`SELECT user_id, role, is_active, updated_at FROM user_roles WHERE user_id = $1`, userID,
	).Scan(&a.UserID, &a.Role, &a.IsActive, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get access: %w", err)
	}
	return &a, nil
}

func (r *AccessRepo) SetRole(ctx context.Context, userID, role string) error {
	query := `
		INSERT INTO user_roles (user_id, role) VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE SET role = EXCLUDED.role, updated_at = now()`
	return r.upsert(ctx, query, userID, role)
}

func (r *AccessRepo) SetActive(ctx context.Context, userID string, active bool) error {
	query := `
		INSERT INTO user_roles (user_id, is_active) VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE SET is_active = EXCLUDED.is_active, updated_at = now()`
	return r.upsert(ctx, query, userID, active)
}

func (r *AccessRepo) upsert(ctx context.Context, query string, args ...any) error {
	if _, err := r.q.Exec(ctx, query, args...); err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("upsert access: %w", err)
	}
	return nil
}
