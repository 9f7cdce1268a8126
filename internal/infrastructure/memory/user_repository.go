package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/jhoicas/lumina-inventario/internal/domain"
	"github.com/jhoicas/lumina-inventario/internal/domain/entity"
	"github.com/jhoicas/lumina-inventario/internal/domain/repository"
)

var (
	_ repository.UserRepository   = (*UserRepo)(nil)
	_ repository.AccessRepository = (*AccessRepo)(nil)
)

// UserRepo cuentas en memoria.
type UserRepo struct {
	s *Store
}

func (r *UserRepo) Create(_ context.Context, u *entity.UserAccount) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return domain.ErrEmailAlreadyExists
		}
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = r.s.now()
	}
	if u.Role == "" {
		u.Role = entity.RoleUser
	}
	cp := *u
	r.s.users[u.ID] = &cp
	r.s.access[u.ID] = &entity.AccessRecord{UserID: u.ID, Role: u.Role, IsActive: u.IsActive, UpdatedAt: u.CreatedAt}
	return nil
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.UserAccount, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return r.s.withAccess(u), nil
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*entity.UserAccount, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, email) {
			return r.s.withAccess(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *UserRepo) List(_ context.Context, f repository.UserFilter) ([]*entity.UserAccount, int, error) {
	r.s.mu.RLock()
	out := make([]*entity.UserAccount, 0, len(r.s.users))
	for _, u := range r.s.users {
		if f.Search != "" && !contains(u.Email, f.Search) && !contains(u.DisplayName, f.Search) {
			continue
		}
		out = append(out, r.s.withAccess(u))
	}
	r.s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].Email < out[j].Email
	})
	return window(out, f.Window.Offset, f.Window.Limit), len(out), nil
}

func (r *UserRepo) UpdateProfile(_ context.Context, id, displayName, phone string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.DisplayName = displayName
	u.Phone = phone
	return nil
}

func (r *UserRepo) UpdatePassword(_ context.Context, id, hash string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.PasswordHash = hash
	return nil
}

// withAccess copia u con rol y activo del registro de acceso (user/activo si falta). Requiere s.mu.
func (s *Store) withAccess(u *entity.UserAccount) *entity.UserAccount {
	cp := *u
	cp.Role, cp.IsActive = entity.RoleUser, true
	if a, ok := s.access[u.ID]; ok {
		cp.Role, cp.IsActive = a.Role, a.IsActive
	}
	return &cp
}

// AccessRepo registros de acceso en memoria.
type AccessRepo struct {
	s *Store
}

func (r *AccessRepo) Get(_ context.Context, userID string) (*entity.AccessRecord, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	a, ok := r.s.access[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (r *AccessRepo) SetRole(_ context.Context, userID, role string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.upsertLocked(userID).Role = role
	return nil
}

func (r *AccessRepo) SetActive(_ context.Context, userID string, active bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.upsertLocked(userID).IsActive = active
	return nil
}

func (r *AccessRepo) upsertLocked(userID string) *entity.AccessRecord {
	a, ok := r.s.access[userID]
	if !ok {
		a = &entity.AccessRecord{UserID: userID, Role: entity.RoleUser, IsActive: true}
		r.s.access[userID] = a
	}
	a.UpdatedAt = r.s.now()
	return a
}
