package users

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/storefront-admin/storefront-admin/internal/shared"
)

type memoryRepository struct {
	rows    map[int64]User
	nextID  int64
	failErr error
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{rows: make(map[int64]User), nextID: 1}
}

func (m *memoryRepository) Create(ctx context.Context, u User) (User, error) {
	if m.failErr != nil {
		return User{}, m.failErr
	}
	for _, existing := range m.rows {
		if existing.Email == u.Email {
			return User{}, fmt.Errorf("users: create: %w: usuario_email_key", shared.ErrConstraint)
		}
	}
	u.ID = m.nextID
	m.nextID++
	m.rows[u.ID] = u
	return u, nil
}

func (m *memoryRepository) Get(ctx context.Context, id int64) (User, error) {
	if m.failErr != nil {
		return User{}, m.failErr
	}
	u, ok := m.rows[id]
	if !ok {
		return User{}, fmt.Errorf("users: get: %w", shared.ErrNotFound)
	}
	return u, nil
}

func (m *memoryRepository) GetByEmail(ctx context.Context, email string) (User, error) {
	if m.failErr != nil {
		return User{}, m.failErr
	}
	for _, u := range m.rows {
		if u.Email == email {
			return u, nil
		}
	}
	return User{}, fmt.Errorf("users: get by email: %w", shared.ErrNotFound)
}

func (m *memoryRepository) List(ctx context.Context) ([]User, error) {
	if m.failErr != nil {
		return nil, m.failErr
	}
	return m.sorted(func(User) bool { return true }), nil
}

func (m *memoryRepository) Update(ctx context.Context, u User) error {
	if m.failErr != nil {
		return m.failErr
	}
	old, ok := m.rows[u.ID]
	if !ok {
		return fmt.Errorf("users: update: %w", shared.ErrNotFound)
	}
	if u.PasswordHash == nil {
		u.PasswordHash = old.PasswordHash
	}
	m.rows[u.ID] = u
	return nil
}

func (m *memoryRepository) Delete(ctx context.Context, id int64) error {
	if m.failErr != nil {
		return m.failErr
	}
	if _, ok := m.rows[id]; !ok {
		return fmt.Errorf("users: delete: %w", shared.ErrNotFound)
	}
	delete(m.rows, id)
	return nil
}

func (m *memoryRepository) Count(ctx context.Context) (int, error) {
	return len(m.rows), m.failErr
}

func (m *memoryRepository) Search(ctx context.Context, params shared.SearchParams) ([]User, error) {
	if m.failErr != nil {
		return nil, m.failErr
	}
	matches := m.sorted(matcher(params.Term))
	start := params.Offset()
	if start >= len(matches) {
		return []User{}, nil
	}
	end := start + params.PageSize
	if end > len(matches) {
		end = len(matches)
	}
	return matches[start:end], nil
}

func (m *memoryRepository) CountSearch(ctx context.Context, term string) (int, error) {
	if m.failErr != nil {
		return 0, m.failErr
	}
	return len(m.sorted(matcher(term))), nil
}

func (m *memoryRepository) sorted(keep func(User) bool) []User {
	out := []User{}
	for _, u := range m.rows {
		if keep(u) {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name == out[j].Name {
			return out[i].ID < out[j].ID
		}
		return out[i].Name < out[j].Name
	})
	return out
}

func matcher(term string) func(User) bool {
	term = strings.ToLower(term)
	return func(u User) bool {
		return strings.Contains(strings.ToLower(u.Name), term) || strings.Contains(strings.ToLower(u.Email), term)
	}
}
