package categories

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/storefront-admin/storefront-admin/internal/shared"
)

// memoryRepository keeps categories in a map and mimics the SQL semantics.
type memoryRepository struct {
	rows    map[int64]Category
	nextID  int64
	failErr error
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{rows: make(map[int64]Category), nextID: 1}
}

func (m *memoryRepository) Create(ctx context.Context, c Category) (Category, error) {
	if m.failErr != nil {
		return Category{}, m.failErr
	}
	c.ID = m.nextID
	m.nextID++
	m.rows[c.ID] = c
	return c, nil
}

func (m *memoryRepository) Get(ctx context.Context, id int64) (Category, error) {
	if m.failErr != nil {
		return Category{}, m.failErr
	}
	c, ok := m.rows[id]
	if !ok {
		return Category{}, fmt.Errorf("categories: get: %w", shared.ErrNotFound)
	}
	return c, nil
}

func (m *memoryRepository) List(ctx context.Context) ([]Category, error) {
	if m.failErr != nil {
		return nil, m.failErr
	}
	return m.sorted(func(Category) bool { return true }), nil
}

func (m *memoryRepository) Update(ctx context.Context, c Category) error {
	if m.failErr != nil {
		return m.failErr
	}
	if _, ok := m.rows[c.ID]; !ok {
		return fmt.Errorf("categories: update: %w", shared.ErrNotFound)
	}
	m.rows[c.ID] = c
	return nil
}

func (m *memoryRepository) Delete(ctx context.Context, id int64) error {
	if m.failErr != nil {
		return m.failErr
	}
	if _, ok := m.rows[id]; !ok {
		return fmt.Errorf("categories: delete: %w", shared.ErrNotFound)
	}
	delete(m.rows, id)
	return nil
}

func (m *memoryRepository) Count(ctx context.Context) (int, error) {
	return len(m.rows), m.failErr
}

func (m *memoryRepository) Search(ctx context.Context, params shared.SearchParams) ([]Category, error) {
	if m.failErr != nil {
		return nil, m.failErr
	}
	matches := m.sorted(matcher(params.Term))
	start := params.Offset()
	if start >= len(matches) {
		return []Category{}, nil
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

func (m *memoryRepository) SeedIfEmpty(ctx context.Context, categories []Category) (int, error) {
	if m.failErr != nil {
		return 0, m.failErr
	}
	if len(m.rows) > 0 {
		return 0, nil
	}
	for _, c := range categories {
		if _, err := m.Create(ctx, c); err != nil {
			return 0, err
		}
	}
	return len(categories), nil
}

func (m *memoryRepository) sorted(keep func(Category) bool) []Category {
	out := []Category{}
	for _, c := range m.rows {
		if keep(c) {
			out = append(out, c)
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

func matcher(term string) func(Category) bool {
	term = strings.ToLower(term)
	return func(c Category) bool {
		return strings.Contains(strings.ToLower(c.Name), term) || strings.Contains(strings.ToLower(c.Description), term)
	}
}
