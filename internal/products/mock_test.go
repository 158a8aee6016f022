package products

import (
	"context"
	"fmt"
	"image"
	"sort"
	"strings"

	"github.com/storefront-admin/storefront-admin/internal/shared"
)

type memoryRepository struct {
	rows    map[int64]Product
	nextID  int64
	failErr error
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{rows: make(map[int64]Product), nextID: 1}
}

func (m *memoryRepository) Create(ctx context.Context, p Product) (Product, error) {
	if m.failErr != nil {
		return Product{}, m.failErr
	}
	p.ID = m.nextID
	m.nextID++
	m.rows[p.ID] = p
	return p, nil
}

func (m *memoryRepository) Get(ctx context.Context, id int64) (Product, error) {
	if m.failErr != nil {
		return Product{}, m.failErr
	}
	p, ok := m.rows[id]
	if !ok {
		return Product{}, fmt.Errorf("products: get: %w", shared.ErrNotFound)
	}
	return p, nil
}

func (m *memoryRepository) List(ctx context.Context) ([]Product, error) {
	if m.failErr != nil {
		return nil, m.failErr
	}
	return m.sorted(func(Product) bool { return true }), nil
}

func (m *memoryRepository) ListByCategory(ctx context.Context, categoryID int64) ([]Product, error) {
	if m.failErr != nil {
		return nil, m.failErr
	}
	return m.sorted(func(p Product) bool { return p.CategoryID != nil && *p.CategoryID == categoryID }), nil
}

func (m *memoryRepository) Update(ctx context.Context, p Product) error {
	if m.failErr != nil {
		return m.failErr
	}
	if _, ok := m.rows[p.ID]; !ok {
		return fmt.Errorf("products: update: %w", shared.ErrNotFound)
	}
	m.rows[p.ID] = p
	return nil
}

func (m *memoryRepository) Delete(ctx context.Context, id int64) error {
	if m.failErr != nil {
		return m.failErr
	}
	if _, ok := m.rows[id]; !ok {
		return fmt.Errorf("products: delete: %w", shared.ErrNotFound)
	}
	delete(m.rows, id)
	return nil
}

func (m *memoryRepository) Count(ctx context.Context) (int, error) {
	return len(m.rows), m.failErr
}

func (m *memoryRepository) Search(ctx context.Context, params shared.SearchParams) ([]Product, error) {
	if m.failErr != nil {
		return nil, m.failErr
	}
	matches := m.sorted(matcher(params.Term))
	start := params.Offset()
	if start >= len(matches) {
		return []Product{}, nil
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

func (m *memoryRepository) sorted(keep func(Product) bool) []Product {
	out := []Product{}
	for _, p := range m.rows {
		if keep(p) {
			out = append(out, p)
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

func matcher(term string) func(Product) bool {
	term = strings.ToLower(term)
	return func(p Product) bool {
		return strings.Contains(strings.ToLower(p.Name), term) || strings.Contains(strings.ToLower(p.Description), term)
	}
}

// memoryImages records saved thumbnails by product id.
type memoryImages struct {
	saved   map[int64]image.Rectangle
	removed []int64
	saveErr error
}

func newMemoryImages() *memoryImages {
	return &memoryImages{saved: make(map[int64]image.Rectangle)}
}

func (m *memoryImages) Save(id int64, img image.Image) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved[id] = img.Bounds()
	return nil
}

func (m *memoryImages) Remove(id int64) error {
	delete(m.saved, id)
	m.removed = append(m.removed, id)
	return nil
}
