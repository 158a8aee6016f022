package categories

import (
	"context"
	"fmt"
	"strings"

	"github.com/storefront-admin/storefront-admin/internal/shared"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]Category, error) {
	return s.repo.List(ctx)
}

// Search returns one page of categories whose name or description contains
// the term, plus the total number of matches.
func (s *Service) Search(ctx context.Context, params shared.SearchParams) ([]Category, int, error) {
	items, err := s.repo.Search(ctx, params)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.CountSearch(ctx, params.Term)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (s *Service) Get(ctx context.Context, id int64) (Category, error) {
	if id <= 0 {
		return Category{}, fmt.Errorf("%w: invalid category ID", shared.ErrValidation)
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, category Category) (Category, error) {
	category = normalize(category)
	if err := s.validate(category); err != nil {
		return Category{}, err
	}
	category.ID = 0
	return s.repo.Create(ctx, category)
}

func (s *Service) Update(ctx context.Context, category Category) error {
	if category.ID <= 0 {
		return fmt.Errorf("%w: invalid category ID", shared.ErrValidation)
	}
	category = normalize(category)
	if err := s.validate(category); err != nil {
		return err
	}
	return s.repo.Update(ctx, category)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid category ID", shared.ErrValidation)
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

func normalize(c Category) Category {
	c.Name = strings.TrimSpace(c.Name)
	c.Description = strings.TrimSpace(c.Description)
	return c
}
