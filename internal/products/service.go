package products

import (
	"context"
	"errors"
	"fmt"
	"image"
	"strings"

	"github.com/storefront-admin/storefront-admin/internal/shared"
)

type Service struct {
	repo   Repository
	images ImageStorage
}

func NewService(repo Repository, images ImageStorage) *Service {
	return &Service{repo: repo, images: images}
}

func (s *Service) List(ctx context.Context) ([]Product, error) {
	return s.repo.List(ctx)
}

func (s *Service) ListByCategory(ctx context.Context, categoryID int64) ([]Product, error) {
	if categoryID <= 0 {
		return nil, fmt.Errorf("%w: invalid category ID", shared.ErrValidation)
	}
	return s.repo.ListByCategory(ctx, categoryID)
}

// Search returns one page of matching products and the total match count.
func (s *Service) Search(ctx context.Context, params shared.SearchParams) ([]Product, int, error) {
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

func (s *Service) Get(ctx context.Context, id int64) (Product, error) {
	if id <= 0 {
		return Product{}, fmt.Errorf("%w: invalid product ID", shared.ErrValidation)
	}
	return s.repo.Get(ctx, id)
}

// Create inserts the product and stores its thumbnail when img is not nil.
// If the image cannot be written the row is removed again.
func (s *Service) Create(ctx context.Context, product Product, img image.Image) (Product, error) {
	product = normalize(product)
	if err := s.validate(product); err != nil {
		return Product{}, err
	}
	product.ID = 0
	created, err := s.repo.Create(ctx, product)
	if err != nil {
		return Product{}, err
	}
	if img == nil {
		return created, nil
	}
	if err := s.images.Save(created.ID, img); err != nil {
		if delErr := s.repo.Delete(ctx, created.ID); delErr != nil {
			err = errors.Join(err, delErr)
		}
		return Product{}, err
	}
	return created, nil
}

func (s *Service) Update(ctx context.Context, product Product) error {
	if product.ID <= 0 {
		return fmt.Errorf("%w: invalid product ID", shared.ErrValidation)
	}
	product = normalize(product)
	if err := s.validate(product); err != nil {
		return err
	}
	return s.repo.Update(ctx, product)
}

// ReplaceImage overwrites the thumbnail of an existing product.
func (s *Service) ReplaceImage(ctx context.Context, id int64, img image.Image) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.images.Save(id, img)
}

// Delete removes the product row and then its thumbnail.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid product ID", shared.ErrValidation)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	return s.images.Remove(id)
}

func (s *Service) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

func normalize(p Product) Product {
	p.Name = strings.TrimSpace(p.Name)
	p.Description = strings.TrimSpace(p.Description)
	p.Price = p.Price.Round(2)
	return p
}
