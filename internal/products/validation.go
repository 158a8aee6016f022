package products

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/storefront-admin/storefront-admin/internal/shared"
)

// Column bounds of produto: preco is NUMERIC(12,2), estoque is INTEGER.
var maxPrice = decimal.New(1, 10)

const maxStock = math.MaxInt32

func (s *Service) validate(p Product) error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: product name is required", shared.ErrValidation)
	}
	if strings.TrimSpace(p.Description) == "" {
		return fmt.Errorf("%w: product description is required", shared.ErrValidation)
	}
	if p.Price.IsNegative() {
		return fmt.Errorf("%w: price must not be negative", shared.ErrValidation)
	}
	if p.Price.GreaterThanOrEqual(maxPrice) {
		return fmt.Errorf("%w: price must be below %s", shared.ErrValidation, maxPrice)
	}
	if p.Stock < 0 {
		return fmt.Errorf("%w: stock must not be negative", shared.ErrValidation)
	}
	if p.Stock > maxStock {
		return fmt.Errorf("%w: stock must be at most %d", shared.ErrValidation, maxStock)
	}
	if p.CategoryID != nil && *p.CategoryID <= 0 {
		return fmt.Errorf("%w: invalid category ID", shared.ErrValidation)
	}
	return nil
}
