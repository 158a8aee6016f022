package categories

import (
	"fmt"
	"strings"

	"github.com/storefront-admin/storefront-admin/internal/shared"
)

func (s *Service) validate(c Category) error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("%w: category name is required", shared.ErrValidation)
	}
	if strings.TrimSpace(c.Description) == "" {
		return fmt.Errorf("%w: category description is required", shared.ErrValidation)
	}
	return nil
}
