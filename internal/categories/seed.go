package categories

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
)

type seedEntry struct {
	Name        string `json:"nome"`
	Description string `json:"descricao"`
}

// LoadSeedFile reads a JSON array of {"nome", "descricao"} objects.
func LoadSeedFile(path string) ([]Category, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("categories: read seed file: %w", err)
	}
	var entries []seedEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("categories: decode seed file: %w", err)
	}
	out := make([]Category, 0, len(entries))
	for _, e := range entries {
		out = append(out, Category{Name: e.Name, Description: e.Description})
	}
	return out, nil
}

// Seed bulk inserts the given categories when the table is empty. Every
// entry is validated before anything is written.
func (s *Service) Seed(ctx context.Context, categories []Category) (int, error) {
	for i, c := range categories {
		c = normalize(c)
		if err := s.validate(c); err != nil {
			return 0, fmt.Errorf("seed entry %d: %w", i, err)
		}
		categories[i] = c
	}
	return s.repo.SeedIfEmpty(ctx, categories)
}

// SeedFromFile loads path and seeds it. See Seed.
func (s *Service) SeedFromFile(ctx context.Context, path string) (int, error) {
	categories, err := LoadSeedFile(path)
	if err != nil {
		return 0, err
	}
	return s.Seed(ctx, categories)
}
