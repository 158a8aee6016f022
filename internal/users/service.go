package users

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"

	"github.com/storefront-admin/storefront-admin/internal/shared"
)

// RepositoryPort defines data access methods for users.
type RepositoryPort interface {
	Create(ctx context.Context, user User) (User, error)
	Get(ctx context.Context, id int64) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	List(ctx context.Context) ([]User, error)
	Update(ctx context.Context, user User) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int, error)
	Search(ctx context.Context, params shared.SearchParams) ([]User, error)
	CountSearch(ctx context.Context, term string) (int, error)
}

var fieldValidator = validator.New()

const (
	// MinPasswordLength is the shortest password accepted on create or update.
	MinPasswordLength = 6
	// MaxPasswordBytes is the bcrypt input limit. It counts bytes, so
	// multibyte passwords hit it with fewer characters.
	MaxPasswordBytes = 72
)

// Service handles user business logic.
type Service struct {
	repo RepositoryPort
	cost int
}

// NewService builds Service instance.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo, cost: bcrypt.DefaultCost}
}

// List returns all users.
func (s *Service) List(ctx context.Context) ([]User, error) {
	return s.repo.List(ctx)
}

// Search matches the term against name or email.
func (s *Service) Search(ctx context.Context, params shared.SearchParams) ([]User, int, error) {
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

func (s *Service) Get(ctx context.Context, id int64) (User, error) {
	if id <= 0 {
		return User{}, fmt.Errorf("%w: invalid user ID", shared.ErrValidation)
	}
	return s.repo.Get(ctx, id)
}

// GetByEmail normalizes email before the lookup.
func (s *Service) GetByEmail(ctx context.Context, email string) (User, error) {
	return s.repo.GetByEmail(ctx, NormalizeEmail(email))
}

// Create stores a new account, hashing the password when one is given.
func (s *Service) Create(ctx context.Context, input NewUser) (User, error) {
	user := User{
		Name:    strings.TrimSpace(input.Name),
		Email:   NormalizeEmail(input.Email),
		Profile: normalizeProfile(input.Profile),
	}
	if err := validate(user); err != nil {
		return User{}, err
	}
	if input.Password != "" {
		hash, err := s.hash(input.Password)
		if err != nil {
			return User{}, err
		}
		user.PasswordHash = &hash
	}
	return s.repo.Create(ctx, user)
}

func (s *Service) Update(ctx context.Context, input UserUpdate) error {
	if input.ID <= 0 {
		return fmt.Errorf("%w: invalid user ID", shared.ErrValidation)
	}
	user := User{
		ID:      input.ID,
		Name:    strings.TrimSpace(input.Name),
		Email:   NormalizeEmail(input.Email),
		Profile: normalizeProfile(input.Profile),
	}
	if err := validate(user); err != nil {
		return err
	}
	if input.Password != "" {
		hash, err := s.hash(input.Password)
		if err != nil {
			return err
		}
		user.PasswordHash = &hash
	}
	return s.repo.Update(ctx, user)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid user ID", shared.ErrValidation)
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

func (s *Service) hash(password string) (string, error) {
	if len(password) < MinPasswordLength {
		return "", fmt.Errorf("%w: password shorter than %d characters", shared.ErrValidation, MinPasswordLength)
	}
	if len(password) > MaxPasswordBytes {
		return "", fmt.Errorf("%w: password longer than %d bytes", shared.ErrValidation, MaxPasswordBytes)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", fmt.Errorf("users: hash password: %w", err)
	}
	return string(hash), nil
}

func validate(u User) error {
	if u.Name == "" {
		return fmt.Errorf("%w: user name is required", shared.ErrValidation)
	}
	if err := fieldValidator.Var(u.Email, "required,email"); err != nil {
		return fmt.Errorf("%w: invalid email", shared.ErrValidation)
	}
	if !shared.ValidProfile(u.Profile) {
		return fmt.Errorf("%w: unknown profile %q", shared.ErrValidation, u.Profile)
	}
	return nil
}

// NormalizeEmail trims and lower-cases an address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func normalizeProfile(p string) string {
	p = strings.ToLower(strings.TrimSpace(p))
	if p == "" {
		return shared.ProfileCustomer
	}
	return p
}
