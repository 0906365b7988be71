package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/omercanga/cv-site/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

// UserService implements the admin panel's user management operations.
// Callers are expected to have passed the admin route policy already; the
// invariants enforced here (admins and active users cannot be deleted) are
// specific to these operations, not to the access-control layer.
type UserService struct {
	users      domain.UserRepository
	bcryptCost int
}

// NewUserService creates a new UserService.
func NewUserService(users domain.UserRepository, bcryptCost int) *UserService {
	return &UserService{users: users, bcryptCost: bcryptCost}
}

// List returns all users, newest first.
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

// Create adds a new user with an admin-chosen role.
func (s *UserService) Create(ctx context.Context, name, email, password string, role domain.Role) (*domain.User, error) {
	if name == "" || email == "" || password == "" {
		return nil, fmt.Errorf("%w: name, email, and password are required", domain.ErrInvalidInput)
	}
	if role == "" {
		role = domain.RoleUser
	}
	if !role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", domain.ErrInvalidInput, role)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		Active:       true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Delete removes a user. Admin accounts cannot be deleted, and active
// accounts must be deactivated first.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if user.Role == domain.RoleAdmin {
		return fmt.Errorf("%w: admin users cannot be deleted", domain.ErrInvalidInput)
	}
	if user.Active {
		return fmt.Errorf("%w: active users cannot be deleted, deactivate the account first", domain.ErrInvalidInput)
	}

	return s.users.Delete(ctx, id)
}

// SetRole changes a user's role.
func (s *UserService) SetRole(ctx context.Context, id int64, role domain.Role) error {
	if !role.Valid() {
		return fmt.Errorf("%w: unknown role %q", domain.ErrInvalidInput, role)
	}
	if _, err := s.users.GetByID(ctx, id); err != nil {
		return err
	}
	return s.users.UpdateRole(ctx, id, role)
}

// SetActive enables or disables a user account. Disabling takes effect on
// the account's next request, regardless of any still-unexpired tokens.
func (s *UserService) SetActive(ctx context.Context, id int64, active bool) error {
	if _, err := s.users.GetByID(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return err
	}
	return s.users.UpdateActive(ctx, id, active)
}
