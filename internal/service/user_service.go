package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/bookline/reservation-service/internal/auth"
	"github.com/bookline/reservation-service/internal/domain"
	"github.com/bookline/reservation-service/internal/repository"
	apperrors "github.com/bookline/reservation-service/pkg/util"
)

// UserService manages the directory roster.
type UserService struct {
	users      repository.UserRepository
	bcryptCost int
}

// UserInput describes a directory create/update payload.
type UserInput struct {
	Name       string
	Phone      string
	Email      string
	Role       domain.UserRole
	Password   *string
	Department *string
	Active     *bool
}

// UserWithStats pairs a directory entry with its managed reservation count.
type UserWithStats struct {
	User                domain.User
	ManagedReservations int
}

// NewUserService constructs the service.
func NewUserService(users repository.UserRepository, bcryptCost int) *UserService {
	return &UserService{users: users, bcryptCost: bcryptCost}
}

// ListActive returns active directory entries ordered by name, each with its
// managed reservation count.
func (s *UserService) ListActive(ctx context.Context) ([]UserWithStats, error) {
	entries, err := s.users.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	return s.withStats(ctx, entries)
}

// ListByRole returns directory entries holding the given role.
func (s *UserService) ListByRole(ctx context.Context, role domain.UserRole) ([]UserWithStats, error) {
	if !role.Valid() {
		return nil, apperrors.NewValidationError("unknown role", map[string]any{"role": string(role)})
	}
	entries, err := s.users.ListByRole(ctx, role)
	if err != nil {
		return nil, err
	}
	return s.withStats(ctx, entries)
}

// ListStaff returns active non-client entries ordered by name.
func (s *UserService) ListStaff(ctx context.Context) ([]UserWithStats, error) {
	entries, err := s.users.ListStaff(ctx)
	if err != nil {
		return nil, err
	}
	return s.withStats(ctx, entries)
}

// Get fetches one directory entry.
func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", map[string]any{"user_id": id})
		}
		return nil, err
	}
	return user, nil
}

// Create adds a directory entry, hashing the optional credential.
func (s *UserService) Create(ctx context.Context, input UserInput) (*domain.User, error) {
	if err := validateUserInput(input); err != nil {
		return nil, err
	}

	user := &domain.User{
		Name:       strings.TrimSpace(input.Name),
		Phone:      strings.TrimSpace(input.Phone),
		Email:      strings.TrimSpace(input.Email),
		Role:       input.Role,
		Department: input.Department,
		Active:     true,
	}
	if user.Role == "" {
		user.Role = domain.RoleClient
	}
	if input.Active != nil {
		user.Active = *input.Active
	}
	if input.Password != nil && *input.Password != "" {
		hash, err := auth.HashPassword(*input.Password, s.bcryptCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = &hash
	}

	if err := s.users.Create(ctx, user); err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.NewConflict("email already registered", map[string]any{"email": user.Email})
		}
		return nil, err
	}
	return user, nil
}

// Update edits a directory entry, re-checking email uniqueness on change.
func (s *UserService) Update(ctx context.Context, id string, input UserInput) (*domain.User, error) {
	if err := validateUserInput(input); err != nil {
		return nil, err
	}

	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	user.Name = strings.TrimSpace(input.Name)
	user.Phone = strings.TrimSpace(input.Phone)
	user.Email = strings.TrimSpace(input.Email)
	if input.Role != "" {
		user.Role = input.Role
	}
	user.Department = input.Department
	if input.Active != nil {
		user.Active = *input.Active
	}
	if input.Password != nil && *input.Password != "" {
		hash, err := auth.HashPassword(*input.Password, s.bcryptCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = &hash
	}

	if err := s.users.Update(ctx, user); err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.NewConflict("email already registered", map[string]any{"email": user.Email})
		}
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", map[string]any{"user_id": id})
		}
		return nil, err
	}
	return user, nil
}

// Deactivate soft-deletes a directory entry. The row is never removed; only
// the active flag is cleared so reservations keep resolving their references.
func (s *UserService) Deactivate(ctx context.Context, id string) error {
	user, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	user.Active = false
	if err := s.users.Update(ctx, user); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("user", map[string]any{"user_id": id})
		}
		return err
	}
	return nil
}

func (s *UserService) withStats(ctx context.Context, entries []domain.User) ([]UserWithStats, error) {
	result := make([]UserWithStats, 0, len(entries))
	for _, entry := range entries {
		count, err := s.users.CountManagedReservations(ctx, entry.ID)
		if err != nil {
			return nil, err
		}
		result = append(result, UserWithStats{User: entry, ManagedReservations: count})
	}
	return result, nil
}

func validateUserInput(input UserInput) error {
	if err := validateContact(RequesterContact{Name: input.Name, Phone: input.Phone, Email: input.Email}); err != nil {
		return err
	}
	if input.Role != "" && !input.Role.Valid() {
		return apperrors.NewValidationError("unknown role", map[string]any{"role": string(input.Role)})
	}
	if input.Department != nil && len(*input.Department) > 100 {
		return apperrors.NewValidationError("department at most 100 characters", nil)
	}
	return nil
}
