package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/bookline/reservation-service/internal/domain"
	"github.com/bookline/reservation-service/internal/repository"
	apperrors "github.com/bookline/reservation-service/pkg/util"
)

// CatalogService manages the bookable service catalog.
type CatalogService struct {
	catalog repository.ServiceRepository
}

// ServiceInput describes a catalog create/update payload.
type ServiceInput struct {
	Name            string
	Price           int
	Description     *string
	DurationMinutes int
	Active          *bool
}

// NewCatalogService constructs the service.
func NewCatalogService(catalog repository.ServiceRepository) *CatalogService {
	return &CatalogService{catalog: catalog}
}

// ListActive returns active catalog entries ordered by name.
func (s *CatalogService) ListActive(ctx context.Context) ([]domain.Service, error) {
	return s.catalog.ListActive(ctx)
}

// ListAll returns every catalog entry.
func (s *CatalogService) ListAll(ctx context.Context) ([]domain.Service, error) {
	return s.catalog.ListAll(ctx)
}

// Get fetches one catalog entry.
func (s *CatalogService) Get(ctx context.Context, id string) (*domain.Service, error) {
	entry, err := s.catalog.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("service", map[string]any{"service_id": id})
		}
		return nil, err
	}
	return entry, nil
}

// Create adds a catalog entry.
func (s *CatalogService) Create(ctx context.Context, input ServiceInput) (*domain.Service, error) {
	if err := validateServiceInput(input); err != nil {
		return nil, err
	}

	entry := &domain.Service{
		Name:            strings.TrimSpace(input.Name),
		Price:           input.Price,
		Description:     input.Description,
		DurationMinutes: input.DurationMinutes,
		Active:          true,
	}
	if entry.DurationMinutes == 0 {
		entry.DurationMinutes = 60
	}
	if input.Active != nil {
		entry.Active = *input.Active
	}
	if err := s.catalog.Create(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// Update edits an existing catalog entry. Edits do not retroactively alter
// past reservations; their projections pick up the new data at read time.
func (s *CatalogService) Update(ctx context.Context, id string, input ServiceInput) (*domain.Service, error) {
	if err := validateServiceInput(input); err != nil {
		return nil, err
	}

	entry, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	entry.Name = strings.TrimSpace(input.Name)
	entry.Price = input.Price
	entry.Description = input.Description
	if input.DurationMinutes > 0 {
		entry.DurationMinutes = input.DurationMinutes
	}
	if input.Active != nil {
		entry.Active = *input.Active
	}
	if err := s.catalog.Update(ctx, entry); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("service", map[string]any{"service_id": id})
		}
		return nil, err
	}
	return entry, nil
}

// Delete removes a catalog entry.
func (s *CatalogService) Delete(ctx context.Context, id string) error {
	if err := s.catalog.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("service", map[string]any{"service_id": id})
		}
		return err
	}
	return nil
}

func validateServiceInput(input ServiceInput) error {
	name := strings.TrimSpace(input.Name)
	if name == "" || len(name) > 100 {
		return apperrors.NewValidationError("name required, at most 100 characters", nil)
	}
	if input.Price < 0 {
		return apperrors.NewValidationError("price must be zero or positive", nil)
	}
	if input.Description != nil && len(*input.Description) > 500 {
		return apperrors.NewValidationError("description at most 500 characters", nil)
	}
	if input.DurationMinutes < 0 || input.DurationMinutes > 480 {
		return apperrors.NewValidationError("duration must be between 1 and 480 minutes", nil)
	}
	return nil
}
