package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/bookline/reservation-service/internal/api/dto"
	"github.com/bookline/reservation-service/internal/domain"
	"github.com/bookline/reservation-service/internal/service"
	apperrors "github.com/bookline/reservation-service/pkg/util"
)

// ServicesHandler manages catalog endpoints.
type ServicesHandler struct {
	catalog *service.CatalogService
}

// NewServicesHandler constructs handler.
func NewServicesHandler(catalogService *service.CatalogService) *ServicesHandler {
	return &ServicesHandler{catalog: catalogService}
}

// ListActive GET /services/active.
func (h *ServicesHandler) ListActive(c *fiber.Ctx) error {
	entries, err := h.catalog.ListActive(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": serviceResponses(entries)})
}

// ListAll GET /services.
func (h *ServicesHandler) ListAll(c *fiber.Ctx) error {
	entries, err := h.catalog.ListAll(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": serviceResponses(entries)})
}

// Get GET /services/:id.
func (h *ServicesHandler) Get(c *fiber.Ctx) error {
	entry, err := h.catalog.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": serviceResponse(entry)})
}

// Create POST /services.
func (h *ServicesHandler) Create(c *fiber.Ctx) error {
	input, err := parseServiceRequest(c)
	if err != nil {
		return err
	}
	entry, err := h.catalog.Create(c.Context(), input)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": serviceResponse(entry)})
}

// Update PUT /services/:id.
func (h *ServicesHandler) Update(c *fiber.Ctx) error {
	input, err := parseServiceRequest(c)
	if err != nil {
		return err
	}
	entry, err := h.catalog.Update(c.Context(), c.Params("id"), input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": serviceResponse(entry)})
}

// Delete DELETE /services/:id.
func (h *ServicesHandler) Delete(c *fiber.Ctx) error {
	if err := h.catalog.Delete(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func parseServiceRequest(c *fiber.Ctx) (service.ServiceInput, error) {
	var req dto.ServiceRequest
	if err := c.BodyParser(&req); err != nil {
		return service.ServiceInput{}, apperrors.NewValidationError("invalid payload", nil)
	}
	return service.ServiceInput{
		Name:            req.Name,
		Price:           req.Price,
		Description:     req.Description,
		DurationMinutes: req.DurationMinutes,
		Active:          req.Active,
	}, nil
}

func serviceResponses(entries []domain.Service) []dto.ServiceResponse {
	items := make([]dto.ServiceResponse, 0, len(entries))
	for i := range entries {
		items = append(items, serviceResponse(&entries[i]))
	}
	return items
}

func serviceResponse(entry *domain.Service) dto.ServiceResponse {
	return dto.ServiceResponse{
		ID:              entry.ID,
		Name:            entry.Name,
		Price:           entry.Price,
		Description:     entry.Description,
		DurationMinutes: entry.DurationMinutes,
		Active:          entry.Active,
		CreatedAt:       entry.CreatedAt,
	}
}
