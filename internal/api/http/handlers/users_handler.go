package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/bookline/reservation-service/internal/api/dto"
	"github.com/bookline/reservation-service/internal/domain"
	"github.com/bookline/reservation-service/internal/service"
	apperrors "github.com/bookline/reservation-service/pkg/util"
)

// UsersHandler manages roster endpoints.
type UsersHandler struct {
	users *service.UserService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(userService *service.UserService) *UsersHandler {
	return &UsersHandler{users: userService}
}

// List GET /users. Supports ?role= filtering.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	var (
		entries []service.UserWithStats
		err     error
	)
	if role := c.Query("role"); role != "" {
		entries, err = h.users.ListByRole(c.Context(), domain.UserRole(role))
	} else {
		entries, err = h.users.ListActive(c.Context())
	}
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": userResponses(entries)})
}

// ListStaff GET /users/staff.
func (h *UsersHandler) ListStaff(c *fiber.Ctx) error {
	entries, err := h.users.ListStaff(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": userResponses(entries)})
}

// Get GET /users/:id.
func (h *UsersHandler) Get(c *fiber.Ctx) error {
	user, err := h.users.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": userResponse(user, 0)})
}

// Create POST /users.
func (h *UsersHandler) Create(c *fiber.Ctx) error {
	input, err := parseUserRequest(c)
	if err != nil {
		return err
	}
	user, err := h.users.Create(c.Context(), input)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": userResponse(user, 0)})
}

// Update PUT /users/:id.
func (h *UsersHandler) Update(c *fiber.Ctx) error {
	input, err := parseUserRequest(c)
	if err != nil {
		return err
	}
	user, err := h.users.Update(c.Context(), c.Params("id"), input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": userResponse(user, 0)})
}

// Delete DELETE /users/:id. Soft delete: the entry is deactivated, not removed.
func (h *UsersHandler) Delete(c *fiber.Ctx) error {
	if err := h.users.Deactivate(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func parseUserRequest(c *fiber.Ctx) (service.UserInput, error) {
	var req dto.UserRequest
	if err := c.BodyParser(&req); err != nil {
		return service.UserInput{}, apperrors.NewValidationError("invalid payload", nil)
	}
	return service.UserInput{
		Name:       req.Name,
		Phone:      req.Phone,
		Email:      req.Email,
		Role:       req.Role,
		Password:   req.Password,
		Department: req.Department,
		Active:     req.Active,
	}, nil
}

func userResponses(entries []service.UserWithStats) []dto.UserResponse {
	items := make([]dto.UserResponse, 0, len(entries))
	for i := range entries {
		resp := userResponse(&entries[i].User, entries[i].ManagedReservations)
		items = append(items, resp)
	}
	return items
}

func userResponse(user *domain.User, managed int) dto.UserResponse {
	return dto.UserResponse{
		ID:                  user.ID,
		Name:                user.Name,
		Phone:               user.Phone,
		Email:               user.Email,
		Role:                user.Role,
		RoleLabel:           user.Role.DisplayName(),
		Department:          user.Department,
		Active:              user.Active,
		ManagedReservations: managed,
		CreatedAt:           user.CreatedAt,
		UpdatedAt:           user.UpdatedAt,
	}
}
