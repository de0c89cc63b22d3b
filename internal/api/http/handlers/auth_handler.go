package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/bookline/reservation-service/internal/api/dto"
	"github.com/bookline/reservation-service/internal/service"
	apperrors "github.com/bookline/reservation-service/pkg/util"
)

// AuthHandler exposes the session gate.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Login POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("email and password required", nil)
	}

	result, err := h.auth.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.LoginResponse{
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt,
		Name:      result.User.Name,
		Email:     result.User.Email,
		Role:      result.User.Role.DisplayName(),
	}})
}

// Validate GET /auth/validate.
func (h *AuthHandler) Validate(c *fiber.Ctx) error {
	token := c.Query("token")
	if token == "" {
		authHeader := c.Get("Authorization")
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			token = parts[1]
		}
	}
	return c.JSON(fiber.Map{"data": dto.ValidateResponse{Valid: h.auth.Validate(token)}})
}
