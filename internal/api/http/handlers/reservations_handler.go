package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/bookline/reservation-service/internal/api/dto"
	"github.com/bookline/reservation-service/internal/domain"
	"github.com/bookline/reservation-service/internal/service"
	apperrors "github.com/bookline/reservation-service/pkg/util"
)

// ReservationsHandler manages booking endpoints.
type ReservationsHandler struct {
	service *service.ReservationService
}

// NewReservationsHandler constructs handler.
func NewReservationsHandler(reservationService *service.ReservationService) *ReservationsHandler {
	return &ReservationsHandler{service: reservationService}
}

// Create POST /reservations.
func (h *ReservationsHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateReservationRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return apperrors.NewValidationError("date must be YYYY-MM-DD", nil)
	}

	reservation, err := h.service.Create(c.Context(), service.ReservationCreateInput{
		Contact: service.RequesterContact{
			Name:  req.Name,
			Phone: req.Phone,
			Email: req.Email,
		},
		ServiceID: req.ServiceID,
		Date:      date,
		StartTime: req.Time,
		Notes:     req.Notes,
	})
	if err != nil {
		return err
	}
	return h.respondWithView(c, reservation, http.StatusCreated)
}

// List GET /reservations. Supports ?status= and ?date= filters.
func (h *ReservationsHandler) List(c *fiber.Ctx) error {
	var (
		reservations []domain.Reservation
		err          error
	)

	switch {
	case c.Query("status") != "":
		reservations, err = h.service.ListByStatus(c.Context(), domain.ReservationStatus(c.Query("status")))
	case c.Query("date") != "":
		date, parseErr := time.Parse("2006-01-02", c.Query("date"))
		if parseErr != nil {
			return apperrors.NewValidationError("date must be YYYY-MM-DD", nil)
		}
		reservations, err = h.service.ListByDate(c.Context(), date)
	default:
		reservations, err = h.service.List(c.Context())
	}
	if err != nil {
		return err
	}

	items := make([]dto.ReservationResponse, 0, len(reservations))
	for i := range reservations {
		view, err := h.service.BuildView(c.Context(), &reservations[i])
		if err != nil {
			return err
		}
		items = append(items, reservationResponse(view))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Get GET /reservations/:id.
func (h *ReservationsHandler) Get(c *fiber.Ctx) error {
	reservation, err := h.service.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return h.respondWithView(c, reservation, http.StatusOK)
}

// Confirm PUT /reservations/:id/confirm.
func (h *ReservationsHandler) Confirm(c *fiber.Ctx) error {
	managerEmail, err := parseManagerEmail(c)
	if err != nil {
		return err
	}
	reservation, err := h.service.Confirm(c.Context(), c.Params("id"), managerEmail)
	if err != nil {
		return err
	}
	return h.respondWithView(c, reservation, http.StatusOK)
}

// Reject PUT /reservations/:id/reject.
func (h *ReservationsHandler) Reject(c *fiber.Ctx) error {
	managerEmail, err := parseManagerEmail(c)
	if err != nil {
		return err
	}
	reservation, err := h.service.Reject(c.Context(), c.Params("id"), managerEmail)
	if err != nil {
		return err
	}
	return h.respondWithView(c, reservation, http.StatusOK)
}

// UpdateStatus PUT /reservations/:id/status.
func (h *ReservationsHandler) UpdateStatus(c *fiber.Ctx) error {
	var req dto.TransitionRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Status == "" {
		return apperrors.NewValidationError("status required", nil)
	}
	reservation, err := h.service.Transition(c.Context(), c.Params("id"), domain.ReservationStatus(req.Status), req.ManagerEmail)
	if err != nil {
		return err
	}
	return h.respondWithView(c, reservation, http.StatusOK)
}

// NotificationLink GET /reservations/:id/whatsapp-link.
func (h *ReservationsHandler) NotificationLink(c *fiber.Ctx) error {
	link, err := h.service.NotificationLink(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NotificationLinkResponse{Link: link}})
}

func parseManagerEmail(c *fiber.Ctx) (*string, error) {
	var req dto.TransitionRequest
	if len(c.Body()) == 0 {
		return nil, nil
	}
	if err := c.BodyParser(&req); err != nil {
		return nil, apperrors.NewValidationError("invalid payload", nil)
	}
	return req.ManagerEmail, nil
}

func (h *ReservationsHandler) respondWithView(c *fiber.Ctx, reservation *domain.Reservation, status int) error {
	view, err := h.service.BuildView(c.Context(), reservation)
	if err != nil {
		return err
	}
	return c.Status(status).JSON(fiber.Map{"data": reservationResponse(view)})
}

func reservationResponse(view *service.ReservationView) dto.ReservationResponse {
	resp := dto.ReservationResponse{
		ID:          view.ID,
		ClientName:  view.RequesterName,
		ClientPhone: view.RequesterPhone,
		ClientEmail: view.RequesterEmail,
		ServiceName: view.ServiceName,
		Date:        view.Date.Format("2006-01-02"),
		Time:        view.StartTime,
		Status:      view.Status,
		Notes:       view.Notes,
		CreatedAt:   view.CreatedAt,
		UpdatedAt:   view.UpdatedAt,
	}
	if view.Manager != nil {
		resp.Manager = &dto.ManagerResponse{
			ID:    view.Manager.ID,
			Name:  view.Manager.Name,
			Email: view.Manager.Email,
			Role:  view.Manager.Role,
		}
	}
	return resp
}
