package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/bookline/reservation-service/internal/domain"
	"github.com/bookline/reservation-service/internal/events"
	"github.com/bookline/reservation-service/internal/repository"
	apperrors "github.com/bookline/reservation-service/pkg/util"
)

// ReservationService owns reservation creation, status transitions and the
// derived read projection.
type ReservationService struct {
	reservations repository.ReservationRepository
	users        repository.UserRepository
	catalog      repository.ServiceRepository
	dispatcher   events.Dispatcher
	linkBaseURL  string
}

// ReservationDependencies bundles collaborators for the lifecycle engine.
type ReservationDependencies struct {
	ReservationRepo repository.ReservationRepository
	UserRepo        repository.UserRepository
	ServiceRepo     repository.ServiceRepository
	Dispatcher      events.Dispatcher
	LinkBaseURL     string
}

// RequesterContact identifies the person a booking is made for.
type RequesterContact struct {
	Name  string
	Phone string
	Email string
}

// ReservationCreateInput describes a booking request.
type ReservationCreateInput struct {
	Contact   RequesterContact
	ServiceID string
	Date      time.Time
	StartTime string
	Notes     *string
}

// ManagerView is the flattened manager block inside a reservation view.
type ManagerView struct {
	ID    string
	Name  string
	Email string
	Role  string
}

// ReservationView is the denormalized read projection of a reservation plus
// the current data of its related entities. It is recomputed on every call,
// never stored.
type ReservationView struct {
	ID             string
	RequesterName  string
	RequesterPhone string
	RequesterEmail string
	ServiceName    string
	Date           time.Time
	StartTime      string
	Status         domain.ReservationStatus
	Notes          *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
	Manager        *ManagerView
}

// NewReservationService constructs the engine.
func NewReservationService(deps ReservationDependencies) *ReservationService {
	base := strings.TrimRight(deps.LinkBaseURL, "/")
	if base == "" {
		base = "https://wa.me"
	}
	return &ReservationService{
		reservations: deps.ReservationRepo,
		users:        deps.UserRepo,
		catalog:      deps.ServiceRepo,
		dispatcher:   deps.Dispatcher,
		linkBaseURL:  base,
	}
}

// ResolveOrCreateRequester looks up a directory entry by email, creating a
// CLIENT entry without credential when absent. An existing entry is reused
// as-is; the stored identity wins over the submitted name/phone.
func (s *ReservationService) ResolveOrCreateRequester(ctx context.Context, contact RequesterContact) (*domain.User, error) {
	if err := validateContact(contact); err != nil {
		return nil, err
	}

	existing, err := s.users.GetByEmail(ctx, contact.Email)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	requester := &domain.User{
		Name:   contact.Name,
		Phone:  contact.Phone,
		Email:  contact.Email,
		Role:   domain.RoleClient,
		Active: true,
	}
	if err := s.users.Create(ctx, requester); err != nil {
		// two concurrent bookings with the same new email can both observe
		// "absent"; the unique constraint is the backstop
		if isUniqueViolation(err) {
			return nil, apperrors.NewConflict("email already registered", map[string]any{"email": contact.Email})
		}
		return nil, err
	}
	return requester, nil
}

// Create persists a new Pending reservation for the given contact and service.
func (s *ReservationService) Create(ctx context.Context, input ReservationCreateInput) (*domain.Reservation, error) {
	if input.ServiceID == "" {
		return nil, apperrors.NewValidationError("service_id required", nil)
	}
	if input.Date.IsZero() {
		return nil, apperrors.NewValidationError("date required", nil)
	}
	if _, err := time.Parse("15:04", input.StartTime); err != nil {
		return nil, apperrors.NewValidationError("time must be HH:MM", nil)
	}

	requester, err := s.ResolveOrCreateRequester(ctx, input.Contact)
	if err != nil {
		return nil, err
	}

	// inactive services remain bookable; only a missing id fails
	if _, err := s.catalog.GetByID(ctx, input.ServiceID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("service", map[string]any{"service_id": input.ServiceID})
		}
		return nil, err
	}

	reservation := &domain.Reservation{
		RequesterID: requester.ID,
		ServiceID:   input.ServiceID,
		Date:        input.Date,
		StartTime:   input.StartTime,
		Status:      domain.ReservationStatusPending,
		Notes:       input.Notes,
	}
	if err := s.reservations.Create(ctx, reservation); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:          events.EventReservationCreated,
		ReservationID: reservation.ID,
		Payload: events.ReservationCreatedPayload{
			RequesterID: reservation.RequesterID,
			ServiceID:   reservation.ServiceID,
			Date:        reservation.Date.Format("2006-01-02"),
			StartTime:   reservation.StartTime,
		},
	})
	return reservation, nil
}

// Transition sets a new status and optionally attaches the manager resolved
// by email, overwriting any previously attached manager. Any member of the
// status enumeration is accepted regardless of the current state.
func (s *ReservationService) Transition(ctx context.Context, id string, newStatus domain.ReservationStatus, managerEmail *string) (*domain.Reservation, error) {
	if !newStatus.Valid() {
		return nil, apperrors.NewValidationError("unknown status", map[string]any{"status": string(newStatus)})
	}

	reservation, err := s.reservations.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("reservation", map[string]any{"reservation_id": id})
		}
		return nil, err
	}

	if managerEmail != nil {
		manager, err := s.users.GetByEmail(ctx, *managerEmail)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, apperrors.NewNotFound("manager", map[string]any{"email": *managerEmail})
			}
			return nil, err
		}
		reservation.ManagerID = &manager.ID
	}

	oldStatus := reservation.Status
	reservation.Status = newStatus
	if err := s.reservations.Update(ctx, reservation); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:          events.EventReservationStatusChanged,
		ReservationID: reservation.ID,
		Payload: events.ReservationStatusChangedPayload{
			OldStatus: oldStatus,
			NewStatus: newStatus,
			ManagerID: reservation.ManagerID,
		},
	})
	return reservation, nil
}

// Confirm transitions a reservation to Confirmed.
func (s *ReservationService) Confirm(ctx context.Context, id string, managerEmail *string) (*domain.Reservation, error) {
	return s.Transition(ctx, id, domain.ReservationStatusConfirmed, managerEmail)
}

// Reject transitions a reservation to Rejected.
func (s *ReservationService) Reject(ctx context.Context, id string, managerEmail *string) (*domain.Reservation, error) {
	return s.Transition(ctx, id, domain.ReservationStatusRejected, managerEmail)
}

// Get fetches a single reservation.
func (s *ReservationService) Get(ctx context.Context, id string) (*domain.Reservation, error) {
	reservation, err := s.reservations.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("reservation", map[string]any{"reservation_id": id})
		}
		return nil, err
	}
	return reservation, nil
}

// List returns all reservations ordered by date descending, then time descending.
func (s *ReservationService) List(ctx context.Context) ([]domain.Reservation, error) {
	return s.reservations.ListAll(ctx)
}

// ListByStatus returns reservations whose status matches exactly.
func (s *ReservationService) ListByStatus(ctx context.Context, status domain.ReservationStatus) ([]domain.Reservation, error) {
	return s.reservations.ListByStatus(ctx, status)
}

// ListByDate returns reservations on the given calendar date.
func (s *ReservationService) ListByDate(ctx context.Context, date time.Time) ([]domain.Reservation, error) {
	return s.reservations.ListByDate(ctx, date)
}

// BuildView flattens a reservation with the current requester, service and
// manager data. Edits to the related entities are reflected immediately in
// any newly produced view, also for old reservations.
func (s *ReservationService) BuildView(ctx context.Context, reservation *domain.Reservation) (*ReservationView, error) {
	requester, err := s.users.GetByID(ctx, reservation.RequesterID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("requester", map[string]any{"user_id": reservation.RequesterID})
		}
		return nil, err
	}
	catalogEntry, err := s.catalog.GetByID(ctx, reservation.ServiceID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("service", map[string]any{"service_id": reservation.ServiceID})
		}
		return nil, err
	}

	view := &ReservationView{
		ID:             reservation.ID,
		RequesterName:  requester.Name,
		RequesterPhone: requester.Phone,
		RequesterEmail: requester.Email,
		ServiceName:    catalogEntry.Name,
		Date:           reservation.Date,
		StartTime:      reservation.StartTime,
		Status:         reservation.Status,
		Notes:          reservation.Notes,
		CreatedAt:      reservation.CreatedAt,
		UpdatedAt:      reservation.UpdatedAt,
	}

	if reservation.ManagerID != nil {
		manager, err := s.users.GetByID(ctx, *reservation.ManagerID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, apperrors.NewNotFound("manager", map[string]any{"user_id": *reservation.ManagerID})
			}
			return nil, err
		}
		view.Manager = &ManagerView{
			ID:    manager.ID,
			Name:  manager.Name,
			Email: manager.Email,
			Role:  manager.Role.DisplayName(),
		}
	}
	return view, nil
}

// NotificationLink composes the WhatsApp deep link carrying the booking
// confirmation message for the requester's phone number.
func (s *ReservationService) NotificationLink(ctx context.Context, id string) (string, error) {
	reservation, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}
	view, err := s.BuildView(ctx, reservation)
	if err != nil {
		return "", err
	}

	message := fmt.Sprintf("Hello %s! Your booking for %s on %s at %s was %s ✅",
		view.RequesterName,
		view.ServiceName,
		view.Date.Format("2006-01-02"),
		view.StartTime,
		strings.ToUpper(string(view.Status)),
	)
	return s.linkBaseURL + "/" + phoneDigits(view.RequesterPhone) + "?text=" + url.QueryEscape(message), nil
}

func validateContact(contact RequesterContact) error {
	name := strings.TrimSpace(contact.Name)
	if name == "" || len(name) > 100 {
		return apperrors.NewValidationError("name required, at most 100 characters", nil)
	}
	phone := strings.TrimSpace(contact.Phone)
	if phone == "" || len(phone) > 20 {
		return apperrors.NewValidationError("phone required, at most 20 characters", nil)
	}
	email := strings.TrimSpace(contact.Email)
	if email == "" || len(email) > 100 {
		return apperrors.NewValidationError("email required, at most 100 characters", nil)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return apperrors.NewValidationError("email must be a valid address", nil)
	}
	return nil
}

func phoneDigits(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func (s *ReservationService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
