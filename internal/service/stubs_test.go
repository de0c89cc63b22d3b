package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/bookline/reservation-service/internal/domain"
	"github.com/bookline/reservation-service/internal/events"
)

func uniqueViolation() error {
	return &pgconn.PgError{Code: "23505", ConstraintName: "users_email_unique"}
}

// ---------------------------------------------------------------------------
// Deterministic clock shared by the in-memory stubs
// ---------------------------------------------------------------------------

type fakeClock struct {
	t time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) next() time.Time {
	c.t = c.t.Add(time.Second)
	return c.t
}

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	byID      map[string]*domain.User
	byEmail   map[string]*domain.User
	managed   map[string]int
	createErr error
	seq       int
	clock     *fakeClock
}

func newStubUserRepo(clock *fakeClock) *stubUserRepo {
	return &stubUserRepo{
		byID:    make(map[string]*domain.User),
		byEmail: make(map[string]*domain.User),
		managed: make(map[string]int),
		clock:   clock,
	}
}

func (r *stubUserRepo) put(user domain.User) {
	clone := user
	r.byID[user.ID] = &clone
	r.byEmail[user.Email] = &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) error {
	if r.createErr != nil {
		return r.createErr
	}
	if _, exists := r.byEmail[user.Email]; exists {
		return uniqueViolation()
	}
	r.seq++
	user.ID = fmt.Sprintf("user-%d", r.seq)
	now := r.clock.next()
	user.CreatedAt = now
	user.UpdatedAt = now
	r.put(*user)
	return nil
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) error {
	stored, ok := r.byID[user.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	if stored.Email != user.Email {
		if _, exists := r.byEmail[user.Email]; exists {
			return uniqueViolation()
		}
		delete(r.byEmail, stored.Email)
	}
	user.UpdatedAt = r.clock.next()
	r.put(*user)
	return nil
}

func (r *stubUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	user, ok := r.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *user
	return &clone, nil
}

func (r *stubUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	user, ok := r.byEmail[email]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *user
	return &clone, nil
}

func (r *stubUserRepo) ListActive(_ context.Context) ([]domain.User, error) {
	var result []domain.User
	for _, user := range r.byID {
		if user.Active {
			result = append(result, *user)
		}
	}
	sortUsersByName(result)
	return result, nil
}

func (r *stubUserRepo) ListByRole(_ context.Context, role domain.UserRole) ([]domain.User, error) {
	var result []domain.User
	for _, user := range r.byID {
		if user.Role == role {
			result = append(result, *user)
		}
	}
	sortUsersByName(result)
	return result, nil
}

func (r *stubUserRepo) ListStaff(_ context.Context) ([]domain.User, error) {
	var result []domain.User
	for _, user := range r.byID {
		if user.Active && user.Role.IsStaff() {
			result = append(result, *user)
		}
	}
	sortUsersByName(result)
	return result, nil
}

func (r *stubUserRepo) CountManagedReservations(_ context.Context, userID string) (int, error) {
	return r.managed[userID], nil
}

func sortUsersByName(users []domain.User) {
	sort.Slice(users, func(i, j int) bool { return users[i].Name < users[j].Name })
}

type stubServiceRepo struct {
	byID  map[string]*domain.Service
	seq   int
	clock *fakeClock
}

func newStubServiceRepo(clock *fakeClock) *stubServiceRepo {
	return &stubServiceRepo{byID: make(map[string]*domain.Service), clock: clock}
}

func (r *stubServiceRepo) put(entry domain.Service) {
	clone := entry
	r.byID[entry.ID] = &clone
}

func (r *stubServiceRepo) Create(_ context.Context, entry *domain.Service) error {
	r.seq++
	entry.ID = fmt.Sprintf("svc-%d", r.seq)
	entry.CreatedAt = r.clock.next()
	r.put(*entry)
	return nil
}

func (r *stubServiceRepo) Update(_ context.Context, entry *domain.Service) error {
	if _, ok := r.byID[entry.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.put(*entry)
	return nil
}

func (r *stubServiceRepo) GetByID(_ context.Context, id string) (*domain.Service, error) {
	entry, ok := r.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *entry
	return &clone, nil
}

func (r *stubServiceRepo) ListAll(_ context.Context) ([]domain.Service, error) {
	var result []domain.Service
	for _, entry := range r.byID {
		result = append(result, *entry)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (r *stubServiceRepo) ListActive(_ context.Context) ([]domain.Service, error) {
	all, _ := r.ListAll(context.Background())
	var result []domain.Service
	for _, entry := range all {
		if entry.Active {
			result = append(result, entry)
		}
	}
	return result, nil
}

func (r *stubServiceRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.byID, id)
	return nil
}

type stubReservationRepo struct {
	byID  map[string]*domain.Reservation
	seq   int
	clock *fakeClock
}

func newStubReservationRepo(clock *fakeClock) *stubReservationRepo {
	return &stubReservationRepo{byID: make(map[string]*domain.Reservation), clock: clock}
}

func (r *stubReservationRepo) Create(_ context.Context, reservation *domain.Reservation) error {
	r.seq++
	reservation.ID = fmt.Sprintf("res-%d", r.seq)
	now := r.clock.next()
	reservation.CreatedAt = now
	reservation.UpdatedAt = now
	clone := *reservation
	r.byID[reservation.ID] = &clone
	return nil
}

func (r *stubReservationRepo) Update(_ context.Context, reservation *domain.Reservation) error {
	if _, ok := r.byID[reservation.ID]; !ok {
		return pgx.ErrNoRows
	}
	reservation.UpdatedAt = r.clock.next()
	clone := *reservation
	r.byID[reservation.ID] = &clone
	return nil
}

func (r *stubReservationRepo) GetByID(_ context.Context, id string) (*domain.Reservation, error) {
	reservation, ok := r.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *reservation
	return &clone, nil
}

func (r *stubReservationRepo) ListByStatus(_ context.Context, status domain.ReservationStatus) ([]domain.Reservation, error) {
	var result []domain.Reservation
	for _, reservation := range r.byID {
		if reservation.Status == status {
			result = append(result, *reservation)
		}
	}
	return result, nil
}

func (r *stubReservationRepo) ListByDate(_ context.Context, date time.Time) ([]domain.Reservation, error) {
	var result []domain.Reservation
	for _, reservation := range r.byID {
		if reservation.Date.Equal(date) {
			result = append(result, *reservation)
		}
	}
	return result, nil
}

// ListAll mirrors the SQL ordering: date descending, then start time descending.
func (r *stubReservationRepo) ListAll(_ context.Context) ([]domain.Reservation, error) {
	var result []domain.Reservation
	for _, reservation := range r.byID {
		result = append(result, *reservation)
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].Date.Equal(result[j].Date) {
			return result[i].Date.After(result[j].Date)
		}
		return result[i].StartTime > result[j].StartTime
	})
	return result, nil
}

// ---------------------------------------------------------------------------
// Event capture
// ---------------------------------------------------------------------------

type recordingDispatcher struct {
	mu     sync.Mutex
	events []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (d *recordingDispatcher) byType(eventType events.EventType) []events.Event {
	d.mu.Lock()
	defer d.mu.Unlock()
	var result []events.Event
	for _, event := range d.events {
		if event.Type == eventType {
			result = append(result, event)
		}
	}
	return result
}
