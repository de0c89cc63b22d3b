package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bookline/reservation-service/internal/domain"
)

// ReservationRepository encapsulates reservation persistence.
type ReservationRepository interface {
	Create(ctx context.Context, reservation *domain.Reservation) error
	Update(ctx context.Context, reservation *domain.Reservation) error
	GetByID(ctx context.Context, id string) (*domain.Reservation, error)
	ListByStatus(ctx context.Context, status domain.ReservationStatus) ([]domain.Reservation, error)
	ListByDate(ctx context.Context, date time.Time) ([]domain.Reservation, error)
	ListAll(ctx context.Context) ([]domain.Reservation, error)
}

type reservationRepository struct {
	pool *pgxpool.Pool
}

// NewReservationRepository instantiates the repository.
func NewReservationRepository(pool *pgxpool.Pool) ReservationRepository {
	return &reservationRepository{pool: pool}
}

const reservationColumns = `id, requester_user_id, service_id, manager_user_id, reservation_date, start_time, status, notes, created_at, updated_at`

func (r *reservationRepository) Create(ctx context.Context, reservation *domain.Reservation) error {
	const query = `
        INSERT INTO reservations (requester_user_id, service_id, manager_user_id, reservation_date, start_time, status, notes)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		reservation.RequesterID,
		reservation.ServiceID,
		reservation.ManagerID,
		reservation.Date,
		reservation.StartTime,
		reservation.Status,
		reservation.Notes,
	).Scan(&reservation.ID, &reservation.CreatedAt, &reservation.UpdatedAt)
}

func (r *reservationRepository) Update(ctx context.Context, reservation *domain.Reservation) error {
	const query = `
        UPDATE reservations SET manager_user_id=$1, status=$2, notes=$3, updated_at=NOW()
        WHERE id=$4
        RETURNING updated_at`

	if err := r.pool.QueryRow(ctx, query,
		reservation.ManagerID,
		reservation.Status,
		reservation.Notes,
		reservation.ID,
	).Scan(&reservation.UpdatedAt); err != nil {
		return err
	}
	return nil
}

func (r *reservationRepository) GetByID(ctx context.Context, id string) (*domain.Reservation, error) {
	const query = `SELECT ` + reservationColumns + ` FROM reservations WHERE id=$1`

	var reservation domain.Reservation
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&reservation.ID,
		&reservation.RequesterID,
		&reservation.ServiceID,
		&reservation.ManagerID,
		&reservation.Date,
		&reservation.StartTime,
		&reservation.Status,
		&reservation.Notes,
		&reservation.CreatedAt,
		&reservation.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &reservation, nil
}

func (r *reservationRepository) ListByStatus(ctx context.Context, status domain.ReservationStatus) ([]domain.Reservation, error) {
	const query = `SELECT ` + reservationColumns + ` FROM reservations WHERE status=$1`
	rows, err := r.pool.Query(ctx, query, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanReservations(rows)
}

func (r *reservationRepository) ListByDate(ctx context.Context, date time.Time) ([]domain.Reservation, error) {
	const query = `SELECT ` + reservationColumns + ` FROM reservations WHERE reservation_date=$1`
	rows, err := r.pool.Query(ctx, query, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanReservations(rows)
}

func (r *reservationRepository) ListAll(ctx context.Context) ([]domain.Reservation, error) {
	const query = `SELECT ` + reservationColumns + ` FROM reservations
        ORDER BY reservation_date DESC, start_time DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanReservations(rows)
}

func scanReservations(rows pgx.Rows) ([]domain.Reservation, error) {
	var result []domain.Reservation
	for rows.Next() {
		var reservation domain.Reservation
		if err := rows.Scan(
			&reservation.ID,
			&reservation.RequesterID,
			&reservation.ServiceID,
			&reservation.ManagerID,
			&reservation.Date,
			&reservation.StartTime,
			&reservation.Status,
			&reservation.Notes,
			&reservation.CreatedAt,
			&reservation.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, reservation)
	}
	return result, rows.Err()
}
