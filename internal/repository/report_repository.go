package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bookline/reservation-service/internal/domain"
)

// ServiceUsage pairs a catalog entry name with its booking count.
type ServiceUsage struct {
	ServiceName string
	Count       int
}

// MonthlyCount pairs a month number (1..12) with its confirmed booking count.
type MonthlyCount struct {
	Month int
	Count int
}

// ReportRepository provides read-only statistics over the reservation and
// catalog stores.
type ReportRepository interface {
	CountAll(ctx context.Context) (int, error)
	CountByStatus(ctx context.Context, status domain.ReservationStatus) (int, error)
	CountActiveOnDate(ctx context.Context, date time.Time) (int, error)
	ServiceUsage(ctx context.Context) ([]ServiceUsage, error)
	MonthlyConfirmed(ctx context.Context, year int) ([]MonthlyCount, error)
}

type reportRepository struct {
	pool *pgxpool.Pool
}

// NewReportRepository instantiates the repository.
func NewReportRepository(pool *pgxpool.Pool) ReportRepository {
	return &reportRepository{pool: pool}
}

func (r *reportRepository) CountAll(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM reservations`).Scan(&count)
	return count, err
}

func (r *reportRepository) CountByStatus(ctx context.Context, status domain.ReservationStatus) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM reservations WHERE status=$1`, status).Scan(&count)
	return count, err
}

func (r *reportRepository) CountActiveOnDate(ctx context.Context, date time.Time) (int, error) {
	const query = `
        SELECT COUNT(*) FROM reservations
        WHERE reservation_date=$1 AND status IN ($2,$3)`
	var count int
	err := r.pool.QueryRow(ctx, query, date,
		domain.ReservationStatusConfirmed, domain.ReservationStatusPending).Scan(&count)
	return count, err
}

func (r *reportRepository) ServiceUsage(ctx context.Context) ([]ServiceUsage, error) {
	const query = `
        SELECT s.name, COUNT(r.id) AS bookings
        FROM services s
        LEFT JOIN reservations r ON r.service_id = s.id
        GROUP BY s.id, s.name
        ORDER BY bookings DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []ServiceUsage
	for rows.Next() {
		var usage ServiceUsage
		if err := rows.Scan(&usage.ServiceName, &usage.Count); err != nil {
			return nil, err
		}
		result = append(result, usage)
	}
	return result, rows.Err()
}

func (r *reportRepository) MonthlyConfirmed(ctx context.Context, year int) ([]MonthlyCount, error) {
	const query = `
        SELECT EXTRACT(MONTH FROM reservation_date)::int AS month, COUNT(*)::int AS bookings
        FROM reservations
        WHERE status=$1 AND EXTRACT(YEAR FROM reservation_date)=$2
        GROUP BY month
        ORDER BY month`

	rows, err := r.pool.Query(ctx, query, domain.ReservationStatusConfirmed, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []MonthlyCount
	for rows.Next() {
		var entry MonthlyCount
		if err := rows.Scan(&entry.Month, &entry.Count); err != nil {
			return nil, err
		}
		result = append(result, entry)
	}
	return result, rows.Err()
}
