package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bookline/reservation-service/internal/domain"
)

// ServiceRepository handles persistence for catalog entries.
type ServiceRepository interface {
	Create(ctx context.Context, service *domain.Service) error
	Update(ctx context.Context, service *domain.Service) error
	GetByID(ctx context.Context, id string) (*domain.Service, error)
	ListAll(ctx context.Context) ([]domain.Service, error)
	ListActive(ctx context.Context) ([]domain.Service, error)
	Delete(ctx context.Context, id string) error
}

type serviceRepository struct {
	pool *pgxpool.Pool
}

// NewServiceRepository instantiates the repository.
func NewServiceRepository(pool *pgxpool.Pool) ServiceRepository {
	return &serviceRepository{pool: pool}
}

const serviceColumns = `id, name, price, description, duration_minutes, active_flag, created_at`

func (r *serviceRepository) Create(ctx context.Context, service *domain.Service) error {
	const query = `
        INSERT INTO services (name, price, description, duration_minutes, active_flag)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query,
		service.Name,
		service.Price,
		service.Description,
		service.DurationMinutes,
		service.Active,
	).Scan(&service.ID, &service.CreatedAt)
}

func (r *serviceRepository) Update(ctx context.Context, service *domain.Service) error {
	const query = `
        UPDATE services SET name=$1, price=$2, description=$3, duration_minutes=$4, active_flag=$5
        WHERE id=$6`

	cmd, err := r.pool.Exec(ctx, query,
		service.Name,
		service.Price,
		service.Description,
		service.DurationMinutes,
		service.Active,
		service.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *serviceRepository) GetByID(ctx context.Context, id string) (*domain.Service, error) {
	const query = `SELECT ` + serviceColumns + ` FROM services WHERE id=$1`

	var service domain.Service
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&service.ID,
		&service.Name,
		&service.Price,
		&service.Description,
		&service.DurationMinutes,
		&service.Active,
		&service.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &service, nil
}

func (r *serviceRepository) ListAll(ctx context.Context) ([]domain.Service, error) {
	const query = `SELECT ` + serviceColumns + ` FROM services ORDER BY name ASC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanServices(rows)
}

func (r *serviceRepository) ListActive(ctx context.Context) ([]domain.Service, error) {
	const query = `SELECT ` + serviceColumns + ` FROM services WHERE active_flag=TRUE ORDER BY name ASC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanServices(rows)
}

func (r *serviceRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM services WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanServices(rows pgx.Rows) ([]domain.Service, error) {
	var result []domain.Service
	for rows.Next() {
		var service domain.Service
		if err := rows.Scan(
			&service.ID,
			&service.Name,
			&service.Price,
			&service.Description,
			&service.DurationMinutes,
			&service.Active,
			&service.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, service)
	}
	return result, rows.Err()
}
