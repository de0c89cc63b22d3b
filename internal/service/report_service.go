package service

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/bookline/reservation-service/internal/domain"
	"github.com/bookline/reservation-service/internal/repository"
)

const summaryCacheKey = "reports:summary"

// Cache is the small read-through cache used by the reporting aggregator.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

// ReportSummary aggregates reservation counts.
type ReportSummary struct {
	TotalReservations     int `json:"total_reservations"`
	PendingReservations   int `json:"pending_reservations"`
	ConfirmedReservations int `json:"confirmed_reservations"`
	RejectedReservations  int `json:"rejected_reservations"`
	ReservationsToday     int `json:"reservations_today"`
}

// ReportService computes read-only statistics over the reservation and
// catalog stores. The summary is cached for a short TTL; all other queries
// hit the store directly.
type ReportService struct {
	reports  repository.ReportRepository
	cache    Cache
	cacheTTL time.Duration
	logger   *zap.Logger
	now      func() time.Time
}

// NewReportService constructs the aggregator.
func NewReportService(reports repository.ReportRepository, cache Cache, cacheTTL time.Duration, logger *zap.Logger) *ReportService {
	return &ReportService{
		reports:  reports,
		cache:    cache,
		cacheTTL: cacheTTL,
		logger:   logger,
		now:      time.Now,
	}
}

// Summary returns the reservation counts, served from cache when warm.
func (s *ReportService) Summary(ctx context.Context) (*ReportSummary, error) {
	if s.cache != nil && s.cacheTTL > 0 {
		if cached, err := s.cache.Get(ctx, summaryCacheKey); err == nil && cached != "" {
			var summary ReportSummary
			if err := json.Unmarshal([]byte(cached), &summary); err == nil {
				return &summary, nil
			}
		}
	}

	summary, err := s.computeSummary(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil && s.cacheTTL > 0 {
		if payload, err := json.Marshal(summary); err == nil {
			if err := s.cache.Set(ctx, summaryCacheKey, string(payload), s.cacheTTL); err != nil && s.logger != nil {
				s.logger.Warn("summary cache write failed", zap.Error(err))
			}
		}
	}
	return summary, nil
}

// PopularServices returns bookings per catalog entry, most booked first.
func (s *ReportService) PopularServices(ctx context.Context) ([]repository.ServiceUsage, error) {
	return s.reports.ServiceUsage(ctx)
}

// MonthlyReservations returns confirmed booking counts per month of a year.
func (s *ReportService) MonthlyReservations(ctx context.Context, year int) ([]repository.MonthlyCount, error) {
	return s.reports.MonthlyConfirmed(ctx, year)
}

func (s *ReportService) computeSummary(ctx context.Context) (*ReportSummary, error) {
	total, err := s.reports.CountAll(ctx)
	if err != nil {
		return nil, err
	}
	pending, err := s.reports.CountByStatus(ctx, domain.ReservationStatusPending)
	if err != nil {
		return nil, err
	}
	confirmed, err := s.reports.CountByStatus(ctx, domain.ReservationStatusConfirmed)
	if err != nil {
		return nil, err
	}
	rejected, err := s.reports.CountByStatus(ctx, domain.ReservationStatusRejected)
	if err != nil {
		return nil, err
	}
	today, err := s.reports.CountActiveOnDate(ctx, s.now().Truncate(24*time.Hour))
	if err != nil {
		return nil, err
	}

	return &ReportSummary{
		TotalReservations:     total,
		PendingReservations:   pending,
		ConfirmedReservations: confirmed,
		RejectedReservations:  rejected,
		ReservationsToday:     today,
	}, nil
}
