package handlers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/bookline/reservation-service/internal/service"
	apperrors "github.com/bookline/reservation-service/pkg/util"
)

// ReportsHandler exposes the reporting aggregator.
type ReportsHandler struct {
	reports *service.ReportService
}

// NewReportsHandler constructs handler.
func NewReportsHandler(reportService *service.ReportService) *ReportsHandler {
	return &ReportsHandler{reports: reportService}
}

// Summary GET /reports/summary.
func (h *ReportsHandler) Summary(c *fiber.Ctx) error {
	summary, err := h.reports.Summary(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": summary})
}

// PopularServices GET /reports/popular-services.
func (h *ReportsHandler) PopularServices(c *fiber.Ctx) error {
	usage, err := h.reports.PopularServices(c.Context())
	if err != nil {
		return err
	}
	items := make([]fiber.Map, 0, len(usage))
	for _, entry := range usage {
		items = append(items, fiber.Map{
			"service_name": entry.ServiceName,
			"bookings":     entry.Count,
		})
	}
	return c.JSON(fiber.Map{"data": items})
}

// Monthly GET /reports/monthly?year=.
func (h *ReportsHandler) Monthly(c *fiber.Ctx) error {
	year := time.Now().Year()
	if raw := c.Query("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return apperrors.NewValidationError("year must be numeric", nil)
		}
		year = parsed
	}
	counts, err := h.reports.MonthlyReservations(c.Context(), year)
	if err != nil {
		return err
	}
	items := make([]fiber.Map, 0, len(counts))
	for _, entry := range counts {
		items = append(items, fiber.Map{
			"month":    entry.Month,
			"bookings": entry.Count,
		})
	}
	return c.JSON(fiber.Map{"data": items})
}
