package handlers

import (
	"Pantry-Ledger/domain"
	"Pantry-Ledger/internal/api/presenters"
	"Pantry-Ledger/pkg/analytics"

	"github.com/gofiber/fiber/v2"
)

type (
	AnalyticsHandler interface {
		GetSummary(c *fiber.Ctx) error
	}

	analyticsHandler struct {
		analyticsService analytics.AnalyticsService
	}
)

func NewAnalyticsHandler(analyticsService analytics.AnalyticsService) AnalyticsHandler {
	return &analyticsHandler{analyticsService: analyticsService}
}

func (h *analyticsHandler) GetSummary(c *fiber.Ctx) error {
	ownerID := c.Locals("owner_id").(string)
	rangeKind := c.Query("range", domain.RangeDay)

	summary, err := h.analyticsService.Summary(c.Context(), ownerID, rangeKind)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetAnalytics, err)
	}

	return presenters.SuccessResponse(c, summary, fiber.StatusOK, domain.MessageSuccessGetAnalytics)
}
