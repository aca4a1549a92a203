package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"rankwatch/internal/middleware"
	"rankwatch/internal/service/dashboard"
)

type DashboardHandler struct {
	dashboardService dashboard.Service
}

func NewDashboardHandler(dashboardService dashboard.Service) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

func (h *DashboardHandler) GetStats(c *fiber.Ctx) error {
	projectID, err := uuid.Parse(c.Params("projectId"))
	if err != nil {
		return middleware.BadRequest("Invalid project ID")
	}

	stats, err := h.dashboardService.GetStats(c.Context(), projectID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(stats)
}

func (h *DashboardHandler) GetPositionHistory(c *fiber.Ctx) error {
	keywordID, err := uuid.Parse(c.Params("keywordId"))
	if err != nil {
		return middleware.BadRequest("Invalid keyword ID")
	}

	days := c.QueryInt("days", 30)
	if days < 1 || days > 365 {
		return middleware.BadRequest("days must be between 1 and 365")
	}

	points, err := h.dashboardService.GetPositionHistory(c.Context(), keywordID, days)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(points)
}
