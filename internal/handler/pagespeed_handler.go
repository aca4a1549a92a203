package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"rankwatch/internal/domain"
	"rankwatch/internal/middleware"
	"rankwatch/internal/service/pagespeed"
)

type PageSpeedHandler struct {
	pagespeedService pagespeed.Service
}

func NewPageSpeedHandler(pagespeedService pagespeed.Service) *PageSpeedHandler {
	return &PageSpeedHandler{pagespeedService: pagespeedService}
}

func (h *PageSpeedHandler) Analyze(c *fiber.Ctx) error {
	projectID, err := uuid.Parse(c.Params("projectId"))
	if err != nil {
		return middleware.BadRequest("Invalid project ID")
	}

	strategy := domain.PageSpeedStrategy(c.Query("strategy", string(domain.StrategyMobile)))
	if !strategy.IsValid() {
		return middleware.BadRequest("strategy must be mobile or desktop")
	}

	snapshot, err := h.pagespeedService.Analyze(c.Context(), projectID, strategy)
	if err != nil {
		if errors.Is(err, pagespeed.ErrProjectNotFound) {
			return middleware.NotFound("Project not found")
		}
		return middleware.BadGateway("PageSpeed analysis failed")
	}

	return c.Status(fiber.StatusOK).JSON(snapshot)
}

func (h *PageSpeedHandler) History(c *fiber.Ctx) error {
	projectID, err := uuid.Parse(c.Params("projectId"))
	if err != nil {
		return middleware.BadRequest("Invalid project ID")
	}

	limit := c.QueryInt("limit", 30)
	if limit < 1 || limit > 100 {
		return middleware.BadRequest("limit must be between 1 and 100")
	}

	snapshots, err := h.pagespeedService.History(c.Context(), projectID, limit)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(snapshots)
}
