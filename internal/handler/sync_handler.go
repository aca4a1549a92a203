package handler

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"rankwatch/internal/domain"
	"rankwatch/internal/middleware"
	syncsvc "rankwatch/internal/service/sync"
)

type SyncHandler struct {
	syncService syncsvc.Service
}

func NewSyncHandler(syncService syncsvc.Service) *SyncHandler {
	return &SyncHandler{syncService: syncService}
}

// Trigger runs a synchronous ranking sync for a project. The window
// defaults to the previous calendar day.
func (h *SyncHandler) Trigger(c *fiber.Ctx) error {
	projectID, err := uuid.Parse(c.Params("projectId"))
	if err != nil {
		return middleware.BadRequest("Invalid project ID")
	}

	window := domain.PreviousDay(time.Now())
	if days := c.QueryInt("days", 0); days > 0 {
		if days > 90 {
			return middleware.BadRequest("days must be at most 90")
		}
		window = domain.LastDays(time.Now(), days)
	}

	summary, err := h.syncService.SyncProject(c.Context(), projectID, window)
	if err != nil {
		switch {
		case errors.Is(err, syncsvc.ErrProjectNotFound):
			return middleware.NotFound("Project not found")
		case errors.Is(err, syncsvc.ErrSyncInProgress):
			return middleware.Conflict("A sync is already running for this project")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(summary)
}

func (h *SyncHandler) ListRuns(c *fiber.Ctx) error {
	projectID, err := uuid.Parse(c.Params("projectId"))
	if err != nil {
		return middleware.BadRequest("Invalid project ID")
	}

	runs, err := h.syncService.ListRuns(c.Context(), projectID, c.QueryInt("limit", 20))
	if err != nil {
		if errors.Is(err, syncsvc.ErrProjectNotFound) {
			return middleware.NotFound("Project not found")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(runs)
}
