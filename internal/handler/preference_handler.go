package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"rankwatch/internal/domain"
	"rankwatch/internal/middleware"
	"rankwatch/internal/service/preference"
)

type PreferenceHandler struct {
	prefService preference.Service
}

func NewPreferenceHandler(prefService preference.Service) *PreferenceHandler {
	return &PreferenceHandler{prefService: prefService}
}

func (h *PreferenceHandler) Get(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	projectID, err := uuid.Parse(c.Params("projectId"))
	if err != nil {
		return middleware.BadRequest("Invalid project ID")
	}

	pref, err := h.prefService.Get(c.Context(), userID, projectID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(pref)
}

func (h *PreferenceHandler) Update(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	projectID, err := uuid.Parse(c.Params("projectId"))
	if err != nil {
		return middleware.BadRequest("Invalid project ID")
	}

	var input domain.UpdateNotificationPreferenceInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	if input.SignificantChangeThreshold != nil && *input.SignificantChangeThreshold < 1 {
		return middleware.BadRequest("significant_change_threshold must be at least 1")
	}

	pref, err := h.prefService.Update(c.Context(), userID, projectID, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(pref)
}
