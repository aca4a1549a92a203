package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"rankwatch/internal/domain"
	"rankwatch/internal/middleware"
	"rankwatch/internal/service/keyword"
)

type KeywordHandler struct {
	keywordService keyword.Service
}

func NewKeywordHandler(keywordService keyword.Service) *KeywordHandler {
	return &KeywordHandler{keywordService: keywordService}
}

func (h *KeywordHandler) Create(c *fiber.Ctx) error {
	projectID, err := uuid.Parse(c.Params("projectId"))
	if err != nil {
		return middleware.BadRequest("Invalid project ID")
	}

	var input domain.CreateKeywordInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	if input.Text == "" {
		return middleware.BadRequest("text is required")
	}

	kw, err := h.keywordService.Create(c.Context(), projectID, input)
	if err != nil {
		if errors.Is(err, keyword.ErrProjectNotFound) {
			return middleware.NotFound("Project not found")
		}
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(kw)
}

func (h *KeywordHandler) List(c *fiber.Ctx) error {
	projectID, err := uuid.Parse(c.Params("projectId"))
	if err != nil {
		return middleware.BadRequest("Invalid project ID")
	}

	params := getPaginationParams(c)

	result, err := h.keywordService.List(c.Context(), projectID, params)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *KeywordHandler) Get(c *fiber.Ctx) error {
	keywordID, err := uuid.Parse(c.Params("keywordId"))
	if err != nil {
		return middleware.BadRequest("Invalid keyword ID")
	}

	kw, err := h.keywordService.GetByID(c.Context(), keywordID)
	if err != nil {
		if errors.Is(err, keyword.ErrKeywordNotFound) {
			return middleware.NotFound("Keyword not found")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(kw)
}

func (h *KeywordHandler) Update(c *fiber.Ctx) error {
	keywordID, err := uuid.Parse(c.Params("keywordId"))
	if err != nil {
		return middleware.BadRequest("Invalid keyword ID")
	}

	var input domain.UpdateKeywordInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	kw, err := h.keywordService.Update(c.Context(), keywordID, input)
	if err != nil {
		if errors.Is(err, keyword.ErrKeywordNotFound) {
			return middleware.NotFound("Keyword not found")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(kw)
}

func (h *KeywordHandler) Delete(c *fiber.Ctx) error {
	keywordID, err := uuid.Parse(c.Params("keywordId"))
	if err != nil {
		return middleware.BadRequest("Invalid keyword ID")
	}

	if err := h.keywordService.Delete(c.Context(), keywordID); err != nil {
		if errors.Is(err, keyword.ErrKeywordNotFound) {
			return middleware.NotFound("Keyword not found")
		}
		return err
	}

	return c.Status(fiber.StatusNoContent).SendString("")
}

func (h *KeywordHandler) Import(c *fiber.Ctx) error {
	projectID, err := uuid.Parse(c.Params("projectId"))
	if err != nil {
		return middleware.BadRequest("Invalid project ID")
	}

	var body struct {
		ObjectName string `json:"object_name"`
	}
	if err := c.BodyParser(&body); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if body.ObjectName == "" {
		return middleware.BadRequest("object_name is required")
	}

	result, err := h.keywordService.ImportFromObject(c.Context(), projectID, body.ObjectName)
	if err != nil {
		switch {
		case errors.Is(err, keyword.ErrProjectNotFound):
			return middleware.NotFound("Project not found")
		case errors.Is(err, keyword.ErrImportEmpty):
			return middleware.BadRequest("Import file contains no keywords")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}
