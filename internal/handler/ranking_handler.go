package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"rankwatch/internal/middleware"
	"rankwatch/internal/service/ranking"
)

type RankingHandler struct {
	rankingService ranking.Service
}

func NewRankingHandler(rankingService ranking.Service) *RankingHandler {
	return &RankingHandler{rankingService: rankingService}
}

func (h *RankingHandler) Latest(c *fiber.Ctx) error {
	keywordID, err := uuid.Parse(c.Params("keywordId"))
	if err != nil {
		return middleware.BadRequest("Invalid keyword ID")
	}

	latest, err := h.rankingService.Latest(c.Context(), keywordID)
	if err != nil {
		if errors.Is(err, ranking.ErrKeywordNotFound) {
			return middleware.NotFound("Keyword not found")
		}
		return err
	}

	if latest == nil {
		return middleware.NotFound("No rankings recorded for this keyword")
	}

	return c.Status(fiber.StatusOK).JSON(latest)
}

func (h *RankingHandler) History(c *fiber.Ctx) error {
	keywordID, err := uuid.Parse(c.Params("keywordId"))
	if err != nil {
		return middleware.BadRequest("Invalid keyword ID")
	}

	days := c.QueryInt("days", 30)
	if days < 1 || days > 365 {
		return middleware.BadRequest("days must be between 1 and 365")
	}

	history, err := h.rankingService.History(c.Context(), keywordID, days)
	if err != nil {
		if errors.Is(err, ranking.ErrKeywordNotFound) {
			return middleware.NotFound("Keyword not found")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(history)
}
