// Package ranking records keyword position observations and classifies
// transitions.
package ranking

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/google/uuid"

	"rankwatch/internal/domain"
	"rankwatch/internal/repository"
)

var ErrKeywordNotFound = errors.New("keyword not found")

type Service interface {
	// Record appends a new ranking for the keyword, snapshotting the latest
	// stored position as previous_position. The observation's fractional
	// position is rounded to the nearest integer; nil stays nil.
	Record(ctx context.Context, keyword *domain.Keyword, obs domain.Observation) (*domain.Ranking, error)
	Latest(ctx context.Context, keywordID uuid.UUID) (*domain.Ranking, error)
	History(ctx context.Context, keywordID uuid.UUID, days int) ([]domain.Ranking, error)
}

type service struct {
	rankingRepo repository.RankingRepository
	keywordRepo repository.KeywordRepository
	now         func() time.Time
}

func NewService(rankingRepo repository.RankingRepository, keywordRepo repository.KeywordRepository) Service {
	return &service{
		rankingRepo: rankingRepo,
		keywordRepo: keywordRepo,
		now:         time.Now,
	}
}

func (s *service) Record(ctx context.Context, keyword *domain.Keyword, obs domain.Observation) (*domain.Ranking, error) {
	latest, err := s.rankingRepo.GetLatestByKeyword(ctx, keyword.ID)
	if err != nil {
		return nil, err
	}

	var previous *int
	if latest != nil {
		previous = latest.Position
	}

	var position *int
	if obs.Position != nil {
		rounded := int(math.Round(*obs.Position))
		position = &rounded
	}

	ranking := &domain.Ranking{
		ID:               uuid.New(),
		KeywordID:        keyword.ID,
		Position:         position,
		PreviousPosition: previous,
		Clicks:           obs.Clicks,
		Impressions:      obs.Impressions,
		CTR:              obs.CTR,
		CheckedAt:        s.now(),
	}

	if err := s.rankingRepo.Create(ctx, ranking); err != nil {
		return nil, err
	}
	return ranking, nil
}

func (s *service) Latest(ctx context.Context, keywordID uuid.UUID) (*domain.Ranking, error) {
	keyword, err := s.keywordRepo.GetByID(ctx, keywordID)
	if err != nil {
		return nil, err
	}
	if keyword == nil {
		return nil, ErrKeywordNotFound
	}
	return s.rankingRepo.GetLatestByKeyword(ctx, keywordID)
}

func (s *service) History(ctx context.Context, keywordID uuid.UUID, days int) ([]domain.Ranking, error) {
	keyword, err := s.keywordRepo.GetByID(ctx, keywordID)
	if err != nil {
		return nil, err
	}
	if keyword == nil {
		return nil, ErrKeywordNotFound
	}

	if days <= 0 || days > 365 {
		days = 30
	}
	since := s.now().AddDate(0, 0, -days)
	return s.rankingRepo.ListByKeyword(ctx, keywordID, since)
}
