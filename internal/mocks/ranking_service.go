package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"rankwatch/internal/domain"
)

type RankingService struct {
	mock.Mock
}

func (m *RankingService) Record(ctx context.Context, keyword *domain.Keyword, obs domain.Observation) (*domain.Ranking, error) {
	args := m.Called(ctx, keyword, obs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Ranking), args.Error(1)
}

func (m *RankingService) Latest(ctx context.Context, keywordID uuid.UUID) (*domain.Ranking, error) {
	args := m.Called(ctx, keywordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Ranking), args.Error(1)
}

func (m *RankingService) History(ctx context.Context, keywordID uuid.UUID, days int) ([]domain.Ranking, error) {
	args := m.Called(ctx, keywordID, days)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Ranking), args.Error(1)
}
