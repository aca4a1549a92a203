package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"rankwatch/internal/domain"
)

type RankingRepository struct {
	mock.Mock
}

func (m *RankingRepository) Create(ctx context.Context, ranking *domain.Ranking) error {
	args := m.Called(ctx, ranking)
	return args.Error(0)
}

func (m *RankingRepository) GetLatestByKeyword(ctx context.Context, keywordID uuid.UUID) (*domain.Ranking, error) {
	args := m.Called(ctx, keywordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Ranking), args.Error(1)
}

func (m *RankingRepository) ListByKeyword(ctx context.Context, keywordID uuid.UUID, since time.Time) ([]domain.Ranking, error) {
	args := m.Called(ctx, keywordID, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Ranking), args.Error(1)
}

func (m *RankingRepository) LatestByProject(ctx context.Context, projectID uuid.UUID) ([]domain.KeywordRanking, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.KeywordRanking), args.Error(1)
}

func (m *RankingRepository) ListByProjectSince(ctx context.Context, projectID uuid.UUID, since time.Time) ([]domain.KeywordRanking, error) {
	args := m.Called(ctx, projectID, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.KeywordRanking), args.Error(1)
}
