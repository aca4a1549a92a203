package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"rankwatch/internal/domain"
)

type PageSpeedRepository struct {
	mock.Mock
}

func (m *PageSpeedRepository) Create(ctx context.Context, snapshot *domain.PageSpeedSnapshot) error {
	args := m.Called(ctx, snapshot)
	return args.Error(0)
}

func (m *PageSpeedRepository) GetLatest(ctx context.Context, projectID uuid.UUID, strategy domain.PageSpeedStrategy) (*domain.PageSpeedSnapshot, error) {
	args := m.Called(ctx, projectID, strategy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PageSpeedSnapshot), args.Error(1)
}

func (m *PageSpeedRepository) ListByProject(ctx context.Context, projectID uuid.UUID, limit int) ([]domain.PageSpeedSnapshot, error) {
	args := m.Called(ctx, projectID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PageSpeedSnapshot), args.Error(1)
}
