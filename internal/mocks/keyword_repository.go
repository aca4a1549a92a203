package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"rankwatch/internal/domain"
)

type KeywordRepository struct {
	mock.Mock
}

func (m *KeywordRepository) Create(ctx context.Context, keyword *domain.Keyword) error {
	args := m.Called(ctx, keyword)
	return args.Error(0)
}

func (m *KeywordRepository) CreateBatch(ctx context.Context, keywords []domain.Keyword) (int, error) {
	args := m.Called(ctx, keywords)
	return args.Int(0), args.Error(1)
}

func (m *KeywordRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Keyword, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Keyword), args.Error(1)
}

func (m *KeywordRepository) Update(ctx context.Context, keyword *domain.Keyword) error {
	args := m.Called(ctx, keyword)
	return args.Error(0)
}

func (m *KeywordRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *KeywordRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]domain.Keyword, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Keyword), args.Error(1)
}

func (m *KeywordRepository) ListByProjectPaged(ctx context.Context, projectID uuid.UUID, params domain.PaginationParams) ([]domain.Keyword, int64, error) {
	args := m.Called(ctx, projectID, params)
	return args.Get(0).([]domain.Keyword), args.Get(1).(int64), args.Error(2)
}

func (m *KeywordRepository) CountByProject(ctx context.Context, projectID uuid.UUID) (int64, error) {
	args := m.Called(ctx, projectID)
	return args.Get(0).(int64), args.Error(1)
}
