package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"rankwatch/internal/domain"
)

type Fetcher struct {
	mock.Mock
}

func (m *Fetcher) FetchChunk(ctx context.Context, project *domain.Project, queries []string, window domain.DateRange) ([]domain.Observation, error) {
	args := m.Called(ctx, project, queries, window)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Observation), args.Error(1)
}
