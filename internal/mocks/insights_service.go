package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"rankwatch/internal/service/insights"
)

type InsightsService struct {
	mock.Mock
}

func (m *InsightsService) WeeklyNarrative(ctx context.Context, stats insights.WeeklyStats) (string, error) {
	args := m.Called(ctx, stats)
	return args.String(0), args.Error(1)
}
