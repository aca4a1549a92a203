package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"rankwatch/internal/service/notifier"
)

type NotifierService struct {
	mock.Mock
}

func (m *NotifierService) DispatchRankingEvent(ctx context.Context, event *notifier.Event) (int, error) {
	args := m.Called(ctx, event)
	return args.Int(0), args.Error(1)
}
