package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"rankwatch/internal/domain"
)

type PreferenceRepository struct {
	mock.Mock
}

func (m *PreferenceRepository) GetByUserAndProject(ctx context.Context, userID, projectID uuid.UUID) (*domain.NotificationPreference, error) {
	args := m.Called(ctx, userID, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.NotificationPreference), args.Error(1)
}

func (m *PreferenceRepository) Upsert(ctx context.Context, pref *domain.NotificationPreference) error {
	args := m.Called(ctx, pref)
	return args.Error(0)
}
