package preference_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"rankwatch/internal/domain"
	"rankwatch/internal/mocks"
	"rankwatch/internal/service/preference"
)

func boolPtr(b bool) *bool {
	return &b
}

func intPtr(n int) *int {
	return &n
}

func TestPreferenceService_Get(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	projectID := uuid.New()

	t.Run("Existing Row", func(t *testing.T) {
		mockPrefRepo := new(mocks.PreferenceRepository)
		svc := preference.NewService(mockPrefRepo)

		existing := domain.DefaultNotificationPreference(userID, projectID)
		existing.SignificantChangeThreshold = 8
		mockPrefRepo.On("GetByUserAndProject", ctx, userID, projectID).Return(existing, nil).Once()

		pref, err := svc.Get(ctx, userID, projectID)

		assert.NoError(t, err)
		assert.Equal(t, 8, pref.SignificantChangeThreshold)

		mockPrefRepo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
	})

	t.Run("Lazily Creates Defaults", func(t *testing.T) {
		mockPrefRepo := new(mocks.PreferenceRepository)
		svc := preference.NewService(mockPrefRepo)

		mockPrefRepo.On("GetByUserAndProject", ctx, userID, projectID).Return(nil, nil).Once()
		mockPrefRepo.On("Upsert", ctx, mock.MatchedBy(func(p *domain.NotificationPreference) bool {
			return p.UserID == userID && p.ProjectID == projectID && p.SignificantChangeThreshold == 5
		})).Return(nil).Once()

		pref, err := svc.Get(ctx, userID, projectID)

		assert.NoError(t, err)
		assert.True(t, pref.EmailTop3Achievements)
		assert.True(t, pref.EmailWeeklySummary)
		assert.False(t, pref.AppWeeklySummary)
		assert.False(t, pref.OnlySignificantChanges)

		mockPrefRepo.AssertExpectations(t)
	})

	t.Run("Defaults Survive A Failed Insert", func(t *testing.T) {
		mockPrefRepo := new(mocks.PreferenceRepository)
		svc := preference.NewService(mockPrefRepo)

		mockPrefRepo.On("GetByUserAndProject", ctx, userID, projectID).Return(nil, nil).Once()
		mockPrefRepo.On("Upsert", ctx, mock.Anything).Return(errors.New("db error")).Once()

		pref, err := svc.Get(ctx, userID, projectID)

		assert.NoError(t, err)
		assert.NotNil(t, pref)
	})
}

func TestPreferenceService_Update(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	projectID := uuid.New()

	t.Run("Merges Only Provided Fields", func(t *testing.T) {
		mockPrefRepo := new(mocks.PreferenceRepository)
		svc := preference.NewService(mockPrefRepo)

		existing := domain.DefaultNotificationPreference(userID, projectID)
		mockPrefRepo.On("GetByUserAndProject", ctx, userID, projectID).Return(existing, nil).Once()
		mockPrefRepo.On("Upsert", ctx, mock.Anything).Return(nil).Once()

		pref, err := svc.Update(ctx, userID, projectID, domain.UpdateNotificationPreferenceInput{
			EmailTop3Achievements:      boolPtr(false),
			SignificantChangeThreshold: intPtr(10),
		})

		assert.NoError(t, err)
		assert.False(t, pref.EmailTop3Achievements)
		assert.Equal(t, 10, pref.SignificantChangeThreshold)
		// Untouched flags keep their values.
		assert.True(t, pref.EmailFirstPageEntries)
		assert.True(t, pref.AppSignificantDrops)
	})

	t.Run("Ignores Threshold Below One", func(t *testing.T) {
		mockPrefRepo := new(mocks.PreferenceRepository)
		svc := preference.NewService(mockPrefRepo)

		existing := domain.DefaultNotificationPreference(userID, projectID)
		mockPrefRepo.On("GetByUserAndProject", ctx, userID, projectID).Return(existing, nil).Once()
		mockPrefRepo.On("Upsert", ctx, mock.Anything).Return(nil).Once()

		pref, err := svc.Update(ctx, userID, projectID, domain.UpdateNotificationPreferenceInput{
			SignificantChangeThreshold: intPtr(0),
		})

		assert.NoError(t, err)
		assert.Equal(t, 5, pref.SignificantChangeThreshold)
	})
}
