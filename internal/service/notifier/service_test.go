package notifier_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"rankwatch/internal/domain"
	"rankwatch/internal/mocks"
	"rankwatch/internal/service/notifier"
)

func intPtr(n int) *int {
	return &n
}

func newEvent(kind domain.RankingEvent, position, previous *int) *notifier.Event {
	return &notifier.Event{
		Project: &domain.Project{ID: uuid.New(), Name: "Acme Store"},
		Keyword: &domain.Keyword{ID: uuid.New(), Text: "running shoes"},
		Ranking: &domain.Ranking{Position: position, PreviousPosition: previous},
		Kind:    kind,
	}
}

func TestNotifierService_DispatchRankingEvent(t *testing.T) {
	ctx := context.Background()
	user := domain.User{ID: uuid.New(), Email: "alice@example.com", FullName: "Alice", IsActive: true}

	t.Run("Defaults Synthesized When No Preference Row", func(t *testing.T) {
		mockUserRepo := new(mocks.UserRepository)
		mockPrefRepo := new(mocks.PreferenceRepository)
		mockNotifRepo := new(mocks.NotificationRepository)
		mockEmail := new(mocks.EmailService)
		svc := notifier.NewService(mockUserRepo, mockPrefRepo, mockNotifRepo, mockEmail)

		event := newEvent(domain.EventTop3, intPtr(2), intPtr(7))

		mockUserRepo.On("ListByProject", ctx, event.Project.ID).Return([]domain.User{user}, nil).Once()
		mockPrefRepo.On("GetByUserAndProject", ctx, user.ID, event.Project.ID).Return(nil, nil).Once()
		mockEmail.On("SendRankingChangeEmail", ctx, user.Email, mock.Anything).Return(nil).Once()
		mockNotifRepo.On("Create", ctx, mock.MatchedBy(func(n *domain.Notification) bool {
			return n.UserID == user.ID && n.Type == domain.NotifRankingChange
		})).Return(nil).Once()

		notified, err := svc.DispatchRankingEvent(ctx, event)

		assert.NoError(t, err)
		assert.Equal(t, 1, notified)

		mockEmail.AssertExpectations(t)
		mockNotifRepo.AssertExpectations(t)
	})

	t.Run("Significant Event Below Threshold Is Suppressed", func(t *testing.T) {
		mockUserRepo := new(mocks.UserRepository)
		mockPrefRepo := new(mocks.PreferenceRepository)
		mockNotifRepo := new(mocks.NotificationRepository)
		mockEmail := new(mocks.EmailService)
		svc := notifier.NewService(mockUserRepo, mockPrefRepo, mockNotifRepo, mockEmail)

		event := newEvent(domain.EventSignificantImprovement, intPtr(18), intPtr(24))

		pref := domain.DefaultNotificationPreference(user.ID, event.Project.ID)
		pref.SignificantChangeThreshold = 10

		mockUserRepo.On("ListByProject", ctx, event.Project.ID).Return([]domain.User{user}, nil).Once()
		mockPrefRepo.On("GetByUserAndProject", ctx, user.ID, event.Project.ID).Return(pref, nil).Once()

		notified, err := svc.DispatchRankingEvent(ctx, event)

		assert.NoError(t, err)
		assert.Equal(t, 0, notified)

		mockEmail.AssertNotCalled(t, "SendRankingChangeEmail", mock.Anything, mock.Anything, mock.Anything)
		mockNotifRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Only Significant Switch Suppresses Small Milestones", func(t *testing.T) {
		mockUserRepo := new(mocks.UserRepository)
		mockPrefRepo := new(mocks.PreferenceRepository)
		mockNotifRepo := new(mocks.NotificationRepository)
		mockEmail := new(mocks.EmailService)
		svc := notifier.NewService(mockUserRepo, mockPrefRepo, mockNotifRepo, mockEmail)

		// 11 -> 10 enters the first page but only moves one spot.
		event := newEvent(domain.EventFirstPage, intPtr(10), intPtr(11))

		pref := domain.DefaultNotificationPreference(user.ID, event.Project.ID)
		pref.OnlySignificantChanges = true

		mockUserRepo.On("ListByProject", ctx, event.Project.ID).Return([]domain.User{user}, nil).Once()
		mockPrefRepo.On("GetByUserAndProject", ctx, user.ID, event.Project.ID).Return(pref, nil).Once()

		notified, err := svc.DispatchRankingEvent(ctx, event)

		assert.NoError(t, err)
		assert.Equal(t, 0, notified)
	})

	t.Run("Events Without Delta Always Pass The Filters", func(t *testing.T) {
		mockUserRepo := new(mocks.UserRepository)
		mockPrefRepo := new(mocks.PreferenceRepository)
		mockNotifRepo := new(mocks.NotificationRepository)
		mockEmail := new(mocks.EmailService)
		svc := notifier.NewService(mockUserRepo, mockPrefRepo, mockNotifRepo, mockEmail)

		// First observation: no previous position, delta not computable.
		event := newEvent(domain.EventTop3, intPtr(3), nil)

		pref := domain.DefaultNotificationPreference(user.ID, event.Project.ID)
		pref.OnlySignificantChanges = true
		pref.SignificantChangeThreshold = 50

		mockUserRepo.On("ListByProject", ctx, event.Project.ID).Return([]domain.User{user}, nil).Once()
		mockPrefRepo.On("GetByUserAndProject", ctx, user.ID, event.Project.ID).Return(pref, nil).Once()
		mockEmail.On("SendRankingChangeEmail", ctx, user.Email, mock.Anything).Return(nil).Once()
		mockNotifRepo.On("Create", ctx, mock.Anything).Return(nil).Once()

		notified, err := svc.DispatchRankingEvent(ctx, event)

		assert.NoError(t, err)
		assert.Equal(t, 1, notified)
	})

	t.Run("Channel Flags Off Means No Delivery", func(t *testing.T) {
		mockUserRepo := new(mocks.UserRepository)
		mockPrefRepo := new(mocks.PreferenceRepository)
		mockNotifRepo := new(mocks.NotificationRepository)
		mockEmail := new(mocks.EmailService)
		svc := notifier.NewService(mockUserRepo, mockPrefRepo, mockNotifRepo, mockEmail)

		event := newEvent(domain.EventTop3, intPtr(2), intPtr(8))

		pref := domain.DefaultNotificationPreference(user.ID, event.Project.ID)
		pref.EmailTop3Achievements = false
		pref.AppTop3Achievements = false

		mockUserRepo.On("ListByProject", ctx, event.Project.ID).Return([]domain.User{user}, nil).Once()
		mockPrefRepo.On("GetByUserAndProject", ctx, user.ID, event.Project.ID).Return(pref, nil).Once()

		notified, err := svc.DispatchRankingEvent(ctx, event)

		assert.NoError(t, err)
		assert.Equal(t, 0, notified)

		mockEmail.AssertNotCalled(t, "SendRankingChangeEmail", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Email Failure Does Not Block In App Delivery", func(t *testing.T) {
		mockUserRepo := new(mocks.UserRepository)
		mockPrefRepo := new(mocks.PreferenceRepository)
		mockNotifRepo := new(mocks.NotificationRepository)
		mockEmail := new(mocks.EmailService)
		svc := notifier.NewService(mockUserRepo, mockPrefRepo, mockNotifRepo, mockEmail)

		event := newEvent(domain.EventDroppedOut, intPtr(14), intPtr(6))

		mockUserRepo.On("ListByProject", ctx, event.Project.ID).Return([]domain.User{user}, nil).Once()
		mockPrefRepo.On("GetByUserAndProject", ctx, user.ID, event.Project.ID).Return(nil, nil).Once()
		mockEmail.On("SendRankingChangeEmail", ctx, user.Email, mock.Anything).Return(errors.New("smtp down")).Once()
		mockNotifRepo.On("Create", ctx, mock.Anything).Return(nil).Once()

		notified, err := svc.DispatchRankingEvent(ctx, event)

		assert.NoError(t, err)
		assert.Equal(t, 1, notified)

		mockNotifRepo.AssertExpectations(t)
	})

	t.Run("Preference Load Failure Skips User And Continues", func(t *testing.T) {
		mockUserRepo := new(mocks.UserRepository)
		mockPrefRepo := new(mocks.PreferenceRepository)
		mockNotifRepo := new(mocks.NotificationRepository)
		mockEmail := new(mocks.EmailService)
		svc := notifier.NewService(mockUserRepo, mockPrefRepo, mockNotifRepo, mockEmail)

		other := domain.User{ID: uuid.New(), Email: "bob@example.com", FullName: "Bob", IsActive: true}
		event := newEvent(domain.EventFirstPage, intPtr(9), intPtr(16))

		mockUserRepo.On("ListByProject", ctx, event.Project.ID).Return([]domain.User{user, other}, nil).Once()
		mockPrefRepo.On("GetByUserAndProject", ctx, user.ID, event.Project.ID).Return(nil, errors.New("db error")).Once()
		mockPrefRepo.On("GetByUserAndProject", ctx, other.ID, event.Project.ID).Return(nil, nil).Once()
		mockEmail.On("SendRankingChangeEmail", ctx, other.Email, mock.Anything).Return(nil).Once()
		mockNotifRepo.On("Create", ctx, mock.Anything).Return(nil).Once()

		notified, err := svc.DispatchRankingEvent(ctx, event)

		assert.NoError(t, err)
		assert.Equal(t, 1, notified)
	})
}

func TestDelta(t *testing.T) {
	t.Run("Positive For Improvement", func(t *testing.T) {
		r := &domain.Ranking{Position: intPtr(3), PreviousPosition: intPtr(9)}
		delta, ok := r.Delta()
		assert.True(t, ok)
		assert.Equal(t, 6, delta)
	})

	t.Run("Not Computable Without Previous", func(t *testing.T) {
		r := &domain.Ranking{Position: intPtr(3)}
		_, ok := r.Delta()
		assert.False(t, ok)
	})
}
