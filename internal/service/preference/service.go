package preference

import (
	"context"
	"log"

	"github.com/google/uuid"

	"rankwatch/internal/domain"
	"rankwatch/internal/repository"
)

type Service interface {
	// Get returns the user's preference row for the project, creating it
	// with defaults on first access.
	Get(ctx context.Context, userID, projectID uuid.UUID) (*domain.NotificationPreference, error)
	Update(ctx context.Context, userID, projectID uuid.UUID, input domain.UpdateNotificationPreferenceInput) (*domain.NotificationPreference, error)
}

type service struct {
	prefRepo repository.PreferenceRepository
}

func NewService(prefRepo repository.PreferenceRepository) Service {
	return &service{prefRepo: prefRepo}
}

func (s *service) Get(ctx context.Context, userID, projectID uuid.UUID) (*domain.NotificationPreference, error) {
	pref, err := s.prefRepo.GetByUserAndProject(ctx, userID, projectID)
	if err != nil {
		return nil, err
	}
	if pref != nil {
		return pref, nil
	}

	pref = domain.DefaultNotificationPreference(userID, projectID)
	if err := s.prefRepo.Upsert(ctx, pref); err != nil {
		// Lazy creation is a convenience; the synthesized defaults are
		// still valid if the insert loses a race or fails.
		log.Printf("Failed to persist default preferences for user %s: %v", userID, err)
	}
	return pref, nil
}

func (s *service) Update(ctx context.Context, userID, projectID uuid.UUID, input domain.UpdateNotificationPreferenceInput) (*domain.NotificationPreference, error) {
	pref, err := s.Get(ctx, userID, projectID)
	if err != nil {
		return nil, err
	}

	if input.EmailRankingChanges != nil {
		pref.EmailRankingChanges = *input.EmailRankingChanges
	}
	if input.EmailTop3Achievements != nil {
		pref.EmailTop3Achievements = *input.EmailTop3Achievements
	}
	if input.EmailFirstPageEntries != nil {
		pref.EmailFirstPageEntries = *input.EmailFirstPageEntries
	}
	if input.EmailSignificantDrops != nil {
		pref.EmailSignificantDrops = *input.EmailSignificantDrops
	}
	if input.EmailWeeklySummary != nil {
		pref.EmailWeeklySummary = *input.EmailWeeklySummary
	}
	if input.AppRankingChanges != nil {
		pref.AppRankingChanges = *input.AppRankingChanges
	}
	if input.AppTop3Achievements != nil {
		pref.AppTop3Achievements = *input.AppTop3Achievements
	}
	if input.AppFirstPageEntries != nil {
		pref.AppFirstPageEntries = *input.AppFirstPageEntries
	}
	if input.AppSignificantDrops != nil {
		pref.AppSignificantDrops = *input.AppSignificantDrops
	}
	if input.AppWeeklySummary != nil {
		pref.AppWeeklySummary = *input.AppWeeklySummary
	}
	if input.SignificantChangeThreshold != nil && *input.SignificantChangeThreshold >= 1 {
		pref.SignificantChangeThreshold = *input.SignificantChangeThreshold
	}
	if input.OnlySignificantChanges != nil {
		pref.OnlySignificantChanges = *input.OnlySignificantChanges
	}

	if err := s.prefRepo.Upsert(ctx, pref); err != nil {
		return nil, err
	}
	return pref, nil
}
