package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"rankwatch/internal/domain"
)

type PreferenceRepository interface {
	GetByUserAndProject(ctx context.Context, userID, projectID uuid.UUID) (*domain.NotificationPreference, error)
	Upsert(ctx context.Context, pref *domain.NotificationPreference) error
}

type preferenceRepository struct {
	db *sqlx.DB
}

func NewPreferenceRepository(db *sqlx.DB) PreferenceRepository {
	return &preferenceRepository{db: db}
}

func (r *preferenceRepository) GetByUserAndProject(ctx context.Context, userID, projectID uuid.UUID) (*domain.NotificationPreference, error) {
	var pref domain.NotificationPreference
	query := `SELECT * FROM notification_preferences WHERE user_id = $1 AND project_id = $2`

	err := r.db.GetContext(ctx, &pref, query, userID, projectID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &pref, nil
}

func (r *preferenceRepository) Upsert(ctx context.Context, pref *domain.NotificationPreference) error {
	query := `
		INSERT INTO notification_preferences (id, user_id, project_id,
			email_ranking_changes, email_top3_achievements, email_first_page_entries,
			email_significant_drops, email_weekly_summary,
			app_ranking_changes, app_top3_achievements, app_first_page_entries,
			app_significant_drops, app_weekly_summary,
			significant_change_threshold, only_significant_changes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (user_id, project_id) DO UPDATE SET
			email_ranking_changes = EXCLUDED.email_ranking_changes,
			email_top3_achievements = EXCLUDED.email_top3_achievements,
			email_first_page_entries = EXCLUDED.email_first_page_entries,
			email_significant_drops = EXCLUDED.email_significant_drops,
			email_weekly_summary = EXCLUDED.email_weekly_summary,
			app_ranking_changes = EXCLUDED.app_ranking_changes,
			app_top3_achievements = EXCLUDED.app_top3_achievements,
			app_first_page_entries = EXCLUDED.app_first_page_entries,
			app_significant_drops = EXCLUDED.app_significant_drops,
			app_weekly_summary = EXCLUDED.app_weekly_summary,
			significant_change_threshold = EXCLUDED.significant_change_threshold,
			only_significant_changes = EXCLUDED.only_significant_changes,
			updated_at = NOW()
		RETURNING id, created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		pref.ID, pref.UserID, pref.ProjectID,
		pref.EmailRankingChanges, pref.EmailTop3Achievements, pref.EmailFirstPageEntries,
		pref.EmailSignificantDrops, pref.EmailWeeklySummary,
		pref.AppRankingChanges, pref.AppTop3Achievements, pref.AppFirstPageEntries,
		pref.AppSignificantDrops, pref.AppWeeklySummary,
		pref.SignificantChangeThreshold, pref.OnlySignificantChanges,
	).Scan(&pref.ID, &pref.CreatedAt, &pref.UpdatedAt)
}
