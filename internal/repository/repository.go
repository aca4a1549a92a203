package repository

import (
	"github.com/jmoiron/sqlx"
)

type Repositories struct {
	Project      ProjectRepository
	User         UserRepository
	Keyword      KeywordRepository
	Ranking      RankingRepository
	Preference   PreferenceRepository
	Notification NotificationRepository
	PageSpeed    PageSpeedRepository
	SyncRun      SyncRunRepository
}

func NewRepositories(db *sqlx.DB) *Repositories {
	return &Repositories{
		Project:      NewProjectRepository(db),
		User:         NewUserRepository(db),
		Keyword:      NewKeywordRepository(db),
		Ranking:      NewRankingRepository(db),
		Preference:   NewPreferenceRepository(db),
		Notification: NewNotificationRepository(db),
		PageSpeed:    NewPageSpeedRepository(db),
		SyncRun:      NewSyncRunRepository(db),
	}
}
