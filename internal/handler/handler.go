package handler

import "rankwatch/internal/service"

type Handlers struct {
	Project      *ProjectHandler
	Keyword      *KeywordHandler
	Ranking      *RankingHandler
	Notification *NotificationHandler
	Preference   *PreferenceHandler
	Dashboard    *DashboardHandler
	PageSpeed    *PageSpeedHandler
	Sync         *SyncHandler
}

func NewHandlers(services *service.Services) *Handlers {
	return &Handlers{
		Project:      NewProjectHandler(services.Project),
		Keyword:      NewKeywordHandler(services.Keyword),
		Ranking:      NewRankingHandler(services.Ranking),
		Notification: NewNotificationHandler(services.Notification),
		Preference:   NewPreferenceHandler(services.Preference),
		Dashboard:    NewDashboardHandler(services.Dashboard),
		PageSpeed:    NewPageSpeedHandler(services.PageSpeed),
		Sync:         NewSyncHandler(services.Sync),
	}
}
