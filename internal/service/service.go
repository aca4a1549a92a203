package service

import (
	"github.com/minio/minio-go/v7"
	"github.com/redis/go-redis/v9"

	"rankwatch/internal/config"
	"rankwatch/internal/repository"
	"rankwatch/internal/service/dashboard"
	"rankwatch/internal/service/email"
	"rankwatch/internal/service/insights"
	"rankwatch/internal/service/keyword"
	"rankwatch/internal/service/notification"
	"rankwatch/internal/service/notifier"
	"rankwatch/internal/service/pagespeed"
	"rankwatch/internal/service/preference"
	"rankwatch/internal/service/project"
	"rankwatch/internal/service/ranking"
	"rankwatch/internal/service/searchconsole"
	"rankwatch/internal/service/sync"
)

type Services struct {
	Project      project.Service
	Keyword      keyword.Service
	Ranking      ranking.Service
	Notifier     notifier.Service
	Notification notification.Service
	Preference   preference.Service
	Dashboard    dashboard.Service
	PageSpeed    pagespeed.Service
	Email        email.Service
	Insights     insights.Service
	Sync         sync.Service
}

func NewServices(repos *repository.Repositories, redisClient *redis.Client, minioClient *minio.Client, cfg *config.Config) *Services {
	emailSvc := email.NewService(cfg)
	insightsSvc := insights.NewService(cfg.InsightsURL, cfg.InsightsAPIKey, cfg.InsightsModel)
	rankingSvc := ranking.NewService(repos.Ranking, repos.Keyword)
	notifierSvc := notifier.NewService(repos.User, repos.Preference, repos.Notification, emailSvc)
	fetcher := searchconsole.NewClient(cfg.SearchConsoleURL, cfg.SearchConsoleTimeout)
	weekly := sync.NewWeeklyMailer(repos.User, repos.Preference, repos.Notification, repos.Ranking, emailSvc, insightsSvc)

	syncSvc := sync.NewService(repos, rankingSvc, notifierSvc, fetcher, weekly, redisClient, sync.Options{
		ChunkSize:  cfg.SyncChunkSize,
		ChunkDelay: cfg.SyncChunkDelay,
		LockTTL:    cfg.SyncLockTTL,
	})

	return &Services{
		Project:      project.NewService(repos.Project, repos.User),
		Keyword:      keyword.NewService(repos.Keyword, repos.Project, minioClient, cfg),
		Ranking:      rankingSvc,
		Notifier:     notifierSvc,
		Notification: notification.NewService(repos.Notification),
		Preference:   preference.NewService(repos.Preference),
		Dashboard:    dashboard.NewService(repos.Keyword, repos.Ranking, redisClient),
		PageSpeed:    pagespeed.NewService(repos.Project, repos.PageSpeed, cfg.PageSpeedURL, cfg.PageSpeedAPIKey),
		Email:        emailSvc,
		Insights:     insightsSvc,
		Sync:         syncSvc,
	}
}
