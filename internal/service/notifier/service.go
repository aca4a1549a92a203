// Package notifier fans a classified ranking event out to project members
// according to their notification preferences.
package notifier

import (
	"context"
	"log"

	"rankwatch/internal/domain"
	"rankwatch/internal/metrics"
	"rankwatch/internal/repository"
	"rankwatch/internal/service/email"
)

// Event carries everything a channel needs to render a notification.
type Event struct {
	Project *domain.Project
	Keyword *domain.Keyword
	Ranking *domain.Ranking
	Kind    domain.RankingEvent
}

// ChannelSender delivers an event to one user over one channel.
type ChannelSender interface {
	Channel() domain.Channel
	Send(ctx context.Context, user *domain.User, event *Event) error
}

type Service interface {
	// DispatchRankingEvent notifies every member of the event's project whose
	// preferences allow it. Returns the number of users that received at
	// least one notification. Per-user and per-channel failures are logged
	// and never abort the fan-out.
	DispatchRankingEvent(ctx context.Context, event *Event) (int, error)
}

type service struct {
	userRepo repository.UserRepository
	prefRepo repository.PreferenceRepository
	senders  []ChannelSender
}

func NewService(
	userRepo repository.UserRepository,
	prefRepo repository.PreferenceRepository,
	notifRepo repository.NotificationRepository,
	emailSvc email.Service,
) Service {
	return &service{
		userRepo: userRepo,
		prefRepo: prefRepo,
		senders: []ChannelSender{
			newEmailSender(emailSvc),
			newInAppSender(notifRepo),
		},
	}
}

func (s *service) DispatchRankingEvent(ctx context.Context, event *Event) (int, error) {
	users, err := s.userRepo.ListByProject(ctx, event.Project.ID)
	if err != nil {
		return 0, err
	}

	notified := 0
	for i := range users {
		user := &users[i]

		pref, err := s.prefRepo.GetByUserAndProject(ctx, user.ID, event.Project.ID)
		if err != nil {
			log.Printf("Failed to load preferences for user %s: %v", user.ID, err)
			continue
		}
		if pref == nil {
			pref = domain.DefaultNotificationPreference(user.ID, event.Project.ID)
		}

		if suppressed(pref, event) {
			continue
		}

		delivered := false
		for _, sender := range s.senders {
			if !pref.Enabled(sender.Channel(), event.Kind) {
				continue
			}
			if err := sender.Send(ctx, user, event); err != nil {
				metrics.NotificationFailures.WithLabelValues(string(sender.Channel())).Inc()
				log.Printf("Failed to send %s notification to user %s: %v", sender.Channel(), user.ID, err)
				continue
			}
			metrics.NotificationsSent.WithLabelValues(string(sender.Channel())).Inc()
			delivered = true
		}
		if delivered {
			notified++
		}
	}

	return notified, nil
}

// suppressed applies the per-user significance filters. Significant moves
// below the user's own threshold are dropped; with the only-significant
// switch on, milestone events below the threshold are dropped too. Events
// without a computable delta (first observation, vanished position) always
// pass.
func suppressed(pref *domain.NotificationPreference, event *Event) bool {
	delta, ok := event.Ranking.Delta()
	if !ok {
		return false
	}
	if delta < 0 {
		delta = -delta
	}

	switch event.Kind {
	case domain.EventSignificantImprovement, domain.EventSignificantDecline:
		return delta < pref.SignificantChangeThreshold
	default:
		return pref.OnlySignificantChanges && delta < pref.SignificantChangeThreshold
	}
}
