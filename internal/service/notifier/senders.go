package notifier

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"rankwatch/internal/domain"
	"rankwatch/internal/repository"
	"rankwatch/internal/service/email"
)

func eventTitle(kind domain.RankingEvent) string {
	switch kind {
	case domain.EventTop3:
		return "Keyword Entered Top 3"
	case domain.EventFirstPage:
		return "Keyword Entered First Page"
	case domain.EventDroppedOut:
		return "Keyword Dropped Off First Page"
	case domain.EventSignificantImprovement:
		return "Significant Ranking Improvement"
	case domain.EventSignificantDecline:
		return "Significant Ranking Decline"
	default:
		return "Ranking Change"
	}
}

func eventMessage(event *Event) string {
	prev := formatPosition(event.Ranking.PreviousPosition)
	pos := formatPosition(event.Ranking.Position)

	switch event.Kind {
	case domain.EventTop3:
		return fmt.Sprintf("%q now ranks in the top 3 for %s (position %s).", event.Keyword.Text, event.Project.Name, pos)
	case domain.EventFirstPage:
		return fmt.Sprintf("%q entered the first page for %s (position %s).", event.Keyword.Text, event.Project.Name, pos)
	case domain.EventDroppedOut:
		return fmt.Sprintf("%q dropped off the first page for %s (%s to %s).", event.Keyword.Text, event.Project.Name, prev, pos)
	case domain.EventSignificantImprovement:
		return fmt.Sprintf("%q improved from %s to %s for %s.", event.Keyword.Text, prev, pos, event.Project.Name)
	case domain.EventSignificantDecline:
		return fmt.Sprintf("%q declined from %s to %s for %s.", event.Keyword.Text, prev, pos, event.Project.Name)
	default:
		return fmt.Sprintf("%q moved from %s to %s for %s.", event.Keyword.Text, prev, pos, event.Project.Name)
	}
}

func formatPosition(p *int) string {
	if p == nil {
		return "not ranking"
	}
	return fmt.Sprintf("#%d", *p)
}

type emailSender struct {
	emailSvc email.Service
}

func newEmailSender(emailSvc email.Service) *emailSender {
	return &emailSender{emailSvc: emailSvc}
}

func (s *emailSender) Channel() domain.Channel {
	return domain.ChannelEmail
}

func (s *emailSender) Send(ctx context.Context, user *domain.User, event *Event) error {
	if user.Email == "" {
		return nil
	}
	return s.emailSvc.SendRankingChangeEmail(ctx, user.Email, email.RankingChangeData{
		Title:       eventTitle(event.Kind),
		Name:        user.FullName,
		ProjectName: event.Project.Name,
		Keyword:     event.Keyword.Text,
		Message:     eventMessage(event),
		Position:    formatPosition(event.Ranking.Position),
		Previous:    formatPosition(event.Ranking.PreviousPosition),
	})
}

type inAppSender struct {
	notifRepo repository.NotificationRepository
}

func newInAppSender(notifRepo repository.NotificationRepository) *inAppSender {
	return &inAppSender{notifRepo: notifRepo}
}

func (s *inAppSender) Channel() domain.Channel {
	return domain.ChannelInApp
}

func (s *inAppSender) Send(ctx context.Context, user *domain.User, event *Event) error {
	payload := map[string]interface{}{
		"project_id": event.Project.ID.String(),
		"keyword_id": event.Keyword.ID.String(),
		"event":      string(event.Kind),
	}
	if event.Ranking.Position != nil {
		payload["position"] = *event.Ranking.Position
	}
	if event.Ranking.PreviousPosition != nil {
		payload["previous_position"] = *event.Ranking.PreviousPosition
	}
	data, _ := json.Marshal(payload)

	return s.notifRepo.Create(ctx, &domain.Notification{
		ID:      uuid.New(),
		UserID:  user.ID,
		Type:    domain.NotifRankingChange,
		Title:   eventTitle(event.Kind),
		Message: eventMessage(event),
		Data:    data,
	})
}
