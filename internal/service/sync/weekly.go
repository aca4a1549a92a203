package sync

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/google/uuid"

	"rankwatch/internal/domain"
	"rankwatch/internal/repository"
	"rankwatch/internal/service/email"
	"rankwatch/internal/service/insights"
)

// weeklyMailer builds and delivers the weekly movement digest to project
// members whose preferences ask for it.
type weeklyMailer struct {
	userRepo    repository.UserRepository
	prefRepo    repository.PreferenceRepository
	notifRepo   repository.NotificationRepository
	rankingRepo repository.RankingRepository
	emailSvc    email.Service
	insightsSvc insights.Service
	now         func() time.Time
}

func NewWeeklyMailer(
	userRepo repository.UserRepository,
	prefRepo repository.PreferenceRepository,
	notifRepo repository.NotificationRepository,
	rankingRepo repository.RankingRepository,
	emailSvc email.Service,
	insightsSvc insights.Service,
) *weeklyMailer {
	return &weeklyMailer{
		userRepo:    userRepo,
		prefRepo:    prefRepo,
		notifRepo:   notifRepo,
		rankingRepo: rankingRepo,
		emailSvc:    emailSvc,
		insightsSvc: insightsSvc,
		now:         time.Now,
	}
}

type keywordWeek struct {
	text  string
	first *int
	last  *int
}

func (w *weeklyMailer) send(ctx context.Context, project *domain.Project) error {
	since := w.now().AddDate(0, 0, -7)
	rows, err := w.rankingRepo.ListByProjectSince(ctx, project.ID, since)
	if err != nil {
		return err
	}

	weeks := map[uuid.UUID]*keywordWeek{}
	var order []uuid.UUID
	for _, row := range rows {
		kw, ok := weeks[row.KeywordID]
		if !ok {
			kw = &keywordWeek{text: row.KeywordText, first: row.Position}
			weeks[row.KeywordID] = kw
			order = append(order, row.KeywordID)
		}
		kw.last = row.Position
	}

	improved, declined, top3 := 0, 0, 0
	type mover struct {
		keyword  string
		position *int
		delta    int
	}
	var movers []mover

	for _, id := range order {
		kw := weeks[id]
		if kw.last != nil && *kw.last <= 3 {
			top3++
		}
		if kw.first == nil || kw.last == nil {
			continue
		}
		delta := *kw.first - *kw.last
		switch {
		case delta > 0:
			improved++
		case delta < 0:
			declined++
		}
		if delta != 0 {
			movers = append(movers, mover{keyword: kw.text, position: kw.last, delta: delta})
		}
	}

	sort.Slice(movers, func(i, j int) bool {
		return abs(movers[i].delta) > abs(movers[j].delta)
	})
	if len(movers) > 10 {
		movers = movers[:10]
	}

	items := make([]email.WeeklySummaryItem, 0, len(movers))
	for _, m := range movers {
		change := fmt.Sprintf("+%d", m.delta)
		if m.delta < 0 {
			change = fmt.Sprintf("%d", m.delta)
		}
		position := "not ranking"
		if m.position != nil {
			position = fmt.Sprintf("#%d", *m.position)
		}
		items = append(items, email.WeeklySummaryItem{Keyword: m.keyword, Position: position, Change: change})
	}

	narrative, err := w.insightsSvc.WeeklyNarrative(ctx, insights.WeeklyStats{
		ProjectName: project.Name,
		Improved:    improved,
		Declined:    declined,
		Top3:        top3,
		Keywords:    len(weeks),
	})
	if err != nil {
		log.Printf("Weekly narrative generation failed for project %s: %v", project.ID, err)
		narrative = ""
	}

	users, err := w.userRepo.ListByProject(ctx, project.ID)
	if err != nil {
		return err
	}

	for i := range users {
		user := &users[i]

		pref, err := w.prefRepo.GetByUserAndProject(ctx, user.ID, project.ID)
		if err != nil {
			log.Printf("Failed to load preferences for user %s: %v", user.ID, err)
			continue
		}
		if pref == nil {
			pref = domain.DefaultNotificationPreference(user.ID, project.ID)
		}

		if pref.EmailWeeklySummary && user.Email != "" {
			data := email.WeeklySummaryData{
				Title:       fmt.Sprintf("Weekly SEO Summary: %s", project.Name),
				Name:        user.FullName,
				ProjectName: project.Name,
				Narrative:   narrative,
				Improved:    improved,
				Declined:    declined,
				Top3:        top3,
				Items:       items,
			}
			if err := w.emailSvc.SendWeeklySummaryEmail(ctx, user.Email, data); err != nil {
				log.Printf("Failed to send weekly summary to user %s: %v", user.ID, err)
			}
		}

		if pref.AppWeeklySummary {
			payload, _ := json.Marshal(map[string]interface{}{
				"project_id": project.ID.String(),
				"improved":   improved,
				"declined":   declined,
				"top3":       top3,
			})
			notif := &domain.Notification{
				ID:      uuid.New(),
				UserID:  user.ID,
				Type:    domain.NotifWeeklySummary,
				Title:   fmt.Sprintf("Weekly Summary: %s", project.Name),
				Message: fmt.Sprintf("%d keywords improved, %d declined, %d in the top 3 this week.", improved, declined, top3),
				Data:    payload,
			}
			if err := w.notifRepo.Create(ctx, notif); err != nil {
				log.Printf("Failed to create weekly summary notification for user %s: %v", user.ID, err)
			}
		}
	}

	return nil
}

func (s *service) SendWeeklySummary(ctx context.Context, projectID uuid.UUID) error {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return err
	}
	if project == nil {
		return ErrProjectNotFound
	}
	return s.weekly.send(ctx, project)
}

func (s *service) SendAllWeeklySummaries(ctx context.Context) error {
	projects, err := s.projectRepo.ListActive(ctx)
	if err != nil {
		return err
	}
	for _, project := range projects {
		p := project
		if err := s.weekly.send(ctx, &p); err != nil {
			log.Printf("Weekly summary failed for project %s (%s): %v", p.Name, p.ID, err)
		}
	}
	return nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
