package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type Notification struct {
	ID        uuid.UUID        `json:"id" db:"id"`
	UserID    uuid.UUID        `json:"user_id" db:"user_id"`
	Type      NotificationType `json:"type" db:"type"`
	Title     string           `json:"title" db:"title"`
	Message   string           `json:"message" db:"message"`
	Data      json.RawMessage  `json:"data,omitempty" db:"data"`
	IsRead    bool             `json:"is_read" db:"is_read"`
	ReadAt    *time.Time       `json:"read_at,omitempty" db:"read_at"`
	CreatedAt time.Time        `json:"created_at" db:"created_at"`
}

type NotificationType string

const (
	NotifRankingChange NotificationType = "RANKING_CHANGE"
	NotifWeeklySummary NotificationType = "WEEKLY_SUMMARY"
)

// Channel is a notification delivery medium.
type Channel string

const (
	ChannelEmail Channel = "email"
	ChannelInApp Channel = "in_app"
)

// Channels is the fixed dispatch order the notifier iterates.
var Channels = []Channel{ChannelEmail, ChannelInApp}

// NotificationPreference is the per-(user, project) flag matrix. One row per
// pair; synthesized with DefaultNotificationPreference when absent.
type NotificationPreference struct {
	ID                         uuid.UUID `json:"id" db:"id"`
	UserID                     uuid.UUID `json:"user_id" db:"user_id"`
	ProjectID                  uuid.UUID `json:"project_id" db:"project_id"`
	EmailRankingChanges        bool      `json:"email_ranking_changes" db:"email_ranking_changes"`
	EmailTop3Achievements      bool      `json:"email_top3_achievements" db:"email_top3_achievements"`
	EmailFirstPageEntries      bool      `json:"email_first_page_entries" db:"email_first_page_entries"`
	EmailSignificantDrops      bool      `json:"email_significant_drops" db:"email_significant_drops"`
	EmailWeeklySummary         bool      `json:"email_weekly_summary" db:"email_weekly_summary"`
	AppRankingChanges          bool      `json:"app_ranking_changes" db:"app_ranking_changes"`
	AppTop3Achievements        bool      `json:"app_top3_achievements" db:"app_top3_achievements"`
	AppFirstPageEntries        bool      `json:"app_first_page_entries" db:"app_first_page_entries"`
	AppSignificantDrops        bool      `json:"app_significant_drops" db:"app_significant_drops"`
	AppWeeklySummary           bool      `json:"app_weekly_summary" db:"app_weekly_summary"`
	SignificantChangeThreshold int       `json:"significant_change_threshold" db:"significant_change_threshold"`
	OnlySignificantChanges     bool      `json:"only_significant_changes" db:"only_significant_changes"`
	CreatedAt                  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt                  time.Time `json:"updated_at" db:"updated_at"`
}

// DefaultNotificationPreference returns the documented defaults: all
// actionable events enabled on both channels, weekly summary by email only.
func DefaultNotificationPreference(userID, projectID uuid.UUID) *NotificationPreference {
	return &NotificationPreference{
		ID:                         uuid.New(),
		UserID:                     userID,
		ProjectID:                  projectID,
		EmailRankingChanges:        true,
		EmailTop3Achievements:      true,
		EmailFirstPageEntries:      true,
		EmailSignificantDrops:      true,
		EmailWeeklySummary:         true,
		AppRankingChanges:          true,
		AppTop3Achievements:        true,
		AppFirstPageEntries:        true,
		AppSignificantDrops:        true,
		AppWeeklySummary:           false,
		SignificantChangeThreshold: 5,
		OnlySignificantChanges:     false,
	}
}

// Enabled reports whether the flag for the given event is set on a channel.
// The mapping mirrors the settings screen: top-3 entries have their own
// flag, first-page entries theirs, drops and declines share the
// significant-drops flag, and generic improvements fall under
// ranking-changes.
func (p *NotificationPreference) Enabled(ch Channel, event RankingEvent) bool {
	switch ch {
	case ChannelEmail:
		switch event {
		case EventTop3:
			return p.EmailTop3Achievements
		case EventFirstPage:
			return p.EmailFirstPageEntries
		case EventDroppedOut, EventSignificantDecline:
			return p.EmailSignificantDrops
		case EventSignificantImprovement:
			return p.EmailRankingChanges
		}
	case ChannelInApp:
		switch event {
		case EventTop3:
			return p.AppTop3Achievements
		case EventFirstPage:
			return p.AppFirstPageEntries
		case EventDroppedOut, EventSignificantDecline:
			return p.AppSignificantDrops
		case EventSignificantImprovement:
			return p.AppRankingChanges
		}
	}
	return false
}

type UpdateNotificationPreferenceInput struct {
	EmailRankingChanges        *bool `json:"email_ranking_changes,omitempty"`
	EmailTop3Achievements      *bool `json:"email_top3_achievements,omitempty"`
	EmailFirstPageEntries      *bool `json:"email_first_page_entries,omitempty"`
	EmailSignificantDrops      *bool `json:"email_significant_drops,omitempty"`
	EmailWeeklySummary         *bool `json:"email_weekly_summary,omitempty"`
	AppRankingChanges          *bool `json:"app_ranking_changes,omitempty"`
	AppTop3Achievements        *bool `json:"app_top3_achievements,omitempty"`
	AppFirstPageEntries        *bool `json:"app_first_page_entries,omitempty"`
	AppSignificantDrops        *bool `json:"app_significant_drops,omitempty"`
	AppWeeklySummary           *bool `json:"app_weekly_summary,omitempty"`
	SignificantChangeThreshold *int  `json:"significant_change_threshold,omitempty" validate:"omitempty,min=1"`
	OnlySignificantChanges     *bool `json:"only_significant_changes,omitempty"`
}
