package domain

import (
	"time"

	"github.com/google/uuid"
)

// Ranking is one append-only observation of a keyword's search position.
// A nil Position means the keyword was not found in results that cycle.
// PreviousPosition is a snapshot of the prior ranking's position taken at
// insert time, not a live reference; rows are never mutated after creation.
type Ranking struct {
	ID               uuid.UUID `json:"id" db:"id"`
	KeywordID        uuid.UUID `json:"keyword_id" db:"keyword_id"`
	Position         *int      `json:"position" db:"position"`
	PreviousPosition *int      `json:"previous_position" db:"previous_position"`
	Clicks           int       `json:"clicks" db:"clicks"`
	Impressions      int       `json:"impressions" db:"impressions"`
	CTR              float64   `json:"ctr" db:"ctr"`
	CheckedAt        time.Time `json:"checked_at" db:"checked_at"`
}

// Delta returns previous - current, so a positive delta is an improvement
// (the keyword moved up). The second return is false when either side is nil.
func (r *Ranking) Delta() (int, bool) {
	if r.Position == nil || r.PreviousPosition == nil {
		return 0, false
	}
	return *r.PreviousPosition - *r.Position, true
}

// Observation is a single per-query row returned by the search-analytics
// provider. Position is the provider's fractional average; nil means the
// query produced no impressions in the window.
type Observation struct {
	Query       string   `json:"query"`
	Position    *float64 `json:"position"`
	Clicks      int      `json:"clicks"`
	Impressions int      `json:"impressions"`
	CTR         float64  `json:"ctr"`
}

// RankingEvent classifies a position transition.
type RankingEvent string

const (
	EventTop3                   RankingEvent = "top3"
	EventFirstPage              RankingEvent = "first_page"
	EventDroppedOut             RankingEvent = "dropped_out"
	EventSignificantImprovement RankingEvent = "significant_improvement"
	EventSignificantDecline     RankingEvent = "significant_decline"
)

// KeywordRanking is a ranking row joined with its keyword text, used by the
// dashboard and weekly-summary read paths.
type KeywordRanking struct {
	Ranking
	KeywordText string `json:"keyword_text" db:"keyword_text"`
}

type DateRange struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// PreviousDay returns the default fetch window: the previous calendar day.
func PreviousDay(now time.Time) DateRange {
	y, m, d := now.AddDate(0, 0, -1).Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return DateRange{From: day, To: day}
}

// LastDays returns a window of n days ending yesterday.
func LastDays(now time.Time, n int) DateRange {
	r := PreviousDay(now)
	if n > 1 {
		r.From = r.To.AddDate(0, 0, -(n - 1))
	}
	return r
}
