package domain

import (
	"time"

	"github.com/google/uuid"
)

type PageSpeedStrategy string

const (
	StrategyMobile  PageSpeedStrategy = "mobile"
	StrategyDesktop PageSpeedStrategy = "desktop"
)

func (s PageSpeedStrategy) IsValid() bool {
	switch s {
	case StrategyMobile, StrategyDesktop:
		return true
	default:
		return false
	}
}

// PageSpeedSnapshot is one point-in-time page-speed measurement for a
// project's site. Scores are 0-100; vitals are nil when the lab run did not
// produce them.
type PageSpeedSnapshot struct {
	ID                 uuid.UUID         `json:"id" db:"id"`
	ProjectID          uuid.UUID         `json:"project_id" db:"project_id"`
	Strategy           PageSpeedStrategy `json:"strategy" db:"strategy"`
	PerformanceScore   int               `json:"performance_score" db:"performance_score"`
	SEOScore           int               `json:"seo_score" db:"seo_score"`
	AccessibilityScore int               `json:"accessibility_score" db:"accessibility_score"`
	BestPracticesScore int               `json:"best_practices_score" db:"best_practices_score"`
	LCPMs              *int              `json:"lcp_ms,omitempty" db:"lcp_ms"`
	CLS                *float64          `json:"cls,omitempty" db:"cls"`
	TBTMs              *int              `json:"tbt_ms,omitempty" db:"tbt_ms"`
	CreatedAt          time.Time         `json:"created_at" db:"created_at"`
}
