package domain

import (
	"time"

	"github.com/google/uuid"
)

type Keyword struct {
	ID           uuid.UUID       `json:"id" db:"id"`
	ProjectID    uuid.UUID       `json:"project_id" db:"project_id"`
	Text         string          `json:"text" db:"text"`
	Category     *string         `json:"category,omitempty" db:"category"`
	Priority     KeywordPriority `json:"priority" db:"priority"`
	Location     *string         `json:"location,omitempty" db:"location"`
	Language     *string         `json:"language,omitempty" db:"language"`
	SearchVolume *int            `json:"search_volume,omitempty" db:"search_volume"`
	Difficulty   *int            `json:"difficulty,omitempty" db:"difficulty"`
	CreatedAt    time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at" db:"updated_at"`
}

type KeywordPriority string

const (
	PriorityHigh   KeywordPriority = "high"
	PriorityMedium KeywordPriority = "medium"
	PriorityLow    KeywordPriority = "low"
)

func (p KeywordPriority) IsValid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	default:
		return false
	}
}

type CreateKeywordInput struct {
	Text         string          `json:"text" validate:"required,min=1"`
	Category     *string         `json:"category,omitempty"`
	Priority     KeywordPriority `json:"priority,omitempty"`
	Location     *string         `json:"location,omitempty"`
	Language     *string         `json:"language,omitempty"`
	SearchVolume *int            `json:"search_volume,omitempty"`
	Difficulty   *int            `json:"difficulty,omitempty"`
}

type UpdateKeywordInput struct {
	Category     **string         `json:"category,omitempty"`
	Priority     *KeywordPriority `json:"priority,omitempty"`
	Location     **string         `json:"location,omitempty"`
	Language     **string         `json:"language,omitempty"`
	SearchVolume **int            `json:"search_volume,omitempty"`
	Difficulty   **int            `json:"difficulty,omitempty"`
}
