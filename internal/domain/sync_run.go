package domain

import (
	"time"

	"github.com/google/uuid"
)

// SyncRun is the audit row written after each batch pipeline run.
type SyncRun struct {
	ID             uuid.UUID `json:"id" db:"id"`
	ProjectID      uuid.UUID `json:"project_id" db:"project_id"`
	DateFrom       time.Time `json:"date_from" db:"date_from"`
	DateTo         time.Time `json:"date_to" db:"date_to"`
	Keywords       int       `json:"keywords" db:"keywords"`
	Recorded       int       `json:"recorded" db:"recorded"`
	Events         int       `json:"events" db:"events"`
	Notified       int       `json:"notified" db:"notified"`
	FailedChunks   int       `json:"failed_chunks" db:"failed_chunks"`
	FailedKeywords int       `json:"failed_keywords" db:"failed_keywords"`
	StartedAt      time.Time `json:"started_at" db:"started_at"`
	FinishedAt     time.Time `json:"finished_at" db:"finished_at"`
}
