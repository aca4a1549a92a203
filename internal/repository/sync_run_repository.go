package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"rankwatch/internal/domain"
)

type SyncRunRepository interface {
	Create(ctx context.Context, run *domain.SyncRun) error
	ListByProject(ctx context.Context, projectID uuid.UUID, limit int) ([]domain.SyncRun, error)
}

type syncRunRepository struct {
	db *sqlx.DB
}

func NewSyncRunRepository(db *sqlx.DB) SyncRunRepository {
	return &syncRunRepository{db: db}
}

func (r *syncRunRepository) Create(ctx context.Context, run *domain.SyncRun) error {
	query := `
		INSERT INTO sync_runs (id, project_id, date_from, date_to, keywords,
			recorded, events, notified, failed_chunks, failed_keywords,
			started_at, finished_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := r.db.ExecContext(ctx, query,
		run.ID, run.ProjectID, run.DateFrom, run.DateTo, run.Keywords,
		run.Recorded, run.Events, run.Notified, run.FailedChunks,
		run.FailedKeywords, run.StartedAt, run.FinishedAt,
	)
	return err
}

func (r *syncRunRepository) ListByProject(ctx context.Context, projectID uuid.UUID, limit int) ([]domain.SyncRun, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	var runs []domain.SyncRun
	query := `
		SELECT * FROM sync_runs
		WHERE project_id = $1
		ORDER BY started_at DESC
		LIMIT $2`
	err := r.db.SelectContext(ctx, &runs, query, projectID, limit)
	return runs, err
}
