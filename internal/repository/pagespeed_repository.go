package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"rankwatch/internal/domain"
)

type PageSpeedRepository interface {
	Create(ctx context.Context, snapshot *domain.PageSpeedSnapshot) error
	GetLatest(ctx context.Context, projectID uuid.UUID, strategy domain.PageSpeedStrategy) (*domain.PageSpeedSnapshot, error)
	ListByProject(ctx context.Context, projectID uuid.UUID, limit int) ([]domain.PageSpeedSnapshot, error)
}

type pageSpeedRepository struct {
	db *sqlx.DB
}

func NewPageSpeedRepository(db *sqlx.DB) PageSpeedRepository {
	return &pageSpeedRepository{db: db}
}

func (r *pageSpeedRepository) Create(ctx context.Context, snapshot *domain.PageSpeedSnapshot) error {
	query := `
		INSERT INTO pagespeed_snapshots (id, project_id, strategy,
			performance_score, seo_score, accessibility_score, best_practices_score,
			lcp_ms, cls, tbt_ms)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at`

	return r.db.QueryRowxContext(ctx, query,
		snapshot.ID, snapshot.ProjectID, snapshot.Strategy,
		snapshot.PerformanceScore, snapshot.SEOScore, snapshot.AccessibilityScore,
		snapshot.BestPracticesScore, snapshot.LCPMs, snapshot.CLS, snapshot.TBTMs,
	).Scan(&snapshot.CreatedAt)
}

func (r *pageSpeedRepository) GetLatest(ctx context.Context, projectID uuid.UUID, strategy domain.PageSpeedStrategy) (*domain.PageSpeedSnapshot, error) {
	var snapshot domain.PageSpeedSnapshot
	query := `
		SELECT * FROM pagespeed_snapshots
		WHERE project_id = $1 AND strategy = $2
		ORDER BY created_at DESC
		LIMIT 1`

	err := r.db.GetContext(ctx, &snapshot, query, projectID, strategy)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &snapshot, nil
}

func (r *pageSpeedRepository) ListByProject(ctx context.Context, projectID uuid.UUID, limit int) ([]domain.PageSpeedSnapshot, error) {
	if limit <= 0 || limit > 100 {
		limit = 30
	}
	var snapshots []domain.PageSpeedSnapshot
	query := `
		SELECT * FROM pagespeed_snapshots
		WHERE project_id = $1
		ORDER BY created_at DESC
		LIMIT $2`
	err := r.db.SelectContext(ctx, &snapshots, query, projectID, limit)
	return snapshots, err
}
