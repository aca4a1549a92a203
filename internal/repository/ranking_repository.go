package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"rankwatch/internal/domain"
)

// RankingRepository is append-only: rankings are never updated or deleted.
type RankingRepository interface {
	Create(ctx context.Context, ranking *domain.Ranking) error
	GetLatestByKeyword(ctx context.Context, keywordID uuid.UUID) (*domain.Ranking, error)
	ListByKeyword(ctx context.Context, keywordID uuid.UUID, since time.Time) ([]domain.Ranking, error)
	LatestByProject(ctx context.Context, projectID uuid.UUID) ([]domain.KeywordRanking, error)
	ListByProjectSince(ctx context.Context, projectID uuid.UUID, since time.Time) ([]domain.KeywordRanking, error)
}

type rankingRepository struct {
	db *sqlx.DB
}

func NewRankingRepository(db *sqlx.DB) RankingRepository {
	return &rankingRepository{db: db}
}

func (r *rankingRepository) Create(ctx context.Context, ranking *domain.Ranking) error {
	query := `
		INSERT INTO rankings (id, keyword_id, position, previous_position,
			clicks, impressions, ctr, checked_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.ExecContext(ctx, query,
		ranking.ID, ranking.KeywordID, ranking.Position, ranking.PreviousPosition,
		ranking.Clicks, ranking.Impressions, ranking.CTR, ranking.CheckedAt,
	)
	return err
}

func (r *rankingRepository) GetLatestByKeyword(ctx context.Context, keywordID uuid.UUID) (*domain.Ranking, error) {
	var ranking domain.Ranking
	query := `
		SELECT * FROM rankings
		WHERE keyword_id = $1
		ORDER BY checked_at DESC
		LIMIT 1`

	err := r.db.GetContext(ctx, &ranking, query, keywordID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ranking, nil
}

func (r *rankingRepository) ListByKeyword(ctx context.Context, keywordID uuid.UUID, since time.Time) ([]domain.Ranking, error) {
	var rankings []domain.Ranking
	query := `
		SELECT * FROM rankings
		WHERE keyword_id = $1 AND checked_at >= $2
		ORDER BY checked_at`
	err := r.db.SelectContext(ctx, &rankings, query, keywordID, since)
	return rankings, err
}

func (r *rankingRepository) LatestByProject(ctx context.Context, projectID uuid.UUID) ([]domain.KeywordRanking, error) {
	var rankings []domain.KeywordRanking
	query := `
		SELECT DISTINCT ON (r.keyword_id) r.*, k.text AS keyword_text
		FROM rankings r
		JOIN keywords k ON k.id = r.keyword_id
		WHERE k.project_id = $1
		ORDER BY r.keyword_id, r.checked_at DESC`
	err := r.db.SelectContext(ctx, &rankings, query, projectID)
	return rankings, err
}

func (r *rankingRepository) ListByProjectSince(ctx context.Context, projectID uuid.UUID, since time.Time) ([]domain.KeywordRanking, error) {
	var rankings []domain.KeywordRanking
	query := `
		SELECT r.*, k.text AS keyword_text
		FROM rankings r
		JOIN keywords k ON k.id = r.keyword_id
		WHERE k.project_id = $1 AND r.checked_at >= $2
		ORDER BY r.keyword_id, r.checked_at`
	err := r.db.SelectContext(ctx, &rankings, query, projectID, since)
	return rankings, err
}
