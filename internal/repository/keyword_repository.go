package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"rankwatch/internal/domain"
)

type KeywordRepository interface {
	Create(ctx context.Context, keyword *domain.Keyword) error
	CreateBatch(ctx context.Context, keywords []domain.Keyword) (int, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Keyword, error)
	Update(ctx context.Context, keyword *domain.Keyword) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]domain.Keyword, error)
	ListByProjectPaged(ctx context.Context, projectID uuid.UUID, params domain.PaginationParams) ([]domain.Keyword, int64, error)
	CountByProject(ctx context.Context, projectID uuid.UUID) (int64, error)
}

type keywordRepository struct {
	db *sqlx.DB
}

func NewKeywordRepository(db *sqlx.DB) KeywordRepository {
	return &keywordRepository{db: db}
}

func (r *keywordRepository) Create(ctx context.Context, keyword *domain.Keyword) error {
	query := `
		INSERT INTO keywords (id, project_id, text, category, priority, location,
			language, search_volume, difficulty)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		keyword.ID, keyword.ProjectID, keyword.Text, keyword.Category,
		keyword.Priority, keyword.Location, keyword.Language,
		keyword.SearchVolume, keyword.Difficulty,
	).Scan(&keyword.CreatedAt, &keyword.UpdatedAt)
}

// CreateBatch inserts keywords one by one, skipping duplicates within the
// project. Returns the number of rows actually inserted.
func (r *keywordRepository) CreateBatch(ctx context.Context, keywords []domain.Keyword) (int, error) {
	query := `
		INSERT INTO keywords (id, project_id, text, category, priority, location,
			language, search_volume, difficulty)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (project_id, text) DO NOTHING`

	inserted := 0
	for i := range keywords {
		kw := &keywords[i]
		res, err := r.db.ExecContext(ctx, query,
			kw.ID, kw.ProjectID, kw.Text, kw.Category, kw.Priority,
			kw.Location, kw.Language, kw.SearchVolume, kw.Difficulty,
		)
		if err != nil {
			return inserted, err
		}
		if n, err := res.RowsAffected(); err == nil {
			inserted += int(n)
		}
	}
	return inserted, nil
}

func (r *keywordRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Keyword, error) {
	var keyword domain.Keyword
	query := `SELECT * FROM keywords WHERE id = $1`

	err := r.db.GetContext(ctx, &keyword, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &keyword, nil
}

func (r *keywordRepository) Update(ctx context.Context, keyword *domain.Keyword) error {
	query := `
		UPDATE keywords
		SET category = $2, priority = $3, location = $4, language = $5,
			search_volume = $6, difficulty = $7, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	return r.db.QueryRowxContext(ctx, query,
		keyword.ID, keyword.Category, keyword.Priority, keyword.Location,
		keyword.Language, keyword.SearchVolume, keyword.Difficulty,
	).Scan(&keyword.UpdatedAt)
}

func (r *keywordRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM keywords WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

func (r *keywordRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]domain.Keyword, error) {
	var keywords []domain.Keyword
	query := `SELECT * FROM keywords WHERE project_id = $1 ORDER BY text`
	err := r.db.SelectContext(ctx, &keywords, query, projectID)
	return keywords, err
}

func (r *keywordRepository) ListByProjectPaged(ctx context.Context, projectID uuid.UUID, params domain.PaginationParams) ([]domain.Keyword, int64, error) {
	params.Validate()

	var total int64
	countQuery := `SELECT COUNT(*) FROM keywords WHERE project_id = $1`
	if err := r.db.GetContext(ctx, &total, countQuery, projectID); err != nil {
		return nil, 0, err
	}

	var keywords []domain.Keyword
	query := `
		SELECT * FROM keywords
		WHERE project_id = $1
		ORDER BY text
		LIMIT $2 OFFSET $3`
	err := r.db.SelectContext(ctx, &keywords, query, projectID, params.PageSize, params.Offset())
	return keywords, total, err
}

func (r *keywordRepository) CountByProject(ctx context.Context, projectID uuid.UUID) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM keywords WHERE project_id = $1`
	err := r.db.GetContext(ctx, &count, query, projectID)
	return count, err
}
