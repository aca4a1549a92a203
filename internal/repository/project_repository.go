package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"rankwatch/internal/domain"
)

type ProjectRepository interface {
	Create(ctx context.Context, project *domain.Project) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Project, error)
	Update(ctx context.Context, project *domain.Project) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params domain.PaginationParams) ([]domain.Project, int64, error)
	ListActive(ctx context.Context) ([]domain.Project, error)
	AddMember(ctx context.Context, projectID, userID uuid.UUID, role domain.ProjectRole) error
	RemoveMember(ctx context.Context, projectID, userID uuid.UUID) error
}

type projectRepository struct {
	db *sqlx.DB
}

func NewProjectRepository(db *sqlx.DB) ProjectRepository {
	return &projectRepository{db: db}
}

func (r *projectRepository) Create(ctx context.Context, project *domain.Project) error {
	query := `
		INSERT INTO projects (id, name, site_url, search_console_token, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		project.ID, project.Name, project.SiteURL, project.SearchConsoleToken, project.IsActive,
	).Scan(&project.CreatedAt, &project.UpdatedAt)
}

func (r *projectRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	var project domain.Project
	query := `SELECT * FROM projects WHERE id = $1`

	err := r.db.GetContext(ctx, &project, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *projectRepository) Update(ctx context.Context, project *domain.Project) error {
	query := `
		UPDATE projects
		SET name = $2, site_url = $3, search_console_token = $4, is_active = $5, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	return r.db.QueryRowxContext(ctx, query,
		project.ID, project.Name, project.SiteURL, project.SearchConsoleToken, project.IsActive,
	).Scan(&project.UpdatedAt)
}

func (r *projectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM projects WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

func (r *projectRepository) List(ctx context.Context, params domain.PaginationParams) ([]domain.Project, int64, error) {
	params.Validate()

	var total int64
	countQuery := `SELECT COUNT(*) FROM projects`
	if err := r.db.GetContext(ctx, &total, countQuery); err != nil {
		return nil, 0, err
	}

	var projects []domain.Project
	query := `
		SELECT * FROM projects
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`
	err := r.db.SelectContext(ctx, &projects, query, params.PageSize, params.Offset())
	return projects, total, err
}

func (r *projectRepository) ListActive(ctx context.Context) ([]domain.Project, error) {
	var projects []domain.Project
	query := `SELECT * FROM projects WHERE is_active = true ORDER BY created_at`
	err := r.db.SelectContext(ctx, &projects, query)
	return projects, err
}

func (r *projectRepository) AddMember(ctx context.Context, projectID, userID uuid.UUID, role domain.ProjectRole) error {
	query := `
		INSERT INTO project_users (project_id, user_id, role)
		VALUES ($1, $2, $3)
		ON CONFLICT (project_id, user_id) DO UPDATE SET role = EXCLUDED.role`
	_, err := r.db.ExecContext(ctx, query, projectID, userID, role)
	return err
}

func (r *projectRepository) RemoveMember(ctx context.Context, projectID, userID uuid.UUID) error {
	query := `DELETE FROM project_users WHERE project_id = $1 AND user_id = $2`
	_, err := r.db.ExecContext(ctx, query, projectID, userID)
	return err
}
