package project

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"rankwatch/internal/domain"
	"rankwatch/internal/repository"
)

var (
	ErrProjectNotFound = errors.New("project not found")
	ErrUserNotFound    = errors.New("user not found")
)

type Service interface {
	Create(ctx context.Context, input domain.CreateProjectInput) (*domain.Project, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Project, error)
	Update(ctx context.Context, id uuid.UUID, input domain.UpdateProjectInput) (*domain.Project, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params domain.PaginationParams) (domain.PaginatedResponse[domain.Project], error)
	ListMembers(ctx context.Context, projectID uuid.UUID) ([]domain.ProjectMember, error)
	AddMember(ctx context.Context, projectID, userID uuid.UUID, role domain.ProjectRole) error
	RemoveMember(ctx context.Context, projectID, userID uuid.UUID) error
}

type service struct {
	projectRepo repository.ProjectRepository
	userRepo    repository.UserRepository
}

func NewService(projectRepo repository.ProjectRepository, userRepo repository.UserRepository) Service {
	return &service{
		projectRepo: projectRepo,
		userRepo:    userRepo,
	}
}

func (s *service) Create(ctx context.Context, input domain.CreateProjectInput) (*domain.Project, error) {
	project := &domain.Project{
		ID:                 uuid.New(),
		Name:               strings.TrimSpace(input.Name),
		SiteURL:            strings.TrimSpace(input.SiteURL),
		SearchConsoleToken: input.SearchConsoleToken,
		IsActive:           true,
	}

	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	project, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, ErrProjectNotFound
	}
	return project, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input domain.UpdateProjectInput) (*domain.Project, error) {
	project, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, ErrProjectNotFound
	}

	if input.Name != nil {
		project.Name = strings.TrimSpace(*input.Name)
	}
	if input.SiteURL != nil {
		project.SiteURL = strings.TrimSpace(*input.SiteURL)
	}
	if input.SearchConsoleToken != nil {
		project.SearchConsoleToken = *input.SearchConsoleToken
	}
	if input.IsActive != nil {
		project.IsActive = *input.IsActive
	}

	if err := s.projectRepo.Update(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	project, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if project == nil {
		return ErrProjectNotFound
	}
	return s.projectRepo.Delete(ctx, id)
}

func (s *service) List(ctx context.Context, params domain.PaginationParams) (domain.PaginatedResponse[domain.Project], error) {
	projects, total, err := s.projectRepo.List(ctx, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Project]{}, err
	}
	return domain.NewPaginatedResponse(projects, params.Page, params.PageSize, total), nil
}

func (s *service) ListMembers(ctx context.Context, projectID uuid.UUID) ([]domain.ProjectMember, error) {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, ErrProjectNotFound
	}
	return s.userRepo.ListMembers(ctx, projectID)
}

func (s *service) AddMember(ctx context.Context, projectID, userID uuid.UUID, role domain.ProjectRole) error {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return err
	}
	if project == nil {
		return ErrProjectNotFound
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	if !role.IsValid() {
		role = domain.RoleMember
	}
	return s.projectRepo.AddMember(ctx, projectID, userID, role)
}

func (s *service) RemoveMember(ctx context.Context, projectID, userID uuid.UUID) error {
	return s.projectRepo.RemoveMember(ctx, projectID, userID)
}
