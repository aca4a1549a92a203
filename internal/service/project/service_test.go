package project_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"rankwatch/internal/domain"
	"rankwatch/internal/mocks"
	"rankwatch/internal/service/project"
)

func strPtr(s string) *string {
	return &s
}

func TestProjectService_Create(t *testing.T) {
	ctx := context.Background()

	mockProjectRepo := new(mocks.ProjectRepository)
	mockUserRepo := new(mocks.UserRepository)
	svc := project.NewService(mockProjectRepo, mockUserRepo)

	mockProjectRepo.On("Create", ctx, mock.MatchedBy(func(p *domain.Project) bool {
		return p.Name == "Acme Store" && p.SiteURL == "https://acme.example.com" && p.IsActive
	})).Return(nil).Once()

	proj, err := svc.Create(ctx, domain.CreateProjectInput{
		Name:    "  Acme Store ",
		SiteURL: " https://acme.example.com ",
	})

	assert.NoError(t, err)
	assert.Equal(t, "Acme Store", proj.Name)
	assert.True(t, proj.IsActive)

	mockProjectRepo.AssertExpectations(t)
}

func TestProjectService_Update(t *testing.T) {
	ctx := context.Background()
	projectID := uuid.New()

	t.Run("Clears Credentials With Explicit Null", func(t *testing.T) {
		mockProjectRepo := new(mocks.ProjectRepository)
		mockUserRepo := new(mocks.UserRepository)
		svc := project.NewService(mockProjectRepo, mockUserRepo)

		existing := &domain.Project{ID: projectID, Name: "Acme Store", SearchConsoleToken: strPtr("token")}
		mockProjectRepo.On("GetByID", ctx, projectID).Return(existing, nil).Once()
		mockProjectRepo.On("Update", ctx, mock.MatchedBy(func(p *domain.Project) bool {
			return p.SearchConsoleToken == nil
		})).Return(nil).Once()

		var null *string
		proj, err := svc.Update(ctx, projectID, domain.UpdateProjectInput{SearchConsoleToken: &null})

		assert.NoError(t, err)
		assert.Nil(t, proj.SearchConsoleToken)
		assert.False(t, proj.HasCredentials())
	})

	t.Run("Not Found", func(t *testing.T) {
		mockProjectRepo := new(mocks.ProjectRepository)
		mockUserRepo := new(mocks.UserRepository)
		svc := project.NewService(mockProjectRepo, mockUserRepo)

		mockProjectRepo.On("GetByID", ctx, projectID).Return(nil, nil).Once()

		proj, err := svc.Update(ctx, projectID, domain.UpdateProjectInput{Name: strPtr("New Name")})

		assert.ErrorIs(t, err, project.ErrProjectNotFound)
		assert.Nil(t, proj)
	})
}

func TestProjectService_AddMember(t *testing.T) {
	ctx := context.Background()
	projectID := uuid.New()
	userID := uuid.New()

	t.Run("User Not Found", func(t *testing.T) {
		mockProjectRepo := new(mocks.ProjectRepository)
		mockUserRepo := new(mocks.UserRepository)
		svc := project.NewService(mockProjectRepo, mockUserRepo)

		mockProjectRepo.On("GetByID", ctx, projectID).Return(&domain.Project{ID: projectID}, nil).Once()
		mockUserRepo.On("GetByID", ctx, userID).Return(nil, nil).Once()

		err := svc.AddMember(ctx, projectID, userID, domain.RoleMember)

		assert.ErrorIs(t, err, project.ErrUserNotFound)
	})

	t.Run("Invalid Role Falls Back To Member", func(t *testing.T) {
		mockProjectRepo := new(mocks.ProjectRepository)
		mockUserRepo := new(mocks.UserRepository)
		svc := project.NewService(mockProjectRepo, mockUserRepo)

		mockProjectRepo.On("GetByID", ctx, projectID).Return(&domain.Project{ID: projectID}, nil).Once()
		mockUserRepo.On("GetByID", ctx, userID).Return(&domain.User{ID: userID}, nil).Once()
		mockProjectRepo.On("AddMember", ctx, projectID, userID, domain.RoleMember).Return(nil).Once()

		err := svc.AddMember(ctx, projectID, userID, domain.ProjectRole("admin"))

		assert.NoError(t, err)
		mockProjectRepo.AssertExpectations(t)
	})
}

func TestProjectService_HasCredentials(t *testing.T) {
	assert.False(t, (&domain.Project{}).HasCredentials())
	assert.False(t, (&domain.Project{SearchConsoleToken: strPtr("")}).HasCredentials())
	assert.True(t, (&domain.Project{SearchConsoleToken: strPtr("token")}).HasCredentials())
}
