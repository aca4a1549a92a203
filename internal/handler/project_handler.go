package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"rankwatch/internal/domain"
	"rankwatch/internal/middleware"
	"rankwatch/internal/service/project"
)

type ProjectHandler struct {
	projectService project.Service
}

func NewProjectHandler(projectService project.Service) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

func (h *ProjectHandler) Create(c *fiber.Ctx) error {
	var input domain.CreateProjectInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	if input.Name == "" || input.SiteURL == "" {
		return middleware.BadRequest("name and site_url are required")
	}

	proj, err := h.projectService.Create(c.Context(), input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(proj)
}

func (h *ProjectHandler) List(c *fiber.Ctx) error {
	params := getPaginationParams(c)

	result, err := h.projectService.List(c.Context(), params)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *ProjectHandler) Get(c *fiber.Ctx) error {
	projectID, err := uuid.Parse(c.Params("projectId"))
	if err != nil {
		return middleware.BadRequest("Invalid project ID")
	}

	proj, err := h.projectService.GetByID(c.Context(), projectID)
	if err != nil {
		if errors.Is(err, project.ErrProjectNotFound) {
			return middleware.NotFound("Project not found")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(proj)
}

func (h *ProjectHandler) Update(c *fiber.Ctx) error {
	projectID, err := uuid.Parse(c.Params("projectId"))
	if err != nil {
		return middleware.BadRequest("Invalid project ID")
	}

	var input domain.UpdateProjectInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	proj, err := h.projectService.Update(c.Context(), projectID, input)
	if err != nil {
		if errors.Is(err, project.ErrProjectNotFound) {
			return middleware.NotFound("Project not found")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(proj)
}

func (h *ProjectHandler) Delete(c *fiber.Ctx) error {
	projectID, err := uuid.Parse(c.Params("projectId"))
	if err != nil {
		return middleware.BadRequest("Invalid project ID")
	}

	if err := h.projectService.Delete(c.Context(), projectID); err != nil {
		if errors.Is(err, project.ErrProjectNotFound) {
			return middleware.NotFound("Project not found")
		}
		return err
	}

	return c.Status(fiber.StatusNoContent).SendString("")
}

func (h *ProjectHandler) ListMembers(c *fiber.Ctx) error {
	projectID, err := uuid.Parse(c.Params("projectId"))
	if err != nil {
		return middleware.BadRequest("Invalid project ID")
	}

	members, err := h.projectService.ListMembers(c.Context(), projectID)
	if err != nil {
		if errors.Is(err, project.ErrProjectNotFound) {
			return middleware.NotFound("Project not found")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(members)
}

func (h *ProjectHandler) AddMember(c *fiber.Ctx) error {
	projectID, err := uuid.Parse(c.Params("projectId"))
	if err != nil {
		return middleware.BadRequest("Invalid project ID")
	}

	var body struct {
		UserID uuid.UUID          `json:"user_id"`
		Role   domain.ProjectRole `json:"role"`
	}
	if err := c.BodyParser(&body); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if body.UserID == uuid.Nil {
		return middleware.BadRequest("user_id is required")
	}
	if body.Role == "" {
		body.Role = domain.RoleMember
	}
	if !body.Role.IsValid() {
		return middleware.BadRequest("Invalid role")
	}

	if err := h.projectService.AddMember(c.Context(), projectID, body.UserID, body.Role); err != nil {
		switch {
		case errors.Is(err, project.ErrProjectNotFound):
			return middleware.NotFound("Project not found")
		case errors.Is(err, project.ErrUserNotFound):
			return middleware.NotFound("User not found")
		}
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Member added",
	})
}

func (h *ProjectHandler) RemoveMember(c *fiber.Ctx) error {
	projectID, err := uuid.Parse(c.Params("projectId"))
	if err != nil {
		return middleware.BadRequest("Invalid project ID")
	}

	userID, err := uuid.Parse(c.Params("userId"))
	if err != nil {
		return middleware.BadRequest("Invalid user ID")
	}

	if err := h.projectService.RemoveMember(c.Context(), projectID, userID); err != nil {
		if errors.Is(err, project.ErrProjectNotFound) {
			return middleware.NotFound("Project not found")
		}
		return err
	}

	return c.Status(fiber.StatusNoContent).SendString("")
}

func getPaginationParams(c *fiber.Ctx) domain.PaginationParams {
	params := domain.DefaultPagination()

	if page := c.QueryInt("page", 1); page > 0 {
		params.Page = page
	}
	if pageSize := c.QueryInt("page_size", 20); pageSize > 0 {
		params.PageSize = pageSize
	}

	params.Validate()
	return params
}
