package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/taskforge-dev/taskforge/internal/dto"
	apierrors "github.com/taskforge-dev/taskforge/internal/errors"
	"github.com/taskforge-dev/taskforge/internal/middleware"
	"github.com/taskforge-dev/taskforge/internal/services"
)

// ProjectHandler coordinates project and team HTTP handlers.
type ProjectHandler struct {
	projectService *services.ProjectService
}

// NewProjectHandler creates a new ProjectHandler.
func NewProjectHandler(projectService *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
	}
}

type projectRequest struct {
	ProjectName string `json:"project_name" binding:"required"`
	ClientName  string `json:"client_name" binding:"required"`
	Description string `json:"description" binding:"required"`
}

// CreateProject creates a project managed by the authenticated user.
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	actor, exists := middleware.CurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	project, err := h.projectService.CreateProject(services.ProjectInput{
		ProjectName: req.ProjectName,
		ClientName:  req.ClientName,
		Description: req.Description,
	}, actor)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToProjectDTO(*project))
}

// ListProjects returns every project the authenticated user can see.
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	actor, exists := middleware.CurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	projects, err := h.projectService.ListProjects(actor)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectDTOs(projects))
}

// GetProject returns one project with its tasks.
func (h *ProjectHandler) GetProject(c *gin.Context) {
	actor, exists := middleware.CurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	project, exists := middleware.ContextProject(c)
	if !exists {
		apierrors.NotFound(c, "Project not found")
		return
	}

	detail, err := h.projectService.GetProject(project.ID, actor)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectDetailDTO(*detail))
}

// UpdateProject updates a project's fields, manager only.
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	actor, exists := middleware.CurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	project, exists := middleware.ContextProject(c)
	if !exists {
		apierrors.NotFound(c, "Project not found")
		return
	}

	err := h.projectService.UpdateProject(project, actor, services.ProjectInput{
		ProjectName: req.ProjectName,
		ClientName:  req.ClientName,
		Description: req.Description,
	})
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectDTO(*project))
}

// DeleteProject removes a project and everything under it, manager only.
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	actor, exists := middleware.CurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	project, exists := middleware.ContextProject(c)
	if !exists {
		apierrors.NotFound(c, "Project not found")
		return
	}

	if err := h.projectService.DeleteProject(project, actor); err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Project deleted"})
}

// FindMember looks up a user by email for the add-to-team flow.
func (h *ProjectHandler) FindMember(c *gin.Context) {
	type FindRequest struct {
		Email string `json:"email" binding:"required,email"`
	}

	var req FindRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	actor, exists := middleware.CurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	project, exists := middleware.ContextProject(c)
	if !exists {
		apierrors.NotFound(c, "Project not found")
		return
	}

	user, err := h.projectService.FindMemberByEmail(project, actor, req.Email)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// AddMember adds a user to the project team, manager only.
func (h *ProjectHandler) AddMember(c *gin.Context) {
	type AddRequest struct {
		ID uint64 `json:"id" binding:"required"`
	}

	var req AddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	actor, exists := middleware.CurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	project, exists := middleware.ContextProject(c)
	if !exists {
		apierrors.NotFound(c, "Project not found")
		return
	}

	if err := h.projectService.AddMember(project, actor, req.ID); err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Member added to the team"})
}

// ListTeam returns the project's team members.
func (h *ProjectHandler) ListTeam(c *gin.Context) {
	actor, exists := middleware.CurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	project, exists := middleware.ContextProject(c)
	if !exists {
		apierrors.NotFound(c, "Project not found")
		return
	}

	members, err := h.projectService.ListTeam(project, actor)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTeamMemberDTOs(members))
}

// RemoveMember removes a user from the project team, manager only.
func (h *ProjectHandler) RemoveMember(c *gin.Context) {
	actor, exists := middleware.CurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	project, exists := middleware.ContextProject(c)
	if !exists {
		apierrors.NotFound(c, "Project not found")
		return
	}

	userID, ok := parseIDParam(c, "userId")
	if !ok {
		return
	}

	if err := h.projectService.RemoveMember(project, actor, userID); err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Member removed from the team"})
}

func respondProjectError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrMissingProjectFields):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrProjectNotFound),
		errors.Is(err, services.ErrTeamMemberNotFound),
		errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrProjectAccessDenied),
		errors.Is(err, services.ErrNotProjectManager):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrAlreadyTeamMember):
		apierrors.Conflict(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
