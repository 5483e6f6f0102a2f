package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/taskforge-dev/taskforge/internal/dto"
	apierrors "github.com/taskforge-dev/taskforge/internal/errors"
	"github.com/taskforge-dev/taskforge/internal/middleware"
	"github.com/taskforge-dev/taskforge/internal/models"
	"github.com/taskforge-dev/taskforge/internal/services"
	"github.com/taskforge-dev/taskforge/internal/utils"
)

// TaskHandler coordinates task HTTP handlers.
type TaskHandler struct {
	taskService *services.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

type taskRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description" binding:"required"`
}

// CreateTask adds a task to the project, manager only.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	var req taskRequest
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

	task, err := h.taskService.CreateTask(project, actor, services.TaskInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskListItemDTO(*task))
}

// ListTasks returns the project's tasks, paginated in creation order.
func (h *TaskHandler) ListTasks(c *gin.Context) {
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

	params := utils.GetPaginationParams(c)

	tasks, total, err := h.taskService.ListProjectTasks(project, actor, params)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskListResponse(tasks, params, total))
}

// GetTask returns one task with its status history and notes.
func (h *TaskHandler) GetTask(c *gin.Context) {
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

	task, exists := middleware.ContextTask(c)
	if !exists {
		apierrors.NotFound(c, "Task not found")
		return
	}

	detail, err := h.taskService.GetTask(project, task, actor)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*detail))
}

// UpdateTask updates a task's name and description, manager only.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	var req taskRequest
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

	task, exists := middleware.ContextTask(c)
	if !exists {
		apierrors.NotFound(c, "Task not found")
		return
	}

	err := h.taskService.UpdateTask(project, task, actor, services.TaskInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskListItemDTO(*task))
}

// UpdateTaskStatus moves a task to a new status, any team member.
func (h *TaskHandler) UpdateTaskStatus(c *gin.Context) {
	type StatusRequest struct {
		Status string `json:"status" binding:"required"`
	}

	var req StatusRequest
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

	task, exists := middleware.ContextTask(c)
	if !exists {
		apierrors.NotFound(c, "Task not found")
		return
	}

	err := h.taskService.UpdateTaskStatus(project, task, actor, models.TaskStatus(req.Status))
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task status updated"})
}

// DeleteTask removes a task and its notes and history, manager only.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
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

	task, exists := middleware.ContextTask(c)
	if !exists {
		apierrors.NotFound(c, "Task not found")
		return
	}

	if err := h.taskService.DeleteTask(project, task, actor); err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task deleted"})
}

func respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrMissingTaskFields),
		errors.Is(err, services.ErrInvalidTaskStatus):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrProjectAccessDenied),
		errors.Is(err, services.ErrNotProjectManager):
		apierrors.Forbidden(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
