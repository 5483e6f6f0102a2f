package dto

import (
	"time"

	"github.com/taskforge-dev/taskforge/internal/models"
	"github.com/taskforge-dev/taskforge/internal/utils"
)

// StatusChangeDTO represents one status history entry
type StatusChangeDTO struct {
	User      *UserDTO          `json:"user,omitempty"`
	UserID    uint64            `json:"user_id"`
	Status    models.TaskStatus `json:"status"`
	CreatedAt time.Time         `json:"created_at"`
}

// TaskDTO represents a task with history and notes in API responses
type TaskDTO struct {
	ID            uint64            `json:"id"`
	Name          string            `json:"name"`
	Description   string            `json:"description"`
	Status        models.TaskStatus `json:"status"`
	ProjectID     uint64            `json:"project_id"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
	StatusHistory []StatusChangeDTO `json:"status_history"`
	Notes         []NoteDTO         `json:"notes"`
}

// TaskListItemDTO represents a task in list responses (minimal data)
type TaskListItemDTO struct {
	ID          uint64            `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Status      models.TaskStatus `json:"status"`
	ProjectID   uint64            `json:"project_id"`
	CreatedAt   time.Time         `json:"created_at"`
}

// TaskListResponse represents a paginated list of tasks
type TaskListResponse struct {
	Tasks      []TaskListItemDTO        `json:"tasks"`
	Pagination utils.PaginationResponse `json:"pagination"`
}

// ToStatusChangeDTO converts a history entry
func ToStatusChangeDTO(change models.TaskStatusChange) StatusChangeDTO {
	dto := StatusChangeDTO{
		UserID:    change.UserID,
		Status:    change.Status,
		CreatedAt: change.CreatedAt,
	}

	if change.User.ID != 0 {
		user := ToUserDTO(change.User)
		dto.User = &user
	}

	return dto
}

// ToTaskDTO converts a Task model with preloaded relations to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	dto := TaskDTO{
		ID:            task.ID,
		Name:          task.Name,
		Description:   task.Description,
		Status:        task.Status,
		ProjectID:     task.ProjectID,
		CreatedAt:     task.CreatedAt,
		UpdatedAt:     task.UpdatedAt,
		StatusHistory: make([]StatusChangeDTO, len(task.StatusHistory)),
		Notes:         make([]NoteDTO, len(task.Notes)),
	}

	for i, change := range task.StatusHistory {
		dto.StatusHistory[i] = ToStatusChangeDTO(change)
	}
	for i, note := range task.Notes {
		dto.Notes[i] = ToNoteDTO(note)
	}

	return dto
}

// ToTaskListItemDTO converts a Task model to TaskListItemDTO
func ToTaskListItemDTO(task models.Task) TaskListItemDTO {
	return TaskListItemDTO{
		ID:          task.ID,
		Name:        task.Name,
		Description: task.Description,
		Status:      task.Status,
		ProjectID:   task.ProjectID,
		CreatedAt:   task.CreatedAt,
	}
}

// ToTaskListResponse converts a slice of tasks to TaskListResponse
func ToTaskListResponse(tasks []models.Task, params utils.PaginationParams, total int64) TaskListResponse {
	items := make([]TaskListItemDTO, len(tasks))
	for i, task := range tasks {
		items[i] = ToTaskListItemDTO(task)
	}

	return TaskListResponse{
		Tasks: items,
		Pagination: utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	}
}
