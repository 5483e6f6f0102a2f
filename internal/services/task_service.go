package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/taskforge-dev/taskforge/internal/authz"
	"github.com/taskforge-dev/taskforge/internal/models"
	"github.com/taskforge-dev/taskforge/internal/repository"
	"github.com/taskforge-dev/taskforge/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound      = errors.New("task not found")
	ErrMissingTaskFields = errors.New("task name and description are required")
	ErrInvalidTaskStatus = errors.New("invalid task status")
)

// TaskService handles task business logic.
type TaskService struct {
	taskRepo repository.TaskRepository
}

// NewTaskService creates a new TaskService.
func NewTaskService(taskRepo repository.TaskRepository) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
	}
}

// TaskInput represents the writable task fields.
type TaskInput struct {
	Name        string
	Description string
}

func (in *TaskInput) normalize() error {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)

	if in.Name == "" || in.Description == "" {
		return ErrMissingTaskFields
	}
	return nil
}

// CreateTask creates a task under the project. Manager only; the initial
// status is always pending and the history starts empty.
func (s *TaskService) CreateTask(project *models.Project, actor *models.User, input TaskInput) (*models.Task, error) {
	if !authz.CanModifyTask(actor, project) {
		return nil, ErrNotProjectManager
	}

	if err := input.normalize(); err != nil {
		return nil, err
	}

	task := &models.Task{
		Name:        input.Name,
		Description: input.Description,
		Status:      models.TaskStatusPending,
		ProjectID:   project.ID,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

// ListProjectTasks lists the project's tasks in creation order.
func (s *TaskService) ListProjectTasks(project *models.Project, actor *models.User, params utils.PaginationParams) ([]models.Task, int64, error) {
	if !authz.CanAccessProject(actor, project) {
		return nil, 0, ErrProjectAccessDenied
	}

	tasks, total, err := s.taskRepo.ListByProject(project.ID, params)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}

	return tasks, total, nil
}

// GetTask returns the task with its status history and notes resolved.
func (s *TaskService) GetTask(project *models.Project, task *models.Task, actor *models.User) (*models.Task, error) {
	if !authz.CanAccessProject(actor, project) {
		return nil, ErrProjectAccessDenied
	}

	loaded, err := s.taskRepo.FindByID(task.ID, "StatusHistory", "StatusHistory.User", "Notes", "Notes.CreatedBy")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	return loaded, nil
}

// UpdateTask overwrites the task's name and description. Manager only.
func (s *TaskService) UpdateTask(project *models.Project, task *models.Task, actor *models.User, input TaskInput) error {
	if !authz.CanModifyTask(actor, project) {
		return ErrNotProjectManager
	}

	if err := input.normalize(); err != nil {
		return err
	}

	task.Name = input.Name
	task.Description = input.Description

	if err := s.taskRepo.Update(task); err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}

	return nil
}

// UpdateTaskStatus moves the task to a new status and appends a history
// entry. Any project member can change status; every transition is recorded
// even when the status repeats.
func (s *TaskService) UpdateTaskStatus(project *models.Project, task *models.Task, actor *models.User, status models.TaskStatus) error {
	if !authz.CanChangeTaskStatus(actor, project) {
		return ErrProjectAccessDenied
	}

	if !status.Valid() {
		return ErrInvalidTaskStatus
	}

	task.Status = status
	change := &models.TaskStatusChange{
		TaskID: task.ID,
		UserID: actor.ID,
		Status: status,
	}

	if err := s.taskRepo.ChangeStatus(task, change); err != nil {
		return fmt.Errorf("failed to update task status: %w", err)
	}

	return nil
}

// DeleteTask removes the task and its notes. Manager only.
func (s *TaskService) DeleteTask(project *models.Project, task *models.Task, actor *models.User) error {
	if !authz.CanModifyTask(actor, project) {
		return ErrNotProjectManager
	}

	// Middleware already rejects path mismatches; keep the invariant local
	// for direct callers too.
	if task.ProjectID != project.ID {
		return ErrTaskNotFound
	}

	if err := s.taskRepo.Delete(task.ID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	return nil
}
