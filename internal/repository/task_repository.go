package repository

import (
	"github.com/taskforge-dev/taskforge/internal/database"
	"github.com/taskforge-dev/taskforge/internal/models"
	"github.com/taskforge-dev/taskforge/internal/utils"
	"gorm.io/gorm"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Create(task).Error
}

// FindByID finds a task by ID with optional preloading
func (r *GormTaskRepository) FindByID(id uint64, preload ...string) (*models.Task, error) {
	var task models.Task
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&task, id).Error; err != nil {
		return nil, err
	}

	return &task, nil
}

// ListByProject lists a project's tasks in creation order, paginated
func (r *GormTaskRepository) ListByProject(projectID uint64, params utils.PaginationParams) ([]models.Task, int64, error) {
	query := r.db.Model(&models.Task{}).Where("project_id = ?", projectID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var tasks []models.Task
	err := query.
		Order("tasks.created_at ASC").
		Scopes(database.Paginate(params)).
		Find(&tasks).Error
	if err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

// Update updates a task
func (r *GormTaskRepository) Update(task *models.Task) error {
	return r.db.Save(task).Error
}

// ChangeStatus saves the task's new status and appends the history entry
// atomically, so the log never disagrees with the stored status by more
// than a concurrent writer's own update.
func (r *GormTaskRepository) ChangeStatus(task *models.Task, change *models.TaskStatusChange) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(task).Update("status", task.Status).Error; err != nil {
			return err
		}

		return tx.Create(change).Error
	})
}

// Delete deletes a task and all dependent rows in a transaction.
// Notes and history go before the task itself.
func (r *GormTaskRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", id).Delete(&models.Note{}).Error; err != nil {
			return err
		}

		if err := tx.Where("task_id = ?", id).Delete(&models.TaskStatusChange{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Task{}, id).Error
	})
}
