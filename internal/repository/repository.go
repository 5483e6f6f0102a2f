package repository

import (
	"github.com/taskforge-dev/taskforge/internal/models"
	"github.com/taskforge-dev/taskforge/internal/utils"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// CreateWithToken creates a user and their confirmation token within a
	// single transaction.
	CreateWithToken(user *models.User, token *models.Token) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email, compared case-insensitively
	FindByEmail(email string) (*models.User, error)

	// Update updates a user
	Update(user *models.User) error

	// ConfirmWithToken marks the user confirmed and consumes the token in a
	// single transaction.
	ConfirmWithToken(user *models.User, tokenID uint64) error

	// UpdatePasswordWithToken saves the user's new password hash and consumes
	// the token in a single transaction.
	UpdatePasswordWithToken(user *models.User, tokenID uint64) error
}

// TokenRepository defines the interface for confirmation/reset code access
type TokenRepository interface {
	// Create creates a new token
	Create(token *models.Token) error

	// FindValid finds an unexpired token by its code
	FindValid(code string) (*models.Token, error)

	// Delete removes a token
	Delete(id uint64) error

	// DeleteExpired removes all expired tokens and reports how many
	DeleteExpired() (int64, error)
}

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	// Create creates a new project
	Create(project *models.Project) error

	// FindByID finds a project by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Project, error)

	// ListForUser lists projects where the user is manager or on the team
	ListForUser(userID uint64) ([]models.Project, error)

	// Update updates a project
	Update(project *models.Project) error

	// Delete deletes a project and cascades to its tasks and their notes
	Delete(id uint64) error

	// AddMember adds a user to the project team
	AddMember(member *models.ProjectMember) error

	// RemoveMember removes a user from the project team
	RemoveMember(projectID, userID uint64) error

	// FindMember finds a specific team membership
	FindMember(projectID, userID uint64) (*models.ProjectMember, error)

	// ListMembers lists the project team with users resolved
	ListMembers(projectID uint64) ([]models.ProjectMember, error)
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds a task by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Task, error)

	// ListByProject lists a project's tasks in creation order, paginated
	ListByProject(projectID uint64, params utils.PaginationParams) ([]models.Task, int64, error)

	// Update updates a task
	Update(task *models.Task) error

	// ChangeStatus saves the task's new status and appends the history entry
	// in a single transaction.
	ChangeStatus(task *models.Task, change *models.TaskStatusChange) error

	// Delete deletes a task and cascades to its notes and status history
	Delete(id uint64) error
}

// NoteRepository defines the interface for note data access
type NoteRepository interface {
	// Create creates a new note
	Create(note *models.Note) error

	// FindByID finds a note by ID
	FindByID(id uint64) (*models.Note, error)

	// ListByTask lists a task's notes in creation order
	ListByTask(taskID uint64) ([]models.Note, error)

	// Delete removes a note
	Delete(id uint64) error
}
