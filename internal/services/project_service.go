package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/taskforge-dev/taskforge/internal/authz"
	"github.com/taskforge-dev/taskforge/internal/models"
	"github.com/taskforge-dev/taskforge/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrProjectNotFound      = errors.New("project not found")
	ErrProjectAccessDenied  = errors.New("not authorized for this project")
	ErrNotProjectManager    = errors.New("only the project manager can perform this action")
	ErrMissingProjectFields = errors.New("project name, client name and description are required")
	ErrAlreadyTeamMember    = errors.New("user already has access to this project")
	ErrTeamMemberNotFound   = errors.New("user is not on the project team")
)

// ProjectService provides business logic for project and team operations.
type ProjectService struct {
	projectRepo repository.ProjectRepository
	userRepo    repository.UserRepository
}

// NewProjectService creates a new ProjectService.
func NewProjectService(projectRepo repository.ProjectRepository, userRepo repository.UserRepository) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		userRepo:    userRepo,
	}
}

// ProjectInput represents the writable project fields.
type ProjectInput struct {
	ProjectName string
	ClientName  string
	Description string
}

func (in *ProjectInput) normalize() error {
	in.ProjectName = strings.TrimSpace(in.ProjectName)
	in.ClientName = strings.TrimSpace(in.ClientName)
	in.Description = strings.TrimSpace(in.Description)

	if in.ProjectName == "" || in.ClientName == "" || in.Description == "" {
		return ErrMissingProjectFields
	}
	return nil
}

// CreateProject creates a project managed by the acting user.
func (s *ProjectService) CreateProject(input ProjectInput, actor *models.User) (*models.Project, error) {
	if err := input.normalize(); err != nil {
		return nil, err
	}

	project := &models.Project{
		ProjectName: input.ProjectName,
		ClientName:  input.ClientName,
		Description: input.Description,
		ManagerID:   actor.ID,
	}

	if err := s.projectRepo.Create(project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	return project, nil
}

// ListProjects returns the projects the acting user manages or belongs to.
func (s *ProjectService) ListProjects(actor *models.User) ([]models.Project, error) {
	projects, err := s.projectRepo.ListForUser(actor.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

// GetProject returns a project with its tasks resolved, for managers and
// team members only.
func (s *ProjectService) GetProject(id uint64, actor *models.User) (*models.Project, error) {
	project, err := s.projectRepo.FindByID(id, "Team", "Tasks")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	if !authz.CanAccessProject(actor, project) {
		return nil, ErrProjectAccessDenied
	}

	return project, nil
}

// UpdateProject overwrites the project's text fields. Tasks, team and
// manager are untouched. Manager only.
func (s *ProjectService) UpdateProject(project *models.Project, actor *models.User, input ProjectInput) error {
	if !authz.CanModifyProject(actor, project) {
		return ErrNotProjectManager
	}

	if err := input.normalize(); err != nil {
		return err
	}

	project.ProjectName = input.ProjectName
	project.ClientName = input.ClientName
	project.Description = input.Description

	if err := s.projectRepo.Update(project); err != nil {
		return fmt.Errorf("failed to update project: %w", err)
	}

	return nil
}

// DeleteProject removes a project and everything it owns. Manager only.
func (s *ProjectService) DeleteProject(project *models.Project, actor *models.User) error {
	if !authz.CanModifyProject(actor, project) {
		return ErrNotProjectManager
	}

	if err := s.projectRepo.Delete(project.ID); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	return nil
}

// FindMemberByEmail looks up a user to add to the team. Manager only.
func (s *ProjectService) FindMemberByEmail(project *models.Project, actor *models.User, email string) (*models.User, error) {
	if !authz.CanModifyProject(actor, project) {
		return nil, ErrNotProjectManager
	}

	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return user, nil
}

// AddMember adds a user to the project team. Manager only.
func (s *ProjectService) AddMember(project *models.Project, actor *models.User, userID uint64) error {
	if !authz.CanModifyProject(actor, project) {
		return ErrNotProjectManager
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	// The manager already has full access.
	if user.ID == project.ManagerID {
		return ErrAlreadyTeamMember
	}

	if _, err := s.projectRepo.FindMember(project.ID, user.ID); err == nil {
		return ErrAlreadyTeamMember
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to verify membership: %w", err)
	}

	member := &models.ProjectMember{
		ProjectID: project.ID,
		UserID:    user.ID,
	}

	if err := s.projectRepo.AddMember(member); err != nil {
		return fmt.Errorf("failed to add team member: %w", err)
	}

	return nil
}

// RemoveMember removes a user from the project team. Manager only.
func (s *ProjectService) RemoveMember(project *models.Project, actor *models.User, userID uint64) error {
	if !authz.CanModifyProject(actor, project) {
		return ErrNotProjectManager
	}

	if _, err := s.projectRepo.FindMember(project.ID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTeamMemberNotFound
		}
		return fmt.Errorf("failed to find team member: %w", err)
	}

	if err := s.projectRepo.RemoveMember(project.ID, userID); err != nil {
		return fmt.Errorf("failed to remove team member: %w", err)
	}

	return nil
}

// ListTeam returns the project team with users resolved.
func (s *ProjectService) ListTeam(project *models.Project, actor *models.User) ([]models.ProjectMember, error) {
	if !authz.CanAccessProject(actor, project) {
		return nil, ErrProjectAccessDenied
	}

	members, err := s.projectRepo.ListMembers(project.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list team members: %w", err)
	}

	return members, nil
}
