package dto

import (
	"time"

	"github.com/taskforge-dev/taskforge/internal/models"
)

// ProjectDTO represents a project in API responses
type ProjectDTO struct {
	ID          uint64    `json:"id"`
	ProjectName string    `json:"project_name"`
	ClientName  string    `json:"client_name"`
	Description string    `json:"description"`
	ManagerID   uint64    `json:"manager_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ProjectDetailDTO represents a project with its tasks resolved
type ProjectDetailDTO struct {
	ProjectDTO
	Tasks []TaskListItemDTO `json:"tasks"`
}

// TeamMemberDTO represents a team member in API responses
type TeamMemberDTO struct {
	User     UserDTO   `json:"user"`
	JoinedAt time.Time `json:"joined_at"`
}

// ToProjectDTO converts a Project model to ProjectDTO
func ToProjectDTO(project models.Project) ProjectDTO {
	return ProjectDTO{
		ID:          project.ID,
		ProjectName: project.ProjectName,
		ClientName:  project.ClientName,
		Description: project.Description,
		ManagerID:   project.ManagerID,
		CreatedAt:   project.CreatedAt,
		UpdatedAt:   project.UpdatedAt,
	}
}

// ToProjectDTOs converts a slice of projects
func ToProjectDTOs(projects []models.Project) []ProjectDTO {
	dtos := make([]ProjectDTO, len(projects))
	for i, project := range projects {
		dtos[i] = ToProjectDTO(project)
	}
	return dtos
}

// ToProjectDetailDTO converts a project with preloaded tasks to a detail DTO
func ToProjectDetailDTO(project models.Project) ProjectDetailDTO {
	tasks := make([]TaskListItemDTO, len(project.Tasks))
	for i, task := range project.Tasks {
		tasks[i] = ToTaskListItemDTO(task)
	}

	return ProjectDetailDTO{
		ProjectDTO: ToProjectDTO(project),
		Tasks:      tasks,
	}
}

// ToTeamMemberDTO converts a membership with its user resolved
func ToTeamMemberDTO(member models.ProjectMember) TeamMemberDTO {
	return TeamMemberDTO{
		User:     ToUserDTO(member.User),
		JoinedAt: member.CreatedAt,
	}
}

// ToTeamMemberDTOs converts a slice of memberships
func ToTeamMemberDTOs(members []models.ProjectMember) []TeamMemberDTO {
	dtos := make([]TeamMemberDTO, len(members))
	for i, member := range members {
		dtos[i] = ToTeamMemberDTO(member)
	}
	return dtos
}
