// Package authz holds the authorization rules for projects, tasks and notes
// in one place. Every function is a pure predicate over already-loaded
// entities: no storage access, no errors, and nil inputs always deny.
package authz

import "github.com/taskforge-dev/taskforge/internal/models"

// Role is the relationship between a user and a project.
type Role int

const (
	RoleNone Role = iota
	RoleTeamMember
	RoleManager
)

func (r Role) String() string {
	switch r {
	case RoleManager:
		return "manager"
	case RoleTeamMember:
		return "team-member"
	default:
		return "none"
	}
}

// RoleOf resolves the user's role on a project. The project's Team relation
// must be loaded; an empty team simply yields no membership.
func RoleOf(user *models.User, project *models.Project) Role {
	if user == nil || project == nil || user.ID == 0 {
		return RoleNone
	}
	if project.ManagerID == user.ID {
		return RoleManager
	}
	for _, m := range project.Team {
		if m.UserID == user.ID {
			return RoleTeamMember
		}
	}
	return RoleNone
}

// CanAccessProject reports whether the user may read the project and its
// tasks and notes: true for the manager and for team members.
func CanAccessProject(user *models.User, project *models.Project) bool {
	return RoleOf(user, project) != RoleNone
}

// CanModifyProject reports whether the user may update or delete the project
// itself, or manage its team. Manager only.
func CanModifyProject(user *models.User, project *models.Project) bool {
	return RoleOf(user, project) == RoleManager
}

// CanModifyTask reports whether the user may create, update or delete tasks
// in the project. Task mutation follows the manager-only project rule; team
// members are limited to reading tasks, changing status and writing notes.
func CanModifyTask(user *models.User, project *models.Project) bool {
	return CanModifyProject(user, project)
}

// CanChangeTaskStatus reports whether the user may move a task between
// statuses. Any user with project access can.
func CanChangeTaskStatus(user *models.User, project *models.Project) bool {
	return CanAccessProject(user, project)
}

// CanDeleteNote reports whether the user may delete the note. Author only.
func CanDeleteNote(user *models.User, note *models.Note) bool {
	if user == nil || note == nil || user.ID == 0 {
		return false
	}
	return note.CreatedByID == user.ID
}
