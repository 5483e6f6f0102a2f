package authz

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/taskforge-dev/taskforge/internal/models"
)

func projectWithTeam(managerID uint64, teamIDs ...uint64) *models.Project {
	project := &models.Project{
		ID:        1,
		ManagerID: managerID,
	}
	for _, id := range teamIDs {
		project.Team = append(project.Team, models.ProjectMember{
			ProjectID: project.ID,
			UserID:    id,
		})
	}
	return project
}

func TestRoleOf(t *testing.T) {
	manager := &models.User{ID: 10}
	member := &models.User{ID: 20}
	stranger := &models.User{ID: 30}

	project := projectWithTeam(manager.ID, member.ID)

	require.Equal(t, RoleManager, RoleOf(manager, project))
	require.Equal(t, RoleTeamMember, RoleOf(member, project))
	require.Equal(t, RoleNone, RoleOf(stranger, project))
}

func TestRoleOf_NilInputs(t *testing.T) {
	project := projectWithTeam(10, 20)

	require.Equal(t, RoleNone, RoleOf(nil, project))
	require.Equal(t, RoleNone, RoleOf(&models.User{ID: 10}, nil))
	require.Equal(t, RoleNone, RoleOf(nil, nil))
	require.Equal(t, RoleNone, RoleOf(&models.User{}, project), "zero user id must not match anything")
}

func TestProjectPermissions(t *testing.T) {
	manager := &models.User{ID: 10}
	member := &models.User{ID: 20}
	stranger := &models.User{ID: 30}

	project := projectWithTeam(manager.ID, member.ID)

	tests := []struct {
		name      string
		user      *models.User
		access    bool
		modify    bool
		task      bool
		status    bool
	}{
		{"manager", manager, true, true, true, true},
		{"team member", member, true, false, false, true},
		{"stranger", stranger, false, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.access, CanAccessProject(tt.user, project))
			require.Equal(t, tt.modify, CanModifyProject(tt.user, project))
			require.Equal(t, tt.task, CanModifyTask(tt.user, project))
			require.Equal(t, tt.status, CanChangeTaskStatus(tt.user, project))
		})
	}
}

func TestCanDeleteNote(t *testing.T) {
	author := &models.User{ID: 5}
	other := &models.User{ID: 6}
	note := &models.Note{ID: 1, CreatedByID: author.ID}

	require.True(t, CanDeleteNote(author, note))
	require.False(t, CanDeleteNote(other, note))
	require.False(t, CanDeleteNote(nil, note))
	require.False(t, CanDeleteNote(author, nil))
}
