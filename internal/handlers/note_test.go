package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/taskforge-dev/taskforge/internal/constants"
	"github.com/taskforge-dev/taskforge/internal/database"
	"github.com/taskforge-dev/taskforge/internal/dto"
	"github.com/taskforge-dev/taskforge/internal/middleware"
	"github.com/taskforge-dev/taskforge/internal/models"
	"github.com/taskforge-dev/taskforge/internal/repository"
	"github.com/taskforge-dev/taskforge/internal/services"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type noteTestEnv struct {
	db      *gorm.DB
	handler *NoteHandler
	manager *models.User
	member  *models.User
	project *models.Project
	task    *models.Task
}

func setupNoteTestEnv(t *testing.T) noteTestEnv {
	t.Helper()

	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Token{},
		&models.Project{},
		&models.ProjectMember{},
		&models.Task{},
		&models.TaskStatusChange{},
		&models.Note{},
	)
	require.NoError(t, err)

	database.SetDB(db)

	noteRepo := repository.NewNoteRepository(db)
	handler := NewNoteHandler(services.NewNoteService(noteRepo))

	manager := createUser(t, db, "manager@example.com")
	member := createUser(t, db, "member@example.com")
	project := createProject(t, db, "Noted project", manager.ID)
	addTeamMember(t, db, project.ID, member.ID)

	task := &models.Task{
		Name:        "Annotated task",
		Description: "Has notes",
		Status:      models.TaskStatusPending,
		ProjectID:   project.ID,
	}
	require.NoError(t, db.Create(task).Error)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return noteTestEnv{
		db:      db,
		handler: handler,
		manager: manager,
		member:  member,
		project: project,
		task:    task,
	}
}

func (env noteTestEnv) routerFor(user *models.User) *gin.Engine {
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(constants.ContextKeyUser, user)
		c.Next()
	})

	task := r.Group("/api/projects/:projectId/tasks/:taskId")
	task.Use(middleware.ProjectExists(), middleware.TaskExists(), middleware.TaskBelongsToProject())
	{
		task.POST("/notes", env.handler.CreateNote)
		task.GET("/notes", env.handler.ListNotes)
		task.DELETE("/notes/:noteId", env.handler.DeleteNote)
	}

	return r
}

func (env noteTestEnv) notesURL() string {
	return fmt.Sprintf("/api/projects/%d/tasks/%d/notes", env.project.ID, env.task.ID)
}

func TestNoteHandler_CreateNote(t *testing.T) {
	env := setupNoteTestEnv(t)

	w := doJSON(t, env.routerFor(env.member), http.MethodPost, env.notesURL(), map[string]string{
		"content": "Blocked on the API contract",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var response dto.NoteDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "Blocked on the API contract", response.Content)
	require.Equal(t, env.member.ID, response.CreatedByID)
	require.Equal(t, env.task.ID, response.TaskID)
}

func TestNoteHandler_CreateNote_OutsiderForbidden(t *testing.T) {
	env := setupNoteTestEnv(t)
	outsider := createUser(t, env.db, "outsider@example.com")

	w := doJSON(t, env.routerFor(outsider), http.MethodPost, env.notesURL(), map[string]string{
		"content": "Should not land",
	})
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestNoteHandler_ListNotes(t *testing.T) {
	env := setupNoteTestEnv(t)

	for _, content := range []string{"First note", "Second note"} {
		require.NoError(t, env.db.Create(&models.Note{
			Content:     content,
			TaskID:      env.task.ID,
			CreatedByID: env.member.ID,
		}).Error)
	}

	w := doJSON(t, env.routerFor(env.manager), http.MethodGet, env.notesURL(), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var notes []dto.NoteDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &notes))
	require.Len(t, notes, 2)
	require.Equal(t, "First note", notes[0].Content)
	require.NotNil(t, notes[0].CreatedBy)
	require.Equal(t, env.member.ID, notes[0].CreatedBy.ID)
}

func TestNoteHandler_DeleteNote_AuthorOnly(t *testing.T) {
	env := setupNoteTestEnv(t)

	note := &models.Note{
		Content:     "Mine to delete",
		TaskID:      env.task.ID,
		CreatedByID: env.member.ID,
	}
	require.NoError(t, env.db.Create(note).Error)

	url := fmt.Sprintf("%s/%d", env.notesURL(), note.ID)

	// Even the project manager cannot delete someone else's note.
	w := doJSON(t, env.routerFor(env.manager), http.MethodDelete, url, nil)
	require.Equal(t, http.StatusForbidden, w.Code)

	var count int64
	env.db.Model(&models.Note{}).Where("id = ?", note.ID).Count(&count)
	require.EqualValues(t, 1, count)

	w = doJSON(t, env.routerFor(env.member), http.MethodDelete, url, nil)
	require.Equal(t, http.StatusOK, w.Code)

	env.db.Model(&models.Note{}).Where("id = ?", note.ID).Count(&count)
	require.Zero(t, count)
}

func TestNoteHandler_DeleteNote_WrongTask(t *testing.T) {
	env := setupNoteTestEnv(t)

	otherTask := &models.Task{
		Name:        "Other task",
		Description: "Different task",
		Status:      models.TaskStatusPending,
		ProjectID:   env.project.ID,
	}
	require.NoError(t, env.db.Create(otherTask).Error)

	note := &models.Note{
		Content:     "Attached elsewhere",
		TaskID:      otherTask.ID,
		CreatedByID: env.member.ID,
	}
	require.NoError(t, env.db.Create(note).Error)

	url := fmt.Sprintf("%s/%d", env.notesURL(), note.ID)
	w := doJSON(t, env.routerFor(env.member), http.MethodDelete, url, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}
