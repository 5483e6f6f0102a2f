package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
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

// TaskHandlerTestSuite defines the test suite for TaskHandler
type TaskHandlerTestSuite struct {
	suite.Suite
	db      *gorm.DB
	handler *TaskHandler
	manager *models.User
	member  *models.User
	project *models.Project
}

// SetupTest runs before each test
func (suite *TaskHandlerTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(
		&models.User{},
		&models.Token{},
		&models.Project{},
		&models.ProjectMember{},
		&models.Task{},
		&models.TaskStatusChange{},
		&models.Note{},
	)
	suite.Require().NoError(err)

	database.SetDB(suite.db)

	taskRepo := repository.NewTaskRepository(suite.db)
	suite.handler = NewTaskHandler(services.NewTaskService(taskRepo))

	gin.SetMode(gin.TestMode)

	suite.manager = suite.createTestUser("manager@example.com")
	suite.member = suite.createTestUser("member@example.com")
	suite.project = suite.createTestProject("Website redesign", suite.manager.ID)
	suite.addToTeam(suite.project.ID, suite.member.ID)
}

// TearDownTest runs after each test
func (suite *TaskHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *TaskHandlerTestSuite) createTestUser(email string) *models.User {
	user := &models.User{
		Name:         "Test User",
		Email:        email,
		PasswordHash: "hashedpassword",
		Confirmed:    true,
	}
	suite.db.Create(user)
	return user
}

func (suite *TaskHandlerTestSuite) createTestProject(name string, managerID uint64) *models.Project {
	project := &models.Project{
		ProjectName: name,
		ClientName:  "ACME",
		Description: "Test project",
		ManagerID:   managerID,
	}
	suite.db.Create(project)
	return project
}

func (suite *TaskHandlerTestSuite) addToTeam(projectID, userID uint64) {
	suite.db.Create(&models.ProjectMember{
		ProjectID: projectID,
		UserID:    userID,
	})
}

func (suite *TaskHandlerTestSuite) createTestTask(name string) *models.Task {
	task := &models.Task{
		Name:        name,
		Description: "Test description",
		Status:      models.TaskStatusPending,
		ProjectID:   suite.project.ID,
	}
	suite.db.Create(task)
	return task
}

// routerFor builds the task routes with the given user as the authenticated
// actor.
func (suite *TaskHandlerTestSuite) routerFor(user *models.User) *gin.Engine {
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(constants.ContextKeyUser, user)
		c.Next()
	})

	project := r.Group("/api/projects/:projectId")
	project.Use(middleware.ProjectExists())
	{
		project.POST("/tasks", suite.handler.CreateTask)
		project.GET("/tasks", suite.handler.ListTasks)

		task := project.Group("/tasks/:taskId")
		task.Use(middleware.TaskExists(), middleware.TaskBelongsToProject())
		{
			task.GET("", suite.handler.GetTask)
			task.PUT("", suite.handler.UpdateTask)
			task.POST("/status", suite.handler.UpdateTaskStatus)
			task.DELETE("", suite.handler.DeleteTask)
		}
	}

	return r
}

func (suite *TaskHandlerTestSuite) doJSON(r *gin.Engine, method, url string, payload any) *httptest.ResponseRecorder {
	var req *http.Request
	if payload != nil {
		body, err := json.Marshal(payload)
		suite.Require().NoError(err)
		req = httptest.NewRequest(method, url, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func (suite *TaskHandlerTestSuite) tasksURL() string {
	return fmt.Sprintf("/api/projects/%d/tasks", suite.project.ID)
}

func (suite *TaskHandlerTestSuite) taskURL(taskID uint64) string {
	return fmt.Sprintf("/api/projects/%d/tasks/%d", suite.project.ID, taskID)
}

func (suite *TaskHandlerTestSuite) TestCreateTask_ManagerOnly() {
	payload := map[string]string{
		"name":        "Design homepage",
		"description": "Hero section and nav",
	}

	w := suite.doJSON(suite.routerFor(suite.member), http.MethodPost, suite.tasksURL(), payload)
	suite.Equal(http.StatusForbidden, w.Code)

	w = suite.doJSON(suite.routerFor(suite.manager), http.MethodPost, suite.tasksURL(), payload)
	suite.Equal(http.StatusCreated, w.Code)

	var response dto.TaskListItemDTO
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.Equal("Design homepage", response.Name)
	suite.Equal(models.TaskStatusPending, response.Status)
	suite.Equal(suite.project.ID, response.ProjectID)
}

func (suite *TaskHandlerTestSuite) TestListTasks_Paginated() {
	suite.createTestTask("First")
	suite.createTestTask("Second")
	suite.createTestTask("Third")

	w := suite.doJSON(suite.routerFor(suite.member), http.MethodGet, suite.tasksURL()+"?page=1&limit=2", nil)
	suite.Equal(http.StatusOK, w.Code)

	var response dto.TaskListResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.Len(response.Tasks, 2)
	suite.EqualValues(3, response.Pagination.Total)
	suite.Equal("First", response.Tasks[0].Name)
	suite.Equal("Second", response.Tasks[1].Name)

	w = suite.doJSON(suite.routerFor(suite.member), http.MethodGet, suite.tasksURL()+"?page=2&limit=2", nil)
	suite.Equal(http.StatusOK, w.Code)

	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.Len(response.Tasks, 1)
	suite.Equal("Third", response.Tasks[0].Name)
}

func (suite *TaskHandlerTestSuite) TestListTasks_OutsiderForbidden() {
	outsider := suite.createTestUser("outsider@example.com")
	suite.createTestTask("Hidden")

	w := suite.doJSON(suite.routerFor(outsider), http.MethodGet, suite.tasksURL(), nil)
	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *TaskHandlerTestSuite) TestGetTask_IncludesHistoryAndNotes() {
	task := suite.createTestTask("Tracked")
	suite.db.Create(&models.TaskStatusChange{
		TaskID: task.ID,
		UserID: suite.member.ID,
		Status: models.TaskStatusInProgress,
	})
	suite.db.Create(&models.Note{
		Content:     "Started work",
		TaskID:      task.ID,
		CreatedByID: suite.member.ID,
	})

	w := suite.doJSON(suite.routerFor(suite.member), http.MethodGet, suite.taskURL(task.ID), nil)
	suite.Equal(http.StatusOK, w.Code)

	var response dto.TaskDTO
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.Require().Len(response.StatusHistory, 1)
	suite.Equal(models.TaskStatusInProgress, response.StatusHistory[0].Status)
	suite.Require().NotNil(response.StatusHistory[0].User)
	suite.Equal(suite.member.ID, response.StatusHistory[0].User.ID)
	suite.Require().Len(response.Notes, 1)
	suite.Equal("Started work", response.Notes[0].Content)
}

func (suite *TaskHandlerTestSuite) TestGetTask_WrongProject() {
	other := suite.createTestProject("Other project", suite.manager.ID)
	task := &models.Task{
		Name:        "Elsewhere",
		Description: "Lives in another project",
		Status:      models.TaskStatusPending,
		ProjectID:   other.ID,
	}
	suite.db.Create(task)

	w := suite.doJSON(suite.routerFor(suite.manager), http.MethodGet, suite.taskURL(task.ID), nil)
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *TaskHandlerTestSuite) TestUpdateTask_ManagerOnly() {
	task := suite.createTestTask("Old name")
	payload := map[string]string{
		"name":        "New name",
		"description": "New description",
	}

	w := suite.doJSON(suite.routerFor(suite.member), http.MethodPut, suite.taskURL(task.ID), payload)
	suite.Equal(http.StatusForbidden, w.Code)

	w = suite.doJSON(suite.routerFor(suite.manager), http.MethodPut, suite.taskURL(task.ID), payload)
	suite.Equal(http.StatusOK, w.Code)

	var saved models.Task
	suite.Require().NoError(suite.db.First(&saved, task.ID).Error)
	suite.Equal("New name", saved.Name)
}

func (suite *TaskHandlerTestSuite) TestUpdateTaskStatus_RecordsHistory() {
	task := suite.createTestTask("Moving")

	w := suite.doJSON(suite.routerFor(suite.member), http.MethodPost, suite.taskURL(task.ID)+"/status", map[string]string{
		"status": "in-progress",
	})
	suite.Equal(http.StatusOK, w.Code)

	w = suite.doJSON(suite.routerFor(suite.manager), http.MethodPost, suite.taskURL(task.ID)+"/status", map[string]string{
		"status": "completed",
	})
	suite.Equal(http.StatusOK, w.Code)

	var saved models.Task
	suite.Require().NoError(suite.db.First(&saved, task.ID).Error)
	suite.Equal(models.TaskStatusCompleted, saved.Status)

	var history []models.TaskStatusChange
	suite.Require().NoError(suite.db.Where("task_id = ?", task.ID).Order("created_at ASC, id ASC").Find(&history).Error)
	suite.Require().Len(history, 2)
	suite.Equal(models.TaskStatusInProgress, history[0].Status)
	suite.Equal(suite.member.ID, history[0].UserID)
	suite.Equal(models.TaskStatusCompleted, history[1].Status)
	suite.Equal(suite.manager.ID, history[1].UserID)
}

func (suite *TaskHandlerTestSuite) TestUpdateTaskStatus_InvalidStatus() {
	task := suite.createTestTask("Stuck")

	w := suite.doJSON(suite.routerFor(suite.member), http.MethodPost, suite.taskURL(task.ID)+"/status", map[string]string{
		"status": "done",
	})
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *TaskHandlerTestSuite) TestDeleteTask_CascadesNotesAndHistory() {
	task := suite.createTestTask("Doomed")
	suite.db.Create(&models.Note{
		Content:     "Will vanish",
		TaskID:      task.ID,
		CreatedByID: suite.member.ID,
	})
	suite.db.Create(&models.TaskStatusChange{
		TaskID: task.ID,
		UserID: suite.member.ID,
		Status: models.TaskStatusInProgress,
	})

	w := suite.doJSON(suite.routerFor(suite.member), http.MethodDelete, suite.taskURL(task.ID), nil)
	suite.Equal(http.StatusForbidden, w.Code)

	w = suite.doJSON(suite.routerFor(suite.manager), http.MethodDelete, suite.taskURL(task.ID), nil)
	suite.Equal(http.StatusOK, w.Code)

	var noteCount, historyCount int64
	suite.db.Model(&models.Note{}).Where("task_id = ?", task.ID).Count(&noteCount)
	suite.db.Model(&models.TaskStatusChange{}).Where("task_id = ?", task.ID).Count(&historyCount)
	suite.Zero(noteCount)
	suite.Zero(historyCount)

	w = suite.doJSON(suite.routerFor(suite.manager), http.MethodGet, suite.taskURL(task.ID), nil)
	suite.Equal(http.StatusNotFound, w.Code)
}

// TestTaskHandlerTestSuite runs the test suite
func TestTaskHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(TaskHandlerTestSuite))
}
