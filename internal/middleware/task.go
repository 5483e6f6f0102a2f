package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/taskforge-dev/taskforge/internal/constants"
	"github.com/taskforge-dev/taskforge/internal/database"
	apierrors "github.com/taskforge-dev/taskforge/internal/errors"
	"github.com/taskforge-dev/taskforge/internal/models"
)

// TaskExists resolves the taskId path parameter and stores the task in
// context.
func TaskExists() gin.HandlerFunc {
	return func(c *gin.Context) {
		taskID, err := strconv.ParseUint(c.Param("taskId"), 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid task ID")
			c.Abort()
			return
		}

		var task models.Task
		if err := database.GetDB().First(&task, taskID).Error; err != nil {
			apierrors.NotFound(c, "Task not found")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyTask, &task)
		c.Next()
	}
}

// TaskBelongsToProject rejects a task reached through the wrong project
// path. A mismatch reads as not-found, not forbidden.
func TaskBelongsToProject() gin.HandlerFunc {
	return func(c *gin.Context) {
		project, okProject := ContextProject(c)
		task, okTask := ContextTask(c)
		if !okProject || !okTask || task.ProjectID != project.ID {
			apierrors.NotFound(c, "Task not found in project")
			c.Abort()
			return
		}

		c.Next()
	}
}

// ContextTask retrieves the resolved task from context
func ContextTask(c *gin.Context) (*models.Task, bool) {
	value, exists := c.Get(constants.ContextKeyTask)
	if !exists {
		return nil, false
	}

	task, ok := value.(*models.Task)
	return task, ok
}
