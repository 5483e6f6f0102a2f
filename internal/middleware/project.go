package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/taskforge-dev/taskforge/internal/constants"
	"github.com/taskforge-dev/taskforge/internal/database"
	apierrors "github.com/taskforge-dev/taskforge/internal/errors"
	"github.com/taskforge-dev/taskforge/internal/models"
)

// ProjectExists resolves the projectId path parameter and stores the project
// in context. Authorization is decided later, per operation; this middleware
// only answers existence.
func ProjectExists() gin.HandlerFunc {
	return func(c *gin.Context) {
		projectID, err := strconv.ParseUint(c.Param("projectId"), 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid project ID")
			c.Abort()
			return
		}

		var project models.Project
		if err := database.GetDB().Preload("Team").First(&project, projectID).Error; err != nil {
			apierrors.NotFound(c, "Project not found")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyProject, &project)
		c.Next()
	}
}

// ContextProject retrieves the resolved project from context
func ContextProject(c *gin.Context) (*models.Project, bool) {
	value, exists := c.Get(constants.ContextKeyProject)
	if !exists {
		return nil, false
	}

	project, ok := value.(*models.Project)
	return project, ok
}
