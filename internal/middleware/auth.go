package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/taskforge-dev/taskforge/internal/auth"
	"github.com/taskforge-dev/taskforge/internal/constants"
	"github.com/taskforge-dev/taskforge/internal/database"
	apierrors "github.com/taskforge-dev/taskforge/internal/errors"
	"github.com/taskforge-dev/taskforge/internal/models"
)

// RequireAuth validates the bearer token and resolves the acting user.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			apierrors.Unauthorized(c, "Authorization token is required")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			apierrors.Unauthorized(c, "Authorization header format must be Bearer {token}")
			c.Abort()
			return
		}

		userID, err := auth.VerifyJWT(parts[1])
		if err != nil {
			apierrors.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		var user models.User
		if err := database.GetDB().First(&user, userID).Error; err != nil {
			apierrors.Unauthorized(c, "User not found")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUser, &user)
		c.Next()
	}
}

// CurrentUser retrieves the acting user from context
func CurrentUser(c *gin.Context) (*models.User, bool) {
	value, exists := c.Get(constants.ContextKeyUser)
	if !exists {
		return nil, false
	}

	user, ok := value.(*models.User)
	return user, ok
}
