package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/taskforge-dev/taskforge/internal/constants"
	"github.com/taskforge-dev/taskforge/internal/dto"
	apierrors "github.com/taskforge-dev/taskforge/internal/errors"
	"github.com/taskforge-dev/taskforge/internal/middleware"
	"github.com/taskforge-dev/taskforge/internal/services"
)

// AuthHandler coordinates account lifecycle HTTP handlers.
type AuthHandler struct {
	accountService *services.AccountService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(accountService *services.AccountService) *AuthHandler {
	return &AuthHandler{
		accountService: accountService,
	}
}

// Signup registers a new account and mails a confirmation code.
func (h *AuthHandler) Signup(c *gin.Context) {
	type SignupRequest struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}

	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.accountService.Register(services.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondAccountError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Account created, check your email to confirm it",
		"user":    dto.ToUserDTO(*user),
	})
}

// ConfirmAccount consumes a confirmation code.
func (h *AuthHandler) ConfirmAccount(c *gin.Context) {
	type ConfirmRequest struct {
		Token string `json:"token" binding:"required"`
	}

	var req ConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.accountService.ConfirmAccount(req.Token); err != nil {
		respondAccountError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Account confirmed"})
}

// Login authenticates a user and returns a session token.
func (h *AuthHandler) Login(c *gin.Context) {
	type LoginRequest struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	sessionToken, user, err := h.accountService.Login(services.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondAccountError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": sessionToken,
		"user":  dto.ToUserDTO(*user),
	})
}

// RequestConfirmationCode reissues a confirmation code.
func (h *AuthHandler) RequestConfirmationCode(c *gin.Context) {
	type CodeRequest struct {
		Email string `json:"email" binding:"required,email"`
	}

	var req CodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.accountService.RequestConfirmationCode(req.Email); err != nil {
		respondAccountError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Confirmation code sent"})
}

// ForgotPassword starts the password reset flow. The response is the same
// whether or not the email is registered.
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	type ForgotRequest struct {
		Email string `json:"email" binding:"required,email"`
	}

	var req ForgotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.accountService.ForgotPassword(req.Email); err != nil {
		respondAccountError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "If the account exists, check your email for a reset code"})
}

// ValidateToken checks a reset code before the client asks for the new
// password.
func (h *AuthHandler) ValidateToken(c *gin.Context) {
	type ValidateRequest struct {
		Token string `json:"token" binding:"required"`
	}

	var req ValidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.accountService.ValidateToken(req.Token); err != nil {
		respondAccountError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Token valid, enter your new password"})
}

// UpdatePasswordWithToken consumes a reset code and sets the new password.
func (h *AuthHandler) UpdatePasswordWithToken(c *gin.Context) {
	type UpdateRequest struct {
		Password string `json:"password" binding:"required"`
	}

	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.accountService.UpdatePasswordWithToken(c.Param("token"), req.Password); err != nil {
		respondAccountError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password updated"})
}

// GetCurrentUser returns the authenticated user.
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	user, exists := middleware.CurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// UpdateProfile changes the authenticated user's name and email.
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	type ProfileRequest struct {
		Name  string `json:"name" binding:"required"`
		Email string `json:"email" binding:"required,email"`
	}

	var req ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, exists := middleware.CurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	if err := h.accountService.UpdateProfile(user, req.Name, req.Email); err != nil {
		respondAccountError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile updated"})
}

// UpdatePassword changes the authenticated user's password.
func (h *AuthHandler) UpdatePassword(c *gin.Context) {
	type PasswordRequest struct {
		CurrentPassword string `json:"current_password" binding:"required"`
		Password        string `json:"password" binding:"required"`
	}

	var req PasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, exists := middleware.CurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	if err := h.accountService.UpdatePassword(user, req.CurrentPassword, req.Password); err != nil {
		respondAccountError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password updated"})
}

// CheckPassword verifies the authenticated user's password, used before
// destructive actions like project deletion.
func (h *AuthHandler) CheckPassword(c *gin.Context) {
	type CheckRequest struct {
		Password string `json:"password" binding:"required"`
	}

	var req CheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, exists := middleware.CurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	if err := h.accountService.CheckPassword(user, req.Password); err != nil {
		respondAccountError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password correct"})
}

func respondAccountError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrPasswordTooShort):
		apierrors.BadRequest(c, fmt.Sprintf("Password must be at least %d characters", constants.MinPasswordLength))
	case errors.Is(err, services.ErrMissingAccountFields),
		errors.Is(err, services.ErrSamePassword):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrEmailTaken):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrInvalidToken):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrAccountNotConfirmed),
		errors.Is(err, services.ErrInvalidCredentials):
		apierrors.Unauthorized(c, err.Error())
	case errors.Is(err, services.ErrAlreadyConfirmed):
		apierrors.Forbidden(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
