package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/taskforge-dev/taskforge/internal/auth"
	"github.com/taskforge-dev/taskforge/internal/constants"
	"github.com/taskforge-dev/taskforge/internal/models"
	"github.com/taskforge-dev/taskforge/internal/repository"
	"github.com/taskforge-dev/taskforge/internal/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken           = errors.New("email already registered")
	ErrUserNotFound         = errors.New("user not found")
	ErrInvalidToken         = errors.New("token not valid or expired")
	ErrAccountNotConfirmed  = errors.New("account not confirmed, a new confirmation code has been sent")
	ErrAlreadyConfirmed     = errors.New("account already confirmed")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrPasswordTooShort     = errors.New("password too short")
	ErrSamePassword         = errors.New("new password must be different from the current one")
	ErrMissingAccountFields = errors.New("name and email are required")
	ErrFailedToHashPassword = errors.New("failed to hash password")
	ErrFailedToCreateToken  = errors.New("failed to create token")
)

// Mailer delivers account lifecycle emails without blocking the caller.
type Mailer interface {
	SendConfirmation(name, email, code string)
	SendPasswordReset(name, email, code string)
}

// AccountService handles registration, confirmation, login and password
// recovery.
type AccountService struct {
	userRepo  repository.UserRepository
	tokenRepo repository.TokenRepository
	mailer    Mailer
}

// NewAccountService creates a new AccountService.
func NewAccountService(userRepo repository.UserRepository, tokenRepo repository.TokenRepository, mailer Mailer) *AccountService {
	return &AccountService{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		mailer:    mailer,
	}
}

// RegisterInput represents the required information to create a new account.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// Register creates an unconfirmed user, issues a confirmation code and mails
// it. User and token are persisted as one unit.
func (s *AccountService) Register(input RegisterInput) (*models.User, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if name == "" || email == "" {
		return nil, ErrMissingAccountFields
	}
	if len(input.Password) < constants.MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	if _, err := s.userRepo.FindByEmail(email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hashedPassword),
	}

	token, err := newToken(user.ID)
	if err != nil {
		return nil, ErrFailedToCreateToken
	}

	if err := s.userRepo.CreateWithToken(user, token); err != nil {
		return nil, fmt.Errorf("failed to complete registration: %w", err)
	}

	s.mailer.SendConfirmation(user.Name, user.Email, token.Token)

	return user, nil
}

// ConfirmAccount consumes a valid confirmation code and marks the account
// confirmed. The confirmed transition happens at most once per account.
func (s *AccountService) ConfirmAccount(code string) error {
	token, err := s.tokenRepo.FindValid(code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidToken
		}
		return fmt.Errorf("failed to find token: %w", err)
	}

	user, err := s.userRepo.FindByID(token.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	if err := s.userRepo.ConfirmWithToken(user, token.ID); err != nil {
		return fmt.Errorf("failed to confirm account: %w", err)
	}

	return nil
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Email    string
	Password string
}

// Login verifies credentials and returns a signed session token. An
// unconfirmed account is never logged in; it gets a fresh confirmation code
// by email instead.
func (s *AccountService) Login(input LoginInput) (string, *models.User, error) {
	user, err := s.userRepo.FindByEmail(input.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, ErrUserNotFound
		}
		return "", nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !user.Confirmed {
		if err := s.issueToken(user, s.mailer.SendConfirmation); err != nil {
			return "", nil, err
		}
		return "", nil, ErrAccountNotConfirmed
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	sessionToken, err := auth.GenerateJWT(user.ID)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign session token: %w", err)
	}

	return sessionToken, user, nil
}

// RequestConfirmationCode reissues a confirmation code for an unconfirmed
// account.
func (s *AccountService) RequestConfirmationCode(email string) error {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	if user.Confirmed {
		return ErrAlreadyConfirmed
	}

	return s.issueToken(user, s.mailer.SendConfirmation)
}

// ForgotPassword issues a reset code if the email belongs to an account.
// It reports success either way so the endpoint cannot be used to probe
// which emails are registered.
func (s *AccountService) ForgotPassword(email string) error {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	return s.issueToken(user, s.mailer.SendPasswordReset)
}

// ValidateToken checks that a code exists and has not expired.
func (s *AccountService) ValidateToken(code string) error {
	if _, err := s.tokenRepo.FindValid(code); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidToken
		}
		return fmt.Errorf("failed to find token: %w", err)
	}
	return nil
}

// UpdatePasswordWithToken sets a new password for the account owning the
// code and consumes the code.
func (s *AccountService) UpdatePasswordWithToken(code, password string) error {
	if len(password) < constants.MinPasswordLength {
		return ErrPasswordTooShort
	}

	token, err := s.tokenRepo.FindValid(code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidToken
		}
		return fmt.Errorf("failed to find token: %w", err)
	}

	user, err := s.userRepo.FindByID(token.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return ErrFailedToHashPassword
	}
	user.PasswordHash = string(hashedPassword)

	if err := s.userRepo.UpdatePasswordWithToken(user, token.ID); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}

// GetUser retrieves a user by ID.
func (s *AccountService) GetUser(id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return user, nil
}

// UpdateProfile changes the acting user's name and email. The email must not
// belong to another account.
func (s *AccountService) UpdateProfile(actor *models.User, name, email string) error {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" || email == "" {
		return ErrMissingAccountFields
	}

	if existing, err := s.userRepo.FindByEmail(email); err == nil {
		if existing.ID != actor.ID {
			return ErrEmailTaken
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check email: %w", err)
	}

	actor.Name = name
	actor.Email = email

	if err := s.userRepo.Update(actor); err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}

	return nil
}

// UpdatePassword changes the acting user's password after verifying the
// current one.
func (s *AccountService) UpdatePassword(actor *models.User, currentPassword, newPassword string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(actor.PasswordHash), []byte(currentPassword)); err != nil {
		return ErrInvalidCredentials
	}

	if currentPassword == newPassword {
		return ErrSamePassword
	}
	if len(newPassword) < constants.MinPasswordLength {
		return ErrPasswordTooShort
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return ErrFailedToHashPassword
	}
	actor.PasswordHash = string(hashedPassword)

	if err := s.userRepo.Update(actor); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}

// CheckPassword verifies the acting user's password.
func (s *AccountService) CheckPassword(actor *models.User, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(actor.PasswordHash), []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// issueToken creates a fresh code for the user and hands it to send.
// Earlier codes are left alone; they lapse on their own expiry.
func (s *AccountService) issueToken(user *models.User, send func(name, email, code string)) error {
	token, err := newToken(user.ID)
	if err != nil {
		return ErrFailedToCreateToken
	}

	if err := s.tokenRepo.Create(token); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}

	send(user.Name, user.Email, token.Token)
	return nil
}

func newToken(userID uint64) (*models.Token, error) {
	code, err := utils.GenerateCode()
	if err != nil {
		return nil, err
	}

	return &models.Token{
		Token:     code,
		UserID:    userID,
		ExpiresAt: time.Now().Add(constants.TokenTTL),
	}, nil
}
