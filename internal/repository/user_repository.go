package repository

import (
	"errors"
	"fmt"

	"github.com/taskforge-dev/taskforge/internal/models"
	"gorm.io/gorm"
)

var (
	// ErrCreateUser is returned when creating a user fails inside the registration transaction.
	ErrCreateUser = errors.New("user repository: create user failed")
	// ErrCreateToken is returned when creating the confirmation token fails inside the registration transaction.
	ErrCreateToken = errors.New("user repository: create token failed")
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new user
func (r *GormUserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// CreateWithToken creates the user and their confirmation token atomically.
func (r *GormUserRepository) CreateWithToken(user *models.User, token *models.Token) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrCreateUser, err)
		}

		token.UserID = user.ID

		if err := tx.Create(token).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrCreateToken, err)
		}

		return nil
	})
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(id uint64) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail finds a user by email, compared case-insensitively
func (r *GormUserRepository) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("lower(email) = lower(?)", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Update updates a user
func (r *GormUserRepository) Update(user *models.User) error {
	return r.db.Save(user).Error
}

// ConfirmWithToken marks the user confirmed and consumes the token.
func (r *GormUserRepository) ConfirmWithToken(user *models.User, tokenID uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(user).Update("confirmed", true).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Token{}, tokenID).Error
	})
}

// UpdatePasswordWithToken saves the new password hash and consumes the token.
func (r *GormUserRepository) UpdatePasswordWithToken(user *models.User, tokenID uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(user).Update("password_hash", user.PasswordHash).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Token{}, tokenID).Error
	})
}
