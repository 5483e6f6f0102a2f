package repository

import (
	"time"

	"github.com/taskforge-dev/taskforge/internal/models"
	"gorm.io/gorm"
)

// GormTokenRepository is a GORM implementation of TokenRepository
type GormTokenRepository struct {
	db *gorm.DB
}

// NewTokenRepository creates a new TokenRepository
func NewTokenRepository(db *gorm.DB) TokenRepository {
	return &GormTokenRepository{db: db}
}

// Create creates a new token
func (r *GormTokenRepository) Create(token *models.Token) error {
	return r.db.Create(token).Error
}

// FindValid finds an unexpired token by its code. Expired rows are filtered
// here so a stale code behaves exactly like an unknown one, whether or not
// the sweeper has removed it yet.
func (r *GormTokenRepository) FindValid(code string) (*models.Token, error) {
	var token models.Token
	if err := r.db.Where("token = ? AND expires_at > ?", code, time.Now()).
		Order("created_at DESC").
		First(&token).Error; err != nil {
		return nil, err
	}
	return &token, nil
}

// Delete removes a token
func (r *GormTokenRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Token{}, id).Error
}

// DeleteExpired removes all expired tokens and reports how many
func (r *GormTokenRepository) DeleteExpired() (int64, error) {
	result := r.db.Where("expires_at <= ?", time.Now()).Delete(&models.Token{})
	return result.RowsAffected, result.Error
}
