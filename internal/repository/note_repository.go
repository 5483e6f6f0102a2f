package repository

import (
	"github.com/taskforge-dev/taskforge/internal/models"
	"gorm.io/gorm"
)

// GormNoteRepository is a GORM implementation of NoteRepository
type GormNoteRepository struct {
	db *gorm.DB
}

// NewNoteRepository creates a new NoteRepository
func NewNoteRepository(db *gorm.DB) NoteRepository {
	return &GormNoteRepository{db: db}
}

// Create creates a new note
func (r *GormNoteRepository) Create(note *models.Note) error {
	return r.db.Create(note).Error
}

// FindByID finds a note by ID
func (r *GormNoteRepository) FindByID(id uint64) (*models.Note, error) {
	var note models.Note
	if err := r.db.First(&note, id).Error; err != nil {
		return nil, err
	}
	return &note, nil
}

// ListByTask lists a task's notes in creation order
func (r *GormNoteRepository) ListByTask(taskID uint64) ([]models.Note, error) {
	var notes []models.Note
	if err := r.db.Preload("CreatedBy").
		Where("task_id = ?", taskID).
		Order("created_at ASC").
		Find(&notes).Error; err != nil {
		return nil, err
	}
	return notes, nil
}

// Delete removes a note
func (r *GormNoteRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Note{}, id).Error
}
