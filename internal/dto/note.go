package dto

import (
	"time"

	"github.com/taskforge-dev/taskforge/internal/models"
)

// NoteDTO represents a note in API responses
type NoteDTO struct {
	ID          uint64    `json:"id"`
	Content     string    `json:"content"`
	TaskID      uint64    `json:"task_id"`
	CreatedByID uint64    `json:"created_by_id"`
	CreatedBy   *UserDTO  `json:"created_by,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// ToNoteDTO converts a Note model to NoteDTO
func ToNoteDTO(note models.Note) NoteDTO {
	dto := NoteDTO{
		ID:          note.ID,
		Content:     note.Content,
		TaskID:      note.TaskID,
		CreatedByID: note.CreatedByID,
		CreatedAt:   note.CreatedAt,
	}

	if note.CreatedBy.ID != 0 {
		user := ToUserDTO(note.CreatedBy)
		dto.CreatedBy = &user
	}

	return dto
}

// ToNoteDTOs converts a slice of notes
func ToNoteDTOs(notes []models.Note) []NoteDTO {
	dtos := make([]NoteDTO, len(notes))
	for i, note := range notes {
		dtos[i] = ToNoteDTO(note)
	}
	return dtos
}
