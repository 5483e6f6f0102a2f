package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/taskforge-dev/taskforge/internal/authz"
	"github.com/taskforge-dev/taskforge/internal/models"
	"github.com/taskforge-dev/taskforge/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrNoteNotFound        = errors.New("note not found")
	ErrNoteContentRequired = errors.New("note content is required")
	ErrNotNoteAuthor       = errors.New("only the note author can delete it")
)

// NoteService handles note business logic.
type NoteService struct {
	noteRepo repository.NoteRepository
}

// NewNoteService creates a new NoteService.
func NewNoteService(noteRepo repository.NoteRepository) *NoteService {
	return &NoteService{
		noteRepo: noteRepo,
	}
}

// CreateNote attaches a note to the task. Any project member can write
// notes; notes are immutable afterwards.
func (s *NoteService) CreateNote(project *models.Project, task *models.Task, actor *models.User, content string) (*models.Note, error) {
	if !authz.CanAccessProject(actor, project) {
		return nil, ErrProjectAccessDenied
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrNoteContentRequired
	}

	note := &models.Note{
		Content:     content,
		TaskID:      task.ID,
		CreatedByID: actor.ID,
	}

	if err := s.noteRepo.Create(note); err != nil {
		return nil, fmt.Errorf("failed to create note: %w", err)
	}

	return note, nil
}

// ListTaskNotes lists the task's notes in creation order.
func (s *NoteService) ListTaskNotes(project *models.Project, task *models.Task, actor *models.User) ([]models.Note, error) {
	if !authz.CanAccessProject(actor, project) {
		return nil, ErrProjectAccessDenied
	}

	notes, err := s.noteRepo.ListByTask(task.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}

	return notes, nil
}

// DeleteNote removes a note. Author only; every check short-circuits before
// anything is mutated.
func (s *NoteService) DeleteNote(project *models.Project, task *models.Task, actor *models.User, noteID uint64) error {
	if !authz.CanAccessProject(actor, project) {
		return ErrProjectAccessDenied
	}

	note, err := s.noteRepo.FindByID(noteID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNoteNotFound
		}
		return fmt.Errorf("failed to find note: %w", err)
	}

	if note.TaskID != task.ID {
		return ErrNoteNotFound
	}

	if !authz.CanDeleteNote(actor, note) {
		return ErrNotNoteAuthor
	}

	if err := s.noteRepo.Delete(note.ID); err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}

	return nil
}
