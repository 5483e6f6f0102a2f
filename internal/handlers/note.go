package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/taskforge-dev/taskforge/internal/dto"
	apierrors "github.com/taskforge-dev/taskforge/internal/errors"
	"github.com/taskforge-dev/taskforge/internal/middleware"
	"github.com/taskforge-dev/taskforge/internal/services"
)

// NoteHandler coordinates note HTTP handlers.
type NoteHandler struct {
	noteService *services.NoteService
}

// NewNoteHandler creates a new NoteHandler.
func NewNoteHandler(noteService *services.NoteService) *NoteHandler {
	return &NoteHandler{
		noteService: noteService,
	}
}

// CreateNote attaches a note to the task.
func (h *NoteHandler) CreateNote(c *gin.Context) {
	type NoteRequest struct {
		Content string `json:"content" binding:"required"`
	}

	var req NoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	actor, exists := middleware.CurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	project, exists := middleware.ContextProject(c)
	if !exists {
		apierrors.NotFound(c, "Project not found")
		return
	}

	task, exists := middleware.ContextTask(c)
	if !exists {
		apierrors.NotFound(c, "Task not found")
		return
	}

	note, err := h.noteService.CreateNote(project, task, actor, req.Content)
	if err != nil {
		respondNoteError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToNoteDTO(*note))
}

// ListNotes returns the task's notes in creation order.
func (h *NoteHandler) ListNotes(c *gin.Context) {
	actor, exists := middleware.CurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	project, exists := middleware.ContextProject(c)
	if !exists {
		apierrors.NotFound(c, "Project not found")
		return
	}

	task, exists := middleware.ContextTask(c)
	if !exists {
		apierrors.NotFound(c, "Task not found")
		return
	}

	notes, err := h.noteService.ListTaskNotes(project, task, actor)
	if err != nil {
		respondNoteError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToNoteDTOs(notes))
}

// DeleteNote removes a note, author only.
func (h *NoteHandler) DeleteNote(c *gin.Context) {
	actor, exists := middleware.CurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	project, exists := middleware.ContextProject(c)
	if !exists {
		apierrors.NotFound(c, "Project not found")
		return
	}

	task, exists := middleware.ContextTask(c)
	if !exists {
		apierrors.NotFound(c, "Task not found")
		return
	}

	noteID, ok := parseIDParam(c, "noteId")
	if !ok {
		return
	}

	if err := h.noteService.DeleteNote(project, task, actor, noteID); err != nil {
		respondNoteError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Note deleted"})
}

func respondNoteError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNoteContentRequired):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrNoteNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrProjectAccessDenied),
		errors.Is(err, services.ErrNotNoteAuthor):
		apierrors.Forbidden(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
