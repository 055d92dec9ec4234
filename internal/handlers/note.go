package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tasktracker/task-tracker-api/internal/dto"
	apierrors "github.com/tasktracker/task-tracker-api/internal/errors"
	"github.com/tasktracker/task-tracker-api/internal/services"
)

type NoteHandler struct {
	noteService *services.NoteService
}

func NewNoteHandler(noteService *services.NoteService) *NoteHandler {
	return &NoteHandler{noteService: noteService}
}

type noteRequest struct {
	Content string `json:"content" binding:"required"`
}

// AddNote adds a note to a task and returns the task
func (h *NoteHandler) AddNote(c *gin.Context) {
	taskID, ok := idParam(c, "task")
	if !ok {
		return
	}

	var req noteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.noteService.AddNote(c.Request.Context(), taskID, req.Content)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// UpdateNote replaces the content of a note
func (h *NoteHandler) UpdateNote(c *gin.Context) {
	noteID, ok := idParam(c, "note")
	if !ok {
		return
	}

	var req noteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	note, err := h.noteService.UpdateNote(c.Request.Context(), noteID, req.Content)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToNoteDTO(*note))
}

// DeleteNote deletes a note and its attachments
func (h *NoteHandler) DeleteNote(c *gin.Context) {
	noteID, ok := idParam(c, "note")
	if !ok {
		return
	}

	if err := h.noteService.DeleteNote(c.Request.Context(), noteID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
