package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	apierrors "github.com/tasktracker/task-tracker-api/internal/errors"
	"github.com/tasktracker/task-tracker-api/internal/services"
	"github.com/tasktracker/task-tracker-api/internal/utils"
)

var notFoundMessages = []struct {
	err     error
	message string
}{
	{services.ErrTaskNotFound, "Task not found"},
	{services.ErrUserNotFound, "User not found"},
	{services.ErrNoteNotFound, "Note not found"},
	{services.ErrAttachmentNotFound, "Attachment not found"},
	{services.ErrFileNotFound, "File not found"},
}

var badRequestErrors = []error{
	services.ErrTitleRequired,
	services.ErrTitleEmpty,
	services.ErrContentRequired,
	services.ErrInvalidStatus,
	services.ErrUnsupportedFileType,
	services.ErrFileTooLarge,
}

// respondError maps a service error to an API error response
func respondError(c *gin.Context, err error) {
	for _, nf := range notFoundMessages {
		if errors.Is(err, nf.err) {
			apierrors.NotFound(c, nf.message)
			return
		}
	}

	for _, target := range badRequestErrors {
		if errors.Is(err, target) {
			apierrors.BadRequest(c, err.Error())
			return
		}
	}

	_ = c.Error(err)
	apierrors.InternalError(c, err.Error())
}

// idParam parses the :id path parameter, responding 400 when it is malformed
func idParam(c *gin.Context, resource string) (uint64, bool) {
	id, err := utils.ParseID(c.Param("id"))
	if err != nil {
		apierrors.BadRequest(c, "Invalid "+resource+" ID")
		return 0, false
	}
	return id, true
}
