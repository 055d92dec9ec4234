package handlers

import (
	"errors"
	"fmt"
	"mime"
	"net/http"

	"github.com/dustin/go-humanize"
	"github.com/gin-gonic/gin"

	"github.com/tasktracker/task-tracker-api/internal/dto"
	apierrors "github.com/tasktracker/task-tracker-api/internal/errors"
	"github.com/tasktracker/task-tracker-api/internal/services"
)

// multipartOverhead is the allowance for multipart headers and boundaries
// on top of the file size limit.
const multipartOverhead = 1 << 20

type AttachmentHandler struct {
	attachmentService *services.AttachmentService
}

func NewAttachmentHandler(attachmentService *services.AttachmentService) *AttachmentHandler {
	return &AttachmentHandler{attachmentService: attachmentService}
}

// UploadAttachment stores the multipart "file" field against a note
func (h *AttachmentHandler) UploadAttachment(c *gin.Context) {
	noteID, ok := idParam(c, "note")
	if !ok {
		return
	}

	// Unknown notes are rejected before the body is read.
	if err := h.attachmentService.EnsureNote(c.Request.Context(), noteID); err != nil {
		respondError(c, err)
		return
	}

	limit := h.attachmentService.MaxUploadBytes()
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit+multipartOverhead)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			apierrors.BadRequest(c, fmt.Sprintf("File too large: maximum size is %s", humanize.IBytes(uint64(limit))))
			return
		}
		apierrors.BadRequest(c, "A file must be provided in the \"file\" field")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondError(c, fmt.Errorf("failed to read upload: %w", err))
		return
	}
	defer file.Close()

	attachment, err := h.attachmentService.Upload(c.Request.Context(), services.UploadInput{
		NoteID:      noteID,
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Size:        fileHeader.Size,
		Body:        file,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAttachmentDTO(*attachment))
}

// DownloadAttachment streams the stored file under its original name
func (h *AttachmentHandler) DownloadAttachment(c *gin.Context) {
	attachmentID, ok := idParam(c, "attachment")
	if !ok {
		return
	}

	attachment, obj, err := h.attachmentService.Open(c.Request.Context(), attachmentID)
	if err != nil {
		respondError(c, err)
		return
	}
	defer obj.Close()

	disposition := mime.FormatMediaType("attachment", map[string]string{"filename": attachment.Filename})
	if disposition == "" {
		disposition = "attachment"
	}

	c.DataFromReader(http.StatusOK, obj.Size, "application/octet-stream", obj, map[string]string{
		"Content-Disposition": disposition,
	})
}

// DeleteAttachment deletes an attachment and its file
func (h *AttachmentHandler) DeleteAttachment(c *gin.Context) {
	attachmentID, ok := idParam(c, "attachment")
	if !ok {
		return
	}

	if err := h.attachmentService.Delete(c.Request.Context(), attachmentID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
