package services

import "errors"

var (
	ErrTaskNotFound        = errors.New("task not found")
	ErrUserNotFound        = errors.New("user not found")
	ErrNoteNotFound        = errors.New("note not found")
	ErrAttachmentNotFound  = errors.New("attachment not found")
	ErrFileNotFound        = errors.New("file not found")
	ErrTitleRequired       = errors.New("title is required")
	ErrTitleEmpty          = errors.New("title cannot be empty")
	ErrContentRequired     = errors.New("content is required")
	ErrInvalidStatus       = errors.New("status must be Pending or Completed")
	ErrUnsupportedFileType = errors.New("unsupported file type: only PDF and images (jpeg, png, gif, webp) are allowed")
	ErrFileTooLarge        = errors.New("file too large")
	ErrStorageWrite        = errors.New("failed to store file")
)
