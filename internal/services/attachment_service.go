package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/tasktracker/task-tracker-api/internal/logger"
	"github.com/tasktracker/task-tracker-api/internal/models"
	"github.com/tasktracker/task-tracker-api/internal/repository"
	"github.com/tasktracker/task-tracker-api/internal/storage"
	"github.com/tasktracker/task-tracker-api/internal/utils"
)

// DefaultMaxUploadBytes is the upload limit used when none is configured.
const DefaultMaxUploadBytes int64 = 10 << 20

var allowedContentTypes = map[string]models.FileType{
	"application/pdf": models.FileTypePDF,
	"image/jpeg":      models.FileTypeImage,
	"image/png":       models.FileTypeImage,
	"image/gif":       models.FileTypeImage,
	"image/webp":      models.FileTypeImage,
}

// AttachmentService stores uploaded files and their metadata
type AttachmentService struct {
	attachmentRepo repository.AttachmentRepository
	noteRepo       repository.NoteRepository
	store          storage.Store
	log            *zap.Logger
	maxBytes       int64
	now            func() time.Time
}

// NewAttachmentService creates a new AttachmentService. A non-positive
// maxBytes falls back to DefaultMaxUploadBytes.
func NewAttachmentService(
	attachmentRepo repository.AttachmentRepository,
	noteRepo repository.NoteRepository,
	store storage.Store,
	log *zap.Logger,
	maxBytes int64,
) *AttachmentService {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxUploadBytes
	}
	return &AttachmentService{
		attachmentRepo: attachmentRepo,
		noteRepo:       noteRepo,
		store:          store,
		log:            log,
		maxBytes:       maxBytes,
		now:            utcNow,
	}
}

// UploadInput describes one uploaded file
type UploadInput struct {
	NoteID      uint64
	Filename    string
	ContentType string
	// Size is the size declared by the client, or -1 when unknown.
	Size int64
	Body io.Reader
}

// MaxUploadBytes returns the configured upload limit
func (s *AttachmentService) MaxUploadBytes() int64 {
	return s.maxBytes
}

// FileTypeFor maps a MIME type to an attachment file type.
func FileTypeFor(contentType string) (models.FileType, bool) {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = strings.ToLower(strings.TrimSpace(contentType))
	}
	fileType, ok := allowedContentTypes[mediaType]
	return fileType, ok
}

// EnsureNote returns ErrNoteNotFound when the note does not exist
func (s *AttachmentService) EnsureNote(ctx context.Context, noteID uint64) error {
	if _, err := s.noteRepo.FindByID(ctx, noteID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNoteNotFound
		}
		return fmt.Errorf("failed to find note: %w", err)
	}
	return nil
}

// Upload validates and stores a file, then records it against the note
func (s *AttachmentService) Upload(ctx context.Context, input UploadInput) (*models.Attachment, error) {
	if err := s.EnsureNote(ctx, input.NoteID); err != nil {
		return nil, err
	}

	fileType, ok := FileTypeFor(input.ContentType)
	if !ok {
		return nil, ErrUnsupportedFileType
	}

	if input.Size > s.maxBytes {
		return nil, s.tooLarge()
	}

	name := utils.StoredFilename(input.NoteID, input.Filename, s.now())
	body := io.LimitReader(input.Body, s.maxBytes+1)

	location, written, err := s.store.Save(ctx, name, body, input.ContentType)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageWrite, err)
	}

	if written > s.maxBytes {
		removeFiles(ctx, s.store, s.log, []string{location})
		return nil, s.tooLarge()
	}

	attachment := &models.Attachment{
		NoteID:   input.NoteID,
		Filename: input.Filename,
		FilePath: location,
		FileType: fileType,
		FileSize: written,
	}
	if err := s.attachmentRepo.Create(ctx, attachment); err != nil {
		removeFiles(ctx, s.store, s.log, []string{location})
		return nil, fmt.Errorf("failed to save attachment: %w", err)
	}

	logger.WithRequestID(ctx, s.log).Info("attachment stored",
		zap.Uint64("attachment_id", attachment.ID),
		zap.Uint64("note_id", attachment.NoteID),
		zap.String("size", humanize.IBytes(uint64(written))),
	)

	return attachment, nil
}

// Open returns the attachment metadata and a reader over its file
func (s *AttachmentService) Open(ctx context.Context, attachmentID uint64) (*models.Attachment, *storage.Object, error) {
	attachment, err := s.find(ctx, attachmentID)
	if err != nil {
		return nil, nil, err
	}

	obj, err := s.store.Open(ctx, attachment.FilePath)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil, ErrFileNotFound
		}
		return nil, nil, fmt.Errorf("failed to open file: %w", err)
	}

	return attachment, obj, nil
}

// Delete removes the attachment row, then its file
func (s *AttachmentService) Delete(ctx context.Context, attachmentID uint64) error {
	attachment, err := s.find(ctx, attachmentID)
	if err != nil {
		return err
	}

	if err := s.attachmentRepo.Delete(ctx, attachment.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAttachmentNotFound
		}
		return fmt.Errorf("failed to delete attachment: %w", err)
	}

	removeFiles(ctx, s.store, s.log, []string{attachment.FilePath})
	return nil
}

func (s *AttachmentService) find(ctx context.Context, attachmentID uint64) (*models.Attachment, error) {
	attachment, err := s.attachmentRepo.FindByID(ctx, attachmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAttachmentNotFound
		}
		return nil, fmt.Errorf("failed to find attachment: %w", err)
	}
	return attachment, nil
}

func (s *AttachmentService) tooLarge() error {
	return fmt.Errorf("%w: maximum size is %s", ErrFileTooLarge, humanize.IBytes(uint64(s.maxBytes)))
}
