package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/tasktracker/task-tracker-api/internal/models"
	"github.com/tasktracker/task-tracker-api/internal/repository"
	"github.com/tasktracker/task-tracker-api/internal/storage"
)

// NoteService handles notes attached to tasks
type NoteService struct {
	noteRepo repository.NoteRepository
	taskRepo repository.TaskRepository
	store    storage.Store
	log      *zap.Logger
}

// NewNoteService creates a new NoteService
func NewNoteService(noteRepo repository.NoteRepository, taskRepo repository.TaskRepository, store storage.Store, log *zap.Logger) *NoteService {
	return &NoteService{
		noteRepo: noteRepo,
		taskRepo: taskRepo,
		store:    store,
		log:      log,
	}
}

// AddNote appends a note to a task and returns the task with all its notes
func (s *NoteService) AddNote(ctx context.Context, taskID uint64, content string) (*models.Task, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrContentRequired
	}

	if _, err := s.taskRepo.FindByID(ctx, taskID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	note := &models.Note{TaskID: taskID, Content: content}
	if err := s.noteRepo.Create(ctx, note); err != nil {
		return nil, fmt.Errorf("failed to create note: %w", err)
	}

	task, err := s.taskRepo.FindWithRelations(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload task: %w", err)
	}
	return task, nil
}

// UpdateNote replaces the content of a note
func (s *NoteService) UpdateNote(ctx context.Context, noteID uint64, content string) (*models.Note, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrContentRequired
	}

	if err := s.noteRepo.UpdateContent(ctx, noteID, content); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoteNotFound
		}
		return nil, fmt.Errorf("failed to update note: %w", err)
	}

	note, err := s.noteRepo.FindByID(ctx, noteID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload note: %w", err)
	}
	return note, nil
}

// DeleteNote removes a note and its attachments, then their files
func (s *NoteService) DeleteNote(ctx context.Context, noteID uint64) error {
	paths, err := s.noteRepo.Delete(ctx, noteID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNoteNotFound
		}
		return fmt.Errorf("failed to delete note: %w", err)
	}

	removeFiles(ctx, s.store, s.log, paths)
	return nil
}
