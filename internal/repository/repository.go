package repository

import (
	"context"

	"github.com/tasktracker/task-tracker-api/internal/models"
)

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(ctx context.Context, task *models.Task) error

	// FindByID finds a task by ID without relations
	FindByID(ctx context.Context, id uint64) (*models.Task, error)

	// FindWithRelations finds a task by ID with its assignee, notes and attachments
	FindWithRelations(ctx context.Context, id uint64) (*models.Task, error)

	// List retrieves tasks matching the filter, newest first
	List(ctx context.Context, filter TaskFilter) ([]models.Task, error)

	// Update saves the task's own columns
	Update(ctx context.Context, task *models.Task) error

	// Delete removes a task with its notes and attachments and returns
	// the stored file paths of the removed attachments
	Delete(ctx context.Context, id uint64) ([]string, error)
}

// TaskFilter holds equality filters for listing tasks. Nil fields are ignored.
type TaskFilter struct {
	AssignedTo *uint64
	Status     *models.TaskStatus
}

// NoteRepository defines the interface for note data access
type NoteRepository interface {
	// Create creates a new note
	Create(ctx context.Context, note *models.Note) error

	// FindByID finds a note by ID with its attachments
	FindByID(ctx context.Context, id uint64) (*models.Note, error)

	// UpdateContent replaces the content of a note
	UpdateContent(ctx context.Context, id uint64, content string) error

	// Delete removes a note with its attachments and returns the stored
	// file paths of the removed attachments
	Delete(ctx context.Context, id uint64) ([]string, error)
}

// AttachmentRepository defines the interface for attachment data access
type AttachmentRepository interface {
	// Create creates a new attachment row
	Create(ctx context.Context, attachment *models.Attachment) error

	// FindByID finds an attachment by ID
	FindByID(ctx context.Context, id uint64) (*models.Attachment, error)

	// Delete removes an attachment row
	Delete(ctx context.Context, id uint64) error
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// List returns all users ordered by ID
	List(ctx context.Context) ([]models.User, error)

	// FindByID finds a user by ID
	FindByID(ctx context.Context, id uint64) (*models.User, error)
}
