package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tasktracker/task-tracker-api/internal/database"
	"github.com/tasktracker/task-tracker-api/internal/models"
)

// GormNoteRepository is a GORM implementation of NoteRepository
type GormNoteRepository struct {
	db *gorm.DB
}

// NewNoteRepository creates a new NoteRepository
func NewNoteRepository(db *gorm.DB) NoteRepository {
	return &GormNoteRepository{db: db}
}

// Create creates a new note
func (r *GormNoteRepository) Create(ctx context.Context, note *models.Note) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(note).Error
}

// FindByID finds a note by ID with its attachments
func (r *GormNoteRepository) FindByID(ctx context.Context, id uint64) (*models.Note, error) {
	var note models.Note
	if err := r.db.WithContext(ctx).Scopes(database.WithNoteRelations).First(&note, id).Error; err != nil {
		return nil, err
	}
	return &note, nil
}

// UpdateContent replaces the content of a note. Not-found comes from the
// lookup, never from the affected row count.
func (r *GormNoteRepository) UpdateContent(ctx context.Context, id uint64, content string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var note models.Note
		if err := tx.Select("id").First(&note, id).Error; err != nil {
			return err
		}

		return tx.Model(&models.Note{}).
			Where("id = ?", id).
			Update("content", content).Error
	})
}

// Delete removes a note and its attachments in one transaction
func (r *GormNoteRepository) Delete(ctx context.Context, id uint64) ([]string, error) {
	var paths []string

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var note models.Note
		if err := tx.Select("id").First(&note, id).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.Attachment{}).
			Where("note_id = ?", id).
			Pluck("file_path", &paths).Error; err != nil {
			return err
		}

		if err := tx.Where("note_id = ?", id).Delete(&models.Attachment{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Note{}, id).Error
	})
	if err != nil {
		return nil, err
	}

	return paths, nil
}
