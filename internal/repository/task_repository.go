package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tasktracker/task-tracker-api/internal/database"
	"github.com/tasktracker/task-tracker-api/internal/models"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task
func (r *GormTaskRepository) Create(ctx context.Context, task *models.Task) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(task).Error
}

// FindByID finds a task by ID without relations
func (r *GormTaskRepository) FindByID(ctx context.Context, id uint64) (*models.Task, error) {
	var task models.Task
	if err := r.db.WithContext(ctx).First(&task, id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// FindWithRelations finds a task by ID with its assignee, notes and attachments
func (r *GormTaskRepository) FindWithRelations(ctx context.Context, id uint64) (*models.Task, error) {
	var task models.Task
	if err := r.db.WithContext(ctx).Scopes(database.WithTaskRelations).First(&task, id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// List retrieves tasks matching the filter, newest first
func (r *GormTaskRepository) List(ctx context.Context, filter TaskFilter) ([]models.Task, error) {
	tasks := []models.Task{}

	query := r.db.WithContext(ctx).Model(&models.Task{})
	if filter.AssignedTo != nil {
		query = query.Where("tasks.assigned_to = ?", *filter.AssignedTo)
	}
	if filter.Status != nil {
		query = query.Where("tasks.status = ?", *filter.Status)
	}

	err := query.
		Scopes(database.WithTaskRelations).
		Order("tasks.created_at DESC, tasks.id DESC").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}

	return tasks, nil
}

// Update saves the task's own columns
func (r *GormTaskRepository) Update(ctx context.Context, task *models.Task) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(task).Error
}

// Delete removes a task, its notes and their attachments in one transaction
func (r *GormTaskRepository) Delete(ctx context.Context, id uint64) ([]string, error) {
	var paths []string

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var task models.Task
		if err := tx.Select("id").First(&task, id).Error; err != nil {
			return err
		}

		var noteIDs []uint64
		if err := tx.Model(&models.Note{}).Where("task_id = ?", id).Pluck("id", &noteIDs).Error; err != nil {
			return err
		}

		if len(noteIDs) > 0 {
			if err := tx.Model(&models.Attachment{}).
				Where("note_id IN ?", noteIDs).
				Pluck("file_path", &paths).Error; err != nil {
				return err
			}

			if err := tx.Where("note_id IN ?", noteIDs).Delete(&models.Attachment{}).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("task_id = ?", id).Delete(&models.Note{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Task{}, id).Error
	})
	if err != nil {
		return nil, err
	}

	return paths, nil
}
