package database

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tasktracker/task-tracker-api/internal/models"
)

// DefaultUsers are the two fixed accounts of the tracker.
var DefaultUsers = []models.User{
	{Username: "user_a", DisplayName: "Hehe"},
	{Username: "user_b", DisplayName: "Haha"},
}

// Seed inserts the default users, and optionally sample tasks and notes, when the
// users table is empty. It is safe to call on every startup.
func Seed(ctx context.Context, db *gorm.DB, withSamples bool, log *zap.Logger) error {
	seeded := false

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to count users: %w", err)
		}
		if count > 0 {
			return nil
		}

		users := make([]models.User, len(DefaultUsers))
		copy(users, DefaultUsers)
		if err := tx.Create(&users).Error; err != nil {
			return fmt.Errorf("failed to seed users: %w", err)
		}
		seeded = true

		if !withSamples {
			return nil
		}
		return seedSamples(tx, users[0].ID, users[1].ID)
	})
	if err != nil {
		return err
	}

	if seeded {
		log.Info("database seeded", zap.Bool("sample_data", withSamples))
	}
	return nil
}

func seedSamples(tx *gorm.DB, userA, userB uint64) error {
	now := time.Now().UTC()

	tasks := []models.Task{
		{
			Title:       "Setup development environment",
			Description: "Install all necessary tools and dependencies",
			AssignedTo:  userA,
			Status:      models.TaskStatusCompleted,
			CompletedAt: &now,
		},
		{
			Title:       "Design database schema",
			Description: "Create ERD and define relationships",
			AssignedTo:  userB,
			Status:      models.TaskStatusCompleted,
			CompletedAt: &now,
		},
		{
			Title:       "Implement API endpoints",
			Description: "Build the REST API",
			AssignedTo:  userA,
			Status:      models.TaskStatusPending,
		},
		{
			Title:       "Build React frontend",
			Description: "Create responsive UI with React and TailwindCSS",
			AssignedTo:  userB,
			Status:      models.TaskStatusPending,
		},
	}
	if err := tx.Omit(clause.Associations).Create(&tasks).Error; err != nil {
		return fmt.Errorf("failed to seed tasks: %w", err)
	}

	notes := []models.Note{
		{TaskID: tasks[0].ID, Content: "Installed the toolchain"},
		{TaskID: tasks[0].ID, Content: "Configured the local environment successfully"},
	}
	if err := tx.Omit(clause.Associations).Create(&notes).Error; err != nil {
		return fmt.Errorf("failed to seed notes: %w", err)
	}

	return nil
}
