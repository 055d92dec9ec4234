package database

import (
	"gorm.io/gorm"
)

// WithTaskRelations preloads the assignee, notes (oldest first) and their attachments.
func WithTaskRelations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("AssignedUser").
		Preload("Notes", func(db *gorm.DB) *gorm.DB {
			return db.Order("notes.created_at ASC, notes.id ASC")
		}).
		Preload("Notes.Attachments", func(db *gorm.DB) *gorm.DB {
			return db.Order("attachments.id ASC")
		})
}

// WithNoteRelations preloads a note's attachments.
func WithNoteRelations(db *gorm.DB) *gorm.DB {
	return db.Preload("Attachments", func(db *gorm.DB) *gorm.DB {
		return db.Order("attachments.id ASC")
	})
}
