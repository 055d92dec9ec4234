// Package dbtest provides migrated SQLite databases for package tests.
package dbtest

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tasktracker/task-tracker-api/internal/database"
	"github.com/tasktracker/task-tracker-api/internal/models"
)

// New opens a migrated, file-backed SQLite database in a temporary directory.
func New(t testing.TB) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(path+"?_busy_timeout=5000"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, database.Migrate(db, zap.NewNop()))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return db
}

// CreateUser inserts a user row.
func CreateUser(t testing.TB, db *gorm.DB, username string) *models.User {
	t.Helper()

	user := &models.User{Username: username, DisplayName: "Display " + username}
	require.NoError(t, db.Create(user).Error)
	return user
}

// CreateTask inserts a pending task assigned to userID.
func CreateTask(t testing.TB, db *gorm.DB, title string, userID uint64) *models.Task {
	t.Helper()

	task := &models.Task{
		Title:       title,
		Description: "Test Description",
		Status:      models.TaskStatusPending,
		AssignedTo:  userID,
	}
	require.NoError(t, db.Omit("AssignedUser", "Notes").Create(task).Error)
	return task
}

// CreateNote inserts a note on taskID.
func CreateNote(t testing.TB, db *gorm.DB, taskID uint64, content string) *models.Note {
	t.Helper()

	note := &models.Note{TaskID: taskID, Content: content}
	require.NoError(t, db.Omit("Attachments").Create(note).Error)
	return note
}

// CreateAttachment inserts an attachment row pointing at path.
func CreateAttachment(t testing.TB, db *gorm.DB, noteID uint64, path string) *models.Attachment {
	t.Helper()

	att := &models.Attachment{
		NoteID:   noteID,
		Filename: filepath.Base(path),
		FilePath: path,
		FileType: models.FileTypePDF,
		FileSize: 3,
	}
	require.NoError(t, db.Create(att).Error)
	return att
}
