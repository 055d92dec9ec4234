package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tasktracker/task-tracker-api/internal/models"
)

func openMigrated(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(sqliteDSN(t.TempDir()+"/seed.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, Migrate(db, zap.NewNop()))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	return db
}

func TestDialector(t *testing.T) {
	tests := []struct {
		url    string
		driver string
	}{
		{"sqlite://tasks.db", "sqlite"},
		{"postgres://u:p@localhost:5432/db", "postgres"},
		{"postgresql://u:p@localhost:5432/db", "postgres"},
		{"mysql://u:p@tcp(localhost:3306)/db", "mysql"},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			dialector, driver, err := Dialector(tt.url)
			require.NoError(t, err)
			assert.NotNil(t, dialector)
			assert.Equal(t, tt.driver, driver)
		})
	}

	_, _, err := Dialector("redis://localhost")
	assert.Error(t, err)

	_, _, err = Dialector("sqlite://")
	assert.Error(t, err)
}

func TestDSNHelpers(t *testing.T) {
	assert.Equal(t, "u:p@tcp(h)/db?charset=utf8mb4&parseTime=True&loc=UTC", mysqlDSN("u:p@tcp(h)/db"))
	assert.Equal(t, "u:p@tcp(h)/db?parseTime=true", mysqlDSN("u:p@tcp(h)/db?parseTime=true"))
	assert.Equal(t, "tasks.db?_busy_timeout=5000", sqliteDSN("tasks.db"))
	assert.Equal(t, "tasks.db?cache=shared&_busy_timeout=5000", sqliteDSN("tasks.db?cache=shared"))
}

func TestMigrate_IsRepeatable(t *testing.T) {
	db := openMigrated(t)

	require.NoError(t, Migrate(db, zap.NewNop()))
	assert.True(t, db.Migrator().HasIndex(&models.Task{}, "idx_tasks_assigned_to_status"))
	assert.True(t, db.Migrator().HasIndex(&models.Note{}, "idx_notes_task_id_created_at"))
}

func TestSeed_Idempotent(t *testing.T) {
	db := openMigrated(t)
	ctx := context.Background()

	require.NoError(t, Seed(ctx, db, true, zap.NewNop()))
	require.NoError(t, Seed(ctx, db, true, zap.NewNop()))

	var users []models.User
	require.NoError(t, db.Order("id").Find(&users).Error)
	require.Len(t, users, 2)
	assert.Equal(t, "user_a", users[0].Username)
	assert.Equal(t, "Hehe", users[0].DisplayName)
	assert.Equal(t, "user_b", users[1].Username)

	var taskCount, noteCount int64
	db.Model(&models.Task{}).Count(&taskCount)
	db.Model(&models.Note{}).Count(&noteCount)
	assert.Equal(t, int64(4), taskCount)
	assert.Equal(t, int64(2), noteCount)

	var tasks []models.Task
	require.NoError(t, db.Find(&tasks).Error)
	for _, task := range tasks {
		assert.Equal(t, task.Status == models.TaskStatusCompleted, task.CompletedAt != nil, task.Title)
	}
}

func TestSeed_UsersOnly(t *testing.T) {
	db := openMigrated(t)

	require.NoError(t, Seed(context.Background(), db, false, zap.NewNop()))

	var userCount, taskCount int64
	db.Model(&models.User{}).Count(&userCount)
	db.Model(&models.Task{}).Count(&taskCount)
	assert.Equal(t, int64(2), userCount)
	assert.Zero(t, taskCount)
}
