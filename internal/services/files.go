package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/tasktracker/task-tracker-api/internal/logger"
	"github.com/tasktracker/task-tracker-api/internal/storage"
)

func utcNow() time.Time {
	return time.Now().UTC()
}

// removeFiles deletes stored files after their rows are gone. Failures are
// logged and otherwise ignored.
func removeFiles(ctx context.Context, store storage.Store, log *zap.Logger, paths []string) {
	for _, path := range paths {
		if err := store.Remove(ctx, path); err != nil {
			logger.WithRequestID(ctx, log).Warn("failed to remove attachment file",
				zap.String("path", path),
				zap.Error(err),
			)
		}
	}
}
