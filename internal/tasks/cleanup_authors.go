package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"
)

// QueueCleanupOrphanAuthors is the backlite queue name for author cleanup.
const QueueCleanupOrphanAuthors = "cleanup_orphan_authors"

// OrphanAuthorsCleaner provides the ability to delete authors without books.
type OrphanAuthorsCleaner interface {
	DeleteOrphanAuthors(ctx context.Context) (int64, error)
}

// CleanupOrphanAuthorsTask removes authors that are no longer linked to any book.
type CleanupOrphanAuthorsTask struct{}

// Config returns the queue configuration for cleanup tasks.
func (t CleanupOrphanAuthorsTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        QueueCleanupOrphanAuthors,
		MaxAttempts: 3,
		Backoff:     time.Minute,
		Timeout:     time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// CleanupOrphanAuthorsProcessor creates a processor function for CleanupOrphanAuthorsTask.
func CleanupOrphanAuthorsProcessor(cleaner OrphanAuthorsCleaner, reporter Reporter) backlite.QueueProcessor[CleanupOrphanAuthorsTask] {
	return func(ctx context.Context, task CleanupOrphanAuthorsTask) error {
		if cleaner == nil {
			return fmt.Errorf("orphan authors cleaner not configured")
		}

		deleted, err := cleaner.DeleteOrphanAuthors(ctx)
		if err != nil {
			err = fmt.Errorf("cleanup orphan authors: %w", err)
			report(reporter, QueueCleanupOrphanAuthors, "Orphan author cleanup failed", 0, err)
			return err
		}

		log.Printf("[TASK] Cleaned up %d orphan authors", deleted)
		report(reporter, QueueCleanupOrphanAuthors, fmt.Sprintf("Removed %d orphan authors", deleted), deleted, nil)
		return nil
	}
}

// NewCleanupOrphanAuthorsQueue creates a backlite queue for author cleanup tasks.
func NewCleanupOrphanAuthorsQueue(cleaner OrphanAuthorsCleaner, reporter Reporter) backlite.Queue {
	return backlite.NewQueue(CleanupOrphanAuthorsProcessor(cleaner, reporter))
}
