package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"
)

// TransactionCleaner deletes old borrow/return log records.
type TransactionCleaner interface {
	DeleteOldRecords(retention time.Duration) (int64, error)
}

// CleanupTransactionsTask trims the transaction log down to the configured
// retention window. The log is audit-only, nothing reads it back, so
// trimming never affects lending state.
type CleanupTransactionsTask struct {
	RetentionDays int `json:"retention_days"`
}

// Config returns the queue configuration for transaction cleanup tasks.
func (t CleanupTransactionsTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "cleanup_transactions",
		MaxAttempts: 3,
		Backoff:     5 * time.Minute,
		Timeout:     2 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// CleanupTransactionsProcessor creates the processor for CleanupTransactionsTask.
func CleanupTransactionsProcessor(cleaner TransactionCleaner) backlite.QueueProcessor[CleanupTransactionsTask] {
	return func(ctx context.Context, task CleanupTransactionsTask) error {
		if cleaner == nil {
			return fmt.Errorf("transaction cleaner not configured")
		}

		retentionDays := task.RetentionDays
		if retentionDays <= 0 {
			retentionDays = 365
		}
		retention := time.Duration(retentionDays) * 24 * time.Hour

		deleted, err := cleaner.DeleteOldRecords(retention)
		if err != nil {
			return fmt.Errorf("cleanup transactions: %w", err)
		}

		log.Printf("[TASK] Removed %d transaction records older than %d days", deleted, retentionDays)
		return nil
	}
}

// NewCleanupTransactionsQueue creates the backlite queue for transaction
// cleanup tasks.
func NewCleanupTransactionsQueue(cleaner TransactionCleaner) backlite.Queue {
	return backlite.NewQueue(CleanupTransactionsProcessor(cleaner))
}
