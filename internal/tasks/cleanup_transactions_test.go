package tasks

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hperera/librarium/internal/config"
)

type fakeCleaner struct {
	retention time.Duration
	deleted   int64
	err       error
}

func (f *fakeCleaner) DeleteOldRecords(retention time.Duration) (int64, error) {
	f.retention = retention
	return f.deleted, f.err
}

func TestCleanupTransactionsProcessor(t *testing.T) {
	t.Run("uses the configured retention", func(t *testing.T) {
		cleaner := &fakeCleaner{deleted: 7}
		processor := CleanupTransactionsProcessor(cleaner)

		err := processor(context.Background(), CleanupTransactionsTask{RetentionDays: 30})
		require.NoError(t, err)
		assert.Equal(t, 30*24*time.Hour, cleaner.retention)
	})

	t.Run("defaults to a year when unset", func(t *testing.T) {
		cleaner := &fakeCleaner{}
		processor := CleanupTransactionsProcessor(cleaner)

		err := processor(context.Background(), CleanupTransactionsTask{})
		require.NoError(t, err)
		assert.Equal(t, 365*24*time.Hour, cleaner.retention)
	})

	t.Run("nil cleaner is an error", func(t *testing.T) {
		processor := CleanupTransactionsProcessor(nil)
		assert.Error(t, processor(context.Background(), CleanupTransactionsTask{}))
	})
}

func TestTaskDBPath(t *testing.T) {
	assert.Equal(t, "data/library-tasks.db", taskDBPath("data/library.db"))
	assert.Equal(t, "librarium-tasks.db", taskDBPath("librarium.db"))
}

func TestFromAppConfigDefaults(t *testing.T) {
	cfg := FromAppConfig(config.Tasks{})
	assert.Equal(t, 2, cfg.Workers)
	assert.Equal(t, 3, cfg.MaxRetries)
	assert.Equal(t, time.Minute, cfg.RetryDelay)
	assert.Equal(t, 24*time.Hour, cfg.RetentionDuration)
}
