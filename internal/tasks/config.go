package tasks

import (
	"time"

	"github.com/hperera/librarium/internal/config"
)

// Config holds task queue settings.
type Config struct {
	// Workers is the number of concurrent task workers.
	Workers int

	// MaxRetries is the maximum retry attempts for failed tasks.
	MaxRetries int

	// RetryDelay is the backoff duration between retries.
	RetryDelay time.Duration

	// TaskTimeout bounds a single task execution.
	TaskTimeout time.Duration

	// ReleaseAfter is when stuck tasks are released back to the queue.
	ReleaseAfter time.Duration

	// CleanupInterval is how often completed tasks are cleaned up.
	CleanupInterval time.Duration

	// RetentionDuration is how long completed tasks are kept.
	RetentionDuration time.Duration
}

// FromAppConfig maps the application task settings onto the queue config,
// filling in defaults for unset values.
func FromAppConfig(c config.Tasks) Config {
	cfg := Config{
		Workers:           c.Workers,
		MaxRetries:        c.MaxRetries,
		RetryDelay:        c.RetryDelay,
		TaskTimeout:       c.TaskTimeout,
		ReleaseAfter:      c.ReleaseAfter,
		CleanupInterval:   c.CleanupInterval,
		RetentionDuration: c.RetentionDuration,
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 2
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = time.Minute
	}
	if cfg.TaskTimeout <= 0 {
		cfg.TaskTimeout = 5 * time.Minute
	}
	if cfg.ReleaseAfter <= 0 {
		cfg.ReleaseAfter = 15 * time.Minute
	}
	if cfg.CleanupInterval <= 0 {
		cfg.CleanupInterval = time.Hour
	}
	if cfg.RetentionDuration <= 0 {
		cfg.RetentionDuration = 24 * time.Hour
	}
	return cfg
}
