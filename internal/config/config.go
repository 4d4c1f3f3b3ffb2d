package config

import (
	"time"

	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Database
		Global
		Auth
		Lending
		OverdueScan
		Tasks
		Seed
	}

	HTTP struct {
		Port       int32
		Host       string
		PublicPath string // Directory served at the HTTP root (index.html etc.)
	}
	Database struct {
		Path string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Auth struct {
		BcryptCost      int
		SessionLifetime time.Duration
		SecureCookies   bool // Set to false for local dev without HTTPS
	}
	Lending struct {
		AdminMaxBooks   int     // Override table entry for the admin account
		AdminFineFactor float64 // Fine multiplier applied to admin (premium discount)
	}
	OverdueScan struct {
		Enabled  bool
		Schedule string // Cron format: "0 8 * * *" = daily at 08:00
	}
	Tasks struct {
		Enabled           bool
		Workers           int
		MaxRetries        int
		RetryDelay        time.Duration
		TaskTimeout       time.Duration
		ReleaseAfter      time.Duration
		CleanupInterval   time.Duration
		RetentionDuration time.Duration
		// TransactionRetentionDays controls how long BORROW/RETURN log
		// entries are kept before the cleanup task removes them.
		TransactionRetentionDays int
	}
	Seed struct {
		Enabled bool // Seed default accounts and catalog on first start
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8080)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("public_path", DefaultPublicPath)
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("database_path", DefaultDatabasePath)

	// Auth defaults
	v.SetDefault("auth_bcrypt_cost", 12)
	v.SetDefault("auth_session_lifetime", "24h")
	v.SetDefault("auth_secure_cookies", false)

	// Lending defaults (admin keeps the legacy premium allowances)
	v.SetDefault("lending_admin_max_books", 5)
	v.SetDefault("lending_admin_fine_factor", 0.5)

	// Overdue scan defaults
	v.SetDefault("overdue_scan_enabled", true)
	v.SetDefault("overdue_scan_schedule", "0 8 * * *")

	// Task queue defaults
	v.SetDefault("tasks_enabled", true)
	v.SetDefault("task_workers", 2)
	v.SetDefault("task_max_retries", 3)
	v.SetDefault("task_retry_delay", "1m")
	v.SetDefault("task_timeout", "5m")
	v.SetDefault("task_release_after", "15m")
	v.SetDefault("task_cleanup_interval", "1h")
	v.SetDefault("task_retention_duration", "24h")
	v.SetDefault("transaction_retention_days", 365)

	// Seed defaults
	v.SetDefault("seed_default_data", true)

	return &Config{
		HTTP: HTTP{
			Port:       v.GetInt32("PORT"),
			Host:       v.GetString("HOST"),
			PublicPath: v.GetString("PUBLIC_PATH"),
		},
		Database: Database{
			Path: v.GetString("DATABASE_PATH"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Auth: Auth{
			BcryptCost:      v.GetInt("AUTH_BCRYPT_COST"),
			SessionLifetime: v.GetDuration("AUTH_SESSION_LIFETIME"),
			SecureCookies:   v.GetBool("AUTH_SECURE_COOKIES"),
		},
		Lending: Lending{
			AdminMaxBooks:   v.GetInt("LENDING_ADMIN_MAX_BOOKS"),
			AdminFineFactor: v.GetFloat64("LENDING_ADMIN_FINE_FACTOR"),
		},
		OverdueScan: OverdueScan{
			Enabled:  v.GetBool("OVERDUE_SCAN_ENABLED"),
			Schedule: v.GetString("OVERDUE_SCAN_SCHEDULE"),
		},
		Tasks: Tasks{
			Enabled:                  v.GetBool("TASKS_ENABLED"),
			Workers:                  v.GetInt("TASK_WORKERS"),
			MaxRetries:               v.GetInt("TASK_MAX_RETRIES"),
			RetryDelay:               v.GetDuration("TASK_RETRY_DELAY"),
			TaskTimeout:              v.GetDuration("TASK_TIMEOUT"),
			ReleaseAfter:             v.GetDuration("TASK_RELEASE_AFTER"),
			CleanupInterval:          v.GetDuration("TASK_CLEANUP_INTERVAL"),
			RetentionDuration:        v.GetDuration("TASK_RETENTION_DURATION"),
			TransactionRetentionDays: v.GetInt("TRANSACTION_RETENTION_DAYS"),
		},
		Seed: Seed{
			Enabled: v.GetBool("SEED_DEFAULT_DATA"),
		},
	}
}
