package config

// Default paths for databases and static assets
const (
	// DefaultDatabasePath is the default path for the main application database
	DefaultDatabasePath = "./librarium.db"

	// DefaultPublicPath is the default directory served at the HTTP root
	DefaultPublicPath = "./public"
)
