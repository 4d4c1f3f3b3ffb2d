package http

import (
	"net/http"

	"github.com/hperera/librarium/internal/auth"
	"github.com/hperera/librarium/internal/database"
	"github.com/hperera/librarium/internal/database/books"
	"github.com/hperera/librarium/internal/database/users"
	"github.com/hperera/librarium/internal/events"
	"github.com/hperera/librarium/internal/lending"
)

// sessionReader resolves the logged-in username for a request. It lets the
// controllers fall back to the session identity without depending on the
// full session manager.
type sessionReader interface {
	Username(r *http.Request) string
}

// RouterConfig contains all dependencies needed to create the HTTP router.
// This replaces a long parameter list in NewRouter.
type RouterConfig struct {
	// Core dependencies
	Engine   *lending.Engine
	Users    *users.Repository
	Books    *books.Repository
	Database *database.Database
	Events   *events.Manager

	// Authentication
	AuthService    *auth.Service
	SessionManager *auth.SessionManager

	// Frontend
	PublicPath string

	// Application info
	Version string
}
