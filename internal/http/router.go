package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Wrong method on a known path is 405, not a fall-through to the
	// static handler.
	router.HandleMethodNotAllowed = true
	router.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, ErrorResponse{Error: "method not allowed"})
	})

	var sessions sessionReader
	if cfg.SessionManager != nil {
		router.Use(cfg.SessionManager.SessionLoadSave())
		sessions = cfg.SessionManager
	}

	authController := NewAuthController(cfg.AuthService, cfg.SessionManager, cfg.Events)
	booksController := NewBooksController(cfg.Books, sessions, cfg.Events)
	lendingController := NewLendingController(cfg.Engine)
	favouritesController := NewFavouritesController(cfg.Users)
	usersController := NewUsersController(cfg.Users, sessions)
	statsController := NewStatsController(cfg.Users, cfg.Books)
	healthController := NewHealthController(cfg.Database, cfg.Version)

	api := router.Group("/api")
	{
		api.POST("/login", authController.Login)
		api.POST("/register", authController.Register)

		api.GET("/books", booksController.List)
		api.POST("/books", booksController.Add)
		api.DELETE("/books", booksController.Remove)
		api.GET("/books/search", booksController.Search)
		api.GET("/categories", booksController.Categories)

		api.POST("/borrow", lendingController.Borrow)
		api.POST("/return", lendingController.Return)
		api.POST("/favorites", favouritesController.Toggle)

		api.GET("/users", usersController.Get)
		api.DELETE("/users", usersController.Remove)

		api.GET("/stats", statsController.Get)
	}

	router.GET("/health", healthController.Status)

	if cfg.PublicPath != "" {
		router.NoRoute(staticHandler(cfg.PublicPath))
	}

	return router
}
