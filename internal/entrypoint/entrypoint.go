// Package entrypoint wires the application together for both frontends and
// owns server lifecycle and graceful shutdown.
package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hperera/librarium/internal/account"
	"github.com/hperera/librarium/internal/auth"
	"github.com/hperera/librarium/internal/config"
	"github.com/hperera/librarium/internal/console"
	"github.com/hperera/librarium/internal/database"
	"github.com/hperera/librarium/internal/database/books"
	"github.com/hperera/librarium/internal/database/transactions"
	"github.com/hperera/librarium/internal/database/users"
	"github.com/hperera/librarium/internal/events"
	http_controllers "github.com/hperera/librarium/internal/http"
	"github.com/hperera/librarium/internal/lending"
	"github.com/hperera/librarium/internal/scheduler"
	"github.com/hperera/librarium/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

// app holds everything both frontends need.
type app struct {
	db           *database.Database
	users        *users.Repository
	books        *books.Repository
	transactions *transactions.Repository
	events       *events.Manager
	engine       *lending.Engine
	auth         *auth.Service
}

func buildApp(cfg *config.Config) (*app, error) {
	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	userRepo := users.NewRepository(db.DB)
	bookRepo := books.NewRepository(db.DB)
	txRepo := transactions.NewRepository(db.DB)

	ev := events.NewManager()
	ev.Subscribe(events.LogListener)
	ev.Subscribe(events.FineAlertListener)

	rules := account.NewRules(map[string]account.Override{
		"admin": {MaxBooks: cfg.Lending.AdminMaxBooks, FineFactor: cfg.Lending.AdminFineFactor},
	})
	gateway := database.NewGateway(userRepo, bookRepo, txRepo)
	engine := lending.NewEngine(gateway, rules, ev)
	authSvc := auth.NewService(userRepo, cfg.Auth)

	a := &app{
		db:           db,
		users:        userRepo,
		books:        bookRepo,
		transactions: txRepo,
		events:       ev,
		engine:       engine,
		auth:         authSvc,
	}

	if cfg.Seed.Enabled {
		if err := a.seedDefaults(); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to seed default data: %w", err)
		}
	}
	return a, nil
}

// Run starts the HTTP server with the task queue and overdue scanner.
func Run(cfg *config.Config, version string) {
	log.Printf("Starting Librarium v%s", version)

	a, err := buildApp(cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer func() {
		if err := a.db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	// Task queue for transaction-log retention
	var taskClient *tasks.Client
	var taskCtxCancel context.CancelFunc
	if cfg.Tasks.Enabled {
		taskClient, err = tasks.NewClient(cfg.Database.Path, tasks.FromAppConfig(cfg.Tasks))
		if err != nil {
			log.Fatalf("Failed to initialize task queue: %v", err)
		}
		defer func() {
			if err := taskClient.Close(); err != nil {
				log.Printf("Error closing task client: %v", err)
			}
		}()

		taskClient.Register(tasks.NewCleanupTransactionsQueue(a.transactions))

		var taskCtx context.Context
		taskCtx, taskCtxCancel = context.WithCancel(context.Background())
		go taskClient.Start(taskCtx)

		// one retention sweep per boot is plenty for an audit log
		if _, err := taskClient.Add(tasks.CleanupTransactionsTask{
			RetentionDays: cfg.Tasks.TransactionRetentionDays,
		}).Save(); err != nil {
			log.Printf("Failed to enqueue transaction cleanup: %v", err)
		}
	}

	// Overdue loan scanner
	scanCtx, scanCancel := context.WithCancel(context.Background())
	defer scanCancel()
	overdueScanner := scheduler.NewOverdueScanner(a.users, a.engine, a.events, cfg.OverdueScan)
	if err := overdueScanner.Start(scanCtx); err != nil {
		log.Fatalf("Failed to start overdue scanner: %v", err)
	}

	// Sessions on the main database
	sqlDB, err := a.db.DB.DB()
	if err != nil {
		log.Fatalf("Failed to get SQL DB for sessions: %v", err)
	}
	sessionManager, err := auth.NewSessionManager(sqlDB, cfg.Auth)
	if err != nil {
		log.Fatalf("Failed to initialize session manager: %v", err)
	}

	router := http_controllers.NewRouter(http_controllers.RouterConfig{
		Engine:         a.engine,
		Users:          a.users,
		Books:          a.books,
		Database:       a.db,
		Events:         a.events,
		AuthService:    a.auth,
		SessionManager: sessionManager,
		PublicPath:     cfg.HTTP.PublicPath,
		Version:        version,
	})

	Serve(router, cfg, func(ctx context.Context) {
		overdueScanner.Stop()
		if taskClient != nil {
			taskClient.Stop(ctx)
			if taskCtxCancel != nil {
				taskCtxCancel()
			}
		}
	})
}

// RunConsole starts the interactive menu frontend on the same database.
func RunConsole(cfg *config.Config, version string) {
	log.Printf("Starting Librarium console v%s", version)

	a, err := buildApp(cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer func() {
		if err := a.db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	c := console.New(console.Config{
		Engine:       a.engine,
		Users:        a.users,
		Books:        a.books,
		Auth:         a.auth,
		Events:       a.events,
		Transactions: a.transactions,
	})
	if err := c.Run(); err != nil {
		log.Fatalf("Console error: %v", err)
	}
}

// Serve runs the HTTP server until SIGINT/SIGTERM, then shuts down within
// the configured timeout.
func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		log.Printf("Starting server at %s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if onShutdown != nil {
		onShutdown(ctx)
	}
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}
