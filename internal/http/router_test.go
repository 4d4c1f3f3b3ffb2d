package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hperera/librarium/internal/account"
	"github.com/hperera/librarium/internal/auth"
	"github.com/hperera/librarium/internal/config"
	"github.com/hperera/librarium/internal/database"
	"github.com/hperera/librarium/internal/database/books"
	"github.com/hperera/librarium/internal/database/transactions"
	"github.com/hperera/librarium/internal/database/users"
	"github.com/hperera/librarium/internal/events"
	"github.com/hperera/librarium/internal/lending"
)

type testApp struct {
	router   *gin.Engine
	db       *database.Database
	users    *users.Repository
	books    *books.Repository
	authSvc  *auth.Service
}

func setupTestApp(t *testing.T) (*testApp, func()) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dbPath := "./test_http_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"
	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)

	userRepo := users.NewRepository(db.DB)
	bookRepo := books.NewRepository(db.DB)
	txRepo := transactions.NewRepository(db.DB)
	ev := events.NewManager()
	gateway := database.NewGateway(userRepo, bookRepo, txRepo)
	engine := lending.NewEngine(gateway, account.DefaultRules(), ev)
	// cost 4 keeps bcrypt fast in tests
	authSvc := auth.NewService(userRepo, config.Auth{BcryptCost: 4})

	router := NewRouter(RouterConfig{
		Engine:      engine,
		Users:       userRepo,
		Books:       bookRepo,
		Database:    db,
		Events:      ev,
		AuthService: authSvc,
		Version:     "test",
	})

	app := &testApp{router: router, db: db, users: userRepo, books: bookRepo, authSvc: authSvc}
	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}
	return app, cleanup
}

func (a *testApp) request(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decodeResult(t *testing.T, w *httptest.ResponseRecorder) Result {
	t.Helper()
	var result Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	return result
}

func (a *testApp) registerUser(t *testing.T, username, password, userType string) {
	t.Helper()
	w := a.request(t, "POST", "/api/register", gin.H{
		"username": username,
		"password": password,
		"userType": userType,
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, decodeResult(t, w).Success)
}

func (a *testApp) addBook(t *testing.T, title, author string, copies int, bookType string) {
	t.Helper()
	w := a.request(t, "POST", "/api/books", gin.H{
		"title":  title,
		"author": author,
		"copies": copies,
		"type":   bookType,
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, decodeResult(t, w).Success)
}

func TestRouter_MethodNotAllowed(t *testing.T) {
	app, cleanup := setupTestApp(t)
	defer cleanup()

	w := app.request(t, "GET", "/api/login", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestHealthEndpoint(t *testing.T) {
	app, cleanup := setupTestApp(t)
	defer cleanup()

	w := app.request(t, "GET", "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var health healthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &health))
	assert.Equal(t, "healthy", health.Status)
	assert.Equal(t, "ok", health.DB)
}

func TestStats(t *testing.T) {
	app, cleanup := setupTestApp(t)
	defer cleanup()

	app.registerUser(t, "user1", "pass123", "authorized")
	app.addBook(t, "Dune", "Frank Herbert", 2, "Regular")

	w := app.request(t, "POST", "/api/borrow", gin.H{"username": "user1", "bookTitle": "Dune by Frank Herbert"})
	require.True(t, decodeResult(t, w).Success)

	w = app.request(t, "GET", "/api/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var stats statsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, int64(1), stats.TotalUsers)
	assert.Equal(t, int64(1), stats.TotalBooks)
	assert.Equal(t, int64(1), stats.ActiveBorrows)
}

func TestStaticFiles(t *testing.T) {
	app, cleanup := setupTestApp(t)
	defer cleanup()

	publicDir := t.TempDir()
	require.NoError(t, os.WriteFile(publicDir+"/index.html", []byte("<html></html>"), 0o644))

	// rebuild with a public path
	app.router = NewRouter(RouterConfig{
		Users:       app.users,
		Books:       app.books,
		Database:    app.db,
		Events:      events.NewManager(),
		AuthService: app.authSvc,
		Engine: lending.NewEngine(
			database.NewGateway(app.users, app.books, transactions.NewRepository(app.db.DB)),
			account.DefaultRules(), events.NewManager()),
		PublicPath: publicDir,
	})

	t.Run("serves index for root", func(t *testing.T) {
		w := app.request(t, "GET", "/", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "<html>")
	})

	t.Run("rejects path traversal", func(t *testing.T) {
		req, _ := http.NewRequest("GET", "/", nil)
		req.URL.Path = "/../secrets.txt"
		w := httptest.NewRecorder()
		app.router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("missing file is 404", func(t *testing.T) {
		w := app.request(t, "GET", "/missing.js", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
