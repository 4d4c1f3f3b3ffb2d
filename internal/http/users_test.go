package http

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetUser(t *testing.T) {
	t.Run("single user with loans and favourites", func(t *testing.T) {
		app, cleanup := setupTestApp(t)
		defer cleanup()

		app.registerUser(t, "user1", "pass123", "authorized")
		app.addBook(t, "Dune", "Frank Herbert", 1, "Regular")

		w := app.request(t, "POST", "/api/borrow", gin.H{
			"username": "user1", "bookTitle": "Dune by Frank Herbert",
		})
		require.True(t, decodeResult(t, w).Success)

		w = app.request(t, "POST", "/api/favorites", gin.H{
			"username": "user1", "bookTitle": "Hamlet by Shakespeare",
		})
		require.True(t, decodeResult(t, w).Success)

		w = app.request(t, "GET", "/api/users?username=user1", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var view userView
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
		assert.Equal(t, "user1", view.Username)
		assert.Equal(t, "authorized", view.UserType)
		assert.Equal(t, []string{"Dune by Frank Herbert"}, view.BorrowedBooks)
		assert.Equal(t, []string{"Hamlet by Shakespeare"}, view.Favorites)
		assert.Zero(t, view.TotalFine)

		today := time.Now().Format("2006-01-02")
		assert.Equal(t, today, view.BorrowDates["Dune by Frank Herbert"])
		due := time.Now().AddDate(0, 0, 14).Format("2006-01-02")
		assert.Equal(t, due, view.DueDates["Dune by Frank Herbert"])
	})

	t.Run("unknown user is 404", func(t *testing.T) {
		app, cleanup := setupTestApp(t)
		defer cleanup()

		w := app.request(t, "GET", "/api/users?username=ghost", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("no username returns all users keyed by name", func(t *testing.T) {
		app, cleanup := setupTestApp(t)
		defer cleanup()

		app.registerUser(t, "user1", "pass123", "authorized")
		app.registerUser(t, "guest", "guest123", "unauthorized")

		w := app.request(t, "GET", "/api/users", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var views map[string]userView
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &views))
		require.Len(t, views, 2)
		assert.Equal(t, "authorized", views["user1"].UserType)
		assert.Equal(t, "unauthorized", views["guest"].UserType)
	})
}

func TestRemoveUser(t *testing.T) {
	app, cleanup := setupTestApp(t)
	defer cleanup()

	app.registerUser(t, "user1", "pass123", "authorized")

	w := app.request(t, "DELETE", "/api/users", gin.H{"username": "user1"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decodeResult(t, w).Success)

	w = app.request(t, "GET", "/api/users?username=user1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestToggleFavourite(t *testing.T) {
	t.Run("toggles on then off", func(t *testing.T) {
		app, cleanup := setupTestApp(t)
		defer cleanup()

		app.registerUser(t, "user1", "pass123", "authorized")

		w := app.request(t, "POST", "/api/favorites", gin.H{
			"username": "user1", "bookTitle": "Dune by Frank Herbert",
		})
		result := decodeResult(t, w)
		assert.True(t, result.Success)
		assert.Equal(t, "Added to favorites", result.Message)

		w = app.request(t, "POST", "/api/favorites", gin.H{
			"username": "user1", "bookTitle": "Dune by Frank Herbert",
		})
		result = decodeResult(t, w)
		assert.True(t, result.Success)
		assert.Equal(t, "Removed from favorites", result.Message)

		user, err := app.users.GetByUsername("user1")
		require.NoError(t, err)
		assert.Empty(t, user.Favourites)
	})

	t.Run("any title can be favourited regardless of tier", func(t *testing.T) {
		app, cleanup := setupTestApp(t)
		defer cleanup()

		app.registerUser(t, "guest", "guest123", "unauthorized")

		w := app.request(t, "POST", "/api/favorites", gin.H{
			"username": "guest", "bookTitle": "Not In Catalog",
		})
		assert.True(t, decodeResult(t, w).Success)
	})

	t.Run("unknown user", func(t *testing.T) {
		app, cleanup := setupTestApp(t)
		defer cleanup()

		w := app.request(t, "POST", "/api/favorites", gin.H{
			"username": "ghost", "bookTitle": "Dune",
		})
		result := decodeResult(t, w)
		assert.False(t, result.Success)
		assert.Equal(t, "User not found", result.Message)
	})
}
