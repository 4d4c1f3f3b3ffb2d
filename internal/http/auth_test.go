package http

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	t.Run("registers a new user", func(t *testing.T) {
		app, cleanup := setupTestApp(t)
		defer cleanup()

		w := app.request(t, "POST", "/api/register", gin.H{
			"username": "alice",
			"password": "secret1",
			"userType": "authorized",
		})
		require.Equal(t, http.StatusOK, w.Code)

		result := decodeResult(t, w)
		assert.True(t, result.Success)
		assert.Equal(t, "User registered successfully", result.Message)
	})

	t.Run("rejects duplicate username", func(t *testing.T) {
		app, cleanup := setupTestApp(t)
		defer cleanup()

		app.registerUser(t, "alice", "secret1", "authorized")

		w := app.request(t, "POST", "/api/register", gin.H{
			"username": "alice",
			"password": "another1",
			"userType": "authorized",
		})
		require.Equal(t, http.StatusOK, w.Code)

		result := decodeResult(t, w)
		assert.False(t, result.Success)
		assert.Equal(t, "User already exists", result.Message)
	})

	t.Run("rejects short password", func(t *testing.T) {
		app, cleanup := setupTestApp(t)
		defer cleanup()

		w := app.request(t, "POST", "/api/register", gin.H{
			"username": "bob",
			"password": "abc",
			"userType": "authorized",
		})
		require.Equal(t, http.StatusOK, w.Code)
		assert.False(t, decodeResult(t, w).Success)
	})

	t.Run("unknown tier defaults to unauthorized", func(t *testing.T) {
		app, cleanup := setupTestApp(t)
		defer cleanup()

		app.registerUser(t, "carol", "secret1", "wizard")

		user, err := app.users.GetByUsername("carol")
		require.NoError(t, err)
		assert.Equal(t, "unauthorized", string(user.Tier))
	})
}

func TestLogin(t *testing.T) {
	t.Run("valid credentials", func(t *testing.T) {
		app, cleanup := setupTestApp(t)
		defer cleanup()

		app.registerUser(t, "alice", "secret1", "authorized")

		w := app.request(t, "POST", "/api/login", gin.H{
			"username": "alice",
			"password": "secret1",
		})
		require.Equal(t, http.StatusOK, w.Code)

		var resp loginResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Equal(t, "alice", resp.Username)
		assert.Equal(t, "authorized", resp.UserType)
	})

	t.Run("wrong password", func(t *testing.T) {
		app, cleanup := setupTestApp(t)
		defer cleanup()

		app.registerUser(t, "alice", "secret1", "authorized")

		w := app.request(t, "POST", "/api/login", gin.H{
			"username": "alice",
			"password": "wrongpw",
		})
		require.Equal(t, http.StatusOK, w.Code)

		var resp loginResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.False(t, resp.Success)
		assert.Equal(t, "Invalid credentials", resp.Message)
	})

	t.Run("unknown user gets the same message", func(t *testing.T) {
		app, cleanup := setupTestApp(t)
		defer cleanup()

		w := app.request(t, "POST", "/api/login", gin.H{
			"username": "ghost",
			"password": "whatever",
		})
		require.Equal(t, http.StatusOK, w.Code)

		var resp loginResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.False(t, resp.Success)
		assert.Equal(t, "Invalid credentials", resp.Message)
	})
}
