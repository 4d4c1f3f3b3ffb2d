package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hperera/librarium/internal/account"
	"github.com/hperera/librarium/internal/auth"
	"github.com/hperera/librarium/internal/events"
)

type AuthController struct {
	service  *auth.Service
	sessions *auth.SessionManager
	events   *events.Manager
}

func NewAuthController(service *auth.Service, sessions *auth.SessionManager, ev *events.Manager) *AuthController {
	return &AuthController{service: service, sessions: sessions, events: ev}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Success  bool   `json:"success"`
	UserType string `json:"userType,omitempty"`
	Username string `json:"username,omitempty"`
	Message  string `json:"message,omitempty"`
}

// Login validates credentials.
// POST /api/login
func (ac *AuthController) Login(c *gin.Context) {
	var req loginRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := ac.service.Authenticate(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) || errors.Is(err, auth.ErrInvalidPassword) {
			c.JSON(http.StatusOK, loginResponse{Success: false, Message: "Invalid credentials"})
			return
		}
		respondInternalError(c, err, "login")
		return
	}

	if ac.sessions != nil {
		if err := ac.sessions.CreateSession(c.Request, user); err != nil {
			respondInternalError(c, err, "create session")
			return
		}
	}

	ac.events.Publish(events.UserLogin, "User logged in: "+user.Username)
	c.JSON(http.StatusOK, loginResponse{
		Success:  true,
		UserType: string(user.Tier),
		Username: user.Username,
	})
}

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	UserType string `json:"userType"`
}

// Register creates a new account.
// POST /api/register
func (ac *AuthController) Register(c *gin.Context) {
	var req registerRequest
	if !bindJSON(c, &req) {
		return
	}

	tier := account.ParseTier(req.UserType)
	user, err := ac.service.Register(req.Username, req.Password, tier)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrUserExists):
			respondResult(c, false, "User already exists")
		case errors.Is(err, auth.ErrUsernameRequired),
			errors.Is(err, auth.ErrPasswordRequired),
			errors.Is(err, auth.ErrUsernameInvalid),
			errors.Is(err, auth.ErrPasswordTooShort),
			errors.Is(err, auth.ErrPasswordTooLong):
			respondResult(c, false, err.Error())
		default:
			respondInternalError(c, err, "register")
		}
		return
	}

	ac.events.Publish(events.UserRegistered,
		fmt.Sprintf("New %s user registered: %s", user.Tier, user.Username))
	respondResult(c, true, "User registered successfully")
}
