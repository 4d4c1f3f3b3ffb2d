package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hperera/librarium/internal/database/users"
	"github.com/hperera/librarium/internal/entities"
)

type UsersController struct {
	users    *users.Repository
	sessions sessionReader
}

func NewUsersController(repo *users.Repository, sessions sessionReader) *UsersController {
	return &UsersController{users: repo, sessions: sessions}
}

// userView flattens the account with its loans into the shape the
// frontend consumes. Dates are keyed by book title.
type userView struct {
	Username      string            `json:"username"`
	UserType      string            `json:"userType"`
	BorrowedBooks []string          `json:"borrowedBooks"`
	BorrowDates   map[string]string `json:"borrowDates"`
	DueDates      map[string]string `json:"dueDates"`
	Favorites     []string          `json:"favorites"`
	TotalFine     float64           `json:"totalFine"`
}

const dateLayout = "2006-01-02"

func toUserView(u *entities.User) userView {
	view := userView{
		Username:      u.Username,
		UserType:      string(u.Tier),
		BorrowedBooks: make([]string, 0, len(u.Loans)),
		BorrowDates:   make(map[string]string, len(u.Loans)),
		DueDates:      make(map[string]string, len(u.Loans)),
		Favorites:     make([]string, 0, len(u.Favourites)),
		TotalFine:     u.TotalFine,
	}
	for _, loan := range u.Loans {
		view.BorrowedBooks = append(view.BorrowedBooks, loan.BookTitle)
		view.BorrowDates[loan.BookTitle] = loan.BorrowedAt.Format(dateLayout)
		view.DueDates[loan.BookTitle] = loan.DueAt.Format(dateLayout)
	}
	for _, fav := range u.Favourites {
		view.Favorites = append(view.Favorites, fav.BookTitle)
	}
	return view
}

// Get returns one user when ?username= is given (falling back to the
// session identity), otherwise a map of all users keyed by username.
// GET /api/users
func (uc *UsersController) Get(c *gin.Context) {
	username, explicit := c.GetQuery("username")
	if !explicit && uc.sessions != nil {
		if sessionUser := uc.sessions.Username(c.Request); sessionUser != "" {
			username = sessionUser
			explicit = true
		}
	}

	if explicit {
		user, err := uc.users.GetByUsername(username)
		if err != nil {
			if errors.Is(err, users.ErrNotFound) {
				respondNotFound(c, "user")
				return
			}
			respondInternalError(c, err, "get user")
			return
		}
		c.JSON(http.StatusOK, toUserView(user))
		return
	}

	all, err := uc.users.GetAll()
	if err != nil {
		respondInternalError(c, err, "list users")
		return
	}
	views := make(map[string]userView, len(all))
	for i := range all {
		views[all[i].Username] = toUserView(&all[i])
	}
	c.JSON(http.StatusOK, views)
}

type removeUserRequest struct {
	Username string `json:"username"`
}

// Remove deletes an account along with its loans and favourites.
// DELETE /api/users
func (uc *UsersController) Remove(c *gin.Context) {
	var req removeUserRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := uc.users.Delete(req.Username); err != nil {
		if errors.Is(err, users.ErrNotFound) {
			respondResult(c, false, "User not found")
			return
		}
		respondInternalError(c, err, "remove user")
		return
	}
	respondResult(c, true, "User removed successfully")
}
