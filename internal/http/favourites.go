package http

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/hperera/librarium/internal/database/users"
)

type FavouritesController struct {
	users *users.Repository
}

func NewFavouritesController(repo *users.Repository) *FavouritesController {
	return &FavouritesController{users: repo}
}

type favouriteRequest struct {
	Username  string `json:"username"`
	BookTitle string `json:"bookTitle"`
}

// Toggle adds the title to the user's favourites, or removes it if already
// present. Any title may be favourited, catalog membership is not checked.
// POST /api/favorites
func (fc *FavouritesController) Toggle(c *gin.Context) {
	var req favouriteRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.Username == "" || req.BookTitle == "" {
		respondResult(c, false, "username and bookTitle are required")
		return
	}

	added, err := fc.users.ToggleFavourite(req.Username, req.BookTitle)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			respondResult(c, false, "User not found")
			return
		}
		respondInternalError(c, err, "toggle favourite")
		return
	}

	if added {
		respondResult(c, true, "Added to favorites")
		return
	}
	respondResult(c, true, "Removed from favorites")
}
