package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hperera/librarium/internal/database/books"
	"github.com/hperera/librarium/internal/database/users"
)

type StatsController struct {
	users *users.Repository
	books *books.Repository
}

func NewStatsController(userRepo *users.Repository, bookRepo *books.Repository) *StatsController {
	return &StatsController{users: userRepo, books: bookRepo}
}

type statsResponse struct {
	TotalUsers    int64 `json:"totalUsers"`
	TotalBooks    int64 `json:"totalBooks"`
	ActiveBorrows int64 `json:"activeBorrows"`
}

// Get reports library-wide counts.
// GET /api/stats
func (sc *StatsController) Get(c *gin.Context) {
	totalUsers, err := sc.users.Count()
	if err != nil {
		respondInternalError(c, err, "count users")
		return
	}
	totalBooks, err := sc.books.Count()
	if err != nil {
		respondInternalError(c, err, "count books")
		return
	}
	activeBorrows, err := sc.users.ActiveLoanCount()
	if err != nil {
		respondInternalError(c, err, "count loans")
		return
	}

	c.JSON(http.StatusOK, statsResponse{
		TotalUsers:    totalUsers,
		TotalBooks:    totalBooks,
		ActiveBorrows: activeBorrows,
	})
}
