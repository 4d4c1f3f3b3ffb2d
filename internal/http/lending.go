package http

import (
	"errors"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hperera/librarium/internal/lending"
)

type LendingController struct {
	engine *lending.Engine
}

func NewLendingController(engine *lending.Engine) *LendingController {
	return &LendingController{engine: engine}
}

type lendingRequest struct {
	Username  string `json:"username"`
	BookTitle string `json:"bookTitle"`
}

// Borrow lends a book to a user.
// POST /api/borrow
func (lc *LendingController) Borrow(c *gin.Context) {
	var req lendingRequest
	if !bindJSON(c, &req) {
		return
	}

	dueDate, err := lc.engine.Borrow(req.Username, req.BookTitle, time.Now())
	if err != nil {
		if msg, rejected := rejectionMessage(err); rejected {
			respondResult(c, false, msg)
			return
		}
		respondInternalError(c, err, "borrow")
		return
	}

	respondResult(c, true, "Book borrowed! Due date: "+dueDate.Format("2006-01-02"))
}

// Return takes a book back and reports any fine.
// POST /api/return
func (lc *LendingController) Return(c *gin.Context) {
	var req lendingRequest
	if !bindJSON(c, &req) {
		return
	}

	fine, err := lc.engine.Return(req.Username, req.BookTitle, time.Now())
	if err != nil {
		if msg, rejected := rejectionMessage(err); rejected {
			respondResult(c, false, msg)
			return
		}
		respondInternalError(c, err, "return")
		return
	}

	if fine > 0 {
		respondResult(c, true, fmt.Sprintf("Book returned. Fine incurred: $%.2f", fine))
		return
	}
	respondResult(c, true, "Book returned successfully.")
}

// rejectionMessage maps engine precondition failures to client-facing text.
// Infrastructure errors are not rejections and fall through.
func rejectionMessage(err error) (string, bool) {
	switch {
	case errors.Is(err, lending.ErrAccountNotFound):
		return "User not found", true
	case errors.Is(err, lending.ErrUnauthorizedTier):
		return "Unauthorized users cannot borrow books", true
	case errors.Is(err, lending.ErrAlreadyBorrowed):
		return "You have already borrowed this book", true
	case errors.Is(err, lending.ErrLimitReached):
		return "Maximum book limit reached", true
	case errors.Is(err, lending.ErrUnavailable):
		return "Book not available", true
	case errors.Is(err, lending.ErrNotHeld):
		return "User does not have this book", true
	}
	return "", false
}
