package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hperera/librarium/internal/catalog"
	"github.com/hperera/librarium/internal/database/books"
	"github.com/hperera/librarium/internal/entities"
	"github.com/hperera/librarium/internal/events"
)

type BooksController struct {
	books    *books.Repository
	sessions sessionReader
	events   *events.Manager
}

func NewBooksController(repo *books.Repository, sessions sessionReader, ev *events.Manager) *BooksController {
	return &BooksController{books: repo, sessions: sessions, events: ev}
}

// bookView is the wire shape the frontend consumes.
type bookView struct {
	Title      string `json:"title"`
	Copies     int    `json:"copies"`
	Type       string `json:"type"`
	Category   string `json:"category"`
	Visibility string `json:"visibility"`
	Owner      string `json:"owner"`
}

func toBookView(b entities.Book) bookView {
	return bookView{
		Title:      b.Title,
		Copies:     b.Copies,
		Type:       string(catalog.ResolveKind(b.Kind)),
		Category:   b.Category,
		Visibility: string(b.Visibility),
		Owner:      b.Owner,
	}
}

// visibleTo reports whether the viewer may see the entry. Entries are visible
// when public, when the viewer owns them, or when the viewer is admin.
func visibleTo(b entities.Book, username string) bool {
	if b.Visibility != entities.VisibilityPrivate {
		return true
	}
	return username == b.Owner || username == "admin"
}

// List returns catalog entries visible to the requesting user.
// GET /api/books?username=
func (bc *BooksController) List(c *gin.Context) {
	username := c.Query("username")
	if username == "" && bc.sessions != nil {
		username = bc.sessions.Username(c.Request)
	}

	all, err := bc.books.GetAll()
	if err != nil {
		respondInternalError(c, err, "list books")
		return
	}

	views := make([]bookView, 0, len(all))
	for _, b := range all {
		if visibleTo(b, username) {
			views = append(views, toBookView(b))
		}
	}
	c.JSON(http.StatusOK, views)
}

type addBookRequest struct {
	Title      string `json:"title"`
	Author     string `json:"author"`
	Copies     int    `json:"copies"`
	Type       string `json:"type"`
	Category   string `json:"category"`
	Owner      string `json:"owner"`
	Visibility string `json:"visibility"`
}

// Add creates a catalog entry, or adds copies to an existing one.
// POST /api/books
func (bc *BooksController) Add(c *gin.Context) {
	var req addBookRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.Title == "" {
		respondResult(c, false, "title is required")
		return
	}
	if req.Copies < 0 {
		respondResult(c, false, "copies must not be negative")
		return
	}

	fullTitle := req.Title
	if req.Author != "" {
		fullTitle = req.Title + " by " + req.Author
	}

	owner := req.Owner
	if owner == "" {
		owner = "admin"
	}
	// Omitted visibility keeps the stored value on existing titles; new
	// entries get the PUBLIC default. Unknown values normalize to PUBLIC.
	visibility := entities.Visibility(req.Visibility)
	if visibility != "" && visibility != entities.VisibilityPrivate {
		visibility = entities.VisibilityPublic
	}

	// An omitted type keeps the stored kind when adding copies to an
	// existing title; new entries fall back to the Regular default.
	var kind entities.Kind
	if req.Type != "" {
		kind = catalog.ParseKind(req.Type)
	}

	book := &entities.Book{
		Title:      fullTitle,
		Copies:     req.Copies,
		Kind:       kind,
		Category:   req.Category,
		Owner:      owner,
		Visibility: visibility,
	}
	if err := bc.books.Upsert(book); err != nil {
		respondInternalError(c, err, "add book")
		return
	}

	bc.events.Publish(events.BookAdded, fmt.Sprintf("Book added: %s (%d copies)", fullTitle, req.Copies))
	respondResult(c, true, "Book added successfully")
}

type removeBookRequest struct {
	Title string `json:"title"`
}

// Remove deletes a catalog entry.
// DELETE /api/books
func (bc *BooksController) Remove(c *gin.Context) {
	var req removeBookRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := bc.books.Delete(req.Title); err != nil {
		if errors.Is(err, books.ErrNotFound) {
			respondResult(c, false, "Book not found")
			return
		}
		respondInternalError(c, err, "remove book")
		return
	}

	bc.events.Publish(events.BookRemoved, "Book removed: "+req.Title)
	respondResult(c, true, "Book removed successfully")
}

// Search returns visible entries whose titles contain the query term.
// GET /api/books/search?q=&username=
func (bc *BooksController) Search(c *gin.Context) {
	term := c.Query("q")
	username := c.Query("username")
	if username == "" && bc.sessions != nil {
		username = bc.sessions.Username(c.Request)
	}

	matches, err := bc.books.Search(term)
	if err != nil {
		respondInternalError(c, err, "search books")
		return
	}

	views := make([]bookView, 0, len(matches))
	for _, b := range matches {
		if visibleTo(b, username) {
			views = append(views, toBookView(b))
		}
	}
	c.JSON(http.StatusOK, views)
}

// Categories lists the known category names.
// GET /api/categories
func (bc *BooksController) Categories(c *gin.Context) {
	cats, err := bc.books.Categories()
	if err != nil {
		respondInternalError(c, err, "list categories")
		return
	}
	names := make([]string, 0, len(cats))
	for _, cat := range cats {
		names = append(names, cat.Name)
	}
	c.JSON(http.StatusOK, names)
}
