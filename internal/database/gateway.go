package database

import (
	"errors"

	"github.com/hperera/librarium/internal/database/books"
	"github.com/hperera/librarium/internal/database/transactions"
	"github.com/hperera/librarium/internal/database/users"
	"github.com/hperera/librarium/internal/entities"
	"github.com/hperera/librarium/internal/lending"
)

// Gateway adapts the repositories to the lending engine's persistence
// contract. It performs no validation; the engine enforces all invariants
// before calling it.
type Gateway struct {
	users        *users.Repository
	books        *books.Repository
	transactions *transactions.Repository
}

// NewGateway builds the engine-facing persistence boundary.
func NewGateway(users *users.Repository, books *books.Repository, transactions *transactions.Repository) *Gateway {
	return &Gateway{users: users, books: books, transactions: transactions}
}

func (g *Gateway) LoadAccount(username string) (*entities.User, error) {
	user, err := g.users.GetByUsername(username)
	if errors.Is(err, users.ErrNotFound) {
		return nil, lending.ErrNotFound
	}
	return user, err
}

func (g *Gateway) SaveAccount(user *entities.User) error {
	return g.users.Save(user)
}

func (g *Gateway) LoadCatalogEntry(title string) (*entities.Book, error) {
	book, err := g.books.GetByTitle(title)
	if errors.Is(err, books.ErrNotFound) {
		return nil, lending.ErrNotFound
	}
	return book, err
}

func (g *Gateway) LoadAllCatalogEntries() ([]entities.Book, error) {
	return g.books.GetAll()
}

func (g *Gateway) UpdateAvailableCopies(title string, copies int) error {
	return g.books.UpdateCopies(title, copies)
}

func (g *Gateway) AppendTransaction(tx entities.Transaction) error {
	return g.transactions.Append(tx)
}
