// Package lending implements the borrow/return/fine state machine. All
// invariants are enforced here, before anything is written through the
// Gateway; the gateway itself performs no validation.
package lending

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/hperera/librarium/internal/account"
	"github.com/hperera/librarium/internal/catalog"
	"github.com/hperera/librarium/internal/entities"
	"github.com/hperera/librarium/internal/events"
)

// ErrNotFound is returned by Gateway implementations when a record does not
// exist. It is distinct from the precondition rejections below.
var ErrNotFound = errors.New("record not found")

// Precondition rejections, checked in order; the first failure wins.
var (
	ErrAccountNotFound  = errors.New("user not found")
	ErrUnauthorizedTier = errors.New("unauthorized users cannot borrow books")
	ErrAlreadyBorrowed  = errors.New("already borrowed this book")
	ErrLimitReached     = errors.New("max book limit reached")
	ErrUnavailable      = errors.New("book not available")
	ErrNotHeld          = errors.New("user does not have this book")
)

// Gateway is the persistence boundary the engine drives. Each call is
// independent; there is no multi-call transaction wrapping.
type Gateway interface {
	LoadAccount(username string) (*entities.User, error)
	SaveAccount(user *entities.User) error
	LoadCatalogEntry(title string) (*entities.Book, error)
	LoadAllCatalogEntries() ([]entities.Book, error)
	UpdateAvailableCopies(title string, copies int) error
	AppendTransaction(tx entities.Transaction) error
}

// Engine runs borrow/return state transitions for (account, book) pairs.
type Engine struct {
	gateway Gateway
	rules   *account.Rules
	events  *events.Manager

	// Serializes Borrow/Return so two requests cannot both take the last
	// copy. The underlying gateway calls are still independent writes.
	mu sync.Mutex
}

func NewEngine(gateway Gateway, rules *account.Rules, ev *events.Manager) *Engine {
	if rules == nil {
		rules = account.DefaultRules()
	}
	if ev == nil {
		ev = events.NewManager()
	}
	return &Engine{gateway: gateway, rules: rules, events: ev}
}

// Borrow lends one copy of the titled book to the user and returns the due
// date. Preconditions are checked before any state is touched.
func (e *Engine) Borrow(username, title string, today time.Time) (time.Time, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	user, err := e.gateway.LoadAccount(username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return time.Time{}, ErrAccountNotFound
		}
		return time.Time{}, fmt.Errorf("load account: %w", err)
	}

	if !e.rules.CanBorrow(user.Username, user.Tier) {
		return time.Time{}, ErrUnauthorizedTier
	}
	for _, loan := range user.Loans {
		if loan.BookTitle == title {
			return time.Time{}, ErrAlreadyBorrowed
		}
	}
	if len(user.Loans) >= e.rules.MaxBooks(user.Username, user.Tier) {
		return time.Time{}, ErrLimitReached
	}

	// A title missing from the catalog counts as zero available copies.
	book, err := e.gateway.LoadCatalogEntry(title)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return time.Time{}, fmt.Errorf("load catalog entry: %w", err)
	}
	if book == nil || book.Copies <= 0 {
		return time.Time{}, ErrUnavailable
	}

	kind := catalog.ResolveKind(book.Kind)
	borrowedAt := dateOnly(today)
	dueAt := borrowedAt.AddDate(0, 0, catalog.BorrowDuration(kind))

	if err := e.gateway.UpdateAvailableCopies(title, book.Copies-1); err != nil {
		return time.Time{}, fmt.Errorf("update copies: %w", err)
	}

	user.Loans = append(user.Loans, entities.Loan{
		UserID:     user.ID,
		BookTitle:  title,
		Kind:       kind,
		BorrowedAt: borrowedAt,
		DueAt:      dueAt,
	})
	if err := e.gateway.SaveAccount(user); err != nil {
		return time.Time{}, fmt.Errorf("save account: %w", err)
	}

	if err := e.gateway.AppendTransaction(entities.Transaction{
		Username:  username,
		BookTitle: title,
		Action:    entities.ActionBorrow,
		Date:      borrowedAt,
	}); err != nil {
		return time.Time{}, fmt.Errorf("append transaction: %w", err)
	}

	e.events.Publish(events.BookBorrowed,
		fmt.Sprintf("%s borrowed: %s (due: %s)", username, title, dueAt.Format("2006-01-02")))

	return dueAt, nil
}

// Return takes the titled book back, charges any overdue fine, and returns
// the fine amount (zero when on time, including on the due date itself).
func (e *Engine) Return(username, title string, today time.Time) (float64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	user, err := e.gateway.LoadAccount(username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return 0, ErrAccountNotFound
		}
		return 0, fmt.Errorf("load account: %w", err)
	}

	idx := -1
	for i, loan := range user.Loans {
		if loan.BookTitle == title {
			idx = i
			break
		}
	}
	if idx < 0 {
		return 0, ErrNotHeld
	}
	loan := user.Loans[idx]

	daysLate := daysAfter(loan.DueAt, today)
	fine := float64(daysLate) * e.rules.FineRate(user.Username, user.Tier) * catalog.FineMultiplier(loan.Kind)
	if fine > 0 {
		user.TotalFine += fine
	}
	user.Loans = append(user.Loans[:idx], user.Loans[idx+1:]...)

	// A catalog entry removed while the copy was out still gets the copy
	// counted back in, starting from zero.
	copies := 0
	book, err := e.gateway.LoadCatalogEntry(title)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return 0, fmt.Errorf("load catalog entry: %w", err)
	}
	if book != nil {
		copies = book.Copies
	}

	if err := e.gateway.UpdateAvailableCopies(title, copies+1); err != nil {
		return 0, fmt.Errorf("update copies: %w", err)
	}
	if err := e.gateway.SaveAccount(user); err != nil {
		return 0, fmt.Errorf("save account: %w", err)
	}
	if err := e.gateway.AppendTransaction(entities.Transaction{
		Username:  username,
		BookTitle: title,
		Action:    entities.ActionReturn,
		Date:      dateOnly(today),
	}); err != nil {
		return 0, fmt.Errorf("append transaction: %w", err)
	}

	if fine > 0 {
		e.events.Publish(events.LateReturn,
			fmt.Sprintf("%s returned %s late by %d days. Fine: %.2f", username, title, daysLate, fine))
	}
	e.events.Publish(events.BookReturned, fmt.Sprintf("%s returned: %s", username, title))

	return fine, nil
}

// FineProjection is the read-only overdue view for one held book. It uses
// the same formula Return charges with, so projected and charged fines agree.
type FineProjection struct {
	BookTitle     string        `json:"book_title"`
	Kind          entities.Kind `json:"kind"`
	BorrowedAt    time.Time     `json:"borrowed_at"`
	DueAt         time.Time     `json:"due_at"`
	DaysLate      int           `json:"days_late"`
	DailyRate     float64       `json:"daily_rate"`
	ProjectedFine float64       `json:"projected_fine"`
}

// ProjectFines reports the overdue state of every held book without
// mutating anything.
func (e *Engine) ProjectFines(username string, today time.Time) ([]FineProjection, error) {
	user, err := e.gateway.LoadAccount(username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("load account: %w", err)
	}

	rate := e.rules.FineRate(user.Username, user.Tier)
	projections := make([]FineProjection, 0, len(user.Loans))
	for _, loan := range user.Loans {
		daysLate := daysAfter(loan.DueAt, today)
		daily := rate * catalog.FineMultiplier(loan.Kind)
		projections = append(projections, FineProjection{
			BookTitle:     loan.BookTitle,
			Kind:          loan.Kind,
			BorrowedAt:    loan.BorrowedAt,
			DueAt:         loan.DueAt,
			DaysLate:      daysLate,
			DailyRate:     daily,
			ProjectedFine: float64(daysLate) * daily,
		})
	}
	return projections, nil
}

// dateOnly truncates a timestamp to its calendar date.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// daysAfter counts whole calendar days of today strictly after the due
// date. Returning exactly on the due date is zero days late. Both dates
// are re-anchored in UTC so DST transitions cannot shorten a day.
func daysAfter(due, today time.Time) int {
	days := int(utcDate(today).Sub(utcDate(due)).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

func utcDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
