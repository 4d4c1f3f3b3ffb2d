package scheduler

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hperera/librarium/internal/account"
	"github.com/hperera/librarium/internal/config"
	"github.com/hperera/librarium/internal/database"
	"github.com/hperera/librarium/internal/database/books"
	"github.com/hperera/librarium/internal/database/transactions"
	"github.com/hperera/librarium/internal/database/users"
	"github.com/hperera/librarium/internal/entities"
	"github.com/hperera/librarium/internal/events"
	"github.com/hperera/librarium/internal/lending"
)

type scanFixture struct {
	scanner   *OverdueScanner
	users     *users.Repository
	books     *books.Repository
	engine    *lending.Engine
	published []string
}

func setupScanFixture(t *testing.T) (*scanFixture, func()) {
	t.Helper()

	dbPath := "./test_scheduler_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"
	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)

	userRepo := users.NewRepository(db.DB)
	bookRepo := books.NewRepository(db.DB)
	ev := events.NewManager()
	gateway := database.NewGateway(userRepo, bookRepo, transactions.NewRepository(db.DB))
	engine := lending.NewEngine(gateway, account.DefaultRules(), ev)

	f := &scanFixture{
		scanner: NewOverdueScanner(userRepo, engine, ev, config.OverdueScan{}),
		users:   userRepo,
		books:   bookRepo,
		engine:  engine,
	}
	ev.Subscribe(func(eventType, message string) {
		if eventType == events.OverdueLoan {
			f.published = append(f.published, message)
		}
	})

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}
	return f, cleanup
}

func TestScanPublishesOverdueLoans(t *testing.T) {
	f, cleanup := setupScanFixture(t)
	defer cleanup()

	_, err := f.users.Create("alice", "x", entities.TierAuthorized)
	require.NoError(t, err)
	require.NoError(t, f.books.Upsert(&entities.Book{
		Title: "Dune by Frank Herbert", Copies: 1, Kind: entities.KindRegular,
	}))

	// a 14-day loan taken 20 days ago is 6 days late
	borrowedAt := time.Now().AddDate(0, 0, -20)
	_, err = f.engine.Borrow("alice", "Dune by Frank Herbert", borrowedAt)
	require.NoError(t, err)

	require.NoError(t, f.scanner.Scan(time.Now()))

	require.Len(t, f.published, 1)
	assert.Contains(t, f.published[0], "alice")
	assert.Contains(t, f.published[0], "6 days past due")
	assert.Contains(t, f.published[0], "$60.00 so far")
}

func TestScanIgnoresCurrentLoans(t *testing.T) {
	f, cleanup := setupScanFixture(t)
	defer cleanup()

	_, err := f.users.Create("alice", "x", entities.TierAuthorized)
	require.NoError(t, err)
	require.NoError(t, f.books.Upsert(&entities.Book{
		Title: "Dune by Frank Herbert", Copies: 1, Kind: entities.KindRegular,
	}))

	_, err = f.engine.Borrow("alice", "Dune by Frank Herbert", time.Now())
	require.NoError(t, err)

	require.NoError(t, f.scanner.Scan(time.Now()))
	assert.Empty(t, f.published)
}

func TestStartDisabledIsNoop(t *testing.T) {
	f, cleanup := setupScanFixture(t)
	defer cleanup()

	require.NoError(t, f.scanner.Start(context.Background()))
	assert.False(t, f.scanner.isRunning)
}
