// Package scheduler runs the periodic overdue-loan scan. The scan is purely
// observational: it publishes events for overdue books and never mutates
// accounts or the catalog.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/hperera/librarium/internal/config"
	"github.com/hperera/librarium/internal/database/users"
	"github.com/hperera/librarium/internal/events"
	"github.com/hperera/librarium/internal/lending"
)

// OverdueScanner walks every account on a cron schedule and raises an
// OVERDUE_LOAN event for each book held past its due date.
type OverdueScanner struct {
	users  *users.Repository
	engine *lending.Engine
	events *events.Manager
	config config.OverdueScan

	cron       *cron.Cron
	mu         sync.Mutex
	isRunning  bool
	cancelFunc context.CancelFunc
}

func NewOverdueScanner(userRepo *users.Repository, engine *lending.Engine, ev *events.Manager, cfg config.OverdueScan) *OverdueScanner {
	return &OverdueScanner{
		users:  userRepo,
		engine: engine,
		events: ev,
		config: cfg,
		cron:   cron.New(),
	}
}

// Start schedules the scan if enabled. An immediate scan also runs so
// overdue loans surface right after startup rather than at the next tick.
func (s *OverdueScanner) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}
	if !s.config.Enabled {
		log.Printf("Overdue scanner: disabled")
		return nil
	}

	if _, err := s.cron.AddFunc(s.config.Schedule, func() {
		if err := s.Scan(time.Now()); err != nil {
			log.Printf("Overdue scan failed: %v", err)
		}
	}); err != nil {
		return fmt.Errorf("invalid overdue scan schedule %q: %w", s.config.Schedule, err)
	}

	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)

	s.cron.Start()
	s.isRunning = true
	log.Printf("Overdue scanner: started with schedule %q", s.config.Schedule)

	go func() {
		if err := s.Scan(time.Now()); err != nil {
			log.Printf("Overdue scan failed: %v", err)
		}
	}()
	go func() {
		<-cancelCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop halts scheduling and waits for a running scan to finish.
func (s *OverdueScanner) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()

	s.isRunning = false
	if s.cancelFunc != nil {
		s.cancelFunc()
		s.cancelFunc = nil
	}
	log.Printf("Overdue scanner: stopped")
}

// Scan publishes one OVERDUE_LOAN event per overdue book. Projections come
// from the lending engine so the reported fines match what Return would
// charge.
func (s *OverdueScanner) Scan(now time.Time) error {
	accounts, err := s.users.GetAll()
	if err != nil {
		return fmt.Errorf("load accounts: %w", err)
	}

	overdue := 0
	for _, account := range accounts {
		if len(account.Loans) == 0 {
			continue
		}
		projections, err := s.engine.ProjectFines(account.Username, now)
		if err != nil {
			log.Printf("Overdue scan: skipping %s: %v", account.Username, err)
			continue
		}
		for _, p := range projections {
			if p.DaysLate == 0 {
				continue
			}
			overdue++
			s.events.Publish(events.OverdueLoan, fmt.Sprintf(
				"%s is holding %q %d days past due (accruing $%.2f/day, $%.2f so far)",
				account.Username, p.BookTitle, p.DaysLate, p.DailyRate, p.ProjectedFine))
		}
	}

	if overdue > 0 {
		log.Printf("Overdue scan: found %d overdue loans", overdue)
	}
	return nil
}
