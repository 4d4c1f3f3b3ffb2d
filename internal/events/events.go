// Package events is a small in-process notification hub. Listeners are plain
// callbacks; publishing never affects state transitions, it is decorative
// logging for the console and the overdue scanner.
package events

import (
	"log"
	"sync"
)

// Common event types emitted by the application.
const (
	UserRegistered = "USER_REGISTERED"
	UserLogin      = "USER_LOGIN"
	UserLogout     = "USER_LOGOUT"
	BookBorrowed   = "BOOK_BORROWED"
	BookReturned   = "BOOK_RETURNED"
	LateReturn     = "LATE_RETURN"
	OverdueLoan    = "OVERDUE_LOAN"
	BookAdded      = "NEW_BOOK_ADDED"
	BookRemoved    = "BOOK_REMOVED"
)

// Listener receives every published event.
type Listener func(eventType, message string)

// Manager fans events out to registered listeners.
type Manager struct {
	mu        sync.RWMutex
	listeners []Listener
}

func NewManager() *Manager {
	return &Manager{}
}

// Subscribe registers a listener for all subsequent events.
func (m *Manager) Subscribe(l Listener) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners, l)
}

// Publish delivers the event to every listener, synchronously and in
// registration order.
func (m *Manager) Publish(eventType, message string) {
	m.mu.RLock()
	listeners := make([]Listener, len(m.listeners))
	copy(listeners, m.listeners)
	m.mu.RUnlock()

	for _, l := range listeners {
		l(eventType, message)
	}
}

// LogListener writes every event through the standard logger.
func LogListener(eventType, message string) {
	log.Printf("[EVENT] %s: %s", eventType, message)
}

// FineAlertListener logs only fine and overdue related events.
func FineAlertListener(eventType, message string) {
	if eventType == LateReturn || eventType == OverdueLoan {
		log.Printf("[FINE ALERT] %s", message)
	}
}
