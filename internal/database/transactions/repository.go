// Package transactions stores the append-only BORROW/RETURN audit log. The
// lending engine writes it and never reads it back; the only maintenance is
// retention cleanup.
package transactions

import (
	"time"

	"gorm.io/gorm"

	"github.com/hperera/librarium/internal/entities"
)

// Repository handles the transaction log.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new transactions repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Append records one log entry.
func (r *Repository) Append(tx entities.Transaction) error {
	return r.db.Create(&tx).Error
}

// ForUser returns a user's log entries, newest first. Used by the admin
// console view only, never by the engine.
func (r *Repository) ForUser(username string) ([]entities.Transaction, error) {
	var txs []entities.Transaction
	err := r.db.Where("username = ?", username).
		Order("created_at DESC").Find(&txs).Error
	return txs, err
}

// DeleteOldRecords removes log entries older than the retention period and
// returns how many were deleted.
func (r *Repository) DeleteOldRecords(retention time.Duration) (int64, error) {
	cutoff := time.Now().Add(-retention)
	result := r.db.Where("created_at < ?", cutoff).Delete(&entities.Transaction{})
	return result.RowsAffected, result.Error
}
