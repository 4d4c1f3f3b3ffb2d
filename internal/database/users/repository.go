// Package users provides database operations for library accounts.
//
// # Usage
//
//	repo := users.NewRepository(db)
//	user, err := repo.GetByUsername("user1")
package users

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/hperera/librarium/internal/entities"
)

// ErrNotFound is returned when no account exists for a username.
var ErrNotFound = errors.New("user not found")

// Repository handles all account database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new users repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new account. The password must already be hashed.
func (r *Repository) Create(username, passwordHash string, tier entities.Tier) (*entities.User, error) {
	user := &entities.User{
		Username:     username,
		PasswordHash: passwordHash,
		Tier:         tier,
	}
	if err := r.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// GetByUsername retrieves an account with its loans and favourites.
func (r *Repository) GetByUsername(username string) (*entities.User, error) {
	var user entities.User
	err := r.db.Preload("Loans").Preload("Favourites").
		Where("username = ?", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetAll retrieves every account with loans and favourites preloaded.
func (r *Repository) GetAll() ([]entities.User, error) {
	var users []entities.User
	err := r.db.Preload("Loans").Preload("Favourites").Find(&users).Error
	return users, err
}

// Save persists account fields and replaces the loan set so removed loans
// are deleted, not orphaned.
func (r *Repository) Save(user *entities.User) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&entities.User{}).Where("id = ?", user.ID).
			Updates(map[string]any{
				"tier":       user.Tier,
				"total_fine": user.TotalFine,
			}).Error; err != nil {
			return fmt.Errorf("update account: %w", err)
		}

		if err := tx.Where("user_id = ?", user.ID).Delete(&entities.Loan{}).Error; err != nil {
			return fmt.Errorf("clear loans: %w", err)
		}
		for i := range user.Loans {
			loan := user.Loans[i]
			loan.ID = 0
			loan.UserID = user.ID
			if err := tx.Create(&loan).Error; err != nil {
				return fmt.Errorf("save loan: %w", err)
			}
		}
		return nil
	})
}

// Delete removes an account and its loans and favourites.
func (r *Repository) Delete(username string) error {
	user, err := r.GetByUsername(username)
	if err != nil {
		return err
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", user.ID).Delete(&entities.Loan{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", user.ID).Delete(&entities.Favourite{}).Error; err != nil {
			return err
		}
		return tx.Delete(&entities.User{}, user.ID).Error
	})
}

// ToggleFavourite flips the favourite state of a title for the account and
// reports whether it is now a favourite. Titles need not exist in the
// catalog.
func (r *Repository) ToggleFavourite(username, bookTitle string) (bool, error) {
	user, err := r.GetByUsername(username)
	if err != nil {
		return false, err
	}

	var existing entities.Favourite
	err = r.db.Where("user_id = ? AND book_title = ?", user.ID, bookTitle).
		First(&existing).Error
	if err == nil {
		if err := r.db.Delete(&existing).Error; err != nil {
			return false, err
		}
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	fav := entities.Favourite{UserID: user.ID, BookTitle: bookTitle}
	if err := r.db.Create(&fav).Error; err != nil {
		return false, err
	}
	return true, nil
}

// Count returns the number of registered accounts.
func (r *Repository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&entities.User{}).Count(&count).Error
	return count, err
}

// ActiveLoanCount returns the number of books currently out across all
// accounts.
func (r *Repository) ActiveLoanCount() (int64, error) {
	var count int64
	err := r.db.Model(&entities.Loan{}).Count(&count).Error
	return count, err
}

// AllLoans returns every active loan, for the overdue scan.
func (r *Repository) AllLoans() ([]entities.Loan, error) {
	var loans []entities.Loan
	err := r.db.Find(&loans).Error
	return loans, err
}

// UsernameForID resolves a loan's owner, used when reporting overdue loans.
func (r *Repository) UsernameForID(id uint) (string, error) {
	var user entities.User
	if err := r.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrNotFound
		}
		return "", err
	}
	return user.Username, nil
}
