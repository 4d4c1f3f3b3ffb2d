// Package books provides database operations for the catalog.
package books

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/hperera/librarium/internal/entities"
)

// ErrNotFound is returned when a title is not in the catalog.
var ErrNotFound = errors.New("book not found")

// Repository handles all catalog database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetByTitle retrieves a catalog entry by its title key.
func (r *Repository) GetByTitle(title string) (*entities.Book, error) {
	var book entities.Book
	err := r.db.Where("title = ?", title).First(&book).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &book, nil
}

// GetAll retrieves the whole catalog.
func (r *Repository) GetAll() ([]entities.Book, error) {
	var books []entities.Book
	err := r.db.Order("title").Find(&books).Error
	return books, err
}

// Upsert creates the entry or, when the title already exists, adds the new
// copies to the existing count and refreshes any metadata fields that were
// actually supplied. Empty incoming fields keep their stored values.
func (r *Repository) Upsert(book *entities.Book) error {
	var existing entities.Book
	err := r.db.Where("title = ?", book.Title).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.db.Create(book).Error
	}
	if err != nil {
		return err
	}

	existing.Copies += book.Copies
	if book.Kind != "" {
		existing.Kind = book.Kind
	}
	if book.Category != "" {
		existing.Category = book.Category
	}
	if book.Owner != "" {
		existing.Owner = book.Owner
	}
	if book.Visibility != "" {
		existing.Visibility = book.Visibility
	}
	return r.db.Save(&existing).Error
}

// UpdateCopies sets the available-copy count for a title. A missing title is
// a silent no-op, matching the legacy store's update semantics.
func (r *Repository) UpdateCopies(title string, copies int) error {
	return r.db.Model(&entities.Book{}).Where("title = ?", title).
		Update("copies", copies).Error
}

// Delete removes a catalog entry.
func (r *Repository) Delete(title string) error {
	result := r.db.Where("title = ?", title).Delete(&entities.Book{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Search returns catalog entries whose title contains the term,
// case-insensitively.
func (r *Repository) Search(term string) ([]entities.Book, error) {
	var books []entities.Book
	pattern := "%" + strings.ToLower(term) + "%"
	err := r.db.Where("LOWER(title) LIKE ?", pattern).Order("title").Find(&books).Error
	return books, err
}

// GetByCategory returns catalog entries in a category.
func (r *Repository) GetByCategory(category string) ([]entities.Book, error) {
	var books []entities.Book
	err := r.db.Where("category = ?", category).Order("title").Find(&books).Error
	return books, err
}

// Categories returns all browse categories.
func (r *Repository) Categories() ([]entities.Category, error) {
	var categories []entities.Category
	err := r.db.Order("id").Find(&categories).Error
	return categories, err
}

// Count returns the number of distinct titles in the catalog.
func (r *Repository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&entities.Book{}).Count(&count).Error
	return count, err
}
