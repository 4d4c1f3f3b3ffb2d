package books

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/hperera/librarium/internal/entities"
)

func setupTestDB(t *testing.T) (*Repository, func()) {
	dbPath := "./test_books_" + t.Name() + ".db"

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&entities.Book{}, &entities.Category{})
	require.NoError(t, err)

	repo := NewRepository(db)

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	}

	return repo, cleanup
}

func TestRepository_UpsertCreatesAndAccumulates(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	book := &entities.Book{
		Title:      "Java Programming by James Gosling",
		Copies:     3,
		Kind:       entities.KindRegular,
		Category:   "Programming",
		Owner:      "admin",
		Visibility: entities.VisibilityPublic,
	}
	require.NoError(t, repo.Upsert(book))

	loaded, err := repo.GetByTitle("Java Programming by James Gosling")
	require.NoError(t, err)
	assert.Equal(t, 3, loaded.Copies)

	// Upserting an existing title adds copies instead of overwriting
	require.NoError(t, repo.Upsert(&entities.Book{
		Title:  "Java Programming by James Gosling",
		Copies: 2,
		Kind:   entities.KindRegular,
	}))

	loaded, err = repo.GetByTitle("Java Programming by James Gosling")
	require.NoError(t, err)
	assert.Equal(t, 5, loaded.Copies)
	assert.Equal(t, "Programming", loaded.Category)
}

func TestRepository_UpsertKeepsStoredKindWhenOmitted(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	require.NoError(t, repo.Upsert(&entities.Book{
		Title:      "OED by Oxford",
		Copies:     1,
		Kind:       entities.KindReference,
		Visibility: entities.VisibilityPrivate,
	}))

	// Restocking without metadata must not demote the kind or visibility
	require.NoError(t, repo.Upsert(&entities.Book{Title: "OED by Oxford", Copies: 2}))

	loaded, err := repo.GetByTitle("OED by Oxford")
	require.NoError(t, err)
	assert.Equal(t, 3, loaded.Copies)
	assert.Equal(t, entities.KindReference, loaded.Kind)
	assert.Equal(t, entities.VisibilityPrivate, loaded.Visibility)
}

func TestRepository_GetMissingTitle(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	_, err := repo.GetByTitle("No Such Book")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRepository_UpdateCopies(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	require.NoError(t, repo.Upsert(&entities.Book{Title: "Book A", Copies: 2}))
	require.NoError(t, repo.UpdateCopies("Book A", 1))

	loaded, err := repo.GetByTitle("Book A")
	require.NoError(t, err)
	assert.Equal(t, 1, loaded.Copies)

	// Updating a missing title is a silent no-op
	assert.NoError(t, repo.UpdateCopies("No Such Book", 7))
}

func TestRepository_Search(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	require.NoError(t, repo.Upsert(&entities.Book{Title: "Java Programming by James Gosling", Copies: 1}))
	require.NoError(t, repo.Upsert(&entities.Book{Title: "Python Basics by Guido", Copies: 1}))

	results, err := repo.Search("java")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Java Programming by James Gosling", results[0].Title)

	results, err = repo.Search("zzz")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestRepository_GetByCategory(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	require.NoError(t, repo.Upsert(&entities.Book{Title: "Book A", Copies: 1, Category: "Programming"}))
	require.NoError(t, repo.Upsert(&entities.Book{Title: "Book B", Copies: 1, Category: "Science"}))

	results, err := repo.GetByCategory("Programming")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Book A", results[0].Title)
}

func TestRepository_Delete(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	require.NoError(t, repo.Upsert(&entities.Book{Title: "Book A", Copies: 1}))
	require.NoError(t, repo.Delete("Book A"))

	_, err := repo.GetByTitle("Book A")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, repo.Delete("Book A"), ErrNotFound)
}
