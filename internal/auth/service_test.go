package auth

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/hperera/librarium/internal/config"
	"github.com/hperera/librarium/internal/database/users"
	"github.com/hperera/librarium/internal/entities"
)

func setupService(t *testing.T) (*Service, func()) {
	t.Helper()
	dbPath := "./test_auth_" + t.Name() + ".db"

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&entities.User{},
		&entities.Loan{},
		&entities.Favourite{},
	))

	svc := NewService(users.NewRepository(db), config.Auth{BcryptCost: 4})

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	}
	return svc, cleanup
}

func TestRegisterHashesPassword(t *testing.T) {
	svc, cleanup := setupService(t)
	defer cleanup()

	user, err := svc.Register("user1", "pass123", entities.TierAuthorized)
	require.NoError(t, err)
	assert.Equal(t, "user1", user.Username)
	assert.Equal(t, entities.TierAuthorized, user.Tier)
	assert.NotEqual(t, "pass123", user.PasswordHash)
}

func TestRegisterValidation(t *testing.T) {
	svc, cleanup := setupService(t)
	defer cleanup()

	_, err := svc.Register("", "pass123", entities.TierAuthorized)
	assert.ErrorIs(t, err, ErrUsernameRequired)

	_, err = svc.Register("user1", "", entities.TierAuthorized)
	assert.ErrorIs(t, err, ErrPasswordRequired)

	_, err = svc.Register("u", "pass123", entities.TierAuthorized)
	assert.ErrorIs(t, err, ErrUsernameInvalid)

	_, err = svc.Register("user with spaces", "pass123", entities.TierAuthorized)
	assert.ErrorIs(t, err, ErrUsernameInvalid)
}

func TestRegisterDuplicate(t *testing.T) {
	svc, cleanup := setupService(t)
	defer cleanup()

	_, err := svc.Register("user1", "pass123", entities.TierAuthorized)
	require.NoError(t, err)

	_, err = svc.Register("user1", "other456", entities.TierUnauthorized)
	assert.ErrorIs(t, err, ErrUserExists)
}

func TestAuthenticate(t *testing.T) {
	svc, cleanup := setupService(t)
	defer cleanup()

	_, err := svc.Register("user1", "pass123", entities.TierAuthorized)
	require.NoError(t, err)

	user, err := svc.Authenticate("user1", "pass123")
	require.NoError(t, err)
	assert.Equal(t, "user1", user.Username)

	_, err = svc.Authenticate("user1", "wrongpass")
	assert.ErrorIs(t, err, ErrInvalidPassword)

	_, err = svc.Authenticate("nobody", "pass123")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
