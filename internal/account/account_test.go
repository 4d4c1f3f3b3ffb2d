package account

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hperera/librarium/internal/entities"
)

func TestParseTier(t *testing.T) {
	assert.Equal(t, entities.TierAuthorized, ParseTier("authorized"))
	assert.Equal(t, entities.TierAuthorized, ParseTier("Authorized"))
	assert.Equal(t, entities.TierUnauthorized, ParseTier("unauthorized"))
	assert.Equal(t, entities.TierUnauthorized, ParseTier(""))
	assert.Equal(t, entities.TierUnauthorized, ParseTier("superuser"))
}

func TestMaxBooks(t *testing.T) {
	rules := DefaultRules()

	assert.Equal(t, 3, rules.MaxBooks("user1", entities.TierAuthorized))
	assert.Equal(t, 0, rules.MaxBooks("guest", entities.TierUnauthorized))

	// admin keeps the legacy premium allowance
	assert.Equal(t, 5, rules.MaxBooks("admin", entities.TierAuthorized))

	// overrides never grant borrowing to an unauthorized tier
	assert.Equal(t, 0, rules.MaxBooks("admin", entities.TierUnauthorized))
}

func TestFineRate(t *testing.T) {
	rules := DefaultRules()

	assert.Equal(t, 10.0, rules.FineRate("user1", entities.TierAuthorized))
	assert.Equal(t, 0.0, rules.FineRate("guest", entities.TierUnauthorized))

	// premium discount halves the rate
	assert.Equal(t, 5.0, rules.FineRate("admin", entities.TierAuthorized))
}

func TestCanBorrow(t *testing.T) {
	rules := NewRules(nil)

	assert.True(t, rules.CanBorrow("anyone", entities.TierAuthorized))
	assert.False(t, rules.CanBorrow("anyone", entities.TierUnauthorized))
}
