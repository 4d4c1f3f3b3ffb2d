// Package account holds the per-tier borrowing rules and the per-username
// override table that replaces the legacy "premium" special casing.
package account

import "github.com/hperera/librarium/internal/entities"

const (
	authorizedMaxBooks = 3
	authorizedFineRate = 10.0 // currency per day
)

// Override adjusts the tier defaults for a specific username.
type Override struct {
	MaxBooks   int
	FineFactor float64 // multiplied into the tier fine rate
}

// Rules answers limit and fine-rate questions for accounts.
type Rules struct {
	overrides map[string]Override
}

// NewRules creates tier rules with the given username overrides. A nil map
// means no account gets special treatment.
func NewRules(overrides map[string]Override) *Rules {
	if overrides == nil {
		overrides = map[string]Override{}
	}
	return &Rules{overrides: overrides}
}

// DefaultRules keeps the historical allowance: the admin account may hold
// five books and pays fines at half rate.
func DefaultRules() *Rules {
	return NewRules(map[string]Override{
		"admin": {MaxBooks: 5, FineFactor: 0.5},
	})
}

// ParseTier maps free-form user input to a tier, defaulting to unauthorized.
func ParseTier(s string) entities.Tier {
	switch s {
	case "authorized", "Authorized", "AUTHORIZED":
		return entities.TierAuthorized
	default:
		return entities.TierUnauthorized
	}
}

// MaxBooks returns how many books the account may hold at once. Overrides
// raise the allowance for authorized accounts only; an unauthorized tier can
// never borrow.
func (r *Rules) MaxBooks(username string, tier entities.Tier) int {
	if tier != entities.TierAuthorized {
		return 0
	}
	if o, ok := r.overrides[username]; ok && o.MaxBooks > 0 {
		return o.MaxBooks
	}
	return authorizedMaxBooks
}

// FineRate returns the daily fine rate for the account. Unauthorized
// accounts cannot borrow, so their rate is zero.
func (r *Rules) FineRate(username string, tier entities.Tier) float64 {
	if tier != entities.TierAuthorized {
		return 0.0
	}
	rate := authorizedFineRate
	if o, ok := r.overrides[username]; ok && o.FineFactor > 0 {
		rate *= o.FineFactor
	}
	return rate
}

// CanBorrow reports whether the account's tier permits borrowing at all.
func (r *Rules) CanBorrow(username string, tier entities.Tier) bool {
	return r.MaxBooks(username, tier) > 0
}
