// Package catalog holds the per-kind lending rules: how long a book may be
// borrowed and how quickly fines accumulate once it is overdue.
package catalog

import "github.com/hperera/librarium/internal/entities"

const (
	regularLoanDays   = 14
	referenceLoanDays = 7
)

// ResolveKind normalises a stored kind value. Anything that is not
// explicitly Reference is treated as Regular, including unknown values.
func ResolveKind(kind entities.Kind) entities.Kind {
	if kind == entities.KindReference {
		return entities.KindReference
	}
	return entities.KindRegular
}

// ParseKind maps free-form user input ("reference", "Regular", ...) to a
// kind, defaulting to Regular.
func ParseKind(s string) entities.Kind {
	switch s {
	case "Reference", "reference", "REFERENCE":
		return entities.KindReference
	default:
		return entities.KindRegular
	}
}

// BorrowDuration returns the loan period in days for a kind.
func BorrowDuration(kind entities.Kind) int {
	if ResolveKind(kind) == entities.KindReference {
		return referenceLoanDays
	}
	return regularLoanDays
}

// FineMultiplier returns the late-fee multiplier for a kind. Reference books
// accrue fines twice as fast.
func FineMultiplier(kind entities.Kind) float64 {
	if ResolveKind(kind) == entities.KindReference {
		return 2.0
	}
	return 1.0
}
