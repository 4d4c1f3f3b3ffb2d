package entrypoint

import (
	"errors"
	"fmt"
	"log"

	"github.com/hperera/librarium/internal/auth"
	"github.com/hperera/librarium/internal/entities"
)

type seedAccount struct {
	username string
	password string
	tier     entities.Tier
}

var defaultAccounts = []seedAccount{
	{"admin", "admin123", entities.TierAuthorized},
	{"user1", "pass123", entities.TierAuthorized},
	{"guest", "guest123", entities.TierUnauthorized},
}

var defaultCatalog = []entities.Book{
	{Title: "The Go Programming Language by Alan Donovan", Copies: 3, Kind: entities.KindRegular, Category: "Programming"},
	{Title: "Clean Code by Robert Martin", Copies: 2, Kind: entities.KindRegular, Category: "Programming"},
	{Title: "A Brief History of Time by Stephen Hawking", Copies: 2, Kind: entities.KindRegular, Category: "Science"},
	{Title: "Dune by Frank Herbert", Copies: 4, Kind: entities.KindRegular, Category: "Fiction"},
	{Title: "1984 by George Orwell", Copies: 3, Kind: entities.KindRegular, Category: "Fiction"},
	{Title: "Oxford English Dictionary by Oxford Press", Copies: 1, Kind: entities.KindReference, Category: "History"},
	{Title: "Encyclopedia Britannica by Britannica", Copies: 1, Kind: entities.KindReference, Category: "History"},
}

// seedDefaults creates the starter accounts and catalog. It only runs on an
// empty database so restarts never clobber real data.
func (a *app) seedDefaults() error {
	count, err := a.users.Count()
	if err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if count > 0 {
		return nil
	}

	for _, acct := range defaultAccounts {
		if _, err := a.auth.Register(acct.username, acct.password, acct.tier); err != nil {
			if errors.Is(err, auth.ErrUserExists) {
				continue
			}
			return fmt.Errorf("seed account %s: %w", acct.username, err)
		}
	}

	for i := range defaultCatalog {
		book := defaultCatalog[i]
		book.Owner = "System"
		book.Visibility = entities.VisibilityPublic
		if err := a.books.Upsert(&book); err != nil {
			return fmt.Errorf("seed book %s: %w", book.Title, err)
		}
	}

	log.Printf("Seeded %d default accounts and %d catalog entries",
		len(defaultAccounts), len(defaultCatalog))
	return nil
}
