package console

import (
	"fmt"
	"time"

	"github.com/hperera/librarium/internal/events"
)

func (c *Console) userMenu(username string) {
	for {
		fmt.Fprintln(c.out)
		fmt.Fprintln(c.out, "=== USER MENU ===")
		fmt.Fprintln(c.out, "1. View all books")
		fmt.Fprintln(c.out, "2. Browse by category")
		fmt.Fprintln(c.out, "3. Search books")
		fmt.Fprintln(c.out, "4. Borrow book")
		fmt.Fprintln(c.out, "5. Return book")
		fmt.Fprintln(c.out, "6. Add/remove favourite")
		fmt.Fprintln(c.out, "7. View favourites")
		fmt.Fprintln(c.out, "8. View borrowed books")
		fmt.Fprintln(c.out, "9. Check fine details")
		fmt.Fprintln(c.out, "10. My info")
		fmt.Fprintln(c.out, "11. Logout")

		choice, err := c.promptInt("Enter choice: ")
		if err != nil {
			return
		}

		switch choice {
		case 1:
			c.viewBooks()
		case 2:
			c.browseByCategory()
		case 3:
			c.searchBooks()
		case 4:
			c.borrowBook(username)
		case 5:
			c.returnBook(username)
		case 6:
			c.toggleFavourite(username)
		case 7:
			c.viewFavourites(username)
		case 8:
			c.viewBorrowedBooks(username)
		case 9:
			c.checkFineDetails(username)
		case 10:
			c.displayUserInfo(username)
		case 11:
			c.events.Publish(events.UserLogout, "User logged out: "+username)
			fmt.Fprintln(c.out, "Logged out successfully!")
			return
		default:
			fmt.Fprintln(c.out, "Invalid choice!")
		}
	}
}

func (c *Console) borrowBook(username string) {
	available := c.availableBooks()
	if len(available) == 0 {
		fmt.Fprintln(c.out, "No books available for borrowing!")
		return
	}

	fmt.Fprintln(c.out, "Available books:")
	for i, b := range available {
		fmt.Fprintf(c.out, "%d. %s (%d copies) [%s]\n", i+1, b.Title, b.Copies, b.Kind)
	}

	choice, err := c.promptInt("Enter book number to borrow: ")
	if err != nil {
		return
	}
	if choice < 1 || choice > len(available) {
		fmt.Fprintln(c.out, "Invalid book number!")
		return
	}
	title := available[choice-1].Title

	due, err := c.engine.Borrow(username, title, time.Now())
	if err != nil {
		fmt.Fprintf(c.out, "Cannot borrow: %s\n", rejectionText(err))
		return
	}
	fmt.Fprintln(c.out, "Book borrowed successfully!")
	fmt.Fprintf(c.out, "Due date: %s\n", due.Format("2006-01-02"))
}

func (c *Console) returnBook(username string) {
	user, err := c.users.GetByUsername(username)
	if err != nil {
		fmt.Fprintln(c.out, "User not found!")
		return
	}
	if len(user.Loans) == 0 {
		fmt.Fprintln(c.out, "No borrowed books to return!")
		return
	}

	fmt.Fprintln(c.out, "Your borrowed books:")
	for i, loan := range user.Loans {
		fmt.Fprintf(c.out, "%d. %s | Due: %s [%s]\n",
			i+1, loan.BookTitle, loan.DueAt.Format("2006-01-02"), loan.Kind)
	}

	choice, err := c.promptInt("Enter book number to return: ")
	if err != nil {
		return
	}
	if choice < 1 || choice > len(user.Loans) {
		fmt.Fprintln(c.out, "Invalid book number!")
		return
	}
	title := user.Loans[choice-1].BookTitle

	fine, err := c.engine.Return(username, title, time.Now())
	if err != nil {
		fmt.Fprintf(c.out, "Cannot return: %s\n", rejectionText(err))
		return
	}

	fmt.Fprintln(c.out, "Book returned successfully!")
	if fine > 0 {
		fmt.Fprintf(c.out, "Fine charged: $%.2f\n", fine)
	}
}

func (c *Console) toggleFavourite(username string) {
	title, err := c.prompt("Enter book title: ")
	if err != nil || title == "" {
		return
	}

	added, err := c.users.ToggleFavourite(username, title)
	if err != nil {
		fmt.Fprintf(c.out, "Failed: %v\n", err)
		return
	}
	if added {
		fmt.Fprintf(c.out, "Added to favourites: %s\n", title)
	} else {
		fmt.Fprintf(c.out, "Removed from favourites: %s\n", title)
	}
}

func (c *Console) viewFavourites(username string) {
	user, err := c.users.GetByUsername(username)
	if err != nil {
		fmt.Fprintln(c.out, "User not found!")
		return
	}
	if len(user.Favourites) == 0 {
		fmt.Fprintln(c.out, "No favourites!")
		return
	}

	fmt.Fprintln(c.out, "Your favourites:")
	for i, fav := range user.Favourites {
		copies := 0
		if book, err := c.books.GetByTitle(fav.BookTitle); err == nil {
			copies = book.Copies
		}
		status := "Available"
		if copies == 0 {
			status = "Not available"
		}
		fmt.Fprintf(c.out, "%d. %s (%d copies) [%s]\n", i+1, fav.BookTitle, copies, status)
	}
}

func (c *Console) viewBorrowedBooks(username string) {
	projections, err := c.engine.ProjectFines(username, time.Now())
	if err != nil {
		fmt.Fprintln(c.out, "User not found!")
		return
	}
	if len(projections) == 0 {
		fmt.Fprintln(c.out, "No borrowed books!")
		return
	}

	fmt.Fprintln(c.out, "Your borrowed books:")
	today := time.Now()
	for i, p := range projections {
		var status string
		switch remaining := daysUntil(today, p.DueAt); {
		case p.DaysLate > 0:
			status = fmt.Sprintf("OVERDUE by %d days (fine: $%.2f)", p.DaysLate, p.ProjectedFine)
		case remaining == 0:
			status = "DUE TODAY"
		case remaining <= 3:
			status = fmt.Sprintf("Due in %d days", remaining)
		default:
			status = fmt.Sprintf("OK, due in %d days", remaining)
		}
		fmt.Fprintf(c.out, "%d. %s [%s]\n", i+1, p.BookTitle, p.Kind)
		fmt.Fprintf(c.out, "   Borrowed: %s\n", p.BorrowedAt.Format("2006-01-02"))
		fmt.Fprintf(c.out, "   Due: %s - %s\n", p.DueAt.Format("2006-01-02"), status)
	}
}

func (c *Console) checkFineDetails(username string) {
	user, err := c.users.GetByUsername(username)
	if err != nil {
		fmt.Fprintln(c.out, "User not found!")
		return
	}

	projections, err := c.engine.ProjectFines(username, time.Now())
	if err != nil {
		fmt.Fprintf(c.out, "Failed: %v\n", err)
		return
	}

	fmt.Fprintf(c.out, "Accumulated fine: $%.2f\n", user.TotalFine)
	pending := 0.0
	for _, p := range projections {
		if p.DaysLate > 0 {
			fmt.Fprintf(c.out, "  %s: %d days late at $%.2f/day = $%.2f\n",
				p.BookTitle, p.DaysLate, p.DailyRate, p.ProjectedFine)
			pending += p.ProjectedFine
		}
	}
	if pending > 0 {
		fmt.Fprintf(c.out, "Pending if returned today: $%.2f\n", pending)
	} else {
		fmt.Fprintln(c.out, "No overdue books.")
	}
}

func (c *Console) displayUserInfo(username string) {
	user, err := c.users.GetByUsername(username)
	if err != nil {
		fmt.Fprintln(c.out, "User not found!")
		return
	}

	fmt.Fprintln(c.out, "User information:")
	fmt.Fprintf(c.out, "  Username: %s\n", user.Username)
	fmt.Fprintf(c.out, "  User type: %s\n", user.Tier)
	fmt.Fprintf(c.out, "  Borrowed books: %d\n", len(user.Loans))
	fmt.Fprintf(c.out, "  Favourites: %d\n", len(user.Favourites))
	fmt.Fprintf(c.out, "  Total fine: $%.2f\n", user.TotalFine)
}

// daysUntil counts whole calendar days from today to the due date, never
// negative. Dates are re-anchored in UTC, the same normalization the
// lending engine applies when counting late days.
func daysUntil(today, due time.Time) int {
	days := int(utcDate(due).Sub(utcDate(today)).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

func utcDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// rejectionText relies on the engine's sentinel errors carrying
// user-readable messages.
func rejectionText(err error) string {
	return err.Error()
}
