package console

import (
	"fmt"

	"github.com/hperera/librarium/internal/entities"
	"github.com/hperera/librarium/internal/events"
)

func (c *Console) adminMenu() {
	for {
		fmt.Fprintln(c.out)
		fmt.Fprintln(c.out, "=== ADMIN MENU ===")
		fmt.Fprintln(c.out, "1. Add user")
		fmt.Fprintln(c.out, "2. Remove user")
		fmt.Fprintln(c.out, "3. View all users")
		fmt.Fprintln(c.out, "4. Add book")
		fmt.Fprintln(c.out, "5. Remove book")
		fmt.Fprintln(c.out, "6. View all books")
		fmt.Fprintln(c.out, "7. View user fines")
		fmt.Fprintln(c.out, "8. View user transactions")
		fmt.Fprintln(c.out, "9. Send notification")
		fmt.Fprintln(c.out, "10. Logout")

		choice, err := c.promptInt("Enter choice: ")
		if err != nil {
			return
		}

		switch choice {
		case 1:
			c.register()
		case 2:
			c.removeUser()
		case 3:
			c.viewUsers()
		case 4:
			c.addBook()
		case 5:
			c.removeBook()
		case 6:
			c.viewBooks()
		case 7:
			c.viewUserFines()
		case 8:
			c.viewUserTransactions()
		case 9:
			c.sendNotification()
		case 10:
			fmt.Fprintln(c.out, "Logging out...")
			return
		default:
			fmt.Fprintln(c.out, "Invalid choice!")
		}
	}
}

func (c *Console) removeUser() {
	username, err := c.prompt("Enter username to remove: ")
	if err != nil || username == "" {
		return
	}
	if username == "admin" {
		fmt.Fprintln(c.out, "Cannot remove admin!")
		return
	}

	if err := c.users.Delete(username); err != nil {
		fmt.Fprintln(c.out, "User not found!")
		return
	}
	fmt.Fprintln(c.out, "User removed successfully!")
}

func (c *Console) viewUsers() {
	all, err := c.users.GetAll()
	if err != nil {
		fmt.Fprintf(c.out, "Failed to load users: %v\n", err)
		return
	}

	fmt.Fprintln(c.out, "Registered users:")
	for i, u := range all {
		fmt.Fprintf(c.out, "%d. %s | Books: %d | Favourites: %d | Fine: $%.2f | Type: %s\n",
			i+1, u.Username, len(u.Loans), len(u.Favourites), u.TotalFine, u.Tier)
	}
}

func (c *Console) addBook() {
	title, err := c.prompt("Enter book title: ")
	if err != nil || title == "" {
		return
	}
	author, err := c.prompt("Enter author: ")
	if err != nil {
		return
	}
	copies, err := c.promptInt("Enter number of copies: ")
	if err != nil {
		return
	}
	if copies < 1 {
		fmt.Fprintln(c.out, "Copies must be at least 1!")
		return
	}

	fullTitle := title
	if author != "" {
		fullTitle = title + " by " + author
	}

	// Adding an existing title stocks more copies of it.
	if existing, err := c.books.GetByTitle(fullTitle); err == nil {
		if err := c.books.Upsert(&entities.Book{Title: fullTitle, Copies: copies, Kind: existing.Kind,
			Category: existing.Category, Owner: existing.Owner, Visibility: existing.Visibility}); err != nil {
			fmt.Fprintf(c.out, "Failed to add copies: %v\n", err)
			return
		}
		fmt.Fprintf(c.out, "Added %d more copies of %q\n", copies, fullTitle)
		return
	}

	fmt.Fprintln(c.out, "Select book type:")
	fmt.Fprintln(c.out, "1. Regular (14 days borrow)")
	fmt.Fprintln(c.out, "2. Reference (7 days borrow, higher fines)")
	kindChoice, err := c.promptInt("Choice: ")
	if err != nil {
		return
	}
	kind := entities.KindRegular
	if kindChoice == 2 {
		kind = entities.KindReference
	}

	cats, _ := c.books.Categories()
	fmt.Fprintln(c.out, "Available categories:")
	for i, cat := range cats {
		fmt.Fprintf(c.out, "%d. %s\n", i+1, cat.Name)
	}
	catChoice, err := c.promptInt("Select category (0 for none): ")
	if err != nil {
		return
	}
	category := ""
	if catChoice >= 1 && catChoice <= len(cats) {
		category = cats[catChoice-1].Name
	}

	book := &entities.Book{
		Title:      fullTitle,
		Copies:     copies,
		Kind:       kind,
		Category:   category,
		Owner:      "admin",
		Visibility: entities.VisibilityPublic,
	}
	if err := c.books.Upsert(book); err != nil {
		fmt.Fprintf(c.out, "Failed to add book: %v\n", err)
		return
	}

	c.events.Publish(events.BookAdded, fmt.Sprintf("Book added: %s (%d copies)", fullTitle, copies))
	fmt.Fprintf(c.out, "New %s book added successfully!\n", kind)
}

func (c *Console) removeBook() {
	all, err := c.books.GetAll()
	if err != nil || len(all) == 0 {
		fmt.Fprintln(c.out, "No books available!")
		return
	}

	c.printBookList(all)
	choice, err := c.promptInt("Enter book number to remove: ")
	if err != nil {
		return
	}
	if choice < 1 || choice > len(all) {
		fmt.Fprintln(c.out, "Invalid book number!")
		return
	}
	title := all[choice-1].Title

	if err := c.books.Delete(title); err != nil {
		fmt.Fprintf(c.out, "Failed to remove book: %v\n", err)
		return
	}

	c.events.Publish(events.BookRemoved, "Book removed: "+title)
	fmt.Fprintln(c.out, "Book removed successfully!")
}

func (c *Console) viewUserFines() {
	all, err := c.users.GetAll()
	if err != nil {
		fmt.Fprintf(c.out, "Failed to load users: %v\n", err)
		return
	}

	fmt.Fprintln(c.out, "=== USER FINES ===")
	hasFines := false
	for _, u := range all {
		if u.TotalFine > 0 {
			fmt.Fprintf(c.out, "%s: $%.2f\n", u.Username, u.TotalFine)
			hasFines = true
		}
	}
	if !hasFines {
		fmt.Fprintln(c.out, "No users have outstanding fines!")
	}
}

func (c *Console) viewUserTransactions() {
	username, err := c.prompt("Enter username: ")
	if err != nil || username == "" {
		return
	}

	records, err := c.transactions.ForUser(username)
	if err != nil {
		fmt.Fprintf(c.out, "Failed to load transactions: %v\n", err)
		return
	}
	if len(records) == 0 {
		fmt.Fprintln(c.out, "No transactions for this user!")
		return
	}

	fmt.Fprintf(c.out, "Transactions for %s:\n", username)
	for _, rec := range records {
		fmt.Fprintf(c.out, "  %s %-6s %s\n",
			rec.Date.Format("2006-01-02"), rec.Action, rec.BookTitle)
	}
}

func (c *Console) sendNotification() {
	eventType, err := c.prompt("Enter event type: ")
	if err != nil || eventType == "" {
		return
	}
	message, err := c.prompt("Enter message: ")
	if err != nil {
		return
	}

	c.events.Publish(eventType, message)
	fmt.Fprintln(c.out, "Notification sent to all listeners!")
}
