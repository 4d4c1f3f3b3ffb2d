package console

import (
	"fmt"

	"github.com/hperera/librarium/internal/entities"
)

func (c *Console) printBookList(list []entities.Book) {
	for i, b := range list {
		status := "Available"
		if b.Copies == 0 {
			status = "Not available"
		}
		line := fmt.Sprintf("%d. %s (%d copies) [%s] - %s", i+1, b.Title, b.Copies, b.Kind, status)
		if b.Category != "" {
			line += " | Category: " + b.Category
		}
		fmt.Fprintln(c.out, line)
	}
}

func (c *Console) viewBooks() {
	all, err := c.books.GetAll()
	if err != nil {
		fmt.Fprintf(c.out, "Failed to load books: %v\n", err)
		return
	}
	if len(all) == 0 {
		fmt.Fprintln(c.out, "No books available!")
		return
	}

	fmt.Fprintln(c.out, "=== AVAILABLE BOOKS ===")
	c.printBookList(all)
}

func (c *Console) browseByCategory() {
	cats, err := c.books.Categories()
	if err != nil || len(cats) == 0 {
		fmt.Fprintln(c.out, "No categories available!")
		return
	}

	fmt.Fprintln(c.out, "=== BROWSE BY CATEGORY ===")
	for i, cat := range cats {
		fmt.Fprintf(c.out, "%d. %s\n", i+1, cat.Name)
	}

	choice, err := c.promptInt("Select category number: ")
	if err != nil {
		return
	}
	if choice < 1 || choice > len(cats) {
		fmt.Fprintln(c.out, "Invalid category!")
		return
	}
	name := cats[choice-1].Name

	matches, err := c.books.GetByCategory(name)
	if err != nil {
		fmt.Fprintf(c.out, "Failed to load books: %v\n", err)
		return
	}

	fmt.Fprintf(c.out, "Books in %s:\n", name)
	if len(matches) == 0 {
		fmt.Fprintln(c.out, "No books in this category!")
		return
	}
	c.printBookList(matches)
}

func (c *Console) searchBooks() {
	term, err := c.prompt("Enter search term: ")
	if err != nil {
		return
	}

	matches, err := c.books.Search(term)
	if err != nil {
		fmt.Fprintf(c.out, "Search failed: %v\n", err)
		return
	}

	fmt.Fprintln(c.out, "Search results:")
	if len(matches) == 0 {
		fmt.Fprintln(c.out, "No books found!")
		return
	}
	c.printBookList(matches)
}

func (c *Console) availableBooks() []entities.Book {
	all, err := c.books.GetAll()
	if err != nil {
		return nil
	}
	available := make([]entities.Book, 0, len(all))
	for _, b := range all {
		if b.Copies > 0 {
			available = append(available, b)
		}
	}
	return available
}
