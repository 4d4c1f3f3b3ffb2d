// Package console provides the interactive menu frontend. It drives the same
// lending engine as the HTTP API, so both surfaces share one set of rules.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"

	"github.com/hperera/librarium/internal/auth"
	"github.com/hperera/librarium/internal/database/books"
	"github.com/hperera/librarium/internal/database/transactions"
	"github.com/hperera/librarium/internal/database/users"
	"github.com/hperera/librarium/internal/entities"
	"github.com/hperera/librarium/internal/events"
	"github.com/hperera/librarium/internal/lending"
)

// Config contains the console's dependencies. In and Out default to the
// process stdin/stdout.
type Config struct {
	Engine *lending.Engine
	Users  *users.Repository
	Books  *books.Repository
	Auth   *auth.Service
	Events *events.Manager

	Transactions *transactions.Repository

	In  io.Reader
	Out io.Writer
}

type Console struct {
	engine       *lending.Engine
	users        *users.Repository
	books        *books.Repository
	transactions *transactions.Repository
	auth         *auth.Service
	events       *events.Manager

	in  *bufio.Reader
	out io.Writer

	// set when In is the real terminal, enabling hidden password entry
	passwordFD int
}

func New(cfg Config) *Console {
	in := cfg.In
	if in == nil {
		in = os.Stdin
	}
	out := cfg.Out
	if out == nil {
		out = os.Stdout
	}

	c := &Console{
		engine:       cfg.Engine,
		users:        cfg.Users,
		books:        cfg.Books,
		transactions: cfg.Transactions,
		auth:         cfg.Auth,
		events:       cfg.Events,
		in:           bufio.NewReader(in),
		out:          out,
		passwordFD:   -1,
	}
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		c.passwordFD = int(f.Fd())
	}
	return c
}

// Run loops on the main menu until the user exits or input ends.
func (c *Console) Run() error {
	fmt.Fprintln(c.out, "===== LIBRARY MANAGEMENT SYSTEM =====")

	for {
		fmt.Fprintln(c.out)
		fmt.Fprintln(c.out, "=== MAIN MENU ===")
		fmt.Fprintln(c.out, "1. Admin login")
		fmt.Fprintln(c.out, "2. User login")
		fmt.Fprintln(c.out, "3. Register new user")
		fmt.Fprintln(c.out, "4. View books")
		fmt.Fprintln(c.out, "5. Browse by category")
		fmt.Fprintln(c.out, "6. Search books")
		fmt.Fprintln(c.out, "7. Exit")

		choice, err := c.promptInt("Enter choice: ")
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		switch choice {
		case 1:
			c.adminLogin()
		case 2:
			c.userLogin()
		case 3:
			c.register()
		case 4:
			c.viewBooks()
		case 5:
			c.browseByCategory()
		case 6:
			c.searchBooks()
		case 7:
			fmt.Fprintln(c.out, "Thank you for using the system!")
			return nil
		default:
			fmt.Fprintln(c.out, "Invalid choice!")
		}
	}
}

// --- input helpers ---

func (c *Console) prompt(label string) (string, error) {
	fmt.Fprint(c.out, label)
	line, err := c.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (c *Console) promptInt(label string) (int, error) {
	line, err := c.prompt(label)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(line)
	if err != nil {
		return -1, nil
	}
	return n, nil
}

func (c *Console) promptPassword(label string) (string, error) {
	if c.passwordFD >= 0 {
		fmt.Fprint(c.out, label)
		raw, err := term.ReadPassword(c.passwordFD)
		fmt.Fprintln(c.out)
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(raw)), nil
	}
	return c.prompt(label)
}

// --- authentication ---

func (c *Console) adminLogin() {
	username, err := c.prompt("Admin username: ")
	if err != nil {
		return
	}
	password, err := c.promptPassword("Admin password: ")
	if err != nil {
		return
	}

	user, err := c.auth.Authenticate(username, password)
	if err != nil || user.Username != "admin" {
		fmt.Fprintln(c.out, "Invalid admin credentials!")
		return
	}

	c.events.Publish(events.UserLogin, "Admin logged in")
	fmt.Fprintln(c.out, "Login successful! Welcome Admin!")
	c.adminMenu()
}

func (c *Console) userLogin() {
	username, err := c.prompt("Username: ")
	if err != nil {
		return
	}
	password, err := c.promptPassword("Password: ")
	if err != nil {
		return
	}

	user, err := c.auth.Authenticate(username, password)
	if err != nil {
		fmt.Fprintln(c.out, "Invalid credentials!")
		return
	}

	c.events.Publish(events.UserLogin, "User logged in: "+user.Username)
	fmt.Fprintf(c.out, "Login successful! Welcome %s!\n", user.Username)
	c.userMenu(user.Username)
}

func (c *Console) register() {
	username, err := c.prompt("Enter username: ")
	if err != nil {
		return
	}
	password, err := c.promptPassword("Enter password: ")
	if err != nil {
		return
	}

	fmt.Fprintln(c.out, "Select user type:")
	fmt.Fprintln(c.out, "1. Authorized (can borrow books)")
	fmt.Fprintln(c.out, "2. Unauthorized (can only browse)")
	choice, err := c.promptInt("Choice: ")
	if err != nil {
		return
	}
	tier := entities.TierUnauthorized
	if choice == 1 {
		tier = entities.TierAuthorized
	}

	user, err := c.auth.Register(username, password, tier)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrUserExists):
			fmt.Fprintln(c.out, "Username already exists!")
		default:
			fmt.Fprintf(c.out, "Registration failed: %v\n", err)
		}
		return
	}

	c.events.Publish(events.UserRegistered,
		fmt.Sprintf("New user registered: %s (%s)", user.Username, user.Tier))
	fmt.Fprintln(c.out, "Registration successful! You can now login.")
}
