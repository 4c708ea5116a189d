// Package app is the interactive to-do list session: a login menu, then a
// home menu whose entries edit the list and mirror every change to the
// directory service.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/pearcec/todolist/internal/directory"
	"github.com/pearcec/todolist/internal/domain"
	"github.com/pearcec/todolist/internal/menu"
)

// Status lines printed by the session.
const (
	MsgBye              = "Bye!"
	MsgWrongCredentials = "Wrong Credentials!"
	MsgUnavailable      = "Unable to retrieve events at the moment. Please, try in a few minutes."
	MsgLoginUnavailable = "Unable to log in at the moment. Please, try in a few minutes."
	MsgEventAdded       = "Event added!"
	MsgEventRemoved     = "Event removed!"
	MsgCancelled        = "Cancelled!"
	MsgLoggedOut        = "Logged out!"
	MsgLogoutFailed     = "Log out failed"
)

// Directory is the part of the directory service the session needs.
type Directory interface {
	Login(ctx context.Context, username, password string) (string, error)
	Register(ctx context.Context, username, email, password, password2 string) (string, error)
	CurrentUser(ctx context.Context, token string) (directory.User, error)
	ListEvents(ctx context.Context, token string) ([]directory.Record, error)
	CreateEvent(ctx context.Context, token string, r directory.Record) (directory.Record, error)
	DeleteEvent(ctx context.Context, token string, id int) error
	Logout(ctx context.Context, token string) error
}

// App owns the console, the directory connection and the single ToDoList of
// a session.
type App struct {
	console *menu.Console
	dir     Directory
	list    *domain.ToDoList
	logger  *slog.Logger
	now     func() time.Time

	token  string
	author domain.Author
}

// Option configures an App.
type Option func(*App)

// WithLogger sets the logger for session diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(a *App) { a.logger = l }
}

// WithClock replaces the clock used by the welcome banner.
func WithClock(now func() time.Time) Option {
	return func(a *App) { a.now = now }
}

// New creates a session over console and dir.
func New(console *menu.Console, dir Directory, opts ...Option) *App {
	a := &App{
		console: console,
		dir:     dir,
		list:    domain.NewToDoList(),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// List returns the session's event list.
func (a *App) List() *domain.ToDoList { return a.list }

// Run shows the welcome banner and the login menu and, after a successful
// login, the home menu. It returns nil when the user exits or the input is
// closed; any other error ends the session and is returned.
func (a *App) Run(ctx context.Context) error {
	login, err := a.loginMenu(ctx)
	if err != nil {
		return fmt.Errorf("building login menu: %w", err)
	}
	home, err := a.homeMenu(ctx)
	if err != nil {
		return fmt.Errorf("building home menu: %w", err)
	}

	a.printWelcome()

	outcome, err := login.Run(a.console)
	if errors.Is(err, menu.ErrInputClosed) {
		return nil
	}
	if err != nil {
		return err
	}
	if outcome != menu.LoggedIn {
		return nil
	}
	a.logger.Info("session started", "author", a.author.Key())

	err = a.reload(ctx)
	if err == nil {
		_, err = home.Run(a.console)
	}
	// Home exit logs out itself; any other end of the session must not leave
	// the token alive.
	a.revoke(ctx, a.token)
	a.token = ""
	if errors.Is(err, menu.ErrInputClosed) {
		return nil
	}
	return err
}

func (a *App) loginMenu(ctx context.Context) (*menu.Menu, error) {
	d, err := menu.NewDescription("To Do List Login")
	if err != nil {
		return nil, err
	}
	return buildMenu(menu.NewBuilder(d),
		menuItem{"1", "Login", menu.LoginGate(func() (bool, error) { return a.login(ctx) })},
		menuItem{"2", "Register", menu.OnSelected(func() error { return a.register(ctx) })},
		menuItem{"0", "Exit", menu.Exit(func() error {
			a.console.Println(MsgBye)
			return nil
		})},
	)
}

func (a *App) homeMenu(ctx context.Context) (*menu.Menu, error) {
	d, err := menu.NewDescription("To Do List Home")
	if err != nil {
		return nil, err
	}
	b := menu.NewBuilder(d).WithAutoSelect(func() error {
		a.printEvents()
		return nil
	})
	return buildMenu(b,
		menuItem{"1", "Add event", menu.OnSelected(func() error { return a.addEvent(ctx) })},
		menuItem{"2", "Remove event", menu.OnSelected(func() error { return a.removeEvent(ctx) })},
		menuItem{"3", "Sort by start date", menu.OnSelected(func() error {
			a.list.SortByStartDate()
			a.printEvents()
			return nil
		})},
		menuItem{"4", "Sort by priority", menu.OnSelected(func() error {
			a.list.SortByPriority()
			a.printEvents()
			return nil
		})},
		menuItem{"5", "Print events", menu.OnSelected(func() error {
			a.printEvents()
			return nil
		})},
		menuItem{"6", "Reload events", menu.OnSelected(func() error {
			if err := a.reload(ctx); err != nil {
				return err
			}
			a.printEvents()
			return nil
		})},
		menuItem{"0", "Exit", menu.Exit(func() error {
			a.logout(ctx)
			a.console.Println(MsgBye)
			return nil
		})},
	)
}

type menuItem struct {
	key         string
	description string
	action      menu.Action
}

func buildMenu(b *menu.Builder, items ...menuItem) (*menu.Menu, error) {
	for _, s := range items {
		e, err := menu.CreateEntry(s.key, s.description, s.action)
		if err != nil {
			return nil, err
		}
		if err := b.WithEntry(e); err != nil {
			return nil, err
		}
	}
	return b.Build()
}

// isServiceError reports whether err came from the directory service, which
// the session reports and survives.
func isServiceError(err error) bool {
	var serr *directory.ServiceError
	return errors.As(err, &serr)
}
