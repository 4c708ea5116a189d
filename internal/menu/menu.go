package menu

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrDuplicateKey = errors.New("duplicate menu key")
	ErrInvalidMenu  = errors.New("invalid menu")
	ErrAlreadyBuilt = errors.New("menu already built")
)

// InvalidSelection is printed when the input matches no entry key.
const InvalidSelection = "Invalid selection. Please, try again..."

// Outcome tells the caller why Run returned.
type Outcome int

const (
	// Exited means an exit entry was selected.
	Exited Outcome = iota
	// LoggedIn means a login gate entry reported success.
	LoggedIn
)

// String returns "exited" or "logged-in".
func (o Outcome) String() string {
	switch o {
	case LoggedIn:
		return "logged-in"
	default:
		return "exited"
	}
}

// Builder collects entries for a single Menu.
type Builder struct {
	description Description
	autoSelect  func() error
	entries     []Entry
	keys        map[string]struct{}
	built       bool
}

// NewBuilder starts a menu titled description.
func NewBuilder(description Description) *Builder {
	return &Builder{
		description: description,
		keys:        make(map[string]struct{}),
	}
}

// WithAutoSelect sets a callback run once at the start of every Run, before
// the first prompt.
func (b *Builder) WithAutoSelect(fn func() error) *Builder {
	b.autoSelect = fn
	return b
}

// WithEntry appends an entry. Keys must be unique within the builder.
func (b *Builder) WithEntry(e Entry) error {
	if b.built {
		return ErrAlreadyBuilt
	}
	if e.action == nil {
		return fmt.Errorf("%w: entry %q has no action", ErrInvalidMenu, e.key)
	}
	if _, exists := b.keys[e.key.value]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateKey, e.key)
	}
	b.keys[e.key.value] = struct{}{}
	b.entries = append(b.entries, e)
	return nil
}

// Build returns the menu. It fails when no entries were added, when none of
// them is an exit entry, or when the builder was already used.
func (b *Builder) Build() (*Menu, error) {
	if b.built {
		return nil, ErrAlreadyBuilt
	}
	if len(b.entries) == 0 {
		return nil, fmt.Errorf("%w: menu %q has no entries", ErrInvalidMenu, b.description)
	}
	hasExit := false
	for _, e := range b.entries {
		if e.IsExit() {
			hasExit = true
			break
		}
	}
	if !hasExit {
		return nil, fmt.Errorf("%w: menu %q has no exit entry", ErrInvalidMenu, b.description)
	}
	b.built = true

	m := &Menu{
		description: b.description,
		autoSelect:  b.autoSelect,
		entries:     b.entries,
		byKey:       make(map[string]int, len(b.entries)),
	}
	for i, e := range b.entries {
		m.byKey[e.key.value] = i
	}
	return m, nil
}

// Menu is an immutable, ordered set of entries.
type Menu struct {
	description Description
	autoSelect  func() error
	entries     []Entry
	byKey       map[string]int
}

// Description returns the menu title.
func (m *Menu) Description() Description { return m.description }

// Run shows the menu and dispatches selections until an exit entry or a
// successful login gate ends it. An error from any callback, or from the
// console, stops the loop and is returned as is.
func (m *Menu) Run(c *Console) (Outcome, error) {
	if m.autoSelect != nil {
		if err := m.autoSelect(); err != nil {
			return Exited, err
		}
	}

	for {
		m.print(c)
		line, err := c.ReadLine("? ")
		if err != nil {
			return Exited, err
		}

		i, ok := m.byKey[strings.TrimSpace(line)]
		if !ok {
			c.Println(InvalidSelection)
			continue
		}

		switch a := m.entries[i].action.(type) {
		case SelectAction:
			if a.Fn != nil {
				if err := a.Fn(); err != nil {
					return Exited, err
				}
			}
		case LoginGateAction:
			if a.Predicate == nil {
				continue
			}
			logged, err := a.Predicate()
			if err != nil {
				return Exited, err
			}
			if logged {
				return LoggedIn, nil
			}
		case ExitAction:
			if a.Fn != nil {
				if err := a.Fn(); err != nil {
					return Exited, err
				}
			}
			return Exited, nil
		}
	}
}

func (m *Menu) print(c *Console) {
	c.Println()
	c.Printf("*** %s ***\n", m.description)
	for _, e := range m.entries {
		c.Printf("%s:\t%s\n", e.key, e.description)
	}
}
