// Package menu implements a console menu: a titled list of keyed entries,
// each bound to an action, run in a read-dispatch loop until an exit entry
// is chosen.
package menu

import (
	"strings"

	"github.com/pearcec/todolist/internal/validation"
)

const (
	MaxDescriptionLength = 1000
	MaxKeyLength         = 10

	forbiddenChars = "\n\r*^$"
)

// Description is the label of a menu or of one of its entries.
type Description struct{ value string }

// NewDescription validates a menu or entry label: non-empty, at most
// MaxDescriptionLength characters, none of \n \r * ^ $.
func NewDescription(value string) (Description, error) {
	if err := validation.Text("description", value, MaxDescriptionLength, nil); err != nil {
		return Description{}, err
	}
	if err := validation.Excludes("description", value, forbiddenChars); err != nil {
		return Description{}, err
	}
	return Description{value: value}, nil
}

// String returns the label as given.
func (d Description) String() string { return d.value }

// Key is the token a user types to select an entry.
type Key struct{ value string }

// NewKey validates a selection key: non-empty, at most MaxKeyLength
// characters, none of \n \r * ^ $, and no surrounding whitespace since
// input lines are trimmed before lookup.
func NewKey(value string) (Key, error) {
	if err := validation.Text("key", value, MaxKeyLength, nil); err != nil {
		return Key{}, err
	}
	if err := validation.Excludes("key", value, forbiddenChars); err != nil {
		return Key{}, err
	}
	if strings.TrimSpace(value) != value {
		return Key{}, validation.New("key", validation.RulePattern, "must not start or end with whitespace")
	}
	return Key{value: value}, nil
}

// String returns the key as typed.
func (k Key) String() string { return k.value }

// Action is what happens when an entry is selected. It is one of
// SelectAction, LoginGateAction or ExitAction.
type Action interface {
	action()
}

// SelectAction runs Fn and shows the menu again.
type SelectAction struct {
	Fn func() error
}

// LoginGateAction ends the menu with LoggedIn when Predicate returns true
// and keeps prompting otherwise.
type LoginGateAction struct {
	Predicate func() (bool, error)
}

// ExitAction runs Fn, if set, and ends the menu with Exited.
type ExitAction struct {
	Fn func() error
}

func (SelectAction) action()    {}
func (LoginGateAction) action() {}
func (ExitAction) action()      {}

// OnSelected wraps a plain callback into a SelectAction.
func OnSelected(fn func() error) Action { return SelectAction{Fn: fn} }

// LoginGate wraps an is-logged predicate into a LoginGateAction.
func LoginGate(fn func() (bool, error)) Action { return LoginGateAction{Predicate: fn} }

// Exit returns an ExitAction; fn may be nil.
func Exit(fn func() error) Action { return ExitAction{Fn: fn} }

// Entry is one selectable line of a Menu.
type Entry struct {
	key         Key
	description Description
	action      Action
}

// NewEntry pairs a key and a description with an action. Zero keys or
// descriptions and a nil action are rejected.
func NewEntry(key Key, description Description, action Action) (Entry, error) {
	if key.value == "" {
		return Entry{}, validation.New("key", validation.RuleRequired, "must not be empty")
	}
	if description.value == "" {
		return Entry{}, validation.New("description", validation.RuleRequired, "must not be empty")
	}
	if action == nil {
		return Entry{}, validation.New("action", validation.RuleRequired, "must not be nil")
	}
	return Entry{key: key, description: description, action: action}, nil
}

// CreateEntry validates key and description and builds the entry.
func CreateEntry(key, description string, action Action) (Entry, error) {
	k, err := NewKey(key)
	if err != nil {
		return Entry{}, err
	}
	d, err := NewDescription(description)
	if err != nil {
		return Entry{}, err
	}
	return NewEntry(k, d, action)
}

// Key returns the selection key.
func (e Entry) Key() Key                 { return e.key }
func (e Entry) Description() Description { return e.description }

// IsExit reports whether selecting the entry ends the menu.
func (e Entry) IsExit() bool {
	_, ok := e.action.(ExitAction)
	return ok
}
