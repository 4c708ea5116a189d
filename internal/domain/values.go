// Package domain defines the event value types and the in-memory ToDoList.
//
// Each value type validates itself on construction, so a value that exists
// is always well formed. The zero values are never produced by constructors
// and should not be used directly.
package domain

import (
	"strconv"
	"time"

	"github.com/pearcec/todolist/internal/validation"
)

const (
	MaxNameLength        = 50
	MaxDescriptionLength = 500
	MaxLocationLength    = 50

	MinCategory = 0
	MaxCategory = 3
	MinPriority = 0
	MaxPriority = 2
)

// DateLayout is how dates are rendered by Date.String.
const DateLayout = "2006-01-02 15:04:05"

// now is replaced in tests to pin the future-only check.
var now = time.Now

// Name is the short title of an event.
type Name struct{ value string }

// NewName validates a name: letters, digits and spaces, at most
// MaxNameLength characters.
func NewName(value string) (Name, error) {
	if err := validation.Text("name", value, MaxNameLength, validation.Alphanumeric); err != nil {
		return Name{}, err
	}
	return Name{value: value}, nil
}

// String returns the name as given.
func (n Name) String() string { return n.value }

// Description is the free text attached to an event.
type Description struct{ value string }

// NewDescription validates a description: letters, digits and spaces, at
// most MaxDescriptionLength characters.
func NewDescription(value string) (Description, error) {
	if err := validation.Text("description", value, MaxDescriptionLength, validation.Alphanumeric); err != nil {
		return Description{}, err
	}
	return Description{value: value}, nil
}

// String returns the description as given.
func (d Description) String() string { return d.value }

// Location is where an event takes place.
type Location struct{ value string }

// NewLocation validates a location: letters, digits and spaces, at most
// MaxLocationLength characters.
func NewLocation(value string) (Location, error) {
	if err := validation.Text("location", value, MaxLocationLength, validation.Alphanumeric); err != nil {
		return Location{}, err
	}
	return Location{value: value}, nil
}

// String returns the location as given.
func (l Location) String() string { return l.value }

// Author is the numeric key of the user owning an event.
type Author struct{ key int }

// NewAuthor rejects negative keys.
func NewAuthor(key int) (Author, error) {
	if err := validation.Min("author", key, 0); err != nil {
		return Author{}, err
	}
	return Author{key: key}, nil
}

// Key returns the numeric user id.
func (a Author) Key() int       { return a.key }
func (a Author) String() string { return strconv.Itoa(a.key) }

// Date is a point in time that was not in the past when it was created.
type Date struct{ t time.Time }

// NewDate rejects times earlier than now.
func NewDate(t time.Time) (Date, error) {
	if t.Before(now()) {
		return Date{}, validation.New("date", validation.RuleRange, "must not be in the past (got %s)", t.Format(DateLayout))
	}
	return Date{t: t}, nil
}

// Time returns the wrapped timestamp.
func (d Date) Time() time.Time    { return d.t }
func (d Date) Before(o Date) bool { return d.t.Before(o.t) }
func (d Date) Compare(o Date) int { return d.t.Compare(o.t) }
func (d Date) String() string     { return d.t.Format(DateLayout) }

// Category classifies an event, from 0 to 3.
type Category struct{ value int }

// NewCategory accepts values from MinCategory to MaxCategory.
func NewCategory(value int) (Category, error) {
	if err := validation.Range("category", value, MinCategory, MaxCategory); err != nil {
		return Category{}, err
	}
	return Category{value: value}, nil
}

// Int returns the category number.
func (c Category) Int() int       { return c.value }
func (c Category) String() string { return strconv.Itoa(c.value) }

// Priority ranks an event, from 0 (lowest) to 2 (highest).
type Priority struct{ value int }

// NewPriority accepts values from MinPriority to MaxPriority.
func NewPriority(value int) (Priority, error) {
	if err := validation.Range("priority", value, MinPriority, MaxPriority); err != nil {
		return Priority{}, err
	}
	return Priority{value: value}, nil
}

// Int returns the priority number.
func (p Priority) Int() int       { return p.value }
func (p Priority) String() string { return strconv.Itoa(p.value) }
