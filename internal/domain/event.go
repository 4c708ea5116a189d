package domain

import (
	"cmp"
	"strings"

	"github.com/pearcec/todolist/internal/validation"
)

// UnsavedID marks an event that has not been stored by the directory service yet.
const UnsavedID = -1

// EventParams carries the already-validated fields of an Event.
type EventParams struct {
	ID          int
	Name        Name
	Description Description
	Author      Author
	StartDate   Date
	EndDate     Date
	Location    Location
	Category    Category
	Priority    Priority
}

// Event is an immutable calendar entry of the ToDoList.
type Event struct {
	p EventParams
}

// NewEvent builds an Event, rejecting an end date earlier than the start date.
func NewEvent(p EventParams) (Event, error) {
	if p.EndDate.Before(p.StartDate) {
		return Event{}, validation.New("end_date", validation.RuleOrder,
			"must not be earlier than the start date (%s < %s)", p.EndDate, p.StartDate)
	}
	return Event{p: p}, nil
}

// ID is the directory service id, or UnsavedID.
func (e Event) ID() int                  { return e.p.ID }
func (e Event) Name() Name               { return e.p.Name }
func (e Event) Description() Description { return e.p.Description }
func (e Event) Author() Author           { return e.p.Author }
func (e Event) StartDate() Date          { return e.p.StartDate }
func (e Event) EndDate() Date            { return e.p.EndDate }
func (e Event) Location() Location       { return e.p.Location }
func (e Event) Category() Category       { return e.p.Category }
func (e Event) Priority() Priority       { return e.p.Priority }

// Params returns a copy of the event fields, e.g. to derive a modified event.
func (e Event) Params() EventParams { return e.p }

// Equal reports whether both events carry the same field values.
func (e Event) Equal(o Event) bool { return Compare(e, o) == 0 }

// Compare orders events field by field in declaration order.
func Compare(a, b Event) int {
	if c := cmp.Compare(a.p.ID, b.p.ID); c != 0 {
		return c
	}
	if c := strings.Compare(a.p.Name.value, b.p.Name.value); c != 0 {
		return c
	}
	if c := strings.Compare(a.p.Description.value, b.p.Description.value); c != 0 {
		return c
	}
	if c := cmp.Compare(a.p.Author.key, b.p.Author.key); c != 0 {
		return c
	}
	if c := a.p.StartDate.Compare(b.p.StartDate); c != 0 {
		return c
	}
	if c := a.p.EndDate.Compare(b.p.EndDate); c != 0 {
		return c
	}
	if c := strings.Compare(a.p.Location.value, b.p.Location.value); c != 0 {
		return c
	}
	if c := cmp.Compare(a.p.Category.value, b.p.Category.value); c != 0 {
		return c
	}
	return cmp.Compare(a.p.Priority.value, b.p.Priority.value)
}

// String renders a header line and a tab-separated values line.
func (e Event) String() string {
	var sb strings.Builder
	sb.WriteString("name\t description\t start_date\t end_date\t location\t category\t priority\n")
	sb.WriteString(strings.Join([]string{
		e.p.Name.String(),
		e.p.Description.String(),
		e.p.StartDate.String(),
		e.p.EndDate.String(),
		e.p.Location.String(),
		e.p.Category.String(),
		e.p.Priority.String(),
	}, "\t"))
	sb.WriteString("\n")
	return sb.String()
}
