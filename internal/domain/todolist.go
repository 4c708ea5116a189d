package domain

import (
	"errors"
	"fmt"
	"slices"
)

// ErrIndexOutOfRange is returned for positions outside [0, Len()-1].
var ErrIndexOutOfRange = errors.New("index out of range")

// ToDoList is the ordered collection of events of one session.
// It is not safe for concurrent use.
type ToDoList struct {
	events []Event
}

// NewToDoList returns an empty list.
func NewToDoList() *ToDoList {
	return &ToDoList{}
}

// Len returns the number of events.
func (l *ToDoList) Len() int {
	return len(l.events)
}

// Event returns the event at index.
func (l *ToDoList) Event(index int) (Event, error) {
	if err := l.checkIndex(index); err != nil {
		return Event{}, err
	}
	return l.events[index], nil
}

// Events returns a copy of the events in their current order.
func (l *ToDoList) Events() []Event {
	return slices.Clone(l.events)
}

// Add appends e at the end of the list.
func (l *ToDoList) Add(e Event) {
	l.events = append(l.events, e)
}

// Remove deletes the event at index, shifting later events down by one.
func (l *ToDoList) Remove(index int) error {
	if err := l.checkIndex(index); err != nil {
		return err
	}
	l.events = slices.Delete(l.events, index, index+1)
	return nil
}

// SortByStartDate orders events by ascending start date, keeping the
// relative order of events that start at the same time.
func (l *ToDoList) SortByStartDate() {
	slices.SortStableFunc(l.events, func(a, b Event) int {
		return a.p.StartDate.Compare(b.p.StartDate)
	})
}

// SortByPriority puts the highest priority first, keeping the relative order
// of events with equal priority.
func (l *ToDoList) SortByPriority() {
	slices.SortStableFunc(l.events, func(a, b Event) int {
		return b.p.Priority.value - a.p.Priority.value
	})
}

// Clear drops every event, typically before a reload from the directory service.
func (l *ToDoList) Clear() {
	clear(l.events)
	l.events = l.events[:0]
}

func (l *ToDoList) checkIndex(index int) error {
	if index < 0 || index >= len(l.events) {
		return fmt.Errorf("%w: %d not in [0, %d]", ErrIndexOutOfRange, index, len(l.events)-1)
	}
	return nil
}
