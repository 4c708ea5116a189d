package directory

import (
	"time"

	"github.com/pearcec/todolist/internal/domain"
	"github.com/pearcec/todolist/internal/validation"
)

// TimeLayout is the UTC timestamp format used on the wire.
const TimeLayout = "2006-01-02T15:04:05Z"

// Record is an event as exchanged with the service.
type Record struct {
	ID          int    `json:"id,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Author      int    `json:"author"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Location    string `json:"location"`
	Category    int    `json:"category"`
	Priority    int    `json:"priority"`
}

// NewRecord converts a domain event to its wire form.
func NewRecord(e domain.Event) Record {
	return Record{
		ID:          e.ID(),
		Name:        e.Name().String(),
		Description: e.Description().String(),
		Author:      e.Author().Key(),
		StartDate:   e.StartDate().Time().UTC().Format(TimeLayout),
		EndDate:     e.EndDate().Time().UTC().Format(TimeLayout),
		Location:    e.Location().String(),
		Category:    e.Category().Int(),
		Priority:    e.Priority().Int(),
	}
}

// forCreate drops the placeholder id of an unsaved event.
func (r Record) forCreate() Record {
	if r.ID == domain.UnsavedID {
		r.ID = 0
	}
	return r
}

// Event validates the record and converts it to a domain event.
func (r Record) Event() (domain.Event, error) {
	name, err := domain.NewName(r.Name)
	if err != nil {
		return domain.Event{}, err
	}
	description, err := domain.NewDescription(r.Description)
	if err != nil {
		return domain.Event{}, err
	}
	author, err := domain.NewAuthor(r.Author)
	if err != nil {
		return domain.Event{}, err
	}
	start, err := parseDate("start_date", r.StartDate)
	if err != nil {
		return domain.Event{}, err
	}
	end, err := parseDate("end_date", r.EndDate)
	if err != nil {
		return domain.Event{}, err
	}
	location, err := domain.NewLocation(r.Location)
	if err != nil {
		return domain.Event{}, err
	}
	category, err := domain.NewCategory(r.Category)
	if err != nil {
		return domain.Event{}, err
	}
	priority, err := domain.NewPriority(r.Priority)
	if err != nil {
		return domain.Event{}, err
	}

	return domain.NewEvent(domain.EventParams{
		ID:          r.ID,
		Name:        name,
		Description: description,
		Author:      author,
		StartDate:   start,
		EndDate:     end,
		Location:    location,
		Category:    category,
		Priority:    priority,
	})
}

func parseDate(field, value string) (domain.Date, error) {
	t, err := time.Parse(TimeLayout, value)
	if err != nil {
		return domain.Date{}, validation.New(field, validation.RuleFormat, "expected %s, got %q", TimeLayout, value)
	}
	d, err := domain.NewDate(t)
	if err != nil {
		return domain.Date{}, validation.New(field, validation.RuleRange, "must not be in the past (got %s)", value)
	}
	return d, nil
}
