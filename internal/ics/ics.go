// Package ics renders events as an iCalendar document.
package ics

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/emersion/go-ical"

	"github.com/pearcec/todolist/internal/domain"
)

// ProductID identifies the generator in exported calendars.
const ProductID = "-//todolist//EN"

// UIDDomain qualifies event UIDs so they stay unique across calendars.
const UIDDomain = "todolist"

// Encode writes events as one VCALENDAR with a VEVENT per event. Callers
// should not pass an empty slice.
func Encode(w io.Writer, events []domain.Event, stamp time.Time) error {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, ProductID)

	for _, e := range events {
		cal.Children = append(cal.Children, toVEvent(e, stamp))
	}

	if err := ical.NewEncoder(w).Encode(cal); err != nil {
		return fmt.Errorf("failed to encode calendar: %w", err)
	}
	return nil
}

func toVEvent(e domain.Event, stamp time.Time) *ical.Component {
	ve := ical.NewComponent(ical.CompEvent)
	ve.Props.SetText(ical.PropUID, UID(e))
	ve.Props.SetDateTime(ical.PropDateTimeStamp, stamp.UTC())
	ve.Props.SetText(ical.PropSummary, e.Name().String())
	ve.Props.SetDateTime(ical.PropDateTimeStart, e.StartDate().Time().UTC())
	ve.Props.SetDateTime(ical.PropDateTimeEnd, e.EndDate().Time().UTC())
	ve.Props.SetText(ical.PropDescription, e.Description().String())
	ve.Props.SetText(ical.PropLocation, e.Location().String())
	ve.Props.SetText("CATEGORIES", "category-"+e.Category().String())

	// PRIORITY is an INTEGER property; SetText would tag it VALUE=TEXT.
	prio := ical.NewProp(ical.PropPriority)
	prio.Value = strconv.Itoa(icalPriority(e.Priority()))
	ve.Props.Set(prio)
	return ve
}

// UID returns the stable iCalendar UID of a stored event.
func UID(e domain.Event) string {
	return fmt.Sprintf("event-%d@%s", e.ID(), UIDDomain)
}

// icalPriority maps 0..2 (low..high) onto the RFC 5545 scale, where 1 is the
// highest priority and 9 the lowest.
func icalPriority(p domain.Priority) int {
	switch p.Int() {
	case domain.MaxPriority:
		return 1
	case domain.MinPriority:
		return 9
	default:
		return 5
	}
}
