package app

import (
	"strconv"
	"strings"
	"time"

	"github.com/pearcec/todolist/internal/domain"
	"github.com/pearcec/todolist/internal/menu"
	"github.com/pearcec/todolist/internal/validation"
)

// InputDateLayout is how dates are typed at the prompt, in local time.
const InputDateLayout = "01/02/06 15:04:05"

// readField prompts until parse accepts the trimmed line. Validation errors
// are printed and the field is asked again; other errors are returned.
func readField[T any](c *menu.Console, prompt string, parse func(string) (T, error)) (T, error) {
	for {
		line, err := c.ReadLine(prompt + ": ")
		if err != nil {
			var zero T
			return zero, err
		}
		v, err := parse(strings.TrimSpace(line))
		if err == nil {
			return v, nil
		}
		if !validation.Is(err) {
			var zero T
			return zero, err
		}
		c.Println(err)
	}
}

func parseInt(field, s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, validation.New(field, validation.RuleFormat, "expected a whole number, got %q", s)
	}
	return n, nil
}

func parseDate(field, s string) (domain.Date, error) {
	t, err := time.ParseInLocation(InputDateLayout, s, time.Local)
	if err != nil {
		return domain.Date{}, validation.New(field, validation.RuleFormat, "expected MM/DD/YY hh:mm:ss, got %q", s)
	}
	return domain.NewDate(t)
}

func (a *App) parseIndex(s string) (int, error) {
	n, err := parseInt("index", s)
	if err != nil {
		return 0, err
	}
	if err := validation.Range("index", n, 0, a.list.Len()); err != nil {
		return 0, err
	}
	return n, nil
}

func (a *App) readEventParams() (domain.EventParams, error) {
	p := domain.EventParams{ID: domain.UnsavedID, Author: a.author}
	var err error

	if p.Name, err = readField(a.console, "Name", domain.NewName); err != nil {
		return p, err
	}
	if p.Description, err = readField(a.console, "Description", domain.NewDescription); err != nil {
		return p, err
	}
	if p.StartDate, err = readField(a.console, "Start date", func(s string) (domain.Date, error) {
		return parseDate("start_date", s)
	}); err != nil {
		return p, err
	}
	start := p.StartDate
	if p.EndDate, err = readField(a.console, "End date", func(s string) (domain.Date, error) {
		d, err := parseDate("end_date", s)
		if err != nil {
			return d, err
		}
		if d.Before(start) {
			return domain.Date{}, validation.New("end_date", validation.RuleOrder, "must not be before the start date")
		}
		return d, nil
	}); err != nil {
		return p, err
	}
	if p.Location, err = readField(a.console, "Location", domain.NewLocation); err != nil {
		return p, err
	}
	if p.Category, err = readField(a.console, "Category", func(s string) (domain.Category, error) {
		n, err := parseInt("category", s)
		if err != nil {
			return domain.Category{}, err
		}
		return domain.NewCategory(n)
	}); err != nil {
		return p, err
	}
	if p.Priority, err = readField(a.console, "Priority", func(s string) (domain.Priority, error) {
		n, err := parseInt("priority", s)
		if err != nil {
			return domain.Priority{}, err
		}
		return domain.NewPriority(n)
	}); err != nil {
		return p, err
	}
	return p, nil
}
