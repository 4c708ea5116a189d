package app

import (
	"strconv"
	"strings"

	"github.com/pearcec/todolist/internal/domain"
	"github.com/pearcec/todolist/internal/menu"
)

const (
	rowFormat      = "%4s %20s %30s %6s %20s %20s %20s %10s %10s\n"
	separatorWidth = 150
)

// printEvents writes events as a table, numbered from 1 as the remove
// prompt expects.
func printEvents(c *menu.Console, events []domain.Event) {
	sep := strings.Repeat("-", separatorWidth)
	c.Println(sep)
	c.Printf(rowFormat, "#", "NAME", "DESCRIPTION", "AUTHOR", "START DATE", "END DATE", "LOCATION", "CATEGORY", "PRIORITY")
	c.Println(sep)
	for i, e := range events {
		c.Printf(rowFormat,
			strconv.Itoa(i+1),
			e.Name(),
			e.Description(),
			e.Author(),
			formatDate(e.StartDate()),
			formatDate(e.EndDate()),
			e.Location(),
			e.Category(),
			e.Priority())
	}
	c.Println(sep)
}

func formatDate(d domain.Date) string {
	return d.Time().Local().Format(domain.DateLayout)
}
