package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/pearcec/todolist/internal/config"
	"github.com/pearcec/todolist/internal/domain"
)

var (
	digestDays     int
	digestSchedule string
)

var digestCmd = &cobra.Command{
	Use:   "digest",
	Short: "Print upcoming events",
	Long: `Print the events starting within the next days, sorted by start date.

Credentials are read from TODOLIST_USERNAME and TODOLIST_PASSWORD.
With --schedule (or digest.schedule in the config file) the digest is
printed on a cron schedule until interrupted.

Examples:
  todolist digest
  todolist digest --days 1
  todolist digest --schedule "0 7 * * *"`,
	RunE: runDigest,
}

func init() {
	digestCmd.Flags().IntVar(&digestDays, "days", 0, "Days ahead to include (default from config)")
	digestCmd.Flags().StringVar(&digestSchedule, "schedule", "", "Cron expression to print the digest repeatedly")
	rootCmd.AddCommand(digestCmd)
}

func runDigest(cmd *cobra.Command, args []string) error {
	settings := *cfg
	if digestDays > 0 {
		settings.Digest.Days = digestDays
	}
	if digestSchedule != "" {
		settings.Digest.Schedule = digestSchedule
	}

	client := newDirectoryClient()
	out := cmd.OutOrStdout()
	if settings.Digest.Schedule == "" {
		return printDigest(cmd.Context(), out, client, &settings, time.Now())
	}
	return runDigestScheduler(settings.Digest.Schedule, func() {
		if err := printDigest(context.Background(), out, client, &settings, time.Now()); err != nil {
			logger.Error("[digest] run failed", "error", err)
		}
	})
}

func printDigest(ctx context.Context, w io.Writer, src eventSource, settings *config.Config, now time.Time) error {
	events, skipped, err := fetchEvents(ctx, src, settings.Username, settings.Password)
	if err != nil {
		return err
	}
	days := settings.Digest.Days
	writeDigest(w, upcomingEvents(events, now, days), now, days)
	if skipped > 0 {
		fmt.Fprintf(w, "(%d invalid event(s) skipped)\n", skipped)
	}
	return nil
}

// upcomingEvents keeps the events starting before now plus days, ordered by
// start date.
func upcomingEvents(events []domain.Event, now time.Time, days int) []domain.Event {
	until := now.AddDate(0, 0, days)
	list := domain.NewToDoList()
	for _, e := range events {
		if e.StartDate().Time().Before(until) {
			list.Add(e)
		}
	}
	list.SortByStartDate()
	return list.Events()
}

var priorityLabels = map[int]string{0: "low", 1: "medium", 2: "high"}

func writeDigest(w io.Writer, events []domain.Event, now time.Time, days int) {
	fmt.Fprintf(w, "Upcoming events, next %d day(s) as of %s\n", days, now.Format("Mon Jan 2 15:04"))
	if len(events) == 0 {
		fmt.Fprintln(w, "  No upcoming events.")
		return
	}
	for _, e := range events {
		fmt.Fprintf(w, "  %s  %s @ %s [%s]\n",
			e.StartDate().Time().Local().Format("Mon Jan _2 15:04"),
			e.Name(),
			e.Location(),
			priorityLabels[e.Priority().Int()])
	}
}

// validateSchedule checks a standard five-field cron expression.
func validateSchedule(spec string) error {
	if _, err := cron.ParseStandard(spec); err != nil {
		return fmt.Errorf("invalid schedule %q: %w", spec, err)
	}
	return nil
}

func runDigestScheduler(spec string, job func()) error {
	if err := validateSchedule(spec); err != nil {
		return err
	}

	c := cron.New()
	if _, err := c.AddFunc(spec, job); err != nil {
		return fmt.Errorf("invalid schedule %q: %w", spec, err)
	}
	c.Start()
	logger.Info("[digest] scheduler started", "schedule", spec, "pid", os.Getpid())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	logger.Info("[digest] received signal, shutting down", "signal", sig)

	// Wait for a running digest to finish
	<-c.Stop().Done()
	return nil
}
