package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pearcec/todolist/internal/ics"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write events as an iCalendar file",
	Long: `Export every valid event as an iCalendar (.ics) document.

Credentials are read from TODOLIST_USERNAME and TODOLIST_PASSWORD.

Examples:
  todolist export > events.ics
  todolist export --output events.ics`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (default stdout)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	events, skipped, err := fetchEvents(cmd.Context(), newDirectoryClient(), cfg.Username, cfg.Password)
	if err != nil {
		return err
	}
	if skipped > 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "%d invalid event(s) skipped\n", skipped)
	}
	if len(events) == 0 {
		fmt.Fprintln(cmd.ErrOrStderr(), "No events to export.")
		return nil
	}

	stamp := time.Now()
	encode := func(w io.Writer) error { return ics.Encode(w, events, stamp) }
	if exportOutput == "" {
		return encode(cmd.OutOrStdout())
	}

	if err := writeExportFile(exportOutput, encode); err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d event(s) to %s\n", len(events), exportOutput)
	return nil
}

// writeExportFile creates path and fills it with encode. The file is removed
// when encoding or closing fails, so no truncated calendar is left behind.
func writeExportFile(path string, encode func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	err = encode(f)
	if cerr := f.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("failed to write %s: %w", path, cerr)
	}
	if err != nil {
		os.Remove(path)
		return err
	}
	return nil
}
