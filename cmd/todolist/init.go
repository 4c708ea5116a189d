package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pearcec/todolist/internal/config"
)

const defaultConfig = `# todolist configuration

# Event Directory Service
api:
  url: http://localhost:8000/api/v1
  timeout: 30s

# debug, info, warn or error
log:
  level: warn

# Upcoming events printed by "todolist digest"
digest:
  days: 7
  # Cron expression; leave empty to print once and exit
  # schedule: "0 7 * * *"

# Credentials for digest and export are read from the environment
# (TODOLIST_USERNAME, TODOLIST_PASSWORD) or from a .env file.
`

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the default configuration",
	Long: `Create the user configuration at ~/.config/todolist/config.yaml
(or the path given with --config).

This command is idempotent - safe to run multiple times.
Existing files are never overwritten.`,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	var created []string

	path := config.Path()
	if err := createDirIfNotExists(filepath.Dir(path), &created); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := createConfigIfNotExists(path, &created); err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(created) == 0 {
		fmt.Fprintln(out, "todolist is already initialized. All directories and files exist.")
		return nil
	}
	fmt.Fprintln(out, "todolist initialized. Created:")
	for _, item := range created {
		fmt.Fprintf(out, "  %s\n", item)
	}
	return nil
}

func createDirIfNotExists(path string, created *[]string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := os.MkdirAll(path, 0755); err != nil {
			return err
		}
		*created = append(*created, path+"/")
	}
	return nil
}

func createConfigIfNotExists(path string, created *[]string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := os.WriteFile(path, []byte(defaultConfig), 0600); err != nil {
			return err
		}
		*created = append(*created, path)
	}
	return nil
}
