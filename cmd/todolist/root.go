package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/pearcec/todolist/internal/app"
	"github.com/pearcec/todolist/internal/config"
	"github.com/pearcec/todolist/internal/directory"
	"github.com/pearcec/todolist/internal/menu"
)

// errReported is returned once the failure was already printed.
var errReported = errors.New("failure already reported")

var (
	configFile string
	apiURL     string
	logLevel   string
)

// Settings resolved by loadSettings before any command runs.
var (
	cfg    *config.Config
	logger *slog.Logger = slog.Default()
)

var rootCmd = &cobra.Command{
	Use:   "todolist",
	Short: "Keep track of your events from the terminal",
	Long: `todolist is a console client for your personal event list.

Run without a subcommand to log in and manage events interactively.
Events are stored by the Event Directory Service; every change made in
the session is saved there immediately.

  - init      Create the default configuration
  - digest    Print upcoming events, once or on a schedule
  - export    Write events as an iCalendar file`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadSettings,
	RunE:              runSession,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file (default "+config.DefaultConfigPath+")")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Event Directory Service URL")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn or error")
}

func loadSettings(cmd *cobra.Command, args []string) error {
	config.UsePath(configFile)
	loaded, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg = loaded
	if apiURL != "" {
		cfg.API.URL = apiURL
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}

	logger = setupLogger(cfg.Log.Level)
	slog.SetDefault(logger)
	logger.Debug("configuration loaded", "path", config.Path(), "api", cfg.API.URL)
	return nil
}

func newDirectoryClient() *directory.Client {
	return directory.NewClient(cfg.API.URL,
		directory.WithTimeout(cfg.API.Timeout),
		directory.WithLogger(logger))
}

func runSession(cmd *cobra.Command, args []string) error {
	PrintBanner()

	session := app.New(menu.Stdio(), newDirectoryClient(), app.WithLogger(logger))
	if err := session.Run(cmd.Context()); err != nil {
		logger.Error("session failed", "error", err)
		fmt.Fprintf(cmd.ErrOrStderr(), "Unexpected failure, the session has been closed: %v\n", err)
		return errReported
	}
	return nil
}
