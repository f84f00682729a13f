package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/AnthonyBarbaro/stashhub/internal/api"
	"github.com/AnthonyBarbaro/stashhub/internal/config"
	"github.com/AnthonyBarbaro/stashhub/internal/job"
	"github.com/AnthonyBarbaro/stashhub/internal/logging"
	"github.com/AnthonyBarbaro/stashhub/internal/ui"
)

var backendURL string

var rootCmd = &cobra.Command{
	Use:   "stashhub",
	Short: "Terminal front end for the brand inventory backend",
	Long: `stashhub drives the brand inventory backend from the terminal:
pick brands, kick off file updates or the report pipeline, and watch
job status without leaving your shell.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(false)
	},
}

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Edit backend credentials and the store map",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(true)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&backendURL, "backend", "",
		"backend base URL (overrides config and STASHHUB_URL)")
	rootCmd.AddCommand(setupCmd, versionCmd, updateCmd)
}

func runTUI(startOnSetup bool) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if backendURL != "" {
		cfg.Backend.URL = backendURL
	}

	// The TUI owns the terminal, so logs go to a file or nowhere.
	log, err := logging.File(cfg.Log.Path, cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}

	client := api.NewClient(cfg.Backend.URL, cfg.Backend.Timeout(), log)
	watcher := job.NewWatcher(client, cfg.Poll.Interval(), cfg.Poll.Timeout(), log)

	app := ui.NewApp(cfg, client, watcher, log, startOnSetup)
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
