// Package main provides the pro-resume-mentor command line tool: edit, score, render and
// export a resume document, manage the saved-resume library and run the local editing API.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/navinkumarg9/pro-resume-mentor/internal/config"
)

var (
	rootConfigPath string
	rootStorageURL string
	rootVerbose    bool

	// cfg is loaded before every subcommand runs.
	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:           "resume_mentor",
	Short:         "Resume builder with live scoring, templates and PDF export",
	Long:          "Pro Resume Mentor edits a resume document through typed commands, scores its completeness, renders it with one of 24 templates and exports A4 PDFs.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		loaded, err := config.Load(rootConfigPath)
		if err != nil {
			return err
		}
		if rootStorageURL != "" {
			loaded.StorageURL = rootStorageURL
		}
		cfg = loaded
		slog.SetDefault(newLogger(cmd, cfg.LogLevel, rootVerbose))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootConfigPath, "config", "", "Path to a YAML or JSON config file")
	rootCmd.PersistentFlags().StringVar(&rootStorageURL, "storage", "", "Library storage URL (overrides config and RESUME_STORAGE_URL)")
	rootCmd.PersistentFlags().BoolVarP(&rootVerbose, "verbose", "v", false, "Print detailed debug information")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newLogger(cmd *cobra.Command, level string, verbose bool) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	if verbose {
		lvl = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: lvl}))
}
