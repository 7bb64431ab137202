package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/infotech-symposium/event-registration/api"
	"github.com/spf13/cobra"
)

var (
	flagVerbose bool

	cfg    Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   appName,
	Short: "InfoTech 2026 symposium registration",
	Long: "InfoTech 2026 symposium registration\n\n" +
		"Fill in the registration form in the terminal, keep a draft between sessions\n" +
		"and get a summary of what was submitted.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = loadConfig()
		if err != nil {
			return err
		}
		logger = newLogger(os.Stderr, cfg.Env, flagVerbose)
		return nil
	},
}

func main() {
	rootCmd.AddCommand(registerCmd, statusCmd, draftCmd, stubCmd)
	draftCmd.AddCommand(draftShowCmd, draftClearCmd)

	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "log debug output to stderr")

	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err.Error())
		os.Exit(1)
	}
}

// newLogger logs JSON in PROD and text locally.
func newLogger(w io.Writer, env api.Environment, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	if env == api.PROD {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
