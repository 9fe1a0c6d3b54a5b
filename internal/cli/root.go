// Package cli implements the command-line interface.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/aidanlsb/mdcheck/internal/config"
	"github.com/aidanlsb/mdcheck/internal/ui"
)

var (
	// Global flags
	configPath string
	noColor    bool
	noCache    bool
	withImages bool

	// Resolved values
	cfg *config.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "mdcheck <path>",
	Short: "Check Markdown files for broken local links",
	Long: `mdcheck parses Markdown documents and reports links that point to local
files which do not exist on disk. Full URLs are ignored; relative links are
resolved against the document's own directory.

Given a file, it checks that file. Given a directory, it checks every
Markdown file found within it.`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Version doesn't need config or theming.
		switch cmd.Name() {
		case "version", "help", "completion":
			return nil
		}

		var err error
		if configPath != "" {
			cfg, err = config.LoadFrom(configPath)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		ui.ConfigureTheme(cfg.UI.Accent)
		if !colorEnabled() {
			ui.DisableColor()
		}

		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCheck(args[0])
	},
}

// colorEnabled decides whether styled output is appropriate for this run.
// Precedence: --no-color and NO_COLOR > config > TTY detection.
func colorEnabled() bool {
	if noColor || jsonOutput || os.Getenv("NO_COLOR") != "" {
		return false
	}
	switch cfg.UI.Color {
	case "always":
		return true
	case "never":
		return false
	}
	return isatty.IsTerminal(os.Stdout.Fd())
}

// Execute runs the CLI. The returned error is already reported; callers only
// translate it into the exit code.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil && !errors.Is(err, errBrokenLinks) {
		if isJSONOutput() {
			outputError("check_failed", err.Error())
		} else {
			fmt.Fprintln(os.Stderr, ui.Errorf("%v", err))
		}
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format (for agent/script use)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.Flags().BoolVar(&noCache, "no-cache", false, "Bypass the scan cache in directory mode")
	rootCmd.Flags().BoolVar(&withImages, "images", false, "Also check image destinations")
}
