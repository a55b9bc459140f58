package main

import (
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/memolab/internal/config"
	lerrors "github.com/vango-dev/memolab/internal/errors"
	"github.com/vango-dev/memolab/internal/telemetry"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const banner = `
  ┌┬┐┌─┐┌┬┐┌─┐┬  ┌─┐┌┐
  │││├┤ ││││ ││  ├─┤├┴┐
  ┴ ┴└─┘┴ ┴└─┘┴─┘┴ ┴└─┘
`

// globalFlags are the persistent flags shared by every command.
type globalFlags struct {
	configPath string
	debug      bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		var le *lerrors.Error
		if stderrors.As(err, &le) {
			lerrors.Fprint(os.Stderr, err)
		} else {
			fmt.Fprintf(os.Stderr, "\033[31mError:\033[0m %s\n", err)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "memolab",
		Short: "Interactive lab for identity-based render skipping",
		Long: `memolab demonstrates how stable callbacks and memoized values let a
memoized child skip re-rendering.

  • serve      interactive lessons in the browser
  • scenarios  run the scripted render-count checks
  • bench      time the scenarios`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "Config file (default: memolab.json or memolab.yaml in the project root)")
	rootCmd.PersistentFlags().BoolVar(&flags.debug, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(
		serveCmd(flags),
		scenariosCmd(flags),
		benchCmd(flags),
		versionCmd(),
	)
	return rootCmd
}

// loadConfig reads the --config file, or the project config, or falls back
// to defaults when there is none.
func loadConfig(flags *globalFlags) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if flags.configPath != "" {
		cfg, err = config.LoadFile(flags.configPath)
	} else {
		cfg, err = config.LoadFromWorkingDir()
		if stderrors.Is(err, lerrors.New(lerrors.CodeConfigNotFound)) {
			cfg, err = config.New(), nil
		}
	}
	if err != nil {
		return nil, err
	}
	if flags.debug {
		cfg.Debug = true
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(cfg *config.Config, w io.Writer) *slog.Logger {
	return telemetry.NewLogger(w, cfg.LogLevel(), cfg.Log.JSON)
}

// printBanner prints the ASCII art banner.
func printBanner() {
	fmt.Print(banner)
}

// success prints a success message.
func success(format string, args ...any) {
	fmt.Printf("\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(format string, args ...any) {
	fmt.Printf("  %s\n", fmt.Sprintf(format, args...))
}

// warn prints a warning message.
func warn(format string, args ...any) {
	fmt.Printf("\033[33m⚠\033[0m %s\n", fmt.Sprintf(format, args...))
}
