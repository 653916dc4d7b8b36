package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/issuetop/issuetop/internal/config"
	"github.com/issuetop/issuetop/internal/log"
	"github.com/issuetop/issuetop/internal/output"
)

var (
	// Global flags
	verbose bool
	quiet   bool

	// Shared state injected into commands
	cfg config.Config
)

// rootCmd represents the base command; without a subcommand it opens the
// interactive issue table.
var rootCmd = &cobra.Command{
	Use:   "issuetop [owner/repo]",
	Short: "Browse GitHub issues in a terminal table",
	Long: `issuetop is a terminal UI for browsing a repository's GitHub issues.

It fetches issues page by page, accumulates them in a per-filter cache,
and lets you page, search, and filter without refetching what it already
has. Without an argument it offers a picker over recently viewed repos.`,
	Args:                       cobra.MaximumNArgs(1),
	SilenceUsage:               true,
	SilenceErrors:              true,
	SuggestionsMinimumDistance: 2,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return applyLoggingFlags(cmd)
	},
	RunE: runBrowse,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	// Load config
	loaded, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		loaded = config.Default()
	}
	cfg = loaded

	// Create context with signal handling. Logger and printer are
	// attached in PersistentPreRunE, once flags have been parsed.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	rootCmd.SetContext(ctx)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// applyLoggingFlags builds the logger and output printer from the parsed
// global flags and attaches both to the command context. It must not run
// before flag parsing: a logger built earlier would freeze the pre-parse
// zero values and -v/-q would have no effect.
func applyLoggingFlags(cmd *cobra.Command) error {
	if verbose && quiet {
		return fmt.Errorf("--verbose and --quiet are mutually exclusive")
	}

	// Logger to stderr for diagnostics, printer to stdout for data.
	ctx := log.WithLogger(cmd.Context(), log.New(os.Stderr, verbose, quiet))
	ctx = output.WithPrinter(ctx, os.Stdout)
	cmd.SetContext(ctx)
	return nil
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log requests and cache activity")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress all log output")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	// Version flag
	rootCmd.Version = versionString()
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	// Browse flags (override config for this run only)
	rootCmd.Flags().String("state", "", "Issue state filter (all, open, closed)")
	rootCmd.Flags().Int("page-size", 0, "Rows per page (10, 25, 50)")
	rootCmd.Flags().String("sort", "", "Sort field (created, updated, comments)")
	rootCmd.Flags().String("direction", "", "Sort direction (asc, desc)")
	rootCmd.Flags().Bool("plain", false, "Print the first page as plain text and exit")
	rootCmd.Flags().String("token", "", "API token (overrides the configured token env var)")

	rootCmd.AddCommand(newRecentCmd())
	rootCmd.AddCommand(newDoctorCmd())
}
