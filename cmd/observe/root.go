package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/contriboss/observe-go/internal/cli"
)

var (
	// Global state set during PersistentPreRunE
	cfg        *cli.Config
	configPath string
	logger     *slog.Logger

	// Persistent flags
	cfgFile    string
	verbose    int
	quiet      bool
	resultsDir string
)

var rootCmd = &cobra.Command{
	Use:   "observe",
	Short: "Observability of partial feature assignments",
	Long: `observe - Observability of partial feature assignments

observe decides, for assignments to a few features of a product line, whether
their effect can be measured by toggling them in isolation (direct), only
through smaller assignments (indirect), or not at all (unobservable).`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger = newLogger(cmd)

		// Skip config loading for help/completion/version commands
		if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "version" {
			return nil
		}

		var err error
		cfg, configPath, err = cli.LoadConfig(cfgFile)
		if err != nil {
			return cli.ConfigError("loading configuration", err)
		}
		if resultsDir != "" {
			cfg.ResultsDir = resultsDir
		}
		return nil
	},
	SilenceUsage:  true, // Don't show usage on errors
	SilenceErrors: true, // We handle errors ourselves
}

// Command group IDs
const (
	groupEvaluation = "evaluation"
	groupUtility    = "utility"
)

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: auto-discover observe.yaml)")
	rootCmd.PersistentFlags().CountVarP(&verbose, "verbose", "v", "increase verbosity (can be repeated)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-error output")
	rootCmd.PersistentFlags().StringVar(&resultsDir, "results-dir", "", "directory for statistics files (overrides results_dir)")

	rootCmd.AddGroup(
		&cobra.Group{ID: groupEvaluation, Title: "Evaluation:"},
		&cobra.Group{ID: groupUtility, Title: "Utility:"},
	)

	runCmd.GroupID = groupEvaluation
	pimCmd.GroupID = groupEvaluation
	classifyCmd.GroupID = groupEvaluation
	checkCmd.GroupID = groupEvaluation
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(pimCmd)
	rootCmd.AddCommand(classifyCmd)
	rootCmd.AddCommand(checkCmd)

	historyCmd.GroupID = groupUtility
	configCmd.GroupID = groupUtility
	versionCmd.GroupID = groupUtility
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command. An interrupt cancels the running
// experiments after their current tier.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		cli.ExitWithError(err)
	}
}

// newLogger writes text logs to stderr. Warnings are shown by default, -v
// adds progress and -vv adds classifier diagnostics.
func newLogger(cmd *cobra.Command) *slog.Logger {
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: logLevel(verbose, quiet)}))
}

func logLevel(verbose int, quiet bool) slog.Level {
	switch {
	case quiet:
		return slog.LevelError
	case verbose >= 2:
		return slog.LevelDebug
	case verbose == 1:
		return slog.LevelInfo
	default:
		return slog.LevelWarn
	}
}

// resolveInts returns the first non-empty slice from the provided values.
// Used to implement precedence: flag > config > default.
func resolveInts(values ...[]int) []int {
	for _, v := range values {
		if len(v) > 0 {
			return v
		}
	}
	return nil
}
