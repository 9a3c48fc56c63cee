package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/contriboss/observe-go"
	"github.com/contriboss/observe-go/internal/cli"
	"github.com/contriboss/observe-go/internal/report"
)

var (
	runExperiments []string
	runAll         bool
	runTiers       []int
	runFormat      string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Classify the t-wise PFAs of feature model experiments",
	Long: `Classify every t-wise PFA of one or more feature models and write a
statistics file per experiment to the results directory.

An experiment is a model base path: <base>.fs lists the features and
<base>.fm the valid configurations. Relative paths resolve against
experiments_dir.`,
	Example: `  # Run one experiment
  observe run --exp ProVeLines/minepump/minepump

  # Run every configured experiment, two at a time
  OBSERVE_CONCURRENCY=2 observe run --all

  # Only 1-wise and 2-wise PFAs
  observe run --all --tiers 1,2`,
	RunE: func(cmd *cobra.Command, args []string) error {
		experiments := runExperiments
		if runAll {
			experiments = cfg.Experiments
		}
		if len(experiments) == 0 {
			return cli.GeneralError("nothing to run: pass --exp or --all", nil)
		}
		bases := make([]string, len(experiments))
		for i, exp := range experiments {
			bases[i] = cfg.ExperimentPath(exp)
		}

		s, err := openSession(resolveInts(runTiers, cfg.Tiers))
		if err != nil {
			return err
		}

		results, runErr := s.runner.RunAll(cmd.Context(), bases)
		for _, res := range results {
			if res == nil || len(res.Tiers) == 0 {
				continue
			}
			if err := emit(cmd.OutOrStdout(), res.Experiment, res.Tiers, runFormat); err != nil {
				s.Close()
				return err
			}
		}
		if err := s.Close(); err != nil && runErr == nil {
			return err
		}
		if runErr != nil {
			return runError(runErr)
		}

		if !quiet {
			report.Success(cmd.OutOrStdout(), "All experiments finished!")
		}
		return nil
	},
}

func init() {
	runCmd.Flags().StringSliceVar(&runExperiments, "exp", nil, "experiment to run (repeatable)")
	runCmd.Flags().BoolVar(&runAll, "all", false, "run every configured experiment")
	runCmd.Flags().IntSliceVar(&runTiers, "tiers", nil, "PFA arities to classify (default from config)")
	runCmd.Flags().StringVar(&runFormat, "format", "table", "output format: table or yaml")
	runCmd.MarkFlagsMutuallyExclusive("exp", "all")
}

// emit saves the statistics of one experiment and prints them.
func emit(w io.Writer, name string, stats []observe.TierStats, format string) error {
	path, err := report.SaveCSV(cfg.ResultsDir, name, stats)
	if err != nil {
		return cli.GeneralError("saving statistics", err)
	}
	logger.Info("statistics saved", "experiment", name, "path", path)

	if quiet {
		return nil
	}
	switch format {
	case "yaml":
		return report.WriteYAML(w, stats)
	case "table", "":
		report.Title(w, name)
		fmt.Fprintln(w, report.Table(stats))
		return nil
	default:
		return cli.GeneralError(fmt.Sprintf("unknown format %q", format), nil)
	}
}
