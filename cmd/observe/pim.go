package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/contriboss/observe-go/internal/cli"
	"github.com/contriboss/observe-go/internal/report"
	"github.com/contriboss/observe-go/internal/runner"
)

var (
	pimExamples []string
	pimFormat   string
)

var pimCmd = &cobra.Command{
	Use:   "pim",
	Short: "Classify the terms of performance-influence models",
	Long: `Classify the terms of measured performance-influence models. The valid
configurations of each system are the rows of its measurement table; the
PFAs are the terms its influence model uses. Terms over features that were
never measured are counted as rejected.`,
	Example: `  # Every configured system
  observe pim

  # Only two systems
  observe pim --example z3 --example brotli`,
	RunE: func(cmd *cobra.Command, args []string) error {
		delim, err := runner.ParseDelimiter(cfg.PIM.Delimiter)
		if err != nil {
			return cli.ConfigError("pim.delimiter", err)
		}

		examples := cfg.PIM.Examples
		if len(pimExamples) > 0 {
			examples = examples[:0:0]
			for _, name := range pimExamples {
				ex, ok := cfg.PIMExample(name)
				if !ok {
					return cli.ConfigError(fmt.Sprintf("unknown pim example %q", name), nil)
				}
				examples = append(examples, ex)
			}
		}

		s, err := openSession(nil)
		if err != nil {
			return err
		}
		for _, ex := range examples {
			dir := filepath.Join(cfg.PIM.BaseDir, ex.Name)
			res, err := s.runner.RunRealWorld(cmd.Context(), runner.RealWorld{
				Name:         ex.Name,
				Measurements: filepath.Join(dir, cfg.PIM.MeasurementSuffix),
				Model:        filepath.Join(dir, cfg.PIM.ModelSuffix),
				Exclude:      ex.Exclude,
				ModelExclude: cfg.PIM.ModelExclude,
				Delimiter:    delim,
			})
			if err != nil {
				s.Close()
				return runError(err)
			}
			if err := emit(cmd.OutOrStdout(), res.Experiment, res.Tiers, pimFormat); err != nil {
				s.Close()
				return err
			}
		}
		if err := s.Close(); err != nil {
			return err
		}

		if !quiet {
			report.Success(cmd.OutOrStdout(), fmt.Sprintf("%d systems evaluated", len(examples)))
		}
		return nil
	},
}

func init() {
	pimCmd.Flags().StringSliceVar(&pimExamples, "example", nil, "system to evaluate (repeatable, default all)")
	pimCmd.Flags().StringVar(&pimFormat, "format", "table", "output format: table or yaml")
}
