package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/contriboss/observe-go/internal/cli"
	"github.com/contriboss/observe-go/internal/report"
	"github.com/contriboss/observe-go/internal/runner"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check that every configured experiment exists",
	RunE: func(cmd *cobra.Command, args []string) error {
		bases := make([]string, len(cfg.Experiments))
		for i, exp := range cfg.Experiments {
			bases[i] = cfg.ExperimentPath(exp)
		}

		missing := runner.New().Check(bases)
		for _, base := range missing {
			report.Failure(cmd.OutOrStdout(), fmt.Sprintf("Experiment %s does not exist!", base))
		}
		if len(missing) > 0 {
			return cli.GeneralError(fmt.Sprintf("%d of %d experiments missing", len(missing), len(bases)), nil)
		}
		if !quiet {
			report.Success(cmd.OutOrStdout(), "All experiments exist!")
		}
		return nil
	},
}
