package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/contriboss/observe-go/internal/cli"
	"github.com/contriboss/observe-go/internal/report"
	"github.com/contriboss/observe-go/internal/store"
)

var historyExperiment string

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List checkpointed runs",
	Long:  `List the runs recorded in the store, newest first, with the statistics of every tier they completed.`,
	Example: `  # All runs
  observe history

  # Runs of one experiment
  observe history --experiment minepump`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.Store.Path == "" {
			return cli.ConfigError("store.path is not set", nil)
		}
		st, err := store.Open(cfg.Store.Path)
		if err != nil {
			return cli.StoreError("opening store", err)
		}
		defer st.Close()

		runs, err := st.Runs(historyExperiment)
		if err != nil {
			return cli.StoreError("listing runs", err)
		}

		w := cmd.OutOrStdout()
		if len(runs) == 0 {
			report.Info(w, "no runs recorded")
			return nil
		}
		for _, run := range runs {
			report.Title(w, fmt.Sprintf("%s %s", run.Experiment, run.ID))
			report.Info(w, fmt.Sprintf("%s, started %s", run.Status, run.StartedAt.Local().Format(time.DateTime)))
			if run.Error != "" {
				report.Failure(w, run.Error)
			}

			tiers, err := st.Tiers(run.ID)
			if err != nil {
				return cli.StoreError("reading tiers", err)
			}
			if len(tiers) > 0 {
				fmt.Fprintln(w, report.Table(tiers))
			}
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().StringVar(&historyExperiment, "experiment", "", "only runs of this experiment")
}
