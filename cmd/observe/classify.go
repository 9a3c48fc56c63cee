package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"

	"github.com/contriboss/observe-go"
	"github.com/contriboss/observe-go/internal/cli"
	"github.com/contriboss/observe-go/internal/fm"
)

var (
	classifyModel  string
	classifyPFAs   []string
	classifyTiers  []int
	classifyFormat string
)

// classification is the document form of one verdict.
type classification struct {
	PFA     string `json:"pfa"`
	Arity   int    `json:"arity"`
	Verdict string `json:"verdict"`
}

var classifyCmd = &cobra.Command{
	Use:   "classify",
	Short: "Classify PFAs against one feature model",
	Long: `Classify the given PFAs against one feature model. A PFA lists literals
joined by '&' or ','; '!' or '~' negates a feature. Without --pfa every t-wise
PFA of the configured tiers is classified.`,
	Example: `  # Two assignments
  observe classify --model examples/ProVeLines/minepump/minepump \
    --pfa "highWater & !lowWater" --pfa methaneAlarm

  # Every 1-wise PFA, one line per tier
  observe classify --model examples/Prism/BSN/BSN --tiers 1 --format collapsed`,
	RunE: func(cmd *cobra.Command, args []string) error {
		base := cfg.ExperimentPath(classifyModel)
		model, err := fm.Load(base)
		if err != nil {
			return cli.ModelParseError("loading model", err)
		}
		oracle, universe, err := model.Oracle(bddOptions()...)
		if err != nil {
			return cli.ModelParseError("compiling model", err)
		}

		var pfas []observe.PFA
		for _, text := range classifyPFAs {
			pfa, err := observe.ParsePFA(text)
			if err != nil {
				return cli.GeneralError(fmt.Sprintf("parsing PFA %q", text), err)
			}
			pfas = append(pfas, pfa)
		}
		if len(pfas) == 0 {
			for _, t := range resolveInts(classifyTiers, cfg.Tiers) {
				pfas = append(pfas, observe.Generate(oracle.Features(), t)...)
			}
		}

		classifier := observe.NewClassifier(oracle, universe,
			observe.WithLogger(logger),
			observe.WithMaxPartitions(cfg.MaxPartitions),
		)
		batches, err := classifier.ClassifyTiers(pfas)
		if err != nil {
			return cli.GeneralError("classification failed", err)
		}

		w := cmd.OutOrStdout()
		switch classifyFormat {
		case "yaml":
			var docs []classification
			for _, batch := range batches {
				for item := range batch.All() {
					docs = append(docs, classification{
						PFA:     item.Assignment.String(),
						Arity:   item.Assignment.Arity(),
						Verdict: item.Verdict.String(),
					})
				}
			}
			out, err := yaml.Marshal(docs)
			if err != nil {
				return err
			}
			fmt.Fprint(w, string(out))
		case "collapsed":
			fmt.Fprintln(w, (&observe.CollapsedReporter{}).Report(batches))
		case "text", "":
			fmt.Fprintln(w, (&observe.DefaultReporter{Verbose: true}).Report(batches))
		default:
			return cli.GeneralError(fmt.Sprintf("unknown format %q", classifyFormat), nil)
		}
		return nil
	},
}

func init() {
	classifyCmd.Flags().StringVar(&classifyModel, "model", "", "feature model base path (without .fs/.fm)")
	classifyCmd.Flags().StringArrayVar(&classifyPFAs, "pfa", nil, "PFA to classify (repeatable)")
	classifyCmd.Flags().IntSliceVar(&classifyTiers, "tiers", nil, "arities to generate when no --pfa is given")
	classifyCmd.Flags().StringVar(&classifyFormat, "format", "text", "output format: text, collapsed or yaml")
	_ = classifyCmd.MarkFlagRequired("model")
}
