package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"sentcluster/internal/analysis"
	"sentcluster/internal/logging"
)

func newClusterCommand(ctx *commandContext) *cobra.Command {
	var (
		scoring    scoringFlags
		threshold  float64
		strategy   string
		format     string
		noHistory  bool
		signatures bool
	)

	cmd := &cobra.Command{
		Use:   "cluster <file|->",
		Short: "Group similar sentences into clusters",
		Long: "Reads one sentence per line (\"-\" reads stdin), removes duplicate sentences, " +
			"scores every pair by shared word stems, and groups sentences whose similarity " +
			"is strictly above the threshold.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			outFormat, err := ctx.outputFormat(cmd, format)
			if err != nil {
				return err
			}

			req := analysis.RequestFromConfig(cfg, args[0])
			scoring.apply(cmd, &req)
			if cmd.Flags().Changed("threshold") {
				req.Threshold = threshold
			}
			if cmd.Flags().Changed("strategy") {
				req.Strategy = strategy
			}
			if noHistory {
				req.Record = false
			}
			if err := readStdin(cmd, &req); err != nil {
				return err
			}

			logger, err := ctx.logger(cmd)
			if err != nil {
				return err
			}

			var opts []analysis.Option
			if req.Record {
				store, err := ctx.openHistory(cmd.Context())
				if err != nil {
					logging.WarnWithContext(logger, "run history unavailable", "history_open_failed",
						logging.Error(err),
						logging.String(logging.FieldErrorHint, "check history.path or pass --no-history"),
					)
					req.Record = false
				} else {
					defer store.Close()
					opts = append(opts, analysis.WithHistory(store, cfg.History.Keep))
				}
			}

			report, err := analysis.New(logger, opts...).Run(cmd.Context(), req)
			if err != nil {
				return fmt.Errorf("cluster %s: %w", args[0], err)
			}

			if handled, err := writeStructured(cmd, outFormat, report); handled {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), renderReportText(report, reportTextOptions{
				signatures: signatures,
				colorize:   ctx.colorize(cmd),
			}))
			return err
		},
	}

	scoring.bind(cmd)
	cmd.Flags().Float64VarP(&threshold, "threshold", "t", 0.5, "Similarity a sentence must exceed to join a cluster (0..1)")
	cmd.Flags().StringVar(&strategy, "strategy", "", "Clustering strategy (greedy, components)")
	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format (text, json, yaml)")
	cmd.Flags().BoolVar(&noHistory, "no-history", false, "Do not record this run in history")
	cmd.Flags().BoolVar(&signatures, "signatures", false, "Print normalized signatures instead of the original lines")
	return cmd
}
