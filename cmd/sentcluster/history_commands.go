package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"sentcluster/internal/analysis"
	"sentcluster/internal/history"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect and prune recorded clustering runs",
	}

	historyCmd.AddCommand(newHistoryListCommand(ctx))
	historyCmd.AddCommand(newHistoryShowCommand(ctx))
	historyCmd.AddCommand(newHistoryPruneCommand(ctx))

	return historyCmd
}

type historyListEntry struct {
	ID           string    `json:"id" yaml:"id"`
	Source       string    `json:"source" yaml:"source"`
	Strategy     string    `json:"strategy" yaml:"strategy"`
	Stemmer      string    `json:"stemmer" yaml:"stemmer"`
	Threshold    float64   `json:"threshold" yaml:"threshold"`
	LineCount    int       `json:"line_count" yaml:"line_count"`
	NodeCount    int       `json:"node_count" yaml:"node_count"`
	ClusterCount int       `json:"cluster_count" yaml:"cluster_count"`
	DurationMS   int64     `json:"duration_ms" yaml:"duration_ms"`
	CreatedAt    time.Time `json:"created_at" yaml:"created_at"`
}

func newHistoryListCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var format string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded runs, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			outFormat, err := ctx.outputFormat(cmd, format)
			if err != nil {
				return err
			}
			return ctx.withHistory(cmd, func(store *history.Store) error {
				runs, err := store.List(cmd.Context(), limit)
				if err != nil {
					return err
				}

				entries := make([]historyListEntry, 0, len(runs))
				for _, run := range runs {
					entries = append(entries, historyListEntry{
						ID:           run.ID,
						Source:       run.Source,
						Strategy:     run.Strategy,
						Stemmer:      run.Stemmer,
						Threshold:    run.Threshold,
						LineCount:    run.LineCount,
						NodeCount:    run.NodeCount,
						ClusterCount: run.ClusterCount,
						DurationMS:   run.DurationMS,
						CreatedAt:    run.CreatedAt,
					})
				}
				if handled, err := writeStructured(cmd, outFormat, entries); handled {
					return err
				}

				if len(entries) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded")
					return nil
				}
				rows := make([][]string, 0, len(entries))
				for _, entry := range entries {
					rows = append(rows, []string{
						shortID(entry.ID),
						entry.CreatedAt.Local().Format("2006-01-02 15:04:05"),
						truncate(entry.Source, 40),
						entry.Strategy,
						formatThreshold(entry.Threshold),
						strconv.Itoa(entry.NodeCount),
						strconv.Itoa(entry.ClusterCount),
					})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable("",
					[]string{"ID", "Created", "Source", "Strategy", "Threshold", "Nodes", "Clusters"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight},
				))
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of runs to show (0 for all)")
	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format (text, json, yaml)")
	return cmd
}

func newHistoryShowCommand(ctx *commandContext) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show the clusters of a recorded run",
		Long:  "Shows a recorded run. Any unique prefix of the run ID is accepted.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outFormat, err := ctx.outputFormat(cmd, format)
			if err != nil {
				return err
			}
			return ctx.withHistory(cmd, func(store *history.Store) error {
				run, err := store.Get(cmd.Context(), args[0])
				switch {
				case errors.Is(err, history.ErrNotFound):
					return fmt.Errorf("run %s not found", args[0])
				case errors.Is(err, history.ErrAmbiguousID):
					return fmt.Errorf("run id %q matches more than one run; use a longer prefix", args[0])
				case err != nil:
					return err
				}

				report := analysis.ReportFromRun(run)
				if handled, err := writeStructured(cmd, outFormat, report); handled {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Run %s · %s · %s\n", run.ID, run.Source, run.CreatedAt.Local().Format(time.RFC3339))
				fmt.Fprint(out, renderReportText(report, reportTextOptions{colorize: ctx.colorize(cmd)}))
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format (text, json, yaml)")
	return cmd
}

func newHistoryPruneCommand(ctx *commandContext) *cobra.Command {
	var olderThan string
	var keep int

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Delete old runs from history",
		RunE: func(cmd *cobra.Command, args []string) error {
			byAge := strings.TrimSpace(olderThan) != ""
			byCount := cmd.Flags().Changed("keep")
			if !byAge && !byCount {
				return errors.New("specify --older-than and/or --keep")
			}
			if byCount && keep < 1 {
				return fmt.Errorf("--keep must be at least 1, got %d", keep)
			}
			var age time.Duration
			if byAge {
				parsed, err := parseAge(olderThan)
				if err != nil {
					return err
				}
				age = parsed
			}

			return ctx.withHistory(cmd, func(store *history.Store) error {
				var removed int64
				if byAge {
					n, err := store.Prune(cmd.Context(), time.Now().Add(-age))
					if err != nil {
						return err
					}
					removed += n
				}
				if byCount {
					n, err := store.Trim(cmd.Context(), keep)
					if err != nil {
						return err
					}
					removed += n
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", plural(int(removed), "run"))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&olderThan, "older-than", "", "Remove runs older than this age (e.g. 72h, 30d)")
	cmd.Flags().IntVar(&keep, "keep", 0, "Keep only the newest N runs")
	return cmd
}

// parseAge accepts time.ParseDuration values plus a whole-day "Nd" form.
func parseAge(value string) (time.Duration, error) {
	value = strings.TrimSpace(value)
	if days, ok := strings.CutSuffix(value, "d"); ok {
		n, err := strconv.Atoi(days)
		if err != nil || n < 0 {
			return 0, fmt.Errorf("invalid age %q", value)
		}
		return time.Duration(n) * 24 * time.Hour, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil || d < 0 {
		return 0, fmt.Errorf("invalid age %q", value)
	}
	return d, nil
}
