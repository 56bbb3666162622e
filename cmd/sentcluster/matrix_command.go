package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"sentcluster/internal/analysis"
)

type matrixOutput struct {
	Sentences []string    `json:"sentences" yaml:"sentences"`
	Origins   [][]int     `json:"origins" yaml:"origins"`
	Scores    [][]float64 `json:"scores" yaml:"scores"`
}

func newMatrixCommand(ctx *commandContext) *cobra.Command {
	var (
		scoring  scoringFlags
		format   string
		asTable  bool
		noLegend bool
	)

	cmd := &cobra.Command{
		Use:   "matrix <file|->",
		Short: "Print the pairwise similarity matrix",
		Args:  cobra.ExactArgs(1),
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
			if err := readStdin(cmd, &req); err != nil {
				return err
			}

			logger, err := ctx.logger(cmd)
			if err != nil {
				return err
			}
			built, err := analysis.New(logger).BuildMatrix(cmd.Context(), req)
			if err != nil {
				return fmt.Errorf("matrix %s: %w", args[0], err)
			}

			payload := matrixOutput{Sentences: built.Sentences(), Origins: built.Origins, Scores: built.Rows()}
			if handled, err := writeStructured(cmd, outFormat, payload); handled {
				return err
			}

			out := cmd.OutOrStdout()
			if asTable {
				fmt.Fprintln(out, renderMatrixTable(built))
			} else {
				fmt.Fprint(out, built.String())
			}
			if !noLegend && built.Size() > 0 {
				fmt.Fprintln(out)
				fmt.Fprintln(out, renderLegend(built))
			}
			return nil
		},
	}

	scoring.bind(cmd)
	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format (text, json, yaml)")
	cmd.Flags().BoolVar(&asTable, "table", false, "Render the matrix as a bordered table")
	cmd.Flags().BoolVar(&noLegend, "no-legend", false, "Omit the node legend")
	return cmd
}

// renderMatrixTable shows the lower triangle with the diagonal marked "-".
func renderMatrixTable(m *analysis.Matrix) string {
	n := m.Size()
	headers := make([]string, n+1)
	aligns := make([]columnAlignment, n+1)
	for j := 0; j < n; j++ {
		headers[j+1] = strconv.Itoa(j)
		aligns[j+1] = alignRight
	}
	rows := make([][]string, n)
	for i := 0; i < n; i++ {
		row := make([]string, n+1)
		row[0] = strconv.Itoa(i)
		for j := 0; j < i; j++ {
			row[j+1] = strconv.FormatFloat(m.At(i, j), 'f', 3, 64)
		}
		row[i+1] = "-"
		rows[i] = row
	}
	return renderTable("", headers, rows, aligns)
}

func renderLegend(m *analysis.Matrix) string {
	rows := make([][]string, 0, m.Size())
	for i, signature := range m.Sentences() {
		rows = append(rows, []string{
			strconv.Itoa(i),
			signature,
			strconv.Itoa(len(m.Origins[i])),
			truncate(m.Lines[m.Origins[i][0]], 60),
		})
	}
	return renderTable("Nodes", []string{"Node", "Signature", "Lines", "First line"}, rows,
		[]columnAlignment{alignRight, alignLeft, alignRight, alignLeft})
}

func truncate(value string, limit int) string {
	value = strings.TrimSpace(value)
	if limit <= 3 || len([]rune(value)) <= limit {
		return value
	}
	runes := []rune(value)
	return string(runes[:limit-3]) + "..."
}
