package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"

	"sentcluster/internal/analysis"
)

const (
	ansiReset  = "\x1b[0m"
	ansiDim    = "\x1b[2m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiBlue   = "\x1b[34m"
)

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func paint(value, color string, colorize bool) string {
	if !colorize || color == "" {
		return value
	}
	return color + value + ansiReset
}

type reportTextOptions struct {
	signatures bool
	colorize   bool
}

// renderReportText lists each cluster's sentences under a header, with a
// blank line after every cluster, followed by a one-line summary.
func renderReportText(report *analysis.Report, opts reportTextOptions) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Clusters using %s similarity threshold\n\n", formatThreshold(report.Threshold))

	for _, cluster := range report.Clusters {
		header := fmt.Sprintf("== Cluster %d · %s · cohesion %.3f ==",
			cluster.Index+1, plural(len(cluster.Nodes), "sentence"), cluster.Cohesion)
		b.WriteString(paint(header, cohesionColor(cluster), opts.colorize))
		b.WriteByte('\n')
		lines := cluster.Examples
		if opts.signatures {
			lines = cluster.Signatures
		}
		for _, line := range lines {
			b.WriteString(line)
			b.WriteByte('\n')
		}
		b.WriteByte('\n')
	}

	summary := fmt.Sprintf("%s, %s, %s (%d singleton)",
		plural(report.LineCount, "line"),
		plural(report.NodeCount, "unique sentence"),
		plural(len(report.Clusters), "cluster"),
		report.SingletonCount(),
	)
	b.WriteString(paint(summary, ansiDim, opts.colorize))
	b.WriteByte('\n')
	if report.Recorded {
		b.WriteString(paint("Run "+report.RunID+" recorded", ansiDim, opts.colorize))
		b.WriteByte('\n')
	}
	return b.String()
}

func cohesionColor(cluster analysis.ClusterReport) string {
	switch {
	case len(cluster.Nodes) == 1:
		return ansiBlue
	case cluster.Cohesion >= 0.75:
		return ansiGreen
	default:
		return ansiYellow
	}
}

func formatThreshold(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

func plural(count int, noun string) string {
	if count == 1 {
		return "1 " + noun
	}
	return strconv.Itoa(count) + " " + noun + "s"
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
