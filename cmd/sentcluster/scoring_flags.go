package main

import (
	"github.com/spf13/cobra"

	"sentcluster/internal/analysis"
	"sentcluster/internal/source"
)

// scoringFlags are shared by commands that build a similarity matrix. Only
// flags the user set override configuration.
type scoringFlags struct {
	stemmer         string
	language        string
	order           string
	ignoreStopWords bool
	workers         int
}

func (f *scoringFlags) bind(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&f.stemmer, "stemmer", "", "Stemmer (snowball, porter2, identity)")
	flags.StringVar(&f.language, "language", "", "Snowball stemmer language")
	flags.StringVar(&f.order, "order", "", "Token order inside signatures (first_seen, sorted)")
	flags.BoolVar(&f.ignoreStopWords, "ignore-stop-words", false, "Drop English stop words before scoring")
	flags.IntVar(&f.workers, "workers", 0, "Parallel row builders for the similarity matrix")
}

func (f *scoringFlags) apply(cmd *cobra.Command, req *analysis.Request) {
	flags := cmd.Flags()
	if flags.Changed("stemmer") {
		req.Stemmer = f.stemmer
	}
	if flags.Changed("language") {
		req.Language = f.language
	}
	if flags.Changed("order") {
		req.TokenOrder = f.order
	}
	if flags.Changed("ignore-stop-words") {
		req.IgnoreStopWords = f.ignoreStopWords
	}
	if flags.Changed("workers") {
		req.Workers = f.workers
	}
}

// readStdin fills req.Lines from the command's input when the source is "-".
func readStdin(cmd *cobra.Command, req *analysis.Request) error {
	if req.Source != source.Stdin {
		return nil
	}
	lines, err := source.Reader{StopAtBlank: req.StopAtBlank}.Read(cmd.InOrStdin())
	if err != nil {
		return err
	}
	if lines == nil {
		lines = []string{}
	}
	req.Lines = lines
	return nil
}
