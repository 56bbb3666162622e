package analysis

import (
	"sentcluster/internal/config"
)

// Request describes one clustering pass.
type Request struct {
	// Source is a file path or "-" for stdin. It is also the label stored in
	// history.
	Source string
	// Lines, when non-nil, is used instead of reading Source.
	Lines []string

	Threshold       float64
	Strategy        string
	Stemmer         string
	Language        string
	TokenOrder      string
	IgnoreStopWords bool
	Workers         int
	StopAtBlank     bool

	// Record stores the run when the analyzer has a history recorder.
	Record bool
}

// RequestFromConfig builds a request for source using configured defaults.
func RequestFromConfig(cfg *config.Config, source string) Request {
	if cfg == nil {
		defaults := config.Default()
		cfg = &defaults
	}
	return Request{
		Source:          source,
		Threshold:       cfg.Clustering.Threshold,
		Strategy:        cfg.Clustering.Strategy,
		Stemmer:         cfg.Scoring.Stemmer,
		Language:        cfg.Scoring.Language,
		TokenOrder:      cfg.Scoring.TokenOrder,
		IgnoreStopWords: cfg.Scoring.IgnoreStopWords,
		Workers:         cfg.Scoring.Workers,
		StopAtBlank:     !cfg.Source.SkipBlank,
		Record:          cfg.History.Enabled,
	}
}
