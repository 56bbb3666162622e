package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

func (c *Config) normalize() error {
	c.normalizeScoring()
	if err := c.normalizeClustering(); err != nil {
		return err
	}
	if err := c.normalizeHistory(); err != nil {
		return err
	}
	if err := c.normalizeLogging(); err != nil {
		return err
	}
	c.normalizeOutput()
	return nil
}

func (c *Config) normalizeScoring() {
	c.Scoring.Stemmer = strings.ToLower(strings.TrimSpace(c.Scoring.Stemmer))
	if c.Scoring.Stemmer == "" {
		c.Scoring.Stemmer = defaultStemmer
	}
	c.Scoring.Language = strings.ToLower(strings.TrimSpace(c.Scoring.Language))
	if c.Scoring.Language == "" {
		c.Scoring.Language = defaultLanguage
	}
	c.Scoring.TokenOrder = strings.ToLower(strings.TrimSpace(c.Scoring.TokenOrder))
	c.Scoring.TokenOrder = strings.ReplaceAll(c.Scoring.TokenOrder, "-", "_")
	if c.Scoring.TokenOrder == "" {
		c.Scoring.TokenOrder = defaultTokenOrder
	}
	if c.Scoring.Workers == 0 {
		c.Scoring.Workers = defaultWorkers
	}
}

func (c *Config) normalizeClustering() error {
	c.Clustering.Strategy = strings.ToLower(strings.TrimSpace(c.Clustering.Strategy))
	if c.Clustering.Strategy == "" {
		c.Clustering.Strategy = defaultStrategy
	}
	if value, ok := os.LookupEnv("SENTCLUSTER_THRESHOLD"); ok && strings.TrimSpace(value) != "" {
		threshold, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return fmt.Errorf("SENTCLUSTER_THRESHOLD: %w", err)
		}
		c.Clustering.Threshold = threshold
	}
	return nil
}

func (c *Config) normalizeHistory() error {
	if value, ok := os.LookupEnv("SENTCLUSTER_HISTORY_PATH"); ok && strings.TrimSpace(value) != "" {
		c.History.Path = strings.TrimSpace(value)
	}
	if strings.TrimSpace(c.History.Path) == "" {
		c.History.Path = defaultHistoryPath
	}
	var err error
	if c.History.Path, err = expandPath(c.History.Path); err != nil {
		return fmt.Errorf("history.path: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() error {
	format := strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch format {
	case "", "console", "text", "pretty":
		c.Logging.Format = defaultLogFormat
	default:
		c.Logging.Format = format
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if c.Logging.Level == "warning" {
		c.Logging.Level = "warn"
	}
	if strings.TrimSpace(c.Logging.File) != "" {
		var err error
		if c.Logging.File, err = expandPath(strings.TrimSpace(c.Logging.File)); err != nil {
			return fmt.Errorf("logging.file: %w", err)
		}
	}
	return nil
}

func (c *Config) normalizeOutput() {
	c.Output.Format = strings.ToLower(strings.TrimSpace(c.Output.Format))
	if c.Output.Format == "" {
		c.Output.Format = defaultOutput
	}
	c.Output.Color = strings.ToLower(strings.TrimSpace(c.Output.Color))
	if c.Output.Color == "" {
		c.Output.Color = defaultColor
	}
}
