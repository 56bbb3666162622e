package config

import (
	"errors"
	"fmt"

	"sentcluster/internal/clustering"
	"sentcluster/internal/stemming"
	"sentcluster/internal/textnorm"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateScoring(); err != nil {
		return err
	}
	if err := c.validateClustering(); err != nil {
		return err
	}
	if err := c.validateHistory(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return c.validateOutput()
}

func (c *Config) validateScoring() error {
	if _, err := stemming.ByName(c.Scoring.Stemmer, c.Scoring.Language); err != nil {
		return fmt.Errorf("scoring.stemmer: %w", err)
	}
	if _, err := textnorm.ParseOrder(c.Scoring.TokenOrder); err != nil {
		return fmt.Errorf("scoring.token_order: %w", err)
	}
	if c.Scoring.Workers < 1 {
		return errors.New("scoring.workers must be at least 1")
	}
	return nil
}

func (c *Config) validateClustering() error {
	if err := clustering.ValidateThreshold(c.Clustering.Threshold); err != nil {
		return fmt.Errorf("clustering.threshold: %w", err)
	}
	if _, err := clustering.ByName(c.Clustering.Strategy); err != nil {
		return fmt.Errorf("clustering.strategy: %w", err)
	}
	return nil
}

func (c *Config) validateHistory() error {
	if c.History.Keep < 0 {
		return errors.New("history.keep must be non-negative")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}

func (c *Config) validateOutput() error {
	switch c.Output.Format {
	case "text", "json", "yaml":
	default:
		return fmt.Errorf("output.format: unsupported value %q", c.Output.Format)
	}
	switch c.Output.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("output.color: unsupported value %q", c.Output.Color)
	}
	return nil
}
