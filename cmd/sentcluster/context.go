package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"sentcluster/internal/config"
	"sentcluster/internal/history"
	"sentcluster/internal/logging"
)

var errHistoryDisabled = errors.New("run history is disabled (set history.enabled = true)")

type commandContext struct {
	configFlag    *string
	logLevelFlag  *string
	logFormatFlag *string

	configOnce sync.Once
	config     *config.Config
	configPath   string
	configExists bool
	configErr    error
}

func newCommandContext(configFlag, logLevelFlag, logFormatFlag *string) *commandContext {
	return &commandContext{
		configFlag:    configFlag,
		logLevelFlag:  logLevelFlag,
		logFormatFlag: logFormatFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, path, exists, err := config.Load(flagValue(c.configFlag))
		if err != nil {
			c.configErr = err
			return
		}
		overridden := false
		if level := flagValue(c.logLevelFlag); level != "" {
			cfg.Logging.Level = level
			overridden = true
		}
		if format := flagValue(c.logFormatFlag); format != "" {
			cfg.Logging.Format = format
			overridden = true
		}
		if overridden {
			if err := cfg.Normalize(); err != nil {
				c.configErr = err
				return
			}
			if err := cfg.Validate(); err != nil {
				c.configErr = err
				return
			}
		}
		c.config = cfg
		c.configPath = path
		c.configExists = exists
	})
	return c.config, c.configErr
}

func (c *commandContext) configValue() *config.Config {
	cfg, _ := c.ensureConfig()
	return cfg
}

func (c *commandContext) logger(cmd *cobra.Command) (*slog.Logger, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := logging.NewFromConfig(cfg, cmd.ErrOrStderr())
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	return logger, nil
}

func (c *commandContext) openHistory(ctx context.Context) (*history.Store, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	if !cfg.History.Enabled {
		return nil, errHistoryDisabled
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, err
	}
	return history.Open(ctx, cfg.History.Path)
}

func (c *commandContext) withHistory(cmd *cobra.Command, fn func(*history.Store) error) error {
	store, err := c.openHistory(cmd.Context())
	if err != nil {
		return err
	}
	defer store.Close()
	return fn(store)
}

// colorize resolves output.color against the command's stdout.
func (c *commandContext) colorize(cmd *cobra.Command) bool {
	mode := "auto"
	if cfg := c.configValue(); cfg != nil {
		mode = cfg.Output.Color
	}
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default:
		return shouldColorize(cmd.OutOrStdout())
	}
}

func (c *commandContext) outputFormat(cmd *cobra.Command, flag string) (string, error) {
	format := ""
	if cfg := c.configValue(); cfg != nil {
		format = cfg.Output.Format
	}
	if cmd.Flags().Changed("format") {
		format = flag
	}
	return parseOutputFormat(format)
}

func flagValue(value *string) string {
	if value == nil {
		return ""
	}
	return strings.TrimSpace(*value)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
