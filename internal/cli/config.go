package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/matzehuels/cargo-hoist/pkg/hoist"
)

// Flag names, also used as viper keys.
const (
	flagVerbose       = "verbose"
	flagDryRun        = "dry-run"
	flagSkipConflicts = "skip-conflicts"
	flagTUI           = "tui"
)

// Config is the resolved command configuration. Flags take precedence over
// CARGO_HOIST_* environment variables, which take precedence over defaults.
type Config struct {
	Root          string `mapstructure:"root"`
	Verbose       bool   `mapstructure:"verbose"`
	DryRun        bool   `mapstructure:"dry-run"`
	SkipConflicts bool   `mapstructure:"skip-conflicts"`
	TUI           bool   `mapstructure:"tui"`
}

// loadConfig merges the command's flags, the environment and the optional
// ROOT argument into a Config.
func loadConfig(cmd *cobra.Command, args []string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("root", ".")
	v.SetDefault(flagVerbose, false)
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return nil, fmt.Errorf("failed to bind flags: %w", err)
	}
	if len(args) > 0 {
		v.Set("root", args[0])
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.SkipConflicts && cfg.TUI {
		return nil, fmt.Errorf("--%s and --%s are mutually exclusive", flagSkipConflicts, flagTUI)
	}
	return &cfg, nil
}

// Options converts the configuration into hoisting options.
func (c *Config) Options(chooser hoist.Chooser) hoist.Options {
	return hoist.Options{
		Root:    c.Root,
		Chooser: chooser,
		DryRun:  c.DryRun,
	}
}
