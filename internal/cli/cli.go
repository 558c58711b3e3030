package cli

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/matzehuels/cargo-hoist/pkg/buildinfo"
	"github.com/matzehuels/cargo-hoist/pkg/hoist"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for display.
	appName = "cargo-hoist"

	// envPrefix prefixes environment variables that mirror flags
	// (CARGO_HOIST_DRY_RUN, CARGO_HOIST_SKIP_CONFLICTS, ...).
	envPrefix = "CARGO_HOIST"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName + " [ROOT]",
		Short: "Hoist shared Cargo workspace dependencies",
		Long: `cargo-hoist moves dependencies declared by workspace members into the
root manifest's [workspace.dependencies] table and rewrites each member
declaration to { workspace = true, ... }, keeping comments and formatting.

ROOT is the directory holding the workspace Cargo.toml (default: ".").
Every flag can also be set with a CARGO_HOIST_<FLAG> environment variable.`,
		Args:         cobra.MaximumNArgs(1),
		Version:      buildinfo.Version,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, args)
			if err != nil {
				return err
			}
			if cfg.Verbose {
				c.SetLogLevel(LogDebug)
			}
			ctx := withLogger(cmd.Context(), c.Logger)
			return c.runHoist(ctx, cfg, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.Flags().Bool(flagDryRun, false, "show what would change without writing manifests")
	root.Flags().Bool(flagSkipConflicts, false, "skip dependencies with conflicting sources instead of asking")
	root.Flags().Bool(flagTUI, false, "resolve conflicts with an interactive picker")

	root.CompletionOptions.DisableDefaultCmd = true
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Chooser Selection
// =============================================================================

// newChooser picks how conflicts are resolved: skipped outright, through the
// picker when --tui is set and input is a terminal, or with the line prompt.
func (c *CLI) newChooser(cfg *Config, in io.Reader, out io.Writer) hoist.Chooser {
	switch {
	case cfg.SkipConflicts:
		return hoist.SkipChooser{}
	case cfg.TUI && isTerminal(in):
		return &picker{in: in, out: out}
	case cfg.TUI:
		c.Logger.Warn("--tui needs an interactive terminal, falling back to the prompt")
	}
	return hoist.NewPrompter(in, out)
}

// isTerminal reports whether v is a file attached to a terminal.
func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
