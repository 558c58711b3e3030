package cli

import (
	"context"
	"io"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/cargo-hoist/pkg/hoist"
	"github.com/matzehuels/cargo-hoist/pkg/observability"
)

// runHoist executes one hoisting run and prints its summary to out.
func (c *CLI) runHoist(ctx context.Context, cfg *Config, in io.Reader, out io.Writer) error {
	logger := loggerFromContext(ctx)
	observability.SetHoistHooks(logHooks{logger: logger})
	defer observability.Reset()

	chooser := c.newChooser(cfg, in, out)

	// The spinner only runs while nothing else owns the terminal.
	runLogger := logger
	if !cfg.Verbose && isTerminal(os.Stderr) {
		spin := newSpinnerWithContext(ctx, "Scanning workspace...")
		spin.Start()
		defer spin.Stop()
		chooser = &stopFirst{Chooser: chooser, stop: spin.Stop}
		runLogger = spinnerLogger(logger, spin)
	}

	prog := newProgress(logger)
	report, err := hoist.NewRunner(runLogger).Run(ctx, cfg.Options(chooser))
	if err != nil {
		return err
	}
	prog.done("Workspace processed")

	printReport(out, report)
	return nil
}

// spinnerLogger returns a copy of logger whose lines clear the spinner frame
// before they are written.
func spinnerLogger(logger *log.Logger, spin *Spinner) *log.Logger {
	l := logger.With()
	l.SetOutput(spin)
	return l
}

// stopFirst calls stop once before the first conflict is shown.
type stopFirst struct {
	hoist.Chooser
	once sync.Once
	stop func()
}

func (s *stopFirst) Choose(name string, options []hoist.Source) (int, error) {
	s.once.Do(s.stop)
	return s.Chooser.Choose(name, options)
}

// logHooks reports run events at debug level.
type logHooks struct {
	observability.NoopHoistHooks
	logger *log.Logger
}

func (h logHooks) OnCollectComplete(_ context.Context, root string, occurrences int, d time.Duration, _ error) {
	h.logger.Debug("scan finished", "root", root, "declarations", occurrences, "elapsed", d.Round(time.Microsecond))
}

func (h logHooks) OnConflict(_ context.Context, name string, options, choice int) {
	h.logger.Debug("conflict resolved", "name", name, "options", options, "choice", choice)
}

func (h logHooks) OnWrite(_ context.Context, path string, size int, err error) {
	if err != nil {
		h.logger.Debug("write failed", "manifest", path, "err", err)
		return
	}
	h.logger.Debug("write", "manifest", path, "bytes", size)
}
