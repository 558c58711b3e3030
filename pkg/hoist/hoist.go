package hoist

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/cargo-hoist/pkg/observability"
	"github.com/matzehuels/cargo-hoist/pkg/workspace"
)

// =============================================================================
// Options & Report
// =============================================================================

// Options configures a hoisting run.
type Options struct {
	// Root is the workspace root directory. Defaults to ".".
	Root string

	// Chooser resolves conflicting sources. Defaults to SkipChooser.
	Chooser Chooser

	// DryRun performs every step except writing files.
	DryRun bool
}

// ValidateAndSetDefaults fills in unset options.
func (o *Options) ValidateAndSetDefaults() error {
	if o.Root == "" {
		o.Root = "."
	}
	if o.Chooser == nil {
		o.Chooser = SkipChooser{}
	}
	return nil
}

// Report summarizes a run.
type Report struct {
	Root        string   // canonical workspace root
	Members     int      // member manifests scanned
	Occurrences int      // declarations collected
	Hoisted     []string // names accepted for the shared table
	Added       []string // names newly written to [workspace.dependencies]
	Skipped     []string // conflicting names left alone
	Modified    []string // member manifests rewritten
	Written     []string // files written, in write order
	DryRun      bool
}

// Changed reports whether the run edited any manifest.
func (r *Report) Changed() bool {
	return len(r.Added) > 0 || len(r.Modified) > 0
}

// =============================================================================
// Runner
// =============================================================================

// Runner executes hoisting runs.
//
// A run is collect → reconcile → rewrite → persist. Every member is read and
// classified before any document is edited. Once writing starts a failure
// leaves earlier files written; there is no rollback.
type Runner struct {
	Logger *log.Logger
}

// NewRunner creates a runner. A nil logger discards diagnostics.
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Runner{Logger: logger}
}

// Run hoists the shared dependencies of the workspace at opts.Root.
func (r *Runner) Run(ctx context.Context, opts Options) (*Report, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	hooks := observability.Hoist()

	ws, err := workspace.Load(opts.Root, r.Logger)
	if err != nil {
		return nil, err
	}
	report := &Report{Root: ws.Root, Members: len(ws.Members), DryRun: opts.DryRun}

	// Stage 1: Collect
	collectStart := time.Now()
	hooks.OnCollectStart(ctx, ws.Root, len(ws.Members))
	classifier := NewClassifier(ws.Root, r.Logger)
	occ := NewCollector(classifier, r.Logger).Collect(ws.Members)
	report.Occurrences = occ.Len()
	hooks.OnCollectComplete(ctx, ws.Root, report.Occurrences, time.Since(collectStart), nil)

	r.Logger.Info("collected dependencies",
		"members", len(ws.Members),
		"declarations", report.Occurrences,
		"names", len(occ.Names()))

	// Stage 2: Reconcile
	shared, skipped, err := NewReconciler(opts.Chooser, r.Logger).Reconcile(ctx, occ)
	if err != nil {
		return nil, err
	}
	report.Hoisted = shared.Names()
	report.Skipped = skipped
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 3: Rewrite
	rewriter := NewRewriter(r.Logger)
	added, err := rewriter.UpdateRoot(ws.Manifest, shared)
	if err != nil {
		return nil, err
	}
	report.Added = added

	var modified []*workspace.Manifest
	for _, m := range ws.Members {
		names, err := rewriter.UpdateMember(m, shared)
		if err != nil {
			return nil, err
		}
		if len(names) > 0 {
			r.Logger.Info("rewrote member", "manifest", m.Path, "dependencies", len(names))
			report.Modified = append(report.Modified, m.Path)
		}
		// The root is written last regardless.
		if m != ws.Manifest && m.Doc.Modified() {
			modified = append(modified, m)
		}
	}

	// Stage 4: Persist
	if opts.DryRun {
		r.Logger.Info("dry run, not writing manifests", "modified", len(report.Modified))
		return report, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	for _, m := range append(modified, ws.Manifest) {
		err := m.Write()
		hooks.OnWrite(ctx, m.Path, len(m.Doc.Bytes()), err)
		if err != nil {
			return nil, err
		}
		r.Logger.Debug("wrote manifest", "manifest", m.Path)
		report.Written = append(report.Written, m.Path)
	}

	r.Logger.Info("hoisted dependencies",
		"hoisted", len(report.Hoisted),
		"added", len(report.Added),
		"skipped", len(report.Skipped),
		"modified", len(report.Modified))
	return report, nil
}
