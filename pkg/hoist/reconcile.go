package hoist

import (
	"context"
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/cargo-hoist/pkg/observability"
)

// SharedSet maps dependency names to the source accepted for the shared
// table. It is read-only once built.
type SharedSet struct {
	names   []string
	sources map[string]Source
}

// NewSharedSet returns an empty set.
func NewSharedSet() *SharedSet {
	return &SharedSet{sources: map[string]Source{}}
}

func (s *SharedSet) accept(name string, src Source) {
	if _, ok := s.sources[name]; !ok {
		s.names = append(s.names, name)
	}
	s.sources[name] = src
}

// Get returns the source accepted for name.
func (s *SharedSet) Get(name string) (Source, bool) {
	src, ok := s.sources[name]
	return src, ok
}

// Has reports whether name was accepted.
func (s *SharedSet) Has(name string) bool {
	_, ok := s.sources[name]
	return ok
}

// Names returns the accepted names in the order they were accepted.
func (s *SharedSet) Names() []string {
	return append([]string(nil), s.names...)
}

// Len returns the number of accepted names.
func (s *SharedSet) Len() int {
	return len(s.names)
}

// Reconciler decides on one source per dependency name.
type Reconciler struct {
	Chooser Chooser
	Logger  *log.Logger
}

// NewReconciler returns a reconciler resolving conflicts with chooser. A nil
// chooser skips every conflict.
func NewReconciler(chooser Chooser, logger *log.Logger) *Reconciler {
	if chooser == nil {
		chooser = SkipChooser{}
	}
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Reconciler{Chooser: chooser, Logger: logger}
}

// Reconcile accepts every name whose occurrences agree on one source and
// asks the chooser about the others, in first-seen order. It returns the
// accepted set and the names skipped by the chooser. The context is checked
// before each question.
func (r *Reconciler) Reconcile(ctx context.Context, occ *Occurrences) (*SharedSet, []string, error) {
	shared := NewSharedSet()
	var skipped []string

	for _, name := range occ.Names() {
		options := distinct(occ.Get(name))
		switch len(options) {
		case 0:
			continue
		case 1:
			r.Logger.Debug("accepted dependency", "name", name, "source", options[0], "members", len(occ.Get(name)))
			shared.accept(name, options[0])
			continue
		}

		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		choice, err := r.Chooser.Choose(name, options)
		if err != nil {
			return nil, nil, err
		}
		if choice < 0 || choice > len(options) {
			choice = 0
		}
		observability.Hoist().OnConflict(ctx, name, len(options), choice)

		if choice == 0 {
			r.Logger.Debug("skipping conflicting dependency", "name", name, "options", len(options))
			skipped = append(skipped, name)
			continue
		}
		r.Logger.Debug("resolved conflict", "name", name, "source", options[choice-1])
		shared.accept(name, options[choice-1])
	}
	return shared, skipped, nil
}

// distinct returns the different sources among occs in first-seen order.
func distinct(occs []Occurrence) []Source {
	var out []Source
	seen := map[Source]bool{}
	for _, o := range occs {
		if o.Source.Kind == SourceWorkspace || seen[o.Source] {
			continue
		}
		seen[o.Source] = true
		out = append(out, o.Source)
	}
	return out
}
