package hoist

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/cargo-hoist/pkg/tomledit"
	"github.com/matzehuels/cargo-hoist/pkg/workspace"
)

// DependenciesTable is the only manifest section a run reads and rewrites.
const DependenciesTable = "dependencies"

// Occurrence is one member's declaration of a dependency.
type Occurrence struct {
	Manifest    *workspace.Manifest
	Declaration *tomledit.Value
	Source      Source
}

// Occurrences groups declarations by dependency name. Names keep the order
// in which they were first seen, and each name's occurrences keep member
// order, then declaration order.
type Occurrences struct {
	names  []string
	byName map[string][]Occurrence
}

func newOccurrences() *Occurrences {
	return &Occurrences{byName: map[string][]Occurrence{}}
}

func (o *Occurrences) add(name string, occ Occurrence) {
	if _, ok := o.byName[name]; !ok {
		o.names = append(o.names, name)
	}
	o.byName[name] = append(o.byName[name], occ)
}

// Names returns the dependency names in first-seen order.
func (o *Occurrences) Names() []string {
	return append([]string(nil), o.names...)
}

// Get returns the occurrences of name.
func (o *Occurrences) Get(name string) []Occurrence {
	return o.byName[name]
}

// Len returns the total number of occurrences.
func (o *Occurrences) Len() int {
	n := 0
	for _, occs := range o.byName {
		n += len(occs)
	}
	return n
}

// Collector scans member manifests for dependency declarations.
type Collector struct {
	Classifier *Classifier
	Logger     *log.Logger
}

// NewCollector returns a collector classifying with c.
func NewCollector(c *Classifier, logger *log.Logger) *Collector {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Collector{Classifier: c, Logger: logger}
}

// Collect classifies every declaration of every member's [dependencies]
// section. Declarations already delegating to the workspace, and those
// without a recognizable source, are left out.
func (c *Collector) Collect(members []*workspace.Manifest) *Occurrences {
	occ := newOccurrences()
	for _, m := range members {
		deps := m.Doc.Table(DependenciesTable)
		if deps == nil {
			c.Logger.Debug("no dependencies section", "manifest", m.Path)
			continue
		}
		for _, e := range deps.Entries() {
			if isShared(e.Value) {
				c.Logger.Debug("skipping dependency already using the workspace", "name", e.Key, "manifest", m.Path)
				continue
			}
			src, ok := c.Classifier.Classify(m.Path, e.Value)
			if !ok {
				c.Logger.Warn("could not determine dependency source, skipping", "name", e.Key, "manifest", m.Path)
				continue
			}
			if src.Kind == SourceWorkspace {
				c.Logger.Debug("skipping dependency already using the workspace", "name", e.Key, "manifest", m.Path)
				continue
			}

			c.Logger.Debug("found dependency", "name", e.Key, "source", src, "manifest", m.Path)
			occ.add(e.Key, Occurrence{Manifest: m, Declaration: e.Value, Source: src})
		}
	}
	return occ
}
