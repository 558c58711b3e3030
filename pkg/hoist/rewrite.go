package hoist

import (
	"io"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/cargo-hoist/pkg/errors"
	"github.com/matzehuels/cargo-hoist/pkg/tomledit"
	"github.com/matzehuels/cargo-hoist/pkg/workspace"
)

// sourceKeys are removed from a member declaration once it delegates to
// the workspace.
var sourceKeys = []string{"version", "git", "branch", "rev", "tag", "path", "workspace"}

func isSourceKey(key string) bool {
	return slices.Contains(sourceKeys, key)
}

// Rewriter applies a [SharedSet] to manifest documents. It only edits the
// documents; writing them is up to the caller.
type Rewriter struct {
	Logger *log.Logger
}

// NewRewriter returns a rewriter.
func NewRewriter(logger *log.Logger) *Rewriter {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Rewriter{Logger: logger}
}

// UpdateRoot ensures the root has a [workspace.dependencies] table, even
// when nothing was accepted, then adds every accepted name missing from it.
// Entries already present are left as they are. It returns the names added.
func (w *Rewriter) UpdateRoot(root *workspace.Manifest, shared *SharedSet) ([]string, error) {
	table, err := root.Doc.EnsureTable("workspace", DependenciesTable)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "cannot add shared dependencies to %s", root.Path)
	}

	var added []string
	for _, name := range shared.Names() {
		if table.Has(name) {
			w.Logger.Debug("dependency already shared", "name", name, "manifest", root.Path)
			continue
		}
		src, _ := shared.Get(name)
		v, err := src.SharedValue()
		if err != nil {
			return nil, err
		}
		if err := table.Append(name, v); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "failed to add %s to %s", name, root.Path)
		}
		w.Logger.Debug("added shared dependency", "name", name, "source", src, "manifest", root.Path)
		added = append(added, name)
	}
	return added, nil
}

// UpdateMember rewrites the member's declarations of accepted names to
// delegate to the workspace. Declarations already carrying
// `workspace = true` are left untouched. It returns the names rewritten.
func (w *Rewriter) UpdateMember(m *workspace.Manifest, shared *SharedSet) ([]string, error) {
	deps := m.Doc.Table(DependenciesTable)
	if deps == nil || shared.Len() == 0 {
		return nil, nil
	}

	var rewritten []string
	for _, e := range deps.Entries() {
		if !shared.Has(e.Key) {
			continue
		}
		if isShared(e.Value) {
			w.Logger.Debug("dependency already uses the workspace", "name", e.Key, "manifest", m.Path)
			continue
		}

		var err error
		switch e.Form {
		case tomledit.FormValue:
			err = deps.Set(e.Key, delegate(e.Value))
		default:
			err = w.rewriteTable(deps.Sub(e.Key), e.Value)
		}
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "failed to rewrite %s in %s", e.Key, m.Path)
		}
		w.Logger.Debug("rewrote dependency", "name", e.Key, "form", e.Form, "manifest", m.Path)
		rewritten = append(rewritten, e.Key)
	}
	return rewritten, nil
}

// delegate builds the replacement for a plain `name = value` declaration:
// an inline table starting with `workspace = true`, followed by every
// non-source field of the original inline table in its original spelling.
func delegate(decl *tomledit.Value) *tomledit.Value {
	fields := []tomledit.Field{tomledit.NewField("workspace", tomledit.NewBool(true))}
	if decl.Kind == tomledit.InlineTable {
		for _, f := range decl.Fields {
			if !isSourceKey(f.Name()) {
				fields = append(fields, f)
			}
		}
	}
	return tomledit.NewInlineTable(fields...)
}

// rewriteTable edits a [dependencies.name] section or a dotted-key group in
// place: `workspace = true` takes the place of an existing workspace key or
// becomes the first key, then every other source key line is removed.
func (w *Rewriter) rewriteTable(t *tomledit.Table, decl *tomledit.Value) error {
	if t == nil {
		return errors.New(errors.ErrCodeInternal, "declaration table disappeared")
	}
	if decl.Get("workspace") != nil {
		if err := t.Set("workspace", tomledit.NewBool(true)); err != nil {
			return err
		}
	} else if err := t.Prepend("workspace", tomledit.NewBool(true)); err != nil {
		return err
	}

	for _, f := range decl.Fields {
		if f.Name() == "workspace" || !isSourceKey(f.Name()) {
			continue
		}
		if err := t.Delete(f.Key...); err != nil {
			return err
		}
	}
	return nil
}
