package hoist

import (
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/cargo-hoist/pkg/errors"
	"github.com/matzehuels/cargo-hoist/pkg/tomledit"
)

// Kind discriminates the variants of [Source].
type Kind int

const (
	// SourceVersion is a registry version requirement.
	SourceVersion Kind = iota + 1
	// SourceGit is a git repository, optionally pinned to a branch, rev or tag.
	SourceGit
	// SourcePath is a local directory relative to the workspace root.
	SourcePath
	// SourceWorkspace marks a declaration that already uses the shared entry.
	SourceWorkspace
)

func (k Kind) String() string {
	switch k {
	case SourceVersion:
		return "version"
	case SourceGit:
		return "git"
	case SourcePath:
		return "path"
	case SourceWorkspace:
		return "workspace"
	default:
		return "unknown"
	}
}

// Source describes where a dependency's package comes from, independent of
// build attributes such as features. Sources are compared with ==.
//
// Only the fields of the source's Kind are set. Refs records which of
// Branch, Rev and Tag are declared, so `branch = ""` stays distinct from a
// missing branch.
type Source struct {
	Kind    Kind
	Version string // SourceVersion
	Git     string // SourceGit
	Branch  string
	Rev     string
	Tag     string
	Refs    GitRefs
	Path    string // SourcePath, always "./..." or "../..."
}

// GitRefs is a set of declared git reference keys.
type GitRefs uint8

const (
	RefBranch GitRefs = 1 << iota
	RefRev
	RefTag
)

// gitRefs lists the reference keys in display and output order.
var gitRefs = []struct {
	key string
	ref GitRefs
	get func(*Source) *string
}{
	{"branch", RefBranch, func(s *Source) *string { return &s.Branch }},
	{"rev", RefRev, func(s *Source) *string { return &s.Rev }},
	{"tag", RefTag, func(s *Source) *string { return &s.Tag }},
}

// Version returns a registry version source.
func Version(req string) Source {
	return Source{Kind: SourceVersion, Version: req}
}

// Git returns a git source. Empty branch, rev and tag are treated as not
// declared; use [Source.WithRef] for an explicitly empty one.
func Git(url, branch, rev, tag string) Source {
	s := Source{Kind: SourceGit, Git: url}
	for i, v := range []string{branch, rev, tag} {
		if v != "" {
			s = s.WithRef(gitRefs[i].ref, v)
		}
	}
	return s
}

// WithRef returns a copy of s with the git reference r declared as v.
func (s Source) WithRef(r GitRefs, v string) Source {
	for _, g := range gitRefs {
		if g.ref == r {
			*g.get(&s) = v
			s.Refs |= r
		}
	}
	return s
}

// Path returns a local path source. p must already be root-relative.
func Path(p string) Source {
	return Source{Kind: SourcePath, Path: p}
}

// Workspace returns the delegation marker.
func Workspace() Source {
	return Source{Kind: SourceWorkspace}
}

// String renders the source the way the conflict menu shows it.
func (s Source) String() string {
	switch s.Kind {
	case SourceVersion:
		return "version: " + s.Version
	case SourceGit:
		var b strings.Builder
		b.WriteString("git: " + s.Git)
		for _, g := range gitRefs {
			if s.Refs&g.ref != 0 {
				b.WriteString(", " + g.key + ": " + *g.get(&s))
			}
		}
		return b.String()
	case SourcePath:
		return "path: " + s.Path
	case SourceWorkspace:
		return "workspace"
	default:
		return "unknown"
	}
}

// SharedValue builds the [workspace.dependencies] entry for the source: a
// bare string for versions, an inline table of source keys otherwise.
func (s Source) SharedValue() (*tomledit.Value, error) {
	switch s.Kind {
	case SourceVersion:
		return tomledit.NewString(s.Version), nil
	case SourceGit:
		fields := []tomledit.Field{tomledit.NewField("git", tomledit.NewString(s.Git))}
		for _, g := range gitRefs {
			if s.Refs&g.ref != 0 {
				fields = append(fields, tomledit.NewField(g.key, tomledit.NewString(*g.get(&s))))
			}
		}
		return tomledit.NewInlineTable(fields...), nil
	case SourcePath:
		return tomledit.NewInlineTable(tomledit.NewField("path", tomledit.NewString(s.Path))), nil
	default:
		return nil, errors.New(errors.ErrCodeInternal, "%s source cannot be shared", s.Kind)
	}
}

// =============================================================================
// Classifier
// =============================================================================

// Classifier turns dependency declarations into sources.
type Classifier struct {
	Root   string // workspace root, for path relativization
	Logger *log.Logger
}

// NewClassifier returns a classifier for the workspace at root.
func NewClassifier(root string, logger *log.Logger) *Classifier {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Classifier{Root: root, Logger: logger}
}

// Classify returns the source of decl, found in the manifest at
// manifestPath. The boolean is false when the declaration has no
// recognizable source; the reason is logged at debug level.
func (c *Classifier) Classify(manifestPath string, decl *tomledit.Value) (Source, bool) {
	if decl == nil {
		return Source{}, false
	}
	if s, ok := decl.AsString(); ok {
		return Version(s), true
	}
	if !decl.IsTable() {
		c.Logger.Debug("unsupported declaration type", "type", decl.Kind, "manifest", manifestPath)
		return Source{}, false
	}

	if git := decl.Get("git"); git != nil {
		url, ok := git.AsString()
		if !ok {
			c.Logger.Debug("git key is not a string", "type", git.Kind, "manifest", manifestPath)
			return Source{}, false
		}
		src := Source{Kind: SourceGit, Git: url}
		for _, g := range gitRefs {
			if v, ok := decl.Get(g.key).AsString(); ok {
				src = src.WithRef(g.ref, v)
			}
		}
		return src, true
	}

	if p := decl.Get("path"); p != nil {
		local, ok := p.AsString()
		if !ok {
			c.Logger.Debug("path key is not a string", "type", p.Kind, "manifest", manifestPath)
			return Source{}, false
		}
		rel, err := Relativize(local, manifestPath, c.Root)
		if err != nil {
			c.Logger.Debug("cannot relativize path dependency", "path", local, "manifest", manifestPath, "err", err)
			return Source{}, false
		}
		return Path(rel), true
	}

	if v := decl.Get("version"); v != nil {
		if req, ok := v.AsString(); ok {
			return Version(req), true
		}
		c.Logger.Debug("version key is not a string", "type", v.Kind, "manifest", manifestPath)
		return Source{}, false
	}

	if isShared(decl) {
		return Workspace(), true
	}
	return Source{}, false
}

// isShared reports whether decl is a table carrying `workspace = true`.
func isShared(decl *tomledit.Value) bool {
	if !decl.IsTable() {
		return false
	}
	b, ok := decl.Get("workspace").AsBool()
	return ok && b
}
