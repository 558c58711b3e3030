package workspace

import (
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/cargo-hoist/pkg/errors"
)

// Workspace is a loaded Cargo workspace.
type Workspace struct {
	Root     string    // canonical absolute root directory
	Manifest *Manifest // root Cargo.toml
	Members  []*Manifest
}

// Load reads the workspace rooted at root and every member manifest.
// A nil logger discards diagnostics.
func Load(root string, logger *log.Logger) (*Workspace, error) {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	dir, err := canonical(root)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "workspace root not found: %s", root)
	}

	manifestPath := filepath.Join(dir, ManifestName)
	manifest, err := LoadManifest(manifestPath)
	if err != nil {
		return nil, err
	}

	decl, err := readDeclaration(manifestPath, manifest)
	if err != nil {
		return nil, err
	}

	ws := &Workspace{Root: dir, Manifest: manifest}
	seen := map[string]bool{}
	excludes := stringEntries(decl.Exclude, "exclude", logger)

	for _, pattern := range stringEntries(decl.Members, "members", logger) {
		if err := errors.ValidateMemberPattern(pattern); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidWorkspace, err, "invalid member in %s", manifestPath)
		}

		glob := isGlob(pattern)
		dirs, err := expand(dir, pattern)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidWorkspace, err, "failed to expand member %q in %s", pattern, manifestPath)
		}
		if glob && len(dirs) == 0 {
			logger.Warn("member pattern matched nothing", "pattern", pattern)
		}

		for _, memberDir := range dirs {
			if glob {
				if !hasManifest(memberDir) {
					logger.Debug("skipping directory without manifest", "dir", memberDir)
					continue
				}
				if excluded(dir, memberDir, excludes) {
					logger.Debug("skipping excluded member", "dir", memberDir)
					continue
				}
			}

			resolved, err := canonical(memberDir)
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "member %q not found", pattern)
			}
			if seen[resolved] {
				continue
			}
			seen[resolved] = true

			if resolved == dir {
				ws.Members = append(ws.Members, manifest)
				continue
			}
			m, err := LoadManifest(filepath.Join(resolved, ManifestName))
			if err != nil {
				return nil, err
			}
			logger.Debug("loaded member", "name", m.Label(), "manifest", m.Path)
			ws.Members = append(ws.Members, m)
		}
	}

	logger.Debug("loaded workspace", "root", dir, "members", len(ws.Members))
	return ws, nil
}

// =============================================================================
// Workspace declaration
// =============================================================================

type declaration struct {
	Members []any `toml:"members"`
	Exclude []any `toml:"exclude"`
}

func readDeclaration(path string, m *Manifest) (*declaration, error) {
	var file struct {
		Workspace *declaration `toml:"workspace"`
	}
	md, err := toml.Decode(m.Doc.String(), &file)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidWorkspace, err, "invalid [workspace] table in %s", path)
	}
	if file.Workspace == nil {
		return nil, errors.New(errors.ErrCodeInvalidWorkspace, "no [workspace] table found in %s", path)
	}
	if !md.IsDefined("workspace", "members") {
		return nil, errors.New(errors.ErrCodeInvalidWorkspace, "no `members` array found in [workspace] of %s", path)
	}
	return file.Workspace, nil
}

func stringEntries(values []any, key string, logger *log.Logger) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		s, ok := v.(string)
		if !ok {
			logger.Warn("skipping non-string workspace entry", "key", key, "value", fmt.Sprint(v))
			continue
		}
		out = append(out, s)
	}
	return out
}

// =============================================================================
// Member expansion
// =============================================================================

func isGlob(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[{")
}

// expand resolves pattern against root. Leading ".." segments move the glob
// base up so the remaining pattern can be matched within an fs.FS.
func expand(root, pattern string) ([]string, error) {
	pattern = path.Clean(filepath.ToSlash(pattern))
	base := root
	for pattern == ".." || strings.HasPrefix(pattern, "../") {
		base = filepath.Dir(base)
		pattern = strings.TrimPrefix(strings.TrimPrefix(pattern, ".."), "/")
	}
	if pattern == "" {
		pattern = "."
	}

	if !isGlob(pattern) {
		return []string{filepath.Join(base, filepath.FromSlash(pattern))}, nil
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("malformed glob pattern %q", pattern)
	}
	matches, err := doublestar.Glob(os.DirFS(base), pattern)
	if err != nil {
		return nil, err
	}
	slices.Sort(matches)

	dirs := make([]string, 0, len(matches))
	for _, m := range matches {
		dirs = append(dirs, filepath.Join(base, filepath.FromSlash(m)))
	}
	return dirs, nil
}

// excluded reports whether dir lies at or under an exclude entry. Entries
// may also be glob patterns.
func excluded(root, dir string, excludes []string) bool {
	rel, err := filepath.Rel(root, dir)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	for _, e := range excludes {
		e = path.Clean(filepath.ToSlash(e))
		if rel == e || strings.HasPrefix(rel, e+"/") {
			return true
		}
		if isGlob(e) && doublestar.MatchUnvalidated(e, rel) {
			return true
		}
	}
	return false
}

func hasManifest(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, ManifestName))
	return err == nil && !info.IsDir()
}

func canonical(p string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(abs)
}
